package registry

import "context"

// Validator runs the pre-mutation checks for a registration. All checks
// are side-effect free: they read the store, the policy snapshot, and the
// external oracles, and never write.
type Validator struct {
	store  Store
	roles  RoleOracle
	tokens TokenOracle
	// localChainID identifies this execution environment. Origin tokens
	// on other chains cannot be verified synchronously and are recorded
	// as asserted.
	localChainID string
}

// NewValidator creates a validator. tokens may be nil, in which case
// same-chain origin tokens are treated like cross-chain ones: asserted,
// not verified.
func NewValidator(store Store, roles RoleOracle, tokens TokenOracle, localChainID string) *Validator {
	return &Validator{
		store:        store,
		roles:        roles,
		tokens:       tokens,
		localChainID: localChainID,
	}
}

// CheckWriterAuthorized rejects callers outside the writer allowlist when
// the allowlist toggle is on.
func (v *Validator) CheckWriterAuthorized(ctx context.Context, policy Policy, caller string) error {
	if !policy.RequireAuthorizedWriter {
		return nil
	}
	ok, err := v.roles.HasRole(ctx, RoleAuthorizedWriter, caller)
	if err != nil {
		return err
	}
	if !ok {
		return NewError(KindUnauthorized, "caller %q is not an authorized writer", caller)
	}
	return nil
}

// CheckSubComponentCount enforces the exclusive sub-component cap.
func (v *Validator) CheckSubComponentCount(policy Policy, subComponents []uint64) error {
	if !policy.EnforceMaxSubComponents {
		return nil
	}
	if len(subComponents) >= policy.MaxSubComponents {
		return NewError(KindLimitExceeded,
			"%d sub-components at or above cap %d", len(subComponents), policy.MaxSubComponents)
	}
	return nil
}

// CheckSubComponentsExist verifies every referenced ID was assigned before
// this registration. count is the record count prior to the new record, so
// forward references and self references are impossible by construction.
func (v *Validator) CheckSubComponentsExist(subComponents []uint64, count uint64) error {
	for _, id := range subComponents {
		if id == 0 || id > count {
			return NewError(KindInvalidReference, "sub-component %d does not exist", id)
		}
	}
	return nil
}

// CheckOriginToken verifies the linked token resolves to an owner. The
// live check only applies to verifiable links on the local chain; links on
// other chains are recorded as asserted.
func (v *Validator) CheckOriginToken(ctx context.Context, link *OriginLink) error {
	if link == nil || !link.Verifiable() {
		return nil
	}
	if link.ChainID != v.localChainID || v.tokens == nil {
		return nil
	}
	owner, err := v.tokens.OwnerOf(ctx, link.Contract, link.TokenID)
	if err != nil {
		return err
	}
	if owner == "" {
		return NewError(KindOriginTokenNotFound,
			"token %s on contract %s has no resolvable owner", link.TokenID, link.Contract)
	}
	return nil
}

// CheckPrimaryUniqueness rejects a second primary registration for an
// origin key that is already indexed.
func (v *Validator) CheckPrimaryUniqueness(ctx context.Context, link *OriginLink) error {
	if link == nil || link.Kind != OriginKindPrimary {
		return nil
	}
	existing, err := v.store.GetByOrigin(ctx, link.Key())
	if err != nil {
		if IsKind(err, KindNotFound) {
			return nil
		}
		return err
	}
	if existing != nil {
		return NewError(KindDuplicatePrimary,
			"origin %s already registered as media %d", link.Key(), existing.ID)
	}
	return nil
}
