package registry

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Service is the registry's public contract. Mutating operations pass
// through the authorization gate; lookups are always available.
type Service interface {
	RegisterMedia(ctx context.Context, params RegisterParams) (*Media, error)
	GetMedia(ctx context.Context, id uint64) (*Media, error)
	GetMediaByOrigin(ctx context.Context, key OriginKey) (*Media, error)
	MediaCount(ctx context.Context) (uint64, error)

	CurrentPolicy(ctx context.Context) (Policy, error)
	SetSchemaVersion(ctx context.Context, caller string, version int) error
	SetMaxSubComponents(ctx context.Context, caller string, max int) error
	SetEnforceMaxSubComponents(ctx context.Context, caller string, enforce bool) error
	SetRequireAuthorizedWriter(ctx context.Context, caller string, require bool) error
	Pause(ctx context.Context, caller string) error
	Unpause(ctx context.Context, caller string) error

	// CanOverwriteOrigin is a read-only preflight: it succeeds when the
	// caller holds overwrite authority or created the record currently
	// indexed at the key, and fails with FORBIDDEN otherwise.
	CanOverwriteOrigin(ctx context.Context, caller string, key OriginKey) error
}

// DefaultService implements Service against a Store, a RoleOracle, and the
// external token oracle.
type DefaultService struct {
	store     Store
	policies  PolicyStore
	validator *Validator
	roles     RoleOracle
	notifier  Notifier
	log       zerolog.Logger
}

// NewService creates the registry service. notifier may be nil when no
// event sink is configured.
func NewService(store Store, policies PolicyStore, validator *Validator, roles RoleOracle, notifier Notifier, log zerolog.Logger) *DefaultService {
	return &DefaultService{
		store:     store,
		policies:  policies,
		validator: validator,
		roles:     roles,
		notifier:  notifier,
		log:       log.With().Str("component", "registry-service").Logger(),
	}
}

// RegisterMedia runs the registration pipeline. The check order is fixed:
// pause gate, writer allowlist, sub-component cap, sub-component
// existence, origin token existence, primary uniqueness, insert. Any
// failure surfaces before the store is touched.
func (s *DefaultService) RegisterMedia(ctx context.Context, params RegisterParams) (*Media, error) {
	policy, err := s.policies.LoadPolicy(ctx)
	if err != nil {
		return nil, err
	}
	if policy.Paused {
		return nil, NewError(KindPaused, "registry is paused")
	}
	if err := s.validator.CheckWriterAuthorized(ctx, policy, params.Creator); err != nil {
		return nil, err
	}
	if err := s.validator.CheckSubComponentCount(policy, params.SubComponents); err != nil {
		return nil, err
	}
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validator.CheckSubComponentsExist(params.SubComponents, count); err != nil {
		return nil, err
	}

	if params.Origin != nil {
		if !params.Origin.Kind.IsValid() {
			return nil, NewError(KindInvalidReference, "unknown origin kind %q", params.Origin.Kind)
		}
		if err := s.validator.CheckOriginToken(ctx, params.Origin); err != nil {
			return nil, err
		}
		if err := s.validator.CheckPrimaryUniqueness(ctx, params.Origin); err != nil {
			return nil, err
		}
	}

	media := &Media{
		SchemaVersion:   policy.SchemaVersion,
		Creator:         params.Creator,
		DataLocator:     params.DataLocator,
		MetadataLocator: params.MetadataLocator,
		SubComponents:   params.SubComponents,
		Origin:          params.Origin,
		CreatedAt:       time.Now().UTC(),
	}

	id, err := s.store.Put(ctx, media)
	if err != nil {
		return nil, err
	}
	media.ID = id

	s.emitRegistered(ctx, media)

	s.log.Info().
		Uint64("media_id", media.ID).
		Str("creator", media.Creator).
		Int("sub_components", len(media.SubComponents)).
		Msg("media registered")
	return media, nil
}

// GetMedia returns a record by ID. Lookups bypass the gate.
func (s *DefaultService) GetMedia(ctx context.Context, id uint64) (*Media, error) {
	return s.store.Get(ctx, id)
}

// GetMediaByOrigin resolves the origin index for a key.
func (s *DefaultService) GetMediaByOrigin(ctx context.Context, key OriginKey) (*Media, error) {
	return s.store.GetByOrigin(ctx, key)
}

// MediaCount returns the number of registered records.
func (s *DefaultService) MediaCount(ctx context.Context) (uint64, error) {
	return s.store.Count(ctx)
}

// CurrentPolicy returns the active policy.
func (s *DefaultService) CurrentPolicy(ctx context.Context) (Policy, error) {
	return s.policies.LoadPolicy(ctx)
}

// SetSchemaVersion bumps the version stamped into new records. Gated by
// the upgrade authority.
func (s *DefaultService) SetSchemaVersion(ctx context.Context, caller string, version int) error {
	return s.updatePolicy(ctx, caller, RoleUpgradeAuthority, func(p *Policy) error {
		p.SchemaVersion = version
		return nil
	})
}

// SetMaxSubComponents changes the sub-component cap. Admin only.
func (s *DefaultService) SetMaxSubComponents(ctx context.Context, caller string, max int) error {
	return s.updatePolicy(ctx, caller, RoleAdmin, func(p *Policy) error {
		p.MaxSubComponents = max
		return nil
	})
}

// SetEnforceMaxSubComponents toggles cap enforcement. Admin only.
func (s *DefaultService) SetEnforceMaxSubComponents(ctx context.Context, caller string, enforce bool) error {
	return s.updatePolicy(ctx, caller, RoleAdmin, func(p *Policy) error {
		p.EnforceMaxSubComponents = enforce
		return nil
	})
}

// SetRequireAuthorizedWriter toggles the writer allowlist. Admin only.
func (s *DefaultService) SetRequireAuthorizedWriter(ctx context.Context, caller string, require bool) error {
	return s.updatePolicy(ctx, caller, RoleAdmin, func(p *Policy) error {
		p.RequireAuthorizedWriter = require
		return nil
	})
}

// Pause halts registrations. Configuration setters and lookups stay
// available while paused.
func (s *DefaultService) Pause(ctx context.Context, caller string) error {
	return s.updatePolicy(ctx, caller, RolePauseAuthority, func(p *Policy) error {
		return p.Pause()
	})
}

// Unpause resumes registrations.
func (s *DefaultService) Unpause(ctx context.Context, caller string) error {
	return s.updatePolicy(ctx, caller, RolePauseAuthority, func(p *Policy) error {
		return p.Unpause()
	})
}

// CanOverwriteOrigin implements the overwrite guard as a preflight check.
func (s *DefaultService) CanOverwriteOrigin(ctx context.Context, caller string, key OriginKey) error {
	ok, err := s.roles.HasRole(ctx, RoleOverwriteAuthority, caller)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	existing, err := s.store.GetByOrigin(ctx, key)
	if err != nil {
		return err
	}
	if existing.Creator == caller {
		return nil
	}
	return NewError(KindForbidden,
		"caller %q is neither overwrite authority nor creator of origin %s", caller, key)
}

func (s *DefaultService) updatePolicy(ctx context.Context, caller string, role Role, mutate func(*Policy) error) error {
	if err := s.requireRole(ctx, role, caller); err != nil {
		return err
	}
	policy, err := s.policies.LoadPolicy(ctx)
	if err != nil {
		return err
	}
	if err := mutate(&policy); err != nil {
		return err
	}
	if err := s.policies.SavePolicy(ctx, policy); err != nil {
		return err
	}
	s.log.Info().Str("caller", caller).Str("role", role.String()).
		Interface("policy", policy).Msg("policy updated")
	return nil
}

func (s *DefaultService) requireRole(ctx context.Context, role Role, caller string) error {
	ok, err := s.roles.HasRole(ctx, role, caller)
	if err != nil {
		return err
	}
	if !ok {
		return NewError(KindUnauthorized, "caller %q lacks role %s", caller, role)
	}
	return nil
}

func (s *DefaultService) emitRegistered(ctx context.Context, media *Media) {
	if s.notifier == nil {
		return
	}
	event := RegistrationEvent{
		EventID:       ulid.Make().String(),
		MediaID:       media.ID,
		Creator:       media.Creator,
		SchemaVersion: media.SchemaVersion,
		Origin:        media.Origin,
		OccurredAt:    media.CreatedAt,
	}
	if err := s.notifier.NotifyRegistered(ctx, event); err != nil {
		s.log.Warn().Err(err).Uint64("media_id", media.ID).Msg("registration event delivery failed")
	}
}
