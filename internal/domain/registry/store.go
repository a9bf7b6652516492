package registry

import "context"

// Store is the authoritative media table plus the origin-key index.
// IDs are dense: the Nth successful Put is assigned ID N.
type Store interface {
	// Count returns the number of registered media records.
	Count(ctx context.Context) (uint64, error)
	// Get returns the record with the given ID, or a NOT_FOUND registry
	// error when the ID was never assigned.
	Get(ctx context.Context, id uint64) (*Media, error)
	// GetByOrigin resolves the origin index, or a NOT_FOUND registry
	// error when no record has been indexed under the key. The index is
	// last-write-wins: it points at whichever record most recently
	// registered the key, regardless of kind.
	GetByOrigin(ctx context.Context, key OriginKey) (*Media, error)
	// Put inserts a new record at ID count+1 and, when an origin link is
	// present, overwrites the index entry for its key. The assigned ID is
	// written back into media.ID. Existing records are never mutated.
	Put(ctx context.Context, media *Media) (uint64, error)
}

// PolicyStore persists the single process-wide policy.
type PolicyStore interface {
	// LoadPolicy returns the current policy, seeding defaults when no
	// policy has been stored yet.
	LoadPolicy(ctx context.Context) (Policy, error)
	// SavePolicy replaces the stored policy.
	SavePolicy(ctx context.Context, policy Policy) error
}

// TokenOracle resolves ownership of external tokens on the local chain.
type TokenOracle interface {
	// OwnerOf returns the owner identity of (contract, tokenID), or ""
	// when the token does not resolve to an owner.
	OwnerOf(ctx context.Context, contract, tokenID string) (string, error)
}

// Notifier delivers registration events to external collaborators.
type Notifier interface {
	NotifyRegistered(ctx context.Context, event RegistrationEvent) error
}
