package registry_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registry "media-registry/internal/domain/registry"
)

// memStore is an in-memory Store and PolicyStore for service tests.
type memStore struct {
	records []*registry.Media
	index   map[registry.OriginKey]uint64
	policy  registry.Policy
}

func newMemStore() *memStore {
	return &memStore{
		index:  make(map[registry.OriginKey]uint64),
		policy: registry.DefaultPolicy(),
	}
}

func (s *memStore) Count(ctx context.Context) (uint64, error) {
	return uint64(len(s.records)), nil
}

func (s *memStore) Get(ctx context.Context, id uint64) (*registry.Media, error) {
	if id == 0 || id > uint64(len(s.records)) {
		return nil, registry.NewError(registry.KindNotFound, "media %d not found", id)
	}
	return s.records[id-1], nil
}

func (s *memStore) GetByOrigin(ctx context.Context, key registry.OriginKey) (*registry.Media, error) {
	id, ok := s.index[key]
	if !ok {
		return nil, registry.NewError(registry.KindNotFound, "no media for origin %s", key)
	}
	return s.Get(ctx, id)
}

func (s *memStore) Put(ctx context.Context, media *registry.Media) (uint64, error) {
	id := uint64(len(s.records)) + 1
	media.ID = id
	s.records = append(s.records, media)
	if media.Origin != nil {
		s.index[media.Origin.Key()] = id
	}
	return id, nil
}

func (s *memStore) LoadPolicy(ctx context.Context) (registry.Policy, error) {
	return s.policy, nil
}

func (s *memStore) SavePolicy(ctx context.Context, policy registry.Policy) error {
	s.policy = policy
	return nil
}

// memRoles grants roles from a static map.
type memRoles struct {
	grants map[registry.Role][]string
}

func (r *memRoles) HasRole(ctx context.Context, role registry.Role, identity string) (bool, error) {
	for _, id := range r.grants[role] {
		if id == identity {
			return true, nil
		}
	}
	return false, nil
}

// memTokens resolves owners from a static map keyed by contract/token.
type memTokens struct {
	owners map[string]string
}

func (t *memTokens) OwnerOf(ctx context.Context, contract, tokenID string) (string, error) {
	return t.owners[contract+"/"+tokenID], nil
}

// memNotifier captures emitted events.
type memNotifier struct {
	events []registry.RegistrationEvent
}

func (n *memNotifier) NotifyRegistered(ctx context.Context, event registry.RegistrationEvent) error {
	n.events = append(n.events, event)
	return nil
}

type fixture struct {
	store    *memStore
	roles    *memRoles
	tokens   *memTokens
	notifier *memNotifier
	service  *registry.DefaultService
}

func newFixture(localChain string) *fixture {
	store := newMemStore()
	roles := &memRoles{grants: map[registry.Role][]string{
		registry.RoleAdmin:              {"admin"},
		registry.RoleUpgradeAuthority:   {"upgrader"},
		registry.RoleOverwriteAuthority: {"overwriter"},
		registry.RolePauseAuthority:     {"pauser"},
		registry.RoleAuthorizedWriter:   {"writer"},
	}}
	tokens := &memTokens{owners: map[string]string{}}
	notifier := &memNotifier{}
	validator := registry.NewValidator(store, roles, tokens, localChain)
	service := registry.NewService(store, store, validator, roles, notifier, zerolog.Nop())
	return &fixture{store: store, roles: roles, tokens: tokens, notifier: notifier, service: service}
}

func register(t *testing.T, f *fixture, params registry.RegisterParams) *registry.Media {
	t.Helper()
	media, err := f.service.RegisterMedia(context.Background(), params)
	require.NoError(t, err)
	return media
}

func TestRegisterMedia_AssignsDenseIDs(t *testing.T) {
	f := newFixture("1")
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		media := register(t, f, registry.RegisterParams{Creator: "alice", DataLocator: "ipfs://a"})
		assert.Equal(t, uint64(i), media.ID)
	}

	count, err := f.service.MediaCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)

	got, err := f.service.GetMedia(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.ID)
	assert.Equal(t, 1, got.SchemaVersion)
}

func TestRegisterMedia_SubComponentReferences(t *testing.T) {
	f := newFixture("1")
	ctx := context.Background()

	register(t, f, registry.RegisterParams{Creator: "alice", DataLocator: "ipfs://a"})
	register(t, f, registry.RegisterParams{Creator: "alice", DataLocator: "ipfs://b"})

	tests := []struct {
		name          string
		subComponents []uint64
		wantKind      registry.Kind
	}{
		{"existing ids accepted", []uint64{1, 2}, ""},
		{"duplicate references accepted", []uint64{1, 1, 2}, ""},
		{"zero id rejected", []uint64{0}, registry.KindInvalidReference},
		{"self reference rejected", []uint64{3}, registry.KindInvalidReference},
		{"forward reference rejected", []uint64{2, 5}, registry.KindInvalidReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, _ := f.store.Count(ctx)
			_, err := f.service.RegisterMedia(ctx, registry.RegisterParams{
				Creator:       "alice",
				DataLocator:   "ipfs://c",
				SubComponents: tt.subComponents,
			})
			after, _ := f.store.Count(ctx)
			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, before+1, after)
				return
			}
			require.Error(t, err)
			assert.True(t, registry.IsKind(err, tt.wantKind), "got %v", err)
			assert.Equal(t, before, after, "failed registration must not touch the store")
		})
	}
}

func TestRegisterMedia_SubComponentCap(t *testing.T) {
	f := newFixture("1")
	ctx := context.Background()

	require.NoError(t, f.service.SetMaxSubComponents(ctx, "admin", 3))
	for i := 0; i < 4; i++ {
		register(t, f, registry.RegisterParams{Creator: "alice", DataLocator: "ipfs://seed"})
	}

	// Two references sit under the exclusive cap of three.
	register(t, f, registry.RegisterParams{
		Creator: "alice", DataLocator: "ipfs://ok", SubComponents: []uint64{1, 2},
	})

	// Exactly at the cap is rejected.
	_, err := f.service.RegisterMedia(ctx, registry.RegisterParams{
		Creator: "alice", DataLocator: "ipfs://cap", SubComponents: []uint64{1, 2, 3},
	})
	require.Error(t, err)
	assert.True(t, registry.IsKind(err, registry.KindLimitExceeded), "got %v", err)

	// Disabling enforcement lifts the cap.
	require.NoError(t, f.service.SetEnforceMaxSubComponents(ctx, "admin", false))
	register(t, f, registry.RegisterParams{
		Creator: "alice", DataLocator: "ipfs://free", SubComponents: []uint64{1, 2, 3, 4},
	})
}

func TestRegisterMedia_Paused(t *testing.T) {
	f := newFixture("1")
	ctx := context.Background()

	register(t, f, registry.RegisterParams{Creator: "alice", DataLocator: "ipfs://a"})

	require.NoError(t, f.service.Pause(ctx, "pauser"))

	_, err := f.service.RegisterMedia(ctx, registry.RegisterParams{Creator: "alice", DataLocator: "ipfs://b"})
	require.Error(t, err)
	assert.True(t, registry.IsKind(err, registry.KindPaused), "got %v", err)

	// Lookups and configuration stay available while paused.
	_, err = f.service.GetMedia(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, f.service.SetSchemaVersion(ctx, "upgrader", 2))

	// Pause and unpause are strict transitions.
	assert.ErrorIs(t, f.service.Pause(ctx, "pauser"), registry.ErrAlreadyPaused)
	require.NoError(t, f.service.Unpause(ctx, "pauser"))
	assert.ErrorIs(t, f.service.Unpause(ctx, "pauser"), registry.ErrNotPaused)

	media := register(t, f, registry.RegisterParams{Creator: "alice", DataLocator: "ipfs://c"})
	assert.Equal(t, 2, media.SchemaVersion)
}

func TestRegisterMedia_PrimaryUniqueness(t *testing.T) {
	f := newFixture("1")
	ctx := context.Background()

	origin := func(kind registry.OriginKind) *registry.OriginLink {
		return &registry.OriginLink{TokenID: "7", ChainID: "9", Contract: "0xabc", Kind: kind}
	}

	first := register(t, f, registry.RegisterParams{
		Creator: "alice", DataLocator: "ipfs://a", Origin: origin(registry.OriginKindPrimary),
	})

	_, err := f.service.RegisterMedia(ctx, registry.RegisterParams{
		Creator: "bob", DataLocator: "ipfs://b", Origin: origin(registry.OriginKindPrimary),
	})
	require.Error(t, err)
	assert.True(t, registry.IsKind(err, registry.KindDuplicatePrimary), "got %v", err)

	// Secondaries are unrestricted and the index is last-write-wins.
	second := register(t, f, registry.RegisterParams{
		Creator: "bob", DataLocator: "ipfs://c", Origin: origin(registry.OriginKindSecondary),
	})
	indexed, err := f.service.GetMediaByOrigin(ctx, origin(registry.OriginKindSecondary).Key())
	require.NoError(t, err)
	assert.Equal(t, second.ID, indexed.ID)
	assert.NotEqual(t, first.ID, indexed.ID)

	// The primary slot stays taken even after the index moved on.
	_, err = f.service.RegisterMedia(ctx, registry.RegisterParams{
		Creator: "carol", DataLocator: "ipfs://d", Origin: origin(registry.OriginKindPrimary),
	})
	require.Error(t, err)
	assert.True(t, registry.IsKind(err, registry.KindDuplicatePrimary), "got %v", err)
}

func TestRegisterMedia_InvalidOriginKind(t *testing.T) {
	f := newFixture("1")

	_, err := f.service.RegisterMedia(context.Background(), registry.RegisterParams{
		Creator:     "alice",
		DataLocator: "ipfs://a",
		Origin:      &registry.OriginLink{TokenID: "1", ChainID: "1", Contract: "0xabc", Kind: "tertiary"},
	})
	require.Error(t, err)
	assert.True(t, registry.IsKind(err, registry.KindInvalidReference), "got %v", err)
}

func TestRegisterMedia_WriterAllowlist(t *testing.T) {
	f := newFixture("1")
	ctx := context.Background()

	// Open by default.
	register(t, f, registry.RegisterParams{Creator: "anyone", DataLocator: "ipfs://a"})

	require.NoError(t, f.service.SetRequireAuthorizedWriter(ctx, "admin", true))

	_, err := f.service.RegisterMedia(ctx, registry.RegisterParams{Creator: "anyone", DataLocator: "ipfs://b"})
	require.Error(t, err)
	assert.True(t, registry.IsKind(err, registry.KindUnauthorized), "got %v", err)

	register(t, f, registry.RegisterParams{Creator: "writer", DataLocator: "ipfs://c"})
}

func TestRegisterMedia_OriginTokenVerification(t *testing.T) {
	f := newFixture("1")
	ctx := context.Background()
	f.tokens.owners["0xabc/42"] = "owner-1"

	// Local chain, token resolves.
	register(t, f, registry.RegisterParams{
		Creator: "alice", DataLocator: "ipfs://a",
		Origin: &registry.OriginLink{TokenID: "42", ChainID: "1", Contract: "0xabc", Kind: registry.OriginKindPrimary},
	})

	// Local chain, token unknown to the oracle.
	_, err := f.service.RegisterMedia(ctx, registry.RegisterParams{
		Creator: "alice", DataLocator: "ipfs://b",
		Origin: &registry.OriginLink{TokenID: "404", ChainID: "1", Contract: "0xabc", Kind: registry.OriginKindPrimary},
	})
	require.Error(t, err)
	assert.True(t, registry.IsKind(err, registry.KindOriginTokenNotFound), "got %v", err)

	// Cross-chain links are recorded as asserted, never verified.
	register(t, f, registry.RegisterParams{
		Creator: "alice", DataLocator: "ipfs://c",
		Origin: &registry.OriginLink{TokenID: "404", ChainID: "9", Contract: "0xabc", Kind: registry.OriginKindPrimary},
	})

	// Links without a token and contract pair skip verification too.
	register(t, f, registry.RegisterParams{
		Creator: "alice", DataLocator: "ipfs://d",
		Origin: &registry.OriginLink{ChainID: "1", Kind: registry.OriginKindSecondary},
	})
}

func TestPolicySetters_RoleGating(t *testing.T) {
	f := newFixture("1")
	ctx := context.Background()

	tests := []struct {
		name   string
		caller string
		call   func(caller string) error
		wantOK bool
	}{
		{"upgrade authority sets schema version", "upgrader", func(c string) error {
			return f.service.SetSchemaVersion(ctx, c, 3)
		}, true},
		{"admin cannot set schema version", "admin", func(c string) error {
			return f.service.SetSchemaVersion(ctx, c, 4)
		}, false},
		{"admin sets cap", "admin", func(c string) error {
			return f.service.SetMaxSubComponents(ctx, c, 10)
		}, true},
		{"upgrader cannot set cap", "upgrader", func(c string) error {
			return f.service.SetMaxSubComponents(ctx, c, 10)
		}, false},
		{"pauser pauses", "pauser", func(c string) error {
			return f.service.Pause(ctx, c)
		}, true},
		{"admin cannot unpause", "admin", func(c string) error {
			return f.service.Unpause(ctx, c)
		}, false},
		{"pauser unpauses", "pauser", func(c string) error {
			return f.service.Unpause(ctx, c)
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(tt.caller)
			if tt.wantOK {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, registry.IsKind(err, registry.KindUnauthorized), "got %v", err)
		})
	}

	policy, err := f.service.CurrentPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, policy.SchemaVersion)
	assert.Equal(t, 10, policy.MaxSubComponents)
	assert.False(t, policy.Paused)
}

func TestCanOverwriteOrigin(t *testing.T) {
	f := newFixture("1")
	ctx := context.Background()

	origin := &registry.OriginLink{TokenID: "7", ChainID: "1", Contract: "0xabc", Kind: registry.OriginKindSecondary}
	register(t, f, registry.RegisterParams{Creator: "alice", DataLocator: "ipfs://a", Origin: origin})
	key := origin.Key()

	require.NoError(t, f.service.CanOverwriteOrigin(ctx, "overwriter", key))
	require.NoError(t, f.service.CanOverwriteOrigin(ctx, "alice", key))

	err := f.service.CanOverwriteOrigin(ctx, "bob", key)
	require.Error(t, err)
	assert.True(t, registry.IsKind(err, registry.KindForbidden), "got %v", err)

	err = f.service.CanOverwriteOrigin(ctx, "bob", registry.OriginKey{ChainID: "1", Contract: "0xnope", TokenID: "1"})
	require.Error(t, err)
	assert.True(t, registry.IsKind(err, registry.KindNotFound), "got %v", err)
}

func TestRegisterMedia_EmitsEvent(t *testing.T) {
	f := newFixture("1")

	media := register(t, f, registry.RegisterParams{
		Creator: "alice", DataLocator: "ipfs://a",
		Origin: &registry.OriginLink{TokenID: "7", ChainID: "9", Contract: "0xabc", Kind: registry.OriginKindSecondary},
	})

	require.Len(t, f.notifier.events, 1)
	event := f.notifier.events[0]
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, media.ID, event.MediaID)
	assert.Equal(t, "alice", event.Creator)
	require.NotNil(t, event.Origin)
	assert.Equal(t, "0xabc", event.Origin.Contract)
}
