package registry

import "context"

// Role names a capability grantable to a caller identity.
type Role string

const (
	// RoleAdmin administers policy toggles and role assignments.
	RoleAdmin Role = "admin"
	// RoleUpgradeAuthority may bump the schema version.
	RoleUpgradeAuthority Role = "upgrade_authority"
	// RoleOverwriteAuthority may act on origin keys it did not create.
	RoleOverwriteAuthority Role = "overwrite_authority"
	// RolePauseAuthority may pause and unpause registrations.
	RolePauseAuthority Role = "pause_authority"
	// RoleAuthorizedWriter may register media while the writer allowlist
	// is enforced.
	RoleAuthorizedWriter Role = "authorized_writer"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUpgradeAuthority, RoleOverwriteAuthority,
		RolePauseAuthority, RoleAuthorizedWriter:
		return true
	}
	return false
}

// RoleOracle answers capability membership queries. Grant and revoke
// bookkeeping lives behind this interface so the domain only ever asks
// "does this identity hold this role".
type RoleOracle interface {
	HasRole(ctx context.Context, role Role, identity string) (bool, error)
}
