// Package rbac hosts the role-assignment table behind the domain's
// capability oracle.
package rbac

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "media-registry/internal/domain/registry"
	"media-registry/internal/infrastructure/database/entities"
	"media-registry/internal/utils/platformerrors"
)

// Store persists role assignments and answers membership queries.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewStore creates the role store.
func NewStore(db *gorm.DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With().Str("component", "rbac-store").Logger(),
	}
}

// HasRole reports whether identity holds role.
func (s *Store) HasRole(ctx context.Context, role domain.Role, identity string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entities.RoleAssignment{}).
		Where("role = ? AND identity = ?", role.String(), identity).
		Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to query role assignment",
			err,
			"5d4c3b2a-1f0e-4d9c-8b7a-6e5f4d3c2b1a",
		)
	}
	return count > 0, nil
}

// Grant assigns role to identity. Granting an already held role is a
// no-op.
func (s *Store) Grant(ctx context.Context, role domain.Role, identity, grantedBy string) error {
	if !role.IsValid() {
		return domain.NewError(domain.KindInvalidReference, "unknown role %q", role)
	}
	assignment := entities.RoleAssignment{
		Role:      role.String(),
		Identity:  identity,
		GrantedBy: grantedBy,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignment).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to grant role",
			err,
			"8a7b6c5d-4e3f-4a2b-9c1d-0e9f8a7b6c5d",
		)
	}
	s.log.Info().Str("role", role.String()).Str("identity", identity).
		Str("granted_by", grantedBy).Msg("role granted")
	return nil
}

// Revoke removes role from identity. Revoking a role that is not held is
// a no-op.
func (s *Store) Revoke(ctx context.Context, role domain.Role, identity string) error {
	err := s.db.WithContext(ctx).
		Where("role = ? AND identity = ?", role.String(), identity).
		Delete(&entities.RoleAssignment{}).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to revoke role",
			err,
			"3c2b1a0d-9e8f-4c7b-a6d5-4e3f2a1b0c9d",
		)
	}
	s.log.Info().Str("role", role.String()).Str("identity", identity).Msg("role revoked")
	return nil
}

// RolesOf lists the roles held by identity.
func (s *Store) RolesOf(ctx context.Context, identity string) ([]domain.Role, error) {
	var assignments []entities.RoleAssignment
	err := s.db.WithContext(ctx).
		Where("identity = ?", identity).
		Order("role").
		Find(&assignments).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list roles",
			err,
			"6f5e4d3c-2b1a-4f0e-9d8c-7b6a5f4e3d2c",
		)
	}
	roles := make([]domain.Role, 0, len(assignments))
	for _, a := range assignments {
		roles = append(roles, domain.Role(a.Role))
	}
	return roles, nil
}

// Bootstrap grants the admin role to identity when the role table is
// empty, so a fresh deployment always has a reachable administrator.
func (s *Store) Bootstrap(ctx context.Context, identity string) error {
	if identity == "" {
		return nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&entities.RoleAssignment{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := s.Grant(ctx, domain.RoleAdmin, identity, "bootstrap"); err != nil {
		return err
	}
	s.log.Info().Str("identity", identity).Msg("bootstrapped admin role")
	return nil
}
