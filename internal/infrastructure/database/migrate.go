package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"media-registry/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes for the registry domain.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.MediaRecord{},
		&entities.OriginIndexEntry{},
		&entities.RegistryPolicy{},
		&entities.RoleAssignment{},
	); err != nil {
		return err
	}

	// One primary per origin key, enforced at the storage layer as well
	// as in the validator.
	if err := db.WithContext(ctx).Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_media_primary_origin
		 ON media_records (origin_chain_id, origin_contract, origin_token_id)
		 WHERE origin_kind = 'primary'`,
	).Error; err != nil {
		return err
	}

	log.Info().Msg("database schema up to date")
	return nil
}
