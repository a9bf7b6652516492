// Package registry implements the registry store on PostgreSQL via GORM.
package registry

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "media-registry/internal/domain/registry"
	"media-registry/internal/infrastructure/database/entities"
	"media-registry/internal/utils/platformerrors"
)

// Repository persists media records, the origin index, and the policy
// row. Registration writes run inside a single transaction so the
// dense-ID invariant holds without an application-level lock.
type Repository struct {
	db *gorm.DB
	// seed is written as the policy row the first time the table is read
	// empty.
	seed domain.Policy
}

// NewRepository creates the postgres-backed store. seed supplies the
// policy values for a fresh database.
func NewRepository(db *gorm.DB, seed domain.Policy) *Repository {
	return &Repository{db: db, seed: seed}
}

// Count returns the number of registered media records.
func (r *Repository) Count(ctx context.Context) (uint64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.MediaRecord{}).Count(&count).Error
	if err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count media records",
			err,
			"cfa0d1a2-8f64-4a0e-9c63-55f3f8f0b1d4",
		)
	}
	return uint64(count), nil
}

// Get returns the record with the given ID.
func (r *Repository) Get(ctx context.Context, id uint64) (*domain.Media, error) {
	if id == 0 {
		return nil, domain.NewError(domain.KindNotFound, "media 0 does not exist")
	}
	var entity entities.MediaRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewError(domain.KindNotFound, "media %d does not exist", id)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to get media by id",
			err,
			"4b7e9d15-2a3c-4f8e-bb1a-9d0c2e6f7a81",
		)
	}
	media := mapEntity(entity)
	return &media, nil
}

// GetByOrigin resolves the origin index for a key.
func (r *Repository) GetByOrigin(ctx context.Context, key domain.OriginKey) (*domain.Media, error) {
	var entry entities.OriginIndexEntry
	err := r.db.WithContext(ctx).
		Where("chain_id = ? AND contract = ? AND token_id = ?", key.ChainID, key.Contract, key.TokenID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewError(domain.KindNotFound, "no media indexed for origin %s", key)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to resolve origin index",
			err,
			"d2c81f6e-0b4a-4c3d-8e5f-1a7b9c0d2e43",
		)
	}
	if entry.MediaID == 0 {
		return nil, domain.NewError(domain.KindNotFound, "no media indexed for origin %s", key)
	}
	return r.Get(ctx, entry.MediaID)
}

// Put inserts a new record at ID count+1 and overwrites the origin index
// entry when a link is present. The whole write is one transaction.
func (r *Repository) Put(ctx context.Context, media *domain.Media) (uint64, error) {
	var assigned uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.MediaRecord{}).Count(&count).Error; err != nil {
			return err
		}
		assigned = uint64(count) + 1

		record := toEntity(media)
		record.ID = assigned
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if media.Origin != nil {
			entry := entities.OriginIndexEntry{
				ChainID:  media.Origin.ChainID,
				Contract: media.Origin.Contract,
				TokenID:  media.Origin.TokenID,
				MediaID:  assigned,
				Kind:     media.Origin.Kind.String(),
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "chain_id"}, {Name: "contract"}, {Name: "token_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{"media_id", "kind", "updated_at"}),
			}).Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Partial unique index on primary origins: the validator's
			// uniqueness check already rejected duplicates read through
			// the index; this catches records that carried a primary
			// link the index no longer points at.
			return 0, domain.NewError(domain.KindDuplicatePrimary,
				"a primary registration already exists for this origin").WithCause(err)
		}
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to persist media record",
			err,
			"91f3a7b2-6c0e-4d5a-bf28-3e4d5c6b7a90",
		)
	}
	media.ID = assigned
	return assigned, nil
}

// LoadPolicy returns the stored policy, seeding defaults on first read.
func (r *Repository) LoadPolicy(ctx context.Context) (domain.Policy, error) {
	var row entities.RegistryPolicy
	err := r.db.WithContext(ctx).Where("id = ?", entities.PolicyRowID).First(&row).Error
	if err == nil {
		return domain.Policy{
			SchemaVersion:           row.SchemaVersion,
			MaxSubComponents:        row.MaxSubComponents,
			EnforceMaxSubComponents: row.EnforceMaxSubComponents,
			RequireAuthorizedWriter: row.RequireAuthorizedWriter,
			Paused:                  row.Paused,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Policy{}, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to load registry policy",
			err,
			"7e2f4a61-9d8b-4c0e-a1f3-b5d6c7e8f902",
		)
	}
	if err := r.SavePolicy(ctx, r.seed); err != nil {
		return domain.Policy{}, err
	}
	return r.seed, nil
}

// SavePolicy replaces the stored policy.
func (r *Repository) SavePolicy(ctx context.Context, policy domain.Policy) error {
	row := entities.RegistryPolicy{
		ID:                      entities.PolicyRowID,
		SchemaVersion:           policy.SchemaVersion,
		MaxSubComponents:        policy.MaxSubComponents,
		EnforceMaxSubComponents: policy.EnforceMaxSubComponents,
		RequireAuthorizedWriter: policy.RequireAuthorizedWriter,
		Paused:                  policy.Paused,
	}
	err := r.db.WithContext(ctx).Save(&row).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to save registry policy",
			err,
			"0a9b8c7d-6e5f-4a3b-9c2d-1e0f2a3b4c5d",
		)
	}
	return nil
}

func toEntity(media *domain.Media) entities.MediaRecord {
	record := entities.MediaRecord{
		ID:              media.ID,
		SchemaVersion:   media.SchemaVersion,
		Creator:         media.Creator,
		DataLocator:     media.DataLocator,
		MetadataLocator: media.MetadataLocator,
		SubComponents:   datatypes.NewJSONSlice(media.SubComponents),
		CreatedAt:       media.CreatedAt,
	}
	if media.Origin != nil {
		record.OriginChainID = media.Origin.ChainID
		record.OriginContract = media.Origin.Contract
		record.OriginTokenID = media.Origin.TokenID
		record.OriginKind = media.Origin.Kind.String()
	}
	return record
}

func mapEntity(entity entities.MediaRecord) domain.Media {
	media := domain.Media{
		ID:              entity.ID,
		SchemaVersion:   entity.SchemaVersion,
		Creator:         entity.Creator,
		DataLocator:     entity.DataLocator,
		MetadataLocator: entity.MetadataLocator,
		SubComponents:   []uint64(entity.SubComponents),
		CreatedAt:       entity.CreatedAt,
	}
	if entity.OriginKind != "" {
		media.Origin = &domain.OriginLink{
			TokenID:  entity.OriginTokenID,
			ChainID:  entity.OriginChainID,
			Contract: entity.OriginContract,
			Kind:     domain.OriginKind(entity.OriginKind),
		}
	}
	return media
}
