package requests

import (
	domain "media-registry/internal/domain/registry"
)

// OriginLink asserts provenance for a registration.
type OriginLink struct {
	TokenID  string `json:"token_id"`
	ChainID  string `json:"chain_id"`
	Contract string `json:"contract"`
	Kind     string `json:"kind" binding:"required,oneof=primary secondary"`
}

// RegisterMediaRequest represents a media registration request.
type RegisterMediaRequest struct {
	DataLocator     string      `json:"data_locator" binding:"required"`
	MetadataLocator string      `json:"metadata_locator"`
	SubComponents   []uint64    `json:"sub_components"`
	Origin          *OriginLink `json:"origin"`
}

// ToDomain converts the request to domain registration params. The
// creator comes from the authenticated caller, never the body.
func (r *RegisterMediaRequest) ToDomain(creator string) domain.RegisterParams {
	params := domain.RegisterParams{
		Creator:         creator,
		DataLocator:     r.DataLocator,
		MetadataLocator: r.MetadataLocator,
		SubComponents:   r.SubComponents,
	}
	if r.Origin != nil {
		params.Origin = &domain.OriginLink{
			TokenID:  r.Origin.TokenID,
			ChainID:  r.Origin.ChainID,
			Contract: r.Origin.Contract,
			Kind:     domain.OriginKind(r.Origin.Kind),
		}
	}
	return params
}

// SetSchemaVersionRequest bumps the schema version.
type SetSchemaVersionRequest struct {
	Version int `json:"version" binding:"required,gt=0"`
}

// SetMaxSubComponentsRequest changes the sub-component cap.
type SetMaxSubComponentsRequest struct {
	Max int `json:"max" binding:"required,gt=0"`
}

// SetToggleRequest flips a boolean policy field.
type SetToggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// RoleRequest grants or revokes a role.
type RoleRequest struct {
	Role     string `json:"role" binding:"required"`
	Identity string `json:"identity" binding:"required"`
}
