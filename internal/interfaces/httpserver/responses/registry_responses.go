package responses

import (
	"time"

	domain "media-registry/internal/domain/registry"
)

// OriginLink mirrors the domain origin link.
type OriginLink struct {
	TokenID  string `json:"token_id"`
	ChainID  string `json:"chain_id"`
	Contract string `json:"contract"`
	Kind     string `json:"kind"`
}

// MediaResponse represents a registered media record.
type MediaResponse struct {
	ID              uint64      `json:"id"`
	SchemaVersion   int         `json:"schema_version"`
	Creator         string      `json:"creator"`
	DataLocator     string      `json:"data_locator"`
	MetadataLocator string      `json:"metadata_locator,omitempty"`
	SubComponents   []uint64    `json:"sub_components,omitempty"`
	Origin          *OriginLink `json:"origin,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// BuildMediaResponse creates a response from the domain record.
func BuildMediaResponse(media *domain.Media) *MediaResponse {
	resp := &MediaResponse{
		ID:              media.ID,
		SchemaVersion:   media.SchemaVersion,
		Creator:         media.Creator,
		DataLocator:     media.DataLocator,
		MetadataLocator: media.MetadataLocator,
		SubComponents:   media.SubComponents,
		CreatedAt:       media.CreatedAt,
	}
	if media.Origin != nil {
		resp.Origin = &OriginLink{
			TokenID:  media.Origin.TokenID,
			ChainID:  media.Origin.ChainID,
			Contract: media.Origin.Contract,
			Kind:     media.Origin.Kind.String(),
		}
	}
	return resp
}

// RegisterResponse acknowledges a successful registration.
type RegisterResponse struct {
	ID            uint64    `json:"id"`
	SchemaVersion int       `json:"schema_version"`
	CreatedAt     time.Time `json:"created_at"`
}

// BuildRegisterResponse creates the registration acknowledgement.
func BuildRegisterResponse(media *domain.Media) *RegisterResponse {
	return &RegisterResponse{
		ID:            media.ID,
		SchemaVersion: media.SchemaVersion,
		CreatedAt:     media.CreatedAt,
	}
}

// CountResponse carries the registered media count.
type CountResponse struct {
	Count uint64 `json:"count"`
}

// PolicyResponse represents the active registry policy.
type PolicyResponse struct {
	SchemaVersion           int  `json:"schema_version"`
	MaxSubComponents        int  `json:"max_sub_components"`
	EnforceMaxSubComponents bool `json:"enforce_max_sub_components"`
	RequireAuthorizedWriter bool `json:"require_authorized_writer"`
	Paused                  bool `json:"paused"`
}

// BuildPolicyResponse creates a response from the domain policy.
func BuildPolicyResponse(policy domain.Policy) *PolicyResponse {
	return &PolicyResponse{
		SchemaVersion:           policy.SchemaVersion,
		MaxSubComponents:        policy.MaxSubComponents,
		EnforceMaxSubComponents: policy.EnforceMaxSubComponents,
		RequireAuthorizedWriter: policy.RequireAuthorizedWriter,
		Paused:                  policy.Paused,
	}
}

// CanOverwriteResponse reports the overwrite preflight outcome.
type CanOverwriteResponse struct {
	Allowed bool `json:"allowed"`
}

// RolesResponse lists the roles held by an identity.
type RolesResponse struct {
	Identity string   `json:"identity"`
	Roles    []string `json:"roles"`
}

// BuildRolesResponse creates a role listing response.
func BuildRolesResponse(identity string, roles []domain.Role) *RolesResponse {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}
	return &RolesResponse{Identity: identity, Roles: names}
}
