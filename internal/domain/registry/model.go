// Package registry defines the media registry domain: records, origin
// provenance links, validation rules, and the registration service.
package registry

import (
	"fmt"
	"time"
)

// OriginKind classifies an origin link relative to its external token.
type OriginKind string

const (
	// OriginKindPrimary marks the canonical registration for an origin
	// token. At most one primary may exist per origin key.
	OriginKindPrimary OriginKind = "primary"
	// OriginKindSecondary marks a derivative registration. Any number of
	// secondaries may reference the same origin key.
	OriginKindSecondary OriginKind = "secondary"
)

// IsValid reports whether the kind is one of the known values.
func (k OriginKind) IsValid() bool {
	return k == OriginKindPrimary || k == OriginKindSecondary
}

// String returns the string representation of the kind.
func (k OriginKind) String() string {
	return string(k)
}

// OriginLink asserts provenance of a media record via a token held on an
// external chain. Token and contract identifiers are opaque strings;
// the registry never interprets them beyond equality.
type OriginLink struct {
	TokenID  string     `json:"token_id"`
	ChainID  string     `json:"chain_id"`
	Contract string     `json:"contract"`
	Kind     OriginKind `json:"kind"`
}

// Key returns the index key for this link.
func (l OriginLink) Key() OriginKey {
	return OriginKey{ChainID: l.ChainID, Contract: l.Contract, TokenID: l.TokenID}
}

// Verifiable reports whether the link carries enough information for a
// live ownership check. Links without both a token and a contract are
// recorded as asserted, never verified.
func (l OriginLink) Verifiable() bool {
	return l.TokenID != "" && l.Contract != ""
}

// OriginKey identifies an external token for index lookups.
type OriginKey struct {
	ChainID  string `json:"chain_id"`
	Contract string `json:"contract"`
	TokenID  string `json:"token_id"`
}

// String renders the key for logs and error messages.
func (k OriginKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.ChainID, k.Contract, k.TokenID)
}

// Media is a registered creative-work record. Records are append-only:
// once registered they are never updated or deleted.
type Media struct {
	ID              uint64      `json:"id"`
	SchemaVersion   int         `json:"schema_version"`
	Creator         string      `json:"creator"`
	DataLocator     string      `json:"data_locator"`
	MetadataLocator string      `json:"metadata_locator"`
	SubComponents   []uint64    `json:"sub_components,omitempty"`
	Origin          *OriginLink `json:"origin,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// RegisterParams contains the caller-supplied inputs for a registration.
type RegisterParams struct {
	Creator         string
	DataLocator     string
	MetadataLocator string
	SubComponents   []uint64
	Origin          *OriginLink
}

// RegistrationEvent is emitted after every successful registration. It is
// a one-way notification for external indexers; registry correctness never
// depends on anyone having observed it.
type RegistrationEvent struct {
	EventID       string      `json:"event_id"`
	MediaID       uint64      `json:"media_id"`
	Creator       string      `json:"creator"`
	SchemaVersion int         `json:"schema_version"`
	Origin        *OriginLink `json:"origin,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
}
