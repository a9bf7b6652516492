package entities

import (
	"time"

	"gorm.io/datatypes"
)

// MediaRecord is the persisted form of a registered media record. Rows
// are append-only; nothing updates them after insert.
type MediaRecord struct {
	// ID is assigned by the repository as count+1, never by a sequence,
	// so the table stays dense even across failed transactions.
	ID              uint64 `gorm:"primaryKey;autoIncrement:false"`
	SchemaVersion   int    `gorm:"not null"`
	Creator         string `gorm:"type:varchar(128);not null;index"`
	DataLocator     string `gorm:"type:text;not null"`
	MetadataLocator string `gorm:"type:text;not null"`
	// SubComponents holds IDs of previously registered records.
	SubComponents datatypes.JSONSlice[uint64] `gorm:"type:jsonb"`

	// Origin link columns; all empty when no link was supplied.
	OriginChainID  string `gorm:"type:varchar(64);index:idx_media_origin"`
	OriginContract string `gorm:"type:varchar(128);index:idx_media_origin"`
	OriginTokenID  string `gorm:"type:varchar(128);index:idx_media_origin"`
	OriginKind     string `gorm:"type:varchar(16)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (MediaRecord) TableName() string {
	return "media_records"
}
