package entities

import "time"

// OriginIndexEntry maps an origin key to the media record that most
// recently registered it. One row per key, overwritten on every
// registration that supplies the key.
type OriginIndexEntry struct {
	ChainID  string `gorm:"primaryKey;type:varchar(64)"`
	Contract string `gorm:"primaryKey;type:varchar(128)"`
	TokenID  string `gorm:"primaryKey;type:varchar(128)"`

	MediaID uint64 `gorm:"not null"`
	Kind    string `gorm:"type:varchar(16);not null"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (OriginIndexEntry) TableName() string {
	return "origin_index_entries"
}
