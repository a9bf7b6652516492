package entities

import "time"

// PolicyRowID is the primary key of the single policy row.
const PolicyRowID = 1

// RegistryPolicy is the single-row table backing the process-wide
// registry configuration.
type RegistryPolicy struct {
	ID                      int  `gorm:"primaryKey;autoIncrement:false"`
	SchemaVersion           int  `gorm:"not null"`
	MaxSubComponents        int  `gorm:"not null"`
	EnforceMaxSubComponents bool `gorm:"not null"`
	RequireAuthorizedWriter bool `gorm:"not null"`
	Paused                  bool `gorm:"not null"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (RegistryPolicy) TableName() string {
	return "registry_policies"
}
