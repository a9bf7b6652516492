package entities

import "time"

// RoleAssignment grants a capability role to a caller identity.
type RoleAssignment struct {
	Role     string `gorm:"primaryKey;type:varchar(64)"`
	Identity string `gorm:"primaryKey;type:varchar(128)"`

	GrantedBy string    `gorm:"type:varchar(128)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (RoleAssignment) TableName() string {
	return "role_assignments"
}
