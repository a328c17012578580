package models

import (
	"gorm.io/gorm"
)

// User represents a staff member who can issue and revoke certificates
type User struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Mobile    string `json:"mobile"`
	Role      string `json:"role" gorm:"default:'STAFF'"` // ADMIN, STAFF
	IsDeleted bool   `gorm:"default:false"`
}
