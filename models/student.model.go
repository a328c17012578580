package models

import (
	"time"

	"gorm.io/gorm"
)

// Student represents a learner that certificates can be issued to
type Student struct {
	gorm.Model
	Name         string     `json:"name" gorm:"not null"`
	RollNumber   string     `json:"roll_number" gorm:"index"`
	Class        string     `json:"class"`
	Section      string     `json:"section"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	GuardianName string     `json:"guardian_name"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Address      string     `json:"address"`
	IsDeleted    bool       `gorm:"default:false"`
}
