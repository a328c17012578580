package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate type tags. A template carries exactly one of these and every
// certificate issued from it snapshots the tag at issuance time.
const (
	TypeCharacter          = "character"
	TypeTransfer           = "transfer"
	TypeAcademicExcellence = "academic_excellence"
	TypeECA                = "eca"
	TypeSports             = "sports"
	TypeCourseCompletion   = "course_completion"
	TypeBonafide           = "bonafide"
	TypeConduct            = "conduct"
	TypeParticipation      = "participation"
)

// CertificateTypes lists every known certificate type tag
var CertificateTypes = []string{
	TypeCharacter,
	TypeTransfer,
	TypeAcademicExcellence,
	TypeECA,
	TypeSports,
	TypeCourseCompletion,
	TypeBonafide,
	TypeConduct,
	TypeParticipation,
}

// IsValidCertificateType reports whether t is one of the known type tags
func IsValidCertificateType(t string) bool {
	for _, known := range CertificateTypes {
		if t == known {
			return true
		}
	}
	return false
}

// CertificateTemplate is a named document skeleton with {{variable}} placeholders.
// Deleting a template only clears IsActive; rows are never removed so issued
// certificates keep a resolvable template reference.
type CertificateTemplate struct {
	gorm.Model
	Name      string         `json:"name" gorm:"uniqueIndex;not null"`
	Type      string         `json:"type" gorm:"index;not null"`
	Body      string         `json:"body" gorm:"type:text;not null"`
	Variables datatypes.JSON `json:"variables" gorm:"not null"` // JSON array of declared variable names
	IsActive  bool           `json:"is_active" gorm:"default:true"`
}

// VariableNames decodes the declared variable list
func (t *CertificateTemplate) VariableNames() []string {
	var names []string
	if len(t.Variables) == 0 {
		return names
	}
	if err := json.Unmarshal(t.Variables, &names); err != nil {
		return nil
	}
	return names
}

// SetVariableNames encodes names into the Variables column
func (t *CertificateTemplate) SetVariableNames(names []string) {
	encoded, _ := json.Marshal(names)
	t.Variables = datatypes.JSON(encoded)
}
