package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate status values. The only transition is active -> revoked.
const (
	CertificateStatusActive  = "active"
	CertificateStatusRevoked = "revoked"
)

// Certificate is an issued document instance. CertificateNumber is immutable
// once assigned and Type is a snapshot of the template type at issuance, so
// later template edits never alter issued certificates.
type Certificate struct {
	gorm.Model
	CertificateNumber string            `json:"certificate_number" gorm:"uniqueIndex;not null"`
	TemplateID        uint              `json:"template_id" gorm:"index;not null"`
	StudentID         uint              `json:"student_id" gorm:"index;not null"`
	Type              string            `json:"type" gorm:"index"`
	IssueDate         time.Time         `json:"issue_date"`
	IssueDateBS       string            `json:"issue_date_bs"` // Bikram Sambat YYYY-MM-DD
	Data              datatypes.JSONMap `json:"data"`
	CertificateURL    string            `json:"certificate_url"`
	QRCode            string            `json:"qr_code" gorm:"type:text"` // base64 PNG data URI
	VerificationURL   string            `json:"verification_url"`
	IssuedBy          uint              `json:"issued_by"`
	Status            string            `json:"status" gorm:"index;default:'active'"`
	RevokedAt         *time.Time        `json:"revoked_at"`
	RevokedBy         *uint             `json:"revoked_by"`
	RevokedReason     string            `json:"revoked_reason"`
}
