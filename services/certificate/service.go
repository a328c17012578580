package certificate

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"schoolms/models"
)

type (
	// GenerateInput carries everything needed to issue one certificate
	GenerateInput struct {
		TemplateID  uint
		StudentID   uint
		Data        map[string]interface{}
		IssuedBy    uint
		IssueDate   *time.Time
		IssueDateBS string
	}

	// BulkItem is one subject entry in a bulk generation request
	BulkItem struct {
		StudentID uint                   `json:"student_id"`
		Data      map[string]interface{} `json:"data"`
	}

	// BulkFailure records one failed item of a bulk batch
	BulkFailure struct {
		StudentID uint   `json:"student_id"`
		Error     string `json:"error"`
	}

	// BulkResult aggregates a bulk batch. Both slices follow input order.
	BulkResult struct {
		Success []models.Certificate `json:"success"`
		Failed  []BulkFailure        `json:"failed"`
	}

	// CertificateSnapshot is the public view of a certificate returned by
	// Verify. The same shape is used for valid and revoked certificates.
	CertificateSnapshot struct {
		CertificateNumber string                 `json:"certificate_number"`
		Type              string                 `json:"type"`
		StudentID         uint                   `json:"student_id"`
		IssueDate         string                 `json:"issue_date"`
		IssueDateBS       string                 `json:"issue_date_bs"`
		Data              map[string]interface{} `json:"data"`
		Status            string                 `json:"status"`
		VerificationURL   string                 `json:"verification_url"`
		RevokedAt         *time.Time             `json:"revoked_at,omitempty"`
		RevokedBy         *uint                  `json:"revoked_by,omitempty"`
		RevokedReason     string                 `json:"revoked_reason,omitempty"`
	}

	// VerificationResult is what the public verification endpoint returns.
	// Verification never fails with an error; problems are reported through
	// Valid and Message.
	VerificationResult struct {
		Valid       bool                 `json:"valid"`
		Message     string               `json:"message"`
		Certificate *CertificateSnapshot `json:"certificate,omitempty"`
	}

	// Service is the certificate lifecycle manager. It orchestrates
	// generation, verification and revocation over injected collaborators.
	Service struct {
		certs     CertificateRepository
		templates *TemplateService
		numbers   *NumberGenerator
		qr        *QRBuilder
		renderer  Renderer
		calendar  Converter
		baseURL   string
		now       func() time.Time
	}
)

// NewService wires a lifecycle manager from its collaborators
func NewService(
	certs CertificateRepository,
	templates *TemplateService,
	numbers *NumberGenerator,
	qr *QRBuilder,
	renderer Renderer,
	calendar Converter,
	baseURL string,
) *Service {
	return &Service{
		certs:     certs,
		templates: templates,
		numbers:   numbers,
		qr:        qr,
		renderer:  renderer,
		calendar:  calendar,
		baseURL:   baseURL,
		now:       time.Now,
	}
}

// Generate issues a single certificate. On any failure nothing is persisted.
func (s *Service) Generate(in GenerateInput) (*models.Certificate, error) {
	tpl, err := s.loadActiveTemplate(in.TemplateID)
	if err != nil {
		return nil, err
	}
	return s.generateFromTemplate(tpl, in)
}

// generateFromTemplate runs the per-item generation pipeline against an
// already loaded and validated template
func (s *Service) generateFromTemplate(tpl *models.CertificateTemplate, in GenerateInput) (*models.Certificate, error) {
	if missing := missingVariables(tpl.VariableNames(), in.Data); len(missing) > 0 {
		return nil, &MissingRequiredVariablesError{Variables: missing}
	}

	issueDate := s.now()
	if in.IssueDate != nil {
		issueDate = *in.IssueDate
	}
	issueDateBS := in.IssueDateBS
	if issueDateBS == "" {
		issueDateBS = s.calendar.ToBS(issueDate)
	}

	number, err := s.numbers.Next(tpl.Type)
	if err != nil {
		return nil, err
	}

	verificationURL := VerificationURL(s.baseURL, number)
	qrDataURI, qrPNG, err := s.qr.Build(verificationURL)
	if err != nil {
		return nil, err
	}

	data := make(map[string]interface{}, len(in.Data)+5)
	for key, value := range in.Data {
		data[key] = value
	}
	data["certificate_number"] = number
	data["issue_date"] = issueDate.Format("2006-01-02")
	data["issue_date_bs"] = issueDateBS
	data["qr_code"] = qrDataURI
	data["verification_url"] = verificationURL

	renderedHTML := renderBody(tpl.Body, data)

	documentURL, err := s.renderer.Produce(number, renderedHTML, qrPNG)
	if err != nil {
		return nil, err
	}

	cert := &models.Certificate{
		CertificateNumber: number,
		TemplateID:        tpl.ID,
		StudentID:         in.StudentID,
		Type:              tpl.Type,
		IssueDate:         issueDate,
		IssueDateBS:       issueDateBS,
		Data:              datatypes.JSONMap(data),
		CertificateURL:    documentURL,
		QRCode:            qrDataURI,
		VerificationURL:   verificationURL,
		IssuedBy:          in.IssuedBy,
		Status:            models.CertificateStatusActive,
	}
	if err := s.certs.Create(cert); err != nil {
		return nil, fmt.Errorf("failed to save certificate: %w", err)
	}
	return cert, nil
}

// BulkGenerate issues one certificate per item, sequentially. Template
// preconditions abort the whole batch; each item's outcome is otherwise
// independent and a failure never stops the remaining items. Success and
// failure lists follow input order.
func (s *Service) BulkGenerate(
	templateID uint,
	items []BulkItem,
	issuedBy uint,
	issueDate *time.Time,
	issueDateBS string,
) (*BulkResult, error) {
	tpl, err := s.loadActiveTemplate(templateID)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{
		Success: []models.Certificate{},
		Failed:  []BulkFailure{},
	}
	for _, item := range items {
		cert, err := s.generateFromTemplate(tpl, GenerateInput{
			TemplateID:  templateID,
			StudentID:   item.StudentID,
			Data:        item.Data,
			IssuedBy:    issuedBy,
			IssueDate:   issueDate,
			IssueDateBS: issueDateBS,
		})
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{
				StudentID: item.StudentID,
				Error:     err.Error(),
			})
			continue
		}
		result.Success = append(result.Success, *cert)
	}
	return result, nil
}

// Verify resolves a certificate number to a structured verification result.
// It never returns an error so the public endpoint always has a clear answer.
func (s *Service) Verify(certificateNumber string) *VerificationResult {
	number := strings.TrimSpace(certificateNumber)
	if number == "" {
		return &VerificationResult{Valid: false, Message: "Certificate number is required"}
	}

	cert, err := s.certs.FindByNumber(number)
	if err != nil {
		if isNotFound(err) {
			return &VerificationResult{
				Valid:   false,
				Message: "Certificate not found. Please verify the certificate number and try again.",
			}
		}
		return &VerificationResult{
			Valid:   false,
			Message: "Unable to verify certificate. Please try again later.",
		}
	}

	snapshot := snapshotOf(cert)
	if cert.Status == models.CertificateStatusRevoked {
		reason := cert.RevokedReason
		if reason == "" {
			reason = "Not specified"
		}
		message := "Certificate has been revoked"
		if cert.RevokedAt != nil {
			message += " on " + cert.RevokedAt.Format("2006-01-02")
		}
		message += ". Reason: " + reason
		return &VerificationResult{Valid: false, Certificate: snapshot, Message: message}
	}

	return &VerificationResult{
		Valid:       true,
		Certificate: snapshot,
		Message:     "Certificate is valid and authentic",
	}
}

// Revoke transitions a certificate to revoked, stamping the audit fields.
// Revocation is one-way: a second revoke returns ErrAlreadyRevoked and the
// original metadata is kept.
func (s *Service) Revoke(certificateID uint, revokedBy uint, reason string) (*models.Certificate, error) {
	cert, err := s.certs.FindByID(certificateID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	if cert.Status == models.CertificateStatusRevoked {
		return nil, ErrAlreadyRevoked
	}

	revokedAt := s.now()
	cert.Status = models.CertificateStatusRevoked
	cert.RevokedAt = &revokedAt
	cert.RevokedBy = &revokedBy
	cert.RevokedReason = reason

	if err := s.certs.Save(cert); err != nil {
		return nil, err
	}
	return cert, nil
}

// Get returns the certificate with the given id
func (s *Service) Get(id uint) (*models.Certificate, error) {
	cert, err := s.certs.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	return cert, nil
}

// List returns certificates matching filter plus the unpaged total
func (s *Service) List(filter CertificateFilter) ([]models.Certificate, int64, error) {
	return s.certs.List(filter)
}

// loadActiveTemplate loads a template and enforces the generation
// preconditions shared by Generate and BulkGenerate
func (s *Service) loadActiveTemplate(templateID uint) (*models.CertificateTemplate, error) {
	tpl, err := s.templates.Get(templateID)
	if err != nil {
		return nil, err
	}
	if !tpl.IsActive {
		return nil, ErrTemplateInactive
	}
	return tpl, nil
}

// snapshotOf builds the public certificate view shared by the valid and
// revoked verification paths
func snapshotOf(cert *models.Certificate) *CertificateSnapshot {
	return &CertificateSnapshot{
		CertificateNumber: cert.CertificateNumber,
		Type:              cert.Type,
		StudentID:         cert.StudentID,
		IssueDate:         cert.IssueDate.Format("2006-01-02"),
		IssueDateBS:       cert.IssueDateBS,
		Data:              map[string]interface{}(cert.Data),
		Status:            cert.Status,
		VerificationURL:   cert.VerificationURL,
		RevokedAt:         cert.RevokedAt,
		RevokedBy:         cert.RevokedBy,
		RevokedReason:     cert.RevokedReason,
	}
}
