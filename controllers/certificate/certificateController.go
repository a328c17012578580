package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"schoolms/database"
	"schoolms/middleware"
	"schoolms/models"
	certificate "schoolms/services/certificate"
	"schoolms/utils"
	certificateValidator "schoolms/validators/certificate"
)

// statusForError maps certificate service errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, certificate.ErrTemplateNotFound),
		errors.Is(err, certificate.ErrCertificateNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, certificate.ErrDuplicateTemplateName),
		errors.Is(err, certificate.ErrAlreadyRevoked):
		return fiber.StatusConflict
	case errors.Is(err, certificate.ErrTemplateInactive),
		errors.Is(err, certificate.ErrEmptyTemplateBody),
		errors.Is(err, certificate.ErrEmptyVariableList):
		return fiber.StatusBadRequest
	}

	var invalidName *certificate.InvalidVariableNameError
	var duplicateVar *certificate.DuplicateVariableError
	var missingInBody *certificate.MissingTemplateVariablesError
	var missingRequired *certificate.MissingRequiredVariablesError
	if errors.As(err, &invalidName) || errors.As(err, &duplicateVar) ||
		errors.As(err, &missingInBody) || errors.As(err, &missingRequired) {
		return fiber.StatusBadRequest
	}

	return fiber.StatusInternalServerError
}

// GenerateCertificate issues a single certificate for a student
func GenerateCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedGenerate").(*certificateValidator.GenerateCertificateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	issueDate, _ := c.Locals("validatedIssueDate").(*time.Time)

	var student models.Student
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.StudentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	cert, err := certificate.Default().Generate(certificate.GenerateInput{
		TemplateID:  reqData.TemplateID,
		StudentID:   reqData.StudentID,
		Data:        reqData.Data,
		IssuedBy:    userID,
		IssueDate:   issueDate,
		IssueDateBS: reqData.IssueDateBS,
	})
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	// Notify the student asynchronously; delivery problems never fail the request
	if student.Email != "" {
		go utils.SendCertificateIssuedEmail(student.Email, student.Name, cert.Type, cert.CertificateNumber, cert.VerificationURL)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate generated successfully!", cert)
}

// BulkGenerateCertificates issues certificates for a batch of students with
// per-item failure isolation
func BulkGenerateCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedBulk").(*certificateValidator.BulkGenerateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	issueDate, _ := c.Locals("validatedIssueDate").(*time.Time)

	items := make([]certificate.BulkItem, len(reqData.Students))
	for i, entry := range reqData.Students {
		items[i] = certificate.BulkItem{StudentID: entry.StudentID, Data: entry.Data}
	}

	result, err := certificate.Default().BulkGenerate(reqData.TemplateID, items, userID, issueDate, reqData.IssueDateBS)
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bulk generation completed!", result)
}

// ListCertificates returns a paged certificate listing
func ListCertificates(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page      *int   `query:"page"`
		Limit     *int   `query:"limit"`
		StudentID uint   `query:"student_id"`
		Type      string `query:"type"`
		Status    string `query:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	certs, total, err := certificate.Default().List(certificate.CertificateFilter{
		StudentID: reqData.StudentID,
		Type:      reqData.Type,
		Status:    reqData.Status,
		Page:      *reqData.Page,
		Limit:     *reqData.Limit,
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certs,
		"total":        total,
		"page":         *reqData.Page,
		"limit":        *reqData.Limit,
	})
}

// GetCertificate returns one certificate by id
func GetCertificate(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	cert, err := certificate.Default().Get(uint(id))
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", cert)
}

// VerifyCertificate is the public verification endpoint. It always responds
// with a structured result, never an error status for a bad number.
func VerifyCertificate(c *fiber.Ctx) error {
	result := certificate.Default().Verify(c.Params("number"))
	return middleware.JsonResponse(c, fiber.StatusOK, result.Valid, result.Message, result)
}

// RevokeCertificate transitions a certificate to revoked with audit metadata
func RevokeCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, _ := strconv.Atoi(c.Params("id"))

	reqData, ok := c.Locals("validatedRevoke").(*certificateValidator.RevokeCertificateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	cert, err := certificate.Default().Revoke(uint(id), userID, reqData.Reason)
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked successfully!", cert)
}
