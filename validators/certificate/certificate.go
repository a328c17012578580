package certificateValidator

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"schoolms/middleware"
	"schoolms/models"
)

type GenerateCertificateRequest struct {
	TemplateID  uint                   `json:"template_id"`
	StudentID   uint                   `json:"student_id"`
	Data        map[string]interface{} `json:"data"`
	IssueDate   string                 `json:"issue_date"`    // YYYY-MM-DD, optional
	IssueDateBS string                 `json:"issue_date_bs"` // optional
}

type BulkGenerateRequest struct {
	TemplateID  uint               `json:"template_id"`
	Students    []BulkStudentEntry `json:"students"`
	IssueDate   string             `json:"issue_date"`
	IssueDateBS string             `json:"issue_date_bs"`
}

type BulkStudentEntry struct {
	StudentID uint                   `json:"student_id"`
	Data      map[string]interface{} `json:"data"`
}

type RevokeCertificateRequest struct {
	Reason string `json:"reason"`
}

// parseIssueDate validates an optional YYYY-MM-DD date string
func parseIssueDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

func GenerateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(GenerateCertificateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.TemplateID == 0 {
			errors["template_id"] = "Template id is required!"
		}
		if reqData.StudentID == 0 {
			errors["student_id"] = "Student id is required!"
		}
		if reqData.Data == nil {
			errors["data"] = "Data map is required!"
		}

		issueDate, ok := parseIssueDate(reqData.IssueDate)
		if !ok {
			errors["issue_date"] = "Issue date must be in YYYY-MM-DD format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGenerate", reqData)
		c.Locals("validatedIssueDate", issueDate)
		return c.Next()
	}
}

func BulkGenerateCertificates() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BulkGenerateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.TemplateID == 0 {
			errors["template_id"] = "Template id is required!"
		}
		for i, student := range reqData.Students {
			if student.StudentID == 0 {
				errors["students"] = "Student id is required for entry " + strconv.Itoa(i) + "!"
				break
			}
		}

		issueDate, ok := parseIssueDate(reqData.IssueDate)
		if !ok {
			errors["issue_date"] = "Issue date must be in YYYY-MM-DD format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBulk", reqData)
		c.Locals("validatedIssueDate", issueDate)
		return c.Next()
	}
}

func RevokeCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := strconv.Atoi(c.Params("id")); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate id!", nil)
		}

		reqData := new(RevokeCertificateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Reason) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"reason": "Revocation reason is required!"})
		}

		c.Locals("validatedRevoke", reqData)
		return c.Next()
	}
}

func CertificateList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page      *int   `query:"page"`
			Limit     *int   `query:"limit"`
			StudentID uint   `query:"student_id"`
			Type      string `query:"type"`
			Status    string `query:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if reqData.Type != "" && !models.IsValidCertificateType(reqData.Type) {
			errors["type"] = "Unknown certificate type!"
		}
		if reqData.Status != "" && reqData.Status != models.CertificateStatusActive && reqData.Status != models.CertificateStatusRevoked {
			errors["status"] = "Status must be active or revoked!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func CertificateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := strconv.Atoi(c.Params("id")); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate id!", nil)
		}
		return c.Next()
	}
}
