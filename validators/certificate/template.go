package certificateValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"schoolms/middleware"
	"schoolms/models"
)

type CreateTemplateRequest struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Body      string   `json:"body"`
	Variables []string `json:"variables"`
	IsActive  *bool    `json:"is_active"`
}

type UpdateTemplateRequest struct {
	Name      *string  `json:"name"`
	Type      *string  `json:"type"`
	Body      *string  `json:"body"`
	Variables []string `json:"variables"`
	IsActive  *bool    `json:"is_active"`
}

func CreateTemplate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTemplateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Name
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		} else if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		// Validate Type
		if strings.TrimSpace(reqData.Type) == "" {
			errors["type"] = "Type is required!"
		} else if !models.IsValidCertificateType(reqData.Type) {
			errors["type"] = "Unknown certificate type!"
		}

		// Validate Body
		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Body is required!"
		}

		// Validate Variables
		if len(reqData.Variables) == 0 {
			errors["variables"] = "At least one variable is required!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTemplate", reqData)
		return c.Next()
	}
}

func UpdateTemplate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := strconv.Atoi(c.Params("id")); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid template id!", nil)
		}

		reqData := new(UpdateTemplateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil && strings.TrimSpace(*reqData.Name) == "" {
			errors["name"] = "Name cannot be empty!"
		}
		if reqData.Type != nil && !models.IsValidCertificateType(*reqData.Type) {
			errors["type"] = "Unknown certificate type!"
		}
		if reqData.Body != nil && strings.TrimSpace(*reqData.Body) == "" {
			errors["body"] = "Body cannot be empty!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTemplate", reqData)
		return c.Next()
	}
}

func TemplateList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int   `query:"page"`
			Limit *int   `query:"limit"`
			Type  string `query:"type"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		// Validate Page
		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		// Validate Limit
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if reqData.Type != "" && !models.IsValidCertificateType(reqData.Type) {
			errors["type"] = "Unknown certificate type!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func TemplateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := strconv.Atoi(c.Params("id")); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid template id!", nil)
		}
		return c.Next()
	}
}

func PreviewTemplate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := strconv.Atoi(c.Params("id")); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid template id!", nil)
		}

		reqData := new(struct {
			Data map[string]interface{} `json:"data"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Data == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"data": "Data map is required!"})
		}

		c.Locals("validatedPreview", reqData.Data)
		return c.Next()
	}
}
