package studentValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"schoolms/middleware"
)

type CreateStudentRequest struct {
	Name         string `json:"name"`
	RollNumber   string `json:"roll_number"`
	Class        string `json:"class"`
	Section      string `json:"section"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	GuardianName string `json:"guardian_name"`
	Address      string `json:"address"`
}

type UpdateStudentRequest struct {
	Name         *string `json:"name"`
	RollNumber   *string `json:"roll_number"`
	Class        *string `json:"class"`
	Section      *string `json:"section"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	GuardianName *string `json:"guardian_name"`
	Address      *string `json:"address"`
}

func CreateStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateStudentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Name
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		} else if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}

		// Validate Class
		if strings.TrimSpace(reqData.Class) == "" {
			errors["class"] = "Class is required!"
		}

		if reqData.Email != "" && !strings.Contains(reqData.Email, "@") {
			errors["email"] = "Email is invalid!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStudent", reqData)
		return c.Next()
	}
}

func UpdateStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := strconv.Atoi(c.Params("id")); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
		}

		reqData := new(UpdateStudentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil && strings.TrimSpace(*reqData.Name) == "" {
			errors["name"] = "Name cannot be empty!"
		}
		if reqData.Email != nil && *reqData.Email != "" && !strings.Contains(*reqData.Email, "@") {
			errors["email"] = "Email is invalid!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStudent", reqData)
		return c.Next()
	}
}

func StudentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `query:"page"`
			Limit  *int   `query:"limit"`
			Search string `query:"search"`
			Class  string `query:"class"`
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

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func StudentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := strconv.Atoi(c.Params("id")); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
		}
		return c.Next()
	}
}
