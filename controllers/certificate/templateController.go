package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"schoolms/middleware"
	certificate "schoolms/services/certificate"
	certificateValidator "schoolms/validators/certificate"
)

// CreateTemplate creates a certificate template
func CreateTemplate(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTemplate").(*certificateValidator.CreateTemplateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	tpl, err := certificate.DefaultTemplates().Create(certificate.NewTemplate{
		Name:      reqData.Name,
		Type:      reqData.Type,
		Body:      reqData.Body,
		Variables: reqData.Variables,
		Active:    reqData.IsActive,
	})
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Template created successfully!", tpl)
}

// UpdateTemplate applies a partial update to a template
func UpdateTemplate(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	reqData, ok := c.Locals("validatedTemplate").(*certificateValidator.UpdateTemplateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	tpl, err := certificate.DefaultTemplates().Update(uint(id), certificate.UpdateTemplate{
		Name:      reqData.Name,
		Type:      reqData.Type,
		Body:      reqData.Body,
		Variables: reqData.Variables,
		Active:    reqData.IsActive,
	})
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template updated successfully!", tpl)
}

// GetTemplate returns one template by id
func GetTemplate(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	tpl, err := certificate.DefaultTemplates().Get(uint(id))
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template fetched successfully!", tpl)
}

// ListTemplates returns a paged template listing
func ListTemplates(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int   `query:"page"`
		Limit *int   `query:"limit"`
		Type  string `query:"type"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	filter := certificate.TemplateFilter{
		Type:  reqData.Type,
		Page:  *reqData.Page,
		Limit: *reqData.Limit,
	}
	if active := c.Query("active"); active != "" {
		isActive := active == "true"
		filter.Active = &isActive
	}

	templates, total, err := certificate.DefaultTemplates().List(filter)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch templates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Templates fetched successfully!", fiber.Map{
		"templates": templates,
		"total":     total,
		"page":      *reqData.Page,
		"limit":     *reqData.Limit,
	})
}

// DeleteTemplate deactivates a template. Rows are never removed so issued
// certificates keep their template reference.
func DeleteTemplate(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	tpl, err := certificate.DefaultTemplates().Deactivate(uint(id))
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template deactivated successfully!", tpl)
}

// PreviewTemplate renders a template against a data map without issuing
// anything
func PreviewTemplate(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	data, ok := c.Locals("validatedPreview").(map[string]interface{})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	rendered, err := certificate.DefaultTemplates().Render(uint(id), data)
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template rendered successfully!", fiber.Map{
		"rendered": rendered,
	})
}
