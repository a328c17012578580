package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"schoolms/database"
	"schoolms/middleware"
	"schoolms/models"
	studentValidator "schoolms/validators/student"
)

// CreateStudent registers a new student record
func CreateStudent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedStudent").(*studentValidator.CreateStudentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	student := models.Student{
		Name:         reqData.Name,
		RollNumber:   reqData.RollNumber,
		Class:        reqData.Class,
		Section:      reqData.Section,
		Email:        reqData.Email,
		Phone:        reqData.Phone,
		GuardianName: reqData.GuardianName,
		Address:      reqData.Address,
	}

	if err := database.Database.Db.Create(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create student!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Student created successfully!", student)
}

// GetStudents returns a paged student listing with optional search
func GetStudents(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page   *int   `query:"page"`
		Limit  *int   `query:"limit"`
		Search string `query:"search"`
		Class  string `query:"class"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	query := database.Database.Db.Model(&models.Student{}).Where("is_deleted = ?", false)
	if reqData.Search != "" {
		like := "%" + reqData.Search + "%"
		query = query.Where("name LIKE ? OR roll_number LIKE ?", like, like)
	}
	if reqData.Class != "" {
		query = query.Where("class = ?", reqData.Class)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	offset := (*reqData.Page - 1) * *reqData.Limit
	var students []models.Student
	if err := query.Order("created_at desc").Offset(offset).Limit(*reqData.Limit).Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": students,
		"total":    total,
		"page":     *reqData.Page,
		"limit":    *reqData.Limit,
	})
}

// GetStudentDetails returns one student by id
func GetStudentDetails(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var student models.Student
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student fetched successfully!", student)
}

// UpdateStudent applies a partial update to a student record
func UpdateStudent(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	reqData, ok := c.Locals("validatedStudent").(*studentValidator.UpdateStudentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var student models.Student
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	if reqData.Name != nil {
		student.Name = *reqData.Name
	}
	if reqData.RollNumber != nil {
		student.RollNumber = *reqData.RollNumber
	}
	if reqData.Class != nil {
		student.Class = *reqData.Class
	}
	if reqData.Section != nil {
		student.Section = *reqData.Section
	}
	if reqData.Email != nil {
		student.Email = *reqData.Email
	}
	if reqData.Phone != nil {
		student.Phone = *reqData.Phone
	}
	if reqData.GuardianName != nil {
		student.GuardianName = *reqData.GuardianName
	}
	if reqData.Address != nil {
		student.Address = *reqData.Address
	}

	if err := database.Database.Db.Save(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update student!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student updated successfully!", student)
}

// DeleteStudent soft-deletes a student record
func DeleteStudent(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var student models.Student
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	student.IsDeleted = true
	if err := database.Database.Db.Save(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete student!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student deleted successfully!", nil)
}
