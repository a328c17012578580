package studentRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "schoolms/controllers/student"
	"schoolms/middleware"
	validators "schoolms/validators/student"
)

// SetupStudentRoutes sets up student CRUD routes
func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/api/v1/students")

	studentGroup.Post("/", middleware.JWTMiddleware, validators.CreateStudent(), controllers.CreateStudent)
	studentGroup.Get("/", middleware.JWTMiddleware, validators.StudentList(), controllers.GetStudents)
	studentGroup.Get("/:id", middleware.JWTMiddleware, validators.StudentID(), controllers.GetStudentDetails)
	studentGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateStudent(), controllers.UpdateStudent)
	studentGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.StudentID(), controllers.DeleteStudent)
}
