package certificateRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "schoolms/controllers/certificate"
	"schoolms/middleware"
	validators "schoolms/validators/certificate"
)

// SetupCertificateRoutes sets up template and certificate routes
func SetupCertificateRoutes(app *fiber.App) {
	// Template management (admin only)
	templateGroup := app.Group("/api/v1/templates")
	templateGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.CreateTemplate(), controllers.CreateTemplate)
	templateGroup.Get("/", middleware.JWTMiddleware, validators.TemplateList(), controllers.ListTemplates)
	templateGroup.Get("/:id", middleware.JWTMiddleware, validators.TemplateID(), controllers.GetTemplate)
	templateGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.UpdateTemplate(), controllers.UpdateTemplate)
	templateGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.TemplateID(), controllers.DeleteTemplate)
	templateGroup.Post("/:id/preview", middleware.JWTMiddleware, validators.PreviewTemplate(), controllers.PreviewTemplate)

	// Certificate lifecycle
	certGroup := app.Group("/api/v1/certificates")

	// Public verification endpoint; no auth so anyone scanning a QR code can resolve it
	certGroup.Get("/verify/:number", controllers.VerifyCertificate)

	certGroup.Post("/generate", middleware.JWTMiddleware, validators.GenerateCertificate(), controllers.GenerateCertificate)
	certGroup.Post("/bulk-generate", middleware.JWTMiddleware, validators.BulkGenerateCertificates(), controllers.BulkGenerateCertificates)
	certGroup.Get("/", middleware.JWTMiddleware, validators.CertificateList(), controllers.ListCertificates)
	certGroup.Get("/:id", middleware.JWTMiddleware, validators.CertificateID(), controllers.GetCertificate)
	certGroup.Post("/:id/revoke", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.RevokeCertificate(), controllers.RevokeCertificate)
}
