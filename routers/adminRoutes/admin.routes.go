package adminRoutes

import (
	controllers "trainhub/controllers/admin"
	"trainhub/middleware"
	"trainhub/models"
	validators "trainhub/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up all admin panel routes behind the admin role gate
func SetupAdminRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// Enrollment ledger
	enrollGroup := app.Group("/admin/enrollments")
	enrollGroup.Get("/", middleware.JWTMiddleware, adminOnly, controllers.GetAllEnrollments)
	enrollGroup.Get("/:id", middleware.JWTMiddleware, adminOnly, validators.IDParam(), controllers.GetEnrollmentDetails)
	enrollGroup.Put("/:id", middleware.JWTMiddleware, adminOnly, validators.IDParam(), validators.UpdateEnrollment(), controllers.UpdateEnrollment)

	// Library purchase approvals
	purchaseGroup := app.Group("/admin/library-purchases")
	purchaseGroup.Get("/", middleware.JWTMiddleware, adminOnly, controllers.GetAllPurchases)
	purchaseGroup.Put("/:id", middleware.JWTMiddleware, adminOnly, validators.IDParam(), validators.UpdatePurchase(), controllers.UpdatePurchase)

	// Certificates and templates
	certGroup := app.Group("/admin/certificates")
	certGroup.Get("/templates", middleware.JWTMiddleware, adminOnly, controllers.GetAllTemplates)
	certGroup.Post("/templates", middleware.JWTMiddleware, adminOnly, validators.Template(), controllers.CreateTemplate)
	certGroup.Put("/templates/:id", middleware.JWTMiddleware, adminOnly, validators.IDParam(), validators.Template(), controllers.UpdateTemplate)
	certGroup.Delete("/templates/:id", middleware.JWTMiddleware, adminOnly, validators.IDParam(), controllers.DeleteTemplate)
	certGroup.Get("/", middleware.JWTMiddleware, adminOnly, controllers.GetAllCertificates)
	certGroup.Post("/", middleware.JWTMiddleware, adminOnly, validators.CreateCertificate(), controllers.CreateCertificate)
	certGroup.Put("/:id", middleware.JWTMiddleware, adminOnly, validators.IDParam(), validators.UpdateCertificate(), controllers.UpdateCertificate)
	certGroup.Post("/:id/revoke", middleware.JWTMiddleware, adminOnly, validators.IDParam(), controllers.RevokeCertificate)

	// Batch management
	batchGroup := app.Group("/admin/batches")
	batchGroup.Get("/", middleware.JWTMiddleware, adminOnly, controllers.GetAllBatchesAdmin)
	batchGroup.Post("/", middleware.JWTMiddleware, adminOnly, validators.Batch(), controllers.CreateBatch)
	batchGroup.Put("/:id", middleware.JWTMiddleware, adminOnly, validators.IDParam(), validators.Batch(), controllers.UpdateBatch)
	batchGroup.Delete("/:id", middleware.JWTMiddleware, adminOnly, validators.IDParam(), controllers.DeleteBatch)
	batchGroup.Post("/:id/recount", middleware.JWTMiddleware, adminOnly, validators.IDParam(), controllers.RecountBatchSeats)
}
