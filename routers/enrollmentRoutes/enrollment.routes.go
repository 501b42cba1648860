package enrollmentRoutes

import (
	controllers "trainhub/controllers/enrollment"
	"trainhub/middleware"
	validators "trainhub/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up student enrollment routes
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollGroup := app.Group("/enrollments")

	enrollGroup.Post("/", middleware.JWTMiddleware, validators.Enroll(), controllers.EnrollInBatch)
	enrollGroup.Get("/my-enrollments", middleware.JWTMiddleware, controllers.GetMyEnrollments)
}
