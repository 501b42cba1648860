package certificateRoutes

import (
	controllers "trainhub/controllers/certificate"
	"trainhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up certificate routes. Verification is public
// so employers can check a certificate without an account.
func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificates")

	certGroup.Get("/my-certificates", middleware.JWTMiddleware, controllers.GetMyCertificates)
	certGroup.Get("/verify/:verificationNumber", controllers.VerifyCertificate)
}
