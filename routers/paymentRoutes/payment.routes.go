package paymentRoutes

import (
	controllers "trainhub/controllers/payment"
	"trainhub/middleware"
	validators "trainhub/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up gateway checkout and confirmation routes. The
// confirm endpoints are hit by gateway redirects, so they carry no JWT.
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments")

	paymentGroup.Get("/methods", controllers.GetPaymentMethods)
	paymentGroup.Post("/initiate", middleware.JWTMiddleware, validators.Initiate(), controllers.InitiatePayment)
	paymentGroup.Get("/confirm", validators.Confirm(), controllers.ConfirmPayment)
	paymentGroup.Get("/confirm-fail", validators.Confirm(), controllers.ConfirmFail)
}
