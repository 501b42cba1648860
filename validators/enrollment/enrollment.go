package enrollmentValidator

import (
	"trainhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// EnrollRequest is the direct enrollment payload
type EnrollRequest struct {
	BatchID       uint    `json:"batch_id" validate:"required"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=pay_later sslcommerz bkash"`
	TransactionID string  `json:"transaction_id"`
	AmountPaid    float64 `json:"amount_paid" validate:"gte=0"`
}

// Enroll validates a direct enrollment request
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidationErrors(err))
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}
