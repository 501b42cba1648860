package libraryValidator

import (
	"strings"

	"trainhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// PurchaseRequest submits a manual/offline payment for a paid library item
type PurchaseRequest struct {
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=pay_later manual bkash nagad rocket sslcommerz other"`
	TransactionID string `json:"transaction_id"`
	PhoneNumber   string `json:"phone_number"`
	Note          string `json:"note"`
}

// Purchase validates a library purchase submission. Non pay-later methods
// must carry the transaction reference the student paid with.
func Purchase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PurchaseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.PaymentMethod == "" {
			reqData.PaymentMethod = "manual"
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidationErrors(err))
		}

		reqData.TransactionID = strings.TrimSpace(reqData.TransactionID)
		reqData.PhoneNumber = strings.TrimSpace(reqData.PhoneNumber)

		if reqData.PaymentMethod != "pay_later" {
			errors := make(map[string]string)
			if reqData.TransactionID == "" {
				errors["transaction_id"] = "Transaction ID is required!"
			}
			if reqData.PhoneNumber == "" {
				errors["phone_number"] = "Phone number is required!"
			}
			if len(errors) > 0 {
				return middleware.ValidationErrorResponse(c, errors)
			}
		}

		c.Locals("validatedPurchase", reqData)
		return c.Next()
	}
}
