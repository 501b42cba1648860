package paymentValidator

import (
	"strings"

	"trainhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// InitiateRequest is the gateway checkout initiation payload. Course
// checkouts carry a batch ID, book checkouts a library item reference.
type InitiateRequest struct {
	BatchID       uint    `json:"batch_id"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=sslcommerz bkash"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	ProductType   string  `json:"product_type" validate:"omitempty,oneof=course book"`
	ItemID        uint    `json:"item_id"`
	ItemSlug      string  `json:"item_slug"`
	CourseSlug    string  `json:"course_slug"`
}

// Initiate validates a payment initiation request
func Initiate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(InitiateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidationErrors(err))
		}

		errors := make(map[string]string)
		if reqData.ProductType == "book" {
			if reqData.ItemID == 0 && strings.TrimSpace(reqData.ItemSlug) == "" {
				errors["item_id"] = "Item ID or slug is required for book checkout!"
			}
		} else if reqData.BatchID == 0 {
			errors["batch_id"] = "Batch ID is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInitiate", reqData)
		return c.Next()
	}
}

// Confirm validates the tranId/method pair on confirmation callbacks
func Confirm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tranID := strings.TrimSpace(c.Query("tranId"))
		if tranID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Transaction ID is required!", nil)
		}

		c.Locals("tranId", tranID)
		c.Locals("method", strings.TrimSpace(c.Query("method")))
		return c.Next()
	}
}
