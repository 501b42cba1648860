package adminValidator

import (
	"strconv"
	"strings"
	"time"

	"trainhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// UpdateEnrollmentRequest is the admin enrollment override payload. All
// fields are optional; only the ones present are applied.
type UpdateEnrollmentRequest struct {
	PaymentStatus *string  `json:"payment_status" validate:"omitempty,oneof=pending paid failed refunded"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,oneof=pay_later manual sslcommerz bkash nagad rocket other"`
	TransactionID *string  `json:"transaction_id"`
	AmountPaid    *float64 `json:"amount_paid" validate:"omitempty,gte=0"`
}

// UpdatePurchaseRequest approves or rejects a library purchase
type UpdatePurchaseRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid failed rejected"`
}

// CreateCertificateRequest is the manual certificate creation payload
type CreateCertificateRequest struct {
	StudentID      uint   `json:"student_id" validate:"required"`
	CourseID       *uint  `json:"course_id"`
	BatchID        *uint  `json:"batch_id"`
	StudentName    string `json:"student_name" validate:"required"`
	CourseName     string `json:"course_name" validate:"required"`
	CompletionDate string `json:"completion_date"`
	IssuerName     string `json:"issuer_name"`
	IssuerTitle    string `json:"issuer_title"`
}

// UpdateCertificateRequest edits an issued certificate. Fields are optional
// and applied only when present.
type UpdateCertificateRequest struct {
	Status      *string `json:"status" validate:"omitempty,oneof=active revoked pending"`
	StudentName *string `json:"student_name"`
	CourseName  *string `json:"course_name"`
	IssuerName  *string `json:"issuer_name"`
	IssuerTitle *string `json:"issuer_title"`
	TemplateID  *uint   `json:"template_id"`
}

// BatchRequest creates or updates a batch. EnrolledCount is deliberately
// absent: only the reconciliation service moves it.
type BatchRequest struct {
	CourseID    uint   `json:"course_id" validate:"required"`
	TrainerID   *uint  `json:"trainer_id"`
	BatchName   string `json:"batch_name" validate:"required"`
	BatchNumber string `json:"batch_number" validate:"required"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	DaysOfWeek  string `json:"days_of_week"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	Mode        string `json:"mode" validate:"required,oneof=online offline hybrid"`
	SeatLimit   int    `json:"seat_limit" validate:"required,min=1"`
	Status      string `json:"status" validate:"omitempty,oneof=upcoming running completed"`
	MeetingLink string `json:"meeting_link"`
	Venue       string `json:"venue"`
}

// TemplateRequest creates or updates a certificate template
type TemplateRequest struct {
	Name            string `json:"name" validate:"required,min=3"`
	Description     string `json:"description"`
	BackgroundImage string `json:"background_image"`
	BackgroundColor string `json:"background_color"`
	LogoURL         string `json:"logo_url"`
	IsDefault       bool   `json:"is_default"`
	IsActive        *bool  `json:"is_active"`
}

// IDParam validates a numeric :id route param
func IDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals("paramID", uint(id))
		return c.Next()
	}
}

// UpdateEnrollment validates an admin enrollment update
func UpdateEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateEnrollmentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidationErrors(err))
		}

		c.Locals("validatedEnrollmentUpdate", reqData)
		return c.Next()
	}
}

// UpdatePurchase validates a library purchase approval/rejection
func UpdatePurchase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdatePurchaseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidationErrors(err))
		}

		c.Locals("validatedPurchaseUpdate", reqData)
		return c.Next()
	}
}

// CreateCertificate validates a manual certificate creation
func CreateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCertificateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.StudentName = strings.TrimSpace(reqData.StudentName)
		reqData.CourseName = strings.TrimSpace(reqData.CourseName)

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidationErrors(err))
		}

		if reqData.CompletionDate != "" {
			if _, err := time.Parse(time.RFC3339, reqData.CompletionDate); err != nil {
				if _, err := time.Parse("2006-01-02", reqData.CompletionDate); err != nil {
					return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid completion date format!", nil)
				}
			}
		}

		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}

// UpdateCertificate validates a certificate edit
func UpdateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCertificateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidationErrors(err))
		}

		c.Locals("validatedCertificateUpdate", reqData)
		return c.Next()
	}
}

// Batch validates a batch create/update payload
func Batch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BatchRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidationErrors(err))
		}

		errors := make(map[string]string)
		startDate, err := time.Parse("2006-01-02", reqData.StartDate)
		if err != nil {
			errors["start_date"] = "Must be a YYYY-MM-DD date!"
		}
		endDate, err := time.Parse("2006-01-02", reqData.EndDate)
		if err != nil {
			errors["end_date"] = "Must be a YYYY-MM-DD date!"
		}
		if len(errors) == 0 && endDate.Before(startDate) {
			errors["end_date"] = "End date must not be before start date!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBatch", reqData)
		return c.Next()
	}
}

// Template validates a certificate template create/update payload
func Template() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TemplateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidationErrors(err))
		}

		c.Locals("validatedTemplate", reqData)
		return c.Next()
	}
}
