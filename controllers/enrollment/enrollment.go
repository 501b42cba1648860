package enrollmentController

import (
	"errors"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	"trainhub/services"
	"trainhub/utils"
	enrollmentValidator "trainhub/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// EnrollInBatch registers the authenticated student on a batch. The
// enrollment starts pending for every payment method; seats are consumed by
// the reconciliation service when the payment is confirmed.
func EnrollInBatch(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedEnroll").(*enrollmentValidator.EnrollRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := services.NewReconciliationService(database.Database.Db)
	enrollment, err := svc.CreateEnrollment(userID, reqData.BatchID, reqData.PaymentMethod, reqData.TransactionID, reqData.AmountPaid)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBatchNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
		case errors.Is(err, services.ErrBatchNotEnrollable):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot enroll in this batch!", nil)
		case errors.Is(err, services.ErrBatchFull):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Batch is full!", nil)
		case errors.Is(err, services.ErrDuplicateEnrollment):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this batch!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Enrollment failed!", nil)
		}
	}

	var batch models.Batch
	if err := database.Database.Db.Preload("Course").First(&batch, enrollment.BatchID).Error; err == nil {
		go utils.SendEnrollmentConfirmation(user.Name, user.Email, batch.Course.Title, batch.BatchName, enrollment.PaymentMethod)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", fiber.Map{
		"enrollment": enrollment,
	})
}

// GetMyEnrollments lists the authenticated student's enrollments with their
// batch and course
func GetMyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("student_id = ?", userID).
		Preload("Batch").Preload("Batch.Course").
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"total":       len(enrollments),
	})
}
