package adminController

import (
	"errors"
	"strconv"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	"trainhub/services"
	adminValidator "trainhub/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// GetAllEnrollments lists enrollments with batch/status/method/search filters
func GetAllEnrollments(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := database.Database.Db
	query := db.Model(&models.Enrollment{})

	if batchID := c.Query("batch_id"); batchID != "" {
		query = query.Where("batch_id = ?", batchID)
	}
	if status := c.Query("payment_status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if method := c.Query("payment_method"); method != "" {
		query = query.Where("payment_method = ?", method)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Joins("JOIN users ON users.id = enrollments.student_id").
			Where("users.name LIKE ? OR users.email LIKE ? OR enrollments.transaction_id LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var enrollments []models.Enrollment
	if err := query.
		Preload("Student").
		Preload("Batch").
		Preload("Batch.Course").
		Order("enrollments.created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetEnrollmentDetails returns one enrollment with its student and batch
func GetEnrollmentDetails(c *fiber.Ctx) error {
	id := c.Locals("paramID").(uint)

	var enrollment models.Enrollment
	if err := database.Database.Db.
		Preload("Student").
		Preload("Batch").
		Preload("Batch.Course").
		First(&enrollment, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", fiber.Map{
		"enrollment": enrollment,
	})
}

// UpdateEnrollment applies an admin override to an enrollment's payment
// record. Seat accounting moves with the paid boundary inside the
// reconciliation service, never here.
func UpdateEnrollment(c *fiber.Ctx) error {
	id := c.Locals("paramID").(uint)

	reqData, ok := c.Locals("validatedEnrollmentUpdate").(*adminValidator.UpdateEnrollmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := services.NewReconciliationService(database.Database.Db)
	enrollment, err := svc.AdminUpdateEnrollment(id, services.EnrollmentUpdate{
		PaymentStatus: reqData.PaymentStatus,
		PaymentMethod: reqData.PaymentMethod,
		TransactionID: reqData.TransactionID,
		AmountPaid:    reqData.AmountPaid,
	})
	if err != nil {
		if errors.Is(err, services.ErrEnrollmentNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment updated successfully!", fiber.Map{
		"enrollment": enrollment,
	})
}

// RecountBatchSeats recomputes a batch's seat counter from the enrollment
// ledger and writes it back. Repair endpoint for drift investigations.
func RecountBatchSeats(c *fiber.Ctx) error {
	id := c.Locals("paramID").(uint)

	db := database.Database.Db
	var batch models.Batch
	if err := db.Where("id = ? AND is_deleted = false", id).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	svc := services.NewReconciliationService(db)
	count, err := svc.RecountBatch(id)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to recount batch!", nil)
	}

	previous := batch.EnrolledCount
	if err := db.Model(&models.Batch{}).Where("id = ?", id).
		UpdateColumn("enrolled_count", count).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update batch counter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch seats recounted!", fiber.Map{
		"batchId":       id,
		"previousCount": previous,
		"paidCount":     count,
	})
}
