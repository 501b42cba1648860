package adminController

import (
	"strconv"
	"time"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	adminValidator "trainhub/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// GetAllBatchesAdmin lists batches for the admin panel, including soft-deleted
// filtering and per-batch paid seat counters
func GetAllBatchesAdmin(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := database.Database.Db.Model(&models.Batch{}).Where("is_deleted = false")

	if courseID := c.Query("course_id"); courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var batches []models.Batch
	if err := query.
		Preload("Course").
		Preload("Trainer").
		Order("start_date desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&batches).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch batches!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batches fetched successfully!", fiber.Map{
		"batches": batches,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// CreateBatch adds a batch. The seat counter starts at zero and only the
// reconciliation service moves it afterwards.
func CreateBatch(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBatch").(*adminValidator.BatchRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = false", reqData.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	startDate, _ := time.Parse("2006-01-02", reqData.StartDate)
	endDate, _ := time.Parse("2006-01-02", reqData.EndDate)

	status := reqData.Status
	if status == "" {
		status = models.BatchStatusUpcoming
	}

	batch := models.Batch{
		CourseID:    reqData.CourseID,
		TrainerID:   reqData.TrainerID,
		BatchName:   reqData.BatchName,
		BatchNumber: reqData.BatchNumber,
		StartDate:   startDate,
		EndDate:     endDate,
		DaysOfWeek:  reqData.DaysOfWeek,
		StartTime:   reqData.StartTime,
		EndTime:     reqData.EndTime,
		Mode:        reqData.Mode,
		SeatLimit:   reqData.SeatLimit,
		Status:      status,
		MeetingLink: reqData.MeetingLink,
		Venue:       reqData.Venue,
	}

	if err := db.Create(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Batch created successfully!", fiber.Map{
		"batch": batch,
	})
}

// UpdateBatch edits a batch's schedule and capacity fields. EnrolledCount is
// never written from this path.
func UpdateBatch(c *fiber.Ctx) error {
	id := c.Locals("paramID").(uint)

	reqData, ok := c.Locals("validatedBatch").(*adminValidator.BatchRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	var batch models.Batch
	if err := db.Where("id = ? AND is_deleted = false", id).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	startDate, _ := time.Parse("2006-01-02", reqData.StartDate)
	endDate, _ := time.Parse("2006-01-02", reqData.EndDate)

	fields := map[string]interface{}{
		"course_id":    reqData.CourseID,
		"trainer_id":   reqData.TrainerID,
		"batch_name":   reqData.BatchName,
		"batch_number": reqData.BatchNumber,
		"start_date":   startDate,
		"end_date":     endDate,
		"days_of_week": reqData.DaysOfWeek,
		"start_time":   reqData.StartTime,
		"end_time":     reqData.EndTime,
		"mode":         reqData.Mode,
		"seat_limit":   reqData.SeatLimit,
		"meeting_link": reqData.MeetingLink,
		"venue":        reqData.Venue,
	}
	if reqData.Status != "" {
		fields["status"] = reqData.Status
	}

	if err := db.Model(&batch).Updates(fields).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch updated successfully!", fiber.Map{
		"batch": batch,
	})
}

// DeleteBatch soft-deletes a batch. Enrollment rows referencing it survive
// for ledger history.
func DeleteBatch(c *fiber.Ctx) error {
	id := c.Locals("paramID").(uint)

	db := database.Database.Db
	var batch models.Batch
	if err := db.Where("id = ? AND is_deleted = false", id).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	if err := db.Model(&batch).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch deleted successfully!", nil)
}
