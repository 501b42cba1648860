package batchController

import (
	"strconv"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllBatches returns the training calendar with optional filters
func GetAllBatches(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Batch{}).Where("is_deleted = false")

	if courseID := c.QueryInt("course_id", 0); courseID > 0 {
		db = db.Where("course_id = ?", courseID)
	}
	if trainerID := c.QueryInt("trainer_id", 0); trainerID > 0 {
		db = db.Where("trainer_id = ?", trainerID)
	}
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if mode := c.Query("mode"); mode != "" {
		db = db.Where("mode = ?", mode)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		db = db.Where("start_date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		db = db.Where("start_date <= ?", endDate)
	}

	var total int64
	db.Count(&total)

	var batches []models.Batch
	if err := db.Preload("Course").Preload("Trainer").
		Order("start_date asc").Offset(offset).Limit(limit).Find(&batches).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch batches!", nil)
	}

	response := fiber.Map{
		"batches": batches,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batches fetched successfully!", response)
}

// GetBatchDetails returns one batch with its course and trainer
func GetBatchDetails(c *fiber.Ctx) error {
	batchID, err := strconv.Atoi(c.Params("id"))
	if err != nil || batchID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid batch ID!", nil)
	}

	var batch models.Batch
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", batchID).
		Preload("Course").Preload("Trainer").First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch fetched successfully!", fiber.Map{
		"batch": batch,
	})
}
