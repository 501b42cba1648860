package courseController

import (
	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists active courses
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 12)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Course{}).
		Where("is_deleted = false AND status = ?", "ACTIVE")

	if search := c.Query("search"); search != "" {
		db = db.Where("title LIKE ?", "%"+search+"%")
	}

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns one course by slug with its upcoming batches
func GetCourseDetails(c *fiber.Ctx) error {
	var course models.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = false", c.Params("slug")).
		Preload("Trainer").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var batches []models.Batch
	database.Database.Db.
		Where("course_id = ? AND is_deleted = false AND status IN ?",
			course.ID, []string{models.BatchStatusUpcoming, models.BatchStatusRunning}).
		Order("start_date asc").Find(&batches)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":  course,
		"batches": batches,
	})
}
