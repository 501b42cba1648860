package progressController

import (
	"errors"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	"trainhub/services"
	"trainhub/utils"
	progressValidator "trainhub/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonComplete records a lesson as finished for the signed-in student
// and returns the refreshed completion snapshot. Crossing 100 percent issues
// the course certificate.
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedLessonComplete").(*progressValidator.LessonCompleteRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := services.NewProgressService(database.Database.Db)

	result, err := svc.MarkLessonComplete(userID, reqData.CourseID, reqData.LessonID, reqData.WatchTime)
	if err != nil {
		if errors.Is(err, services.ErrNotEnrolled) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if result.CertificateGenerated {
		var user models.User
		var certificate models.Certificate
		db := database.Database.Db
		if db.First(&user, userID).Error == nil &&
			db.Where("student_id = ? AND course_id = ? AND status = ?",
				userID, reqData.CourseID, models.CertificateStatusActive).
				First(&certificate).Error == nil {
			go utils.SendCertificateIssued(user.Name, user.Email, certificate.CourseName, certificate.VerificationNumber)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete!", fiber.Map{
		"completedLessons":     result.CompletedLessons,
		"completionPercentage": result.CompletionPercentage,
		"isCompleted":          result.IsCompleted,
		"certificateGenerated": result.CertificateGenerated,
	})
}

// GetCourseProgress returns the student's completion snapshot for one course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	svc := services.NewProgressService(database.Database.Db)

	result, err := svc.GetProgress(userID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, services.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
	}

	var completions []models.LessonCompletion
	database.Database.Db.
		Where("progress_id = ?", result.Progress.ID).
		Order("completed_at asc").
		Find(&completions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":         result.Progress,
		"completedLessons": completions,
		"totalCompleted":   result.CompletedLessons,
	})
}

// GetMyProgress lists the student's progress rows across all courses
func GetMyProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var progressList []models.CourseProgress
	if err := database.Database.Db.
		Where("student_id = ?", userID).
		Preload("Enrollment.Batch.Course").
		Order("last_accessed_at desc").
		Find(&progressList).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress": progressList,
	})
}
