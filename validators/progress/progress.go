package progressValidator

import (
	"strconv"
	"strings"

	"trainhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// LessonCompleteRequest marks one lesson complete for a course
type LessonCompleteRequest struct {
	CourseID  uint   `json:"course_id" validate:"required"`
	LessonID  string `json:"lesson_id" validate:"required"`
	WatchTime int64  `json:"watch_time" validate:"gte=0"` // seconds
}

// LessonComplete validates a lesson completion request
func LessonComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonCompleteRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidationErrors(err))
		}

		c.Locals("validatedLessonComplete", reqData)
		return c.Next()
	}
}

// CourseID validates the :courseId route param
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("courseId"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}
