package progressRoutes

import (
	controllers "trainhub/controllers/progress"
	"trainhub/middleware"
	validators "trainhub/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up student progress tracking routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/progress")

	progressGroup.Post("/lesson/complete", middleware.JWTMiddleware, validators.LessonComplete(), controllers.MarkLessonComplete)
	progressGroup.Get("/my-progress", middleware.JWTMiddleware, controllers.GetMyProgress)
	progressGroup.Get("/course/:courseId", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)
}
