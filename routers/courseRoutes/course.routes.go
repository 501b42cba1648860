package courseRoutes

import (
	controllers "trainhub/controllers/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", controllers.GetAllCourses)
	courseGroup.Get("/:slug", controllers.GetCourseDetails)
}
