package batchRoutes

import (
	controllers "trainhub/controllers/batch"

	"github.com/gofiber/fiber/v2"
)

// SetupBatchRoutes sets up the public training calendar routes
func SetupBatchRoutes(app *fiber.App) {
	batchGroup := app.Group("/batches")

	batchGroup.Get("/", controllers.GetAllBatches)
	batchGroup.Get("/:id", controllers.GetBatchDetails)
}
