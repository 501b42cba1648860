package libraryRoutes

import (
	controllers "trainhub/controllers/library"
	"trainhub/middleware"
	validators "trainhub/validators/library"

	"github.com/gofiber/fiber/v2"
)

// SetupLibraryRoutes sets up digital library browsing and purchase routes
func SetupLibraryRoutes(app *fiber.App) {
	libraryGroup := app.Group("/library")

	libraryGroup.Get("/", controllers.GetAllItems)
	libraryGroup.Get("/my-purchases", middleware.JWTMiddleware, controllers.GetMyPurchases)
	libraryGroup.Get("/:slug", controllers.GetItemBySlug)
	libraryGroup.Post("/:slug/purchase", middleware.JWTMiddleware, validators.Purchase(), controllers.PurchaseItem)
}
