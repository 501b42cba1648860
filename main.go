package main

import (
	"log"

	"trainhub/config"
	"trainhub/database"
	adminRoutes "trainhub/routers/adminRoutes"
	batchRoutes "trainhub/routers/batchRoutes"
	certificateRoutes "trainhub/routers/certificateRoutes"
	courseRoutes "trainhub/routers/courseRoutes"
	enrollmentRoutes "trainhub/routers/enrollmentRoutes"
	libraryRoutes "trainhub/routers/libraryRoutes"
	paymentRoutes "trainhub/routers/paymentRoutes"
	progressRoutes "trainhub/routers/progressRoutes"
	"trainhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	batchRoutes.SetupBatchRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	libraryRoutes.SetupLibraryRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	// Daily pending-payment reminder emails
	utils.InitializeReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
