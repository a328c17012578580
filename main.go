package main

import (
	"log"

	"schoolms/config"
	"schoolms/database"
	certificateRoutes "schoolms/routers/certificateRoutes"
	studentRoutes "schoolms/routers/studentRoutes"
	"schoolms/utils"

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
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder; generated certificate PDFs
	// are served under /certificates
	app.Static("/", "./public")
	app.Static("/certificates", config.AppConfig.CertificateDir)

	studentRoutes.SetupStudentRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)

	utils.InitCleanupScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
