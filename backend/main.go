package main

import (
	"log"

	"skillforge/backend/catalog"
	"skillforge/backend/config"
	"skillforge/backend/middleware"
	"skillforge/backend/routes"
	"skillforge/backend/storage"
	"skillforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Load the module catalog
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Error loading catalog: %v", err)
	}

	// Select storage backend
	var store storage.Store
	switch cfg.StorageDriver {
	case "", "memory":
		store = storage.NewMemory()
	case "postgres":
		store, err = storage.OpenPostgres(cfg)
		if err != nil {
			log.Fatalf("Error opening postgres storage: %v", err)
		}
	default:
		log.Fatalf("Unknown storage driver %q", cfg.StorageDriver)
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, store, cat, cfg, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
