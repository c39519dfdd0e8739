package routes

import (
	"log"

	"skillforge/backend/catalog"
	"skillforge/backend/config"
	"skillforge/backend/controllers"
	"skillforge/backend/middleware"
	"skillforge/backend/progress"
	"skillforge/backend/storage"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, store storage.Store, cat *catalog.Catalog, cfg *config.Config, logger *log.Logger) {
	engine := progress.NewEngine(store)

	authController := controllers.NewAuthController(store, cat, cfg, logger)
	userController := controllers.NewUserController(store, logger)
	progressController := controllers.NewProgressController(store, engine, logger)
	modulesController := controllers.NewModulesController(cat)

	authMiddleware := middleware.AuthMiddleware(cfg)

	api := app.Group("/api")
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)

	api.Get("/profile", authMiddleware, userController.GetProfile)

	api.Get("/progress", authMiddleware, progressController.GetProgress)
	api.Post("/progress/:courseId/step/:stepId", authMiddleware, progressController.CompleteStep)

	api.Get("/modules/:moduleId", authMiddleware, modulesController.GetModule)
	api.Get("/videos/:filename", modulesController.GetVideo)
}
