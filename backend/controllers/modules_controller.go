package controllers

import (
	"errors"

	"skillforge/backend/catalog"
	"skillforge/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ModulesController struct {
	Catalog *catalog.Catalog
}

func NewModulesController(cat *catalog.Catalog) *ModulesController {
	return &ModulesController{Catalog: cat}
}

// GetModule godoc
// @Summary Get training module content
// @Description Returns static module content including steps and media references
// @Tags modules
// @Accept json
// @Produce json
// @Param moduleId path string true "Module identifier"
// @Success 200 {object} models.TrainingModule
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/modules/{moduleId} [get]
func (mc *ModulesController) GetModule(c *fiber.Ctx) error {
	module, err := mc.Catalog.Module(c.Params("moduleId"))
	if err != nil {
		if errors.Is(err, catalog.ErrModuleNotFound) {
			return utils.NotFound(c, "Module not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	return c.JSON(module)
}

// GetVideo godoc
// @Summary Video streaming stub
// @Description Returns a descriptor for the requested video instead of media bytes
// @Tags modules
// @Accept json
// @Produce json
// @Param filename path string true "Video file name"
// @Success 200 {object} map[string]interface{}
// @Router /api/videos/{filename} [get]
func (mc *ModulesController) GetVideo(c *fiber.Ctx) error {
	filename := c.Params("filename")
	return c.JSON(fiber.Map{
		"message":  "Video streaming endpoint",
		"filename": filename,
		"url":      "https://example.com/videos/" + filename,
	})
}
