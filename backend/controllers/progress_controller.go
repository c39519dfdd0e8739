package controllers

import (
	"errors"
	"log"
	"strconv"

	"skillforge/backend/middleware"
	"skillforge/backend/progress"
	"skillforge/backend/storage"
	"skillforge/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Store  storage.ProgressStore
	Engine *progress.Engine
	Logger *log.Logger
}

func NewProgressController(store storage.ProgressStore, engine *progress.Engine, logger *log.Logger) *ProgressController {
	return &ProgressController{Store: store, Engine: engine, Logger: logger}
}

// GetProgress godoc
// @Summary Get user progress
// @Description Returns the full progress record for the authenticated user
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} models.ProgressRecord
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	record, err := pc.Store.Progress(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, storage.ErrProgressNotFound) {
			return utils.NotFound(c, "Progress not found")
		}
		pc.Logger.Printf("progress: load record: %v", err)
		return utils.InternalServerError(c, "Server error")
	}

	return c.JSON(record)
}

// CompleteStep godoc
// @Summary Complete a course step
// @Description Marks a step complete and recomputes course and total progress
// @Tags progress
// @Accept json
// @Produce json
// @Param courseId path string true "Course identifier"
// @Param stepId path int true "Step identifier"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/progress/{courseId}/step/{stepId} [post]
func (pc *ProgressController) CompleteStep(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	stepID, err := strconv.Atoi(c.Params("stepId"))
	if err != nil {
		// A non-numeric step segment can never match a step.
		return utils.NotFound(c, "Step not found")
	}

	record, err := pc.Engine.CompleteStep(middleware.UserID(c), courseID, stepID)
	if err != nil {
		switch {
		case errors.Is(err, progress.ErrRecordNotFound):
			return utils.NotFound(c, "Progress not found")
		case errors.Is(err, progress.ErrCourseNotFound):
			return utils.NotFound(c, "Module not found")
		case errors.Is(err, progress.ErrStepNotFound):
			return utils.NotFound(c, "Step not found")
		default:
			pc.Logger.Printf("progress: complete step: %v", err)
			return utils.InternalServerError(c, "Server error")
		}
	}

	return c.JSON(fiber.Map{
		"message":  "Progress updated",
		"progress": record,
	})
}
