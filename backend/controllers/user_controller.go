package controllers

import (
	"errors"
	"log"

	"skillforge/backend/middleware"
	"skillforge/backend/storage"
	"skillforge/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Store  storage.UserStore
	Logger *log.Logger
}

func NewUserController(store storage.UserStore, logger *log.Logger) *UserController {
	return &UserController{Store: store, Logger: logger}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns authenticated user's profile data
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := uc.Store.UserByID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		uc.Logger.Printf("profile: lookup user: %v", err)
		return utils.InternalServerError(c, "Server error")
	}

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}
