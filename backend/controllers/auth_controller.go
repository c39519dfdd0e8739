package controllers

import (
	"errors"
	"log"
	"strings"

	"skillforge/backend/catalog"
	"skillforge/backend/config"
	"skillforge/backend/models"
	"skillforge/backend/storage"
	"skillforge/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	Store    storage.Store
	Catalog  *catalog.Catalog
	Cfg      *config.Config
	Logger   *log.Logger
	validate *validator.Validate
}

func NewAuthController(store storage.Store, cat *catalog.Catalog, cfg *config.Config, logger *log.Logger) *AuthController {
	return &AuthController{
		Store:    store,
		Catalog:  cat,
		Cfg:      cfg,
		Logger:   logger,
		validate: validator.New(),
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account and its initial progress record
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.RegisterInput true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if err := ac.validate.Struct(&input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		ac.Logger.Printf("register: hash password: %v", err)
		return utils.InternalServerError(c, "Server error")
	}

	user := models.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
	}
	if err := ac.Store.CreateUser(&user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return utils.BadRequest(c, "User already exists")
		}
		ac.Logger.Printf("register: create user: %v", err)
		return utils.InternalServerError(c, "Server error")
	}

	// Every account starts with a progress record built from the catalog.
	if err := ac.Store.CreateProgress(user.ID, ac.Catalog.Template()); err != nil {
		ac.Logger.Printf("register: create progress: %v", err)
		return utils.InternalServerError(c, "Server error")
	}

	token, err := utils.GenerateJWTToken(&user, ac.Cfg)
	if err != nil {
		ac.Logger.Printf("register: generate token: %v", err)
		return utils.InternalServerError(c, "Server error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"token":   token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginInput true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := ac.validate.Struct(&input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	user, err := ac.Store.UserByEmail(input.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return utils.BadRequest(c, "Invalid credentials")
		}
		ac.Logger.Printf("login: lookup user: %v", err)
		return utils.InternalServerError(c, "Server error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.BadRequest(c, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(user, ac.Cfg)
	if err != nil {
		ac.Logger.Printf("login: generate token: %v", err)
		return utils.InternalServerError(c, "Server error")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// validationDetails flattens validator errors into field -> message.
func validationDetails(err error) map[string]string {
	details := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		details["body"] = err.Error()
		return details
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			details[field] = "is required"
		case "email":
			details[field] = "must be a valid email address"
		case "min":
			details[field] = "must be at least " + fe.Param() + " characters"
		default:
			details[field] = "is invalid"
		}
	}
	return details
}
