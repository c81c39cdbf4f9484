package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/symptomap/internal/services"
)

type registerRequest struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var request registerRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.auth.Register(services.RegisterInput{
		Username:  request.Username,
		Email:     request.Email,
		Password:  request.Password,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
			return apiError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, services.ErrInvalidUsername),
			errors.Is(err, services.ErrInvalidEmail),
			errors.Is(err, services.ErrInvalidPassword),
			errors.Is(err, services.ErrInvalidCoordinates):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "registration failed")
		}
	}

	token, err := handler.buildToken(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var request loginRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.auth.Authenticate(request.Username, request.Password)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "authentication failed")
	}

	token, err := handler.buildToken(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create token")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Logout exists for API symmetry; bearer tokens are stateless, so the
// client discards its copy.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (handler *Handler) UpdateLocation(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var request locationRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.auth.UpdateLocation(user.ID, request.Latitude, request.Longitude); err != nil {
		if errors.Is(err, services.ErrInvalidCoordinates) {
			return apiError(c, fiber.StatusBadRequest, "invalid coordinates")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update location")
	}

	updated, err := handler.auth.FindByID(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load user")
	}
	return c.JSON(updated)
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.auth.DeleteAccount(user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete account")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
