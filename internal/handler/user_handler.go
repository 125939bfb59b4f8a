package handler

import (
	"quizquest/internal/domain"
	"quizquest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user profile and leaderboard requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// GetProfile handles GET /api/users/:uid
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	uid := c.Params("uid")
	if uid == "" {
		return domain.NewInvalidInputError("user uid is required")
	}

	resp, err := h.service.GetProfile(c.Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetLeaderboard handles GET /api/leaderboard
func (h *UserHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	resp, err := h.service.GetLeaderboard(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
