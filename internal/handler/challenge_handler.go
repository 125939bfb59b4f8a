package handler

import (
	"quizquest/internal/domain"
	"quizquest/internal/dto"
	"quizquest/internal/logger"
	"quizquest/internal/middleware"
	"quizquest/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ChallengeHandler handles challenge-related HTTP requests
type ChallengeHandler struct {
	service service.ChallengeService
}

// NewChallengeHandler creates a new ChallengeHandler instance
func NewChallengeHandler(service service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		service: service,
	}
}

// CreateChallenge handles POST /api/challenges
func (h *ChallengeHandler) CreateChallenge(c *fiber.Ctx) error {
	var req dto.CreateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	identity := middleware.IdentityFromCtx(c)
	resp, err := h.service.CreateChallenge(c.Context(), &req, identity)
	if err != nil {
		return err
	}

	logger.Get().Info("Challenge created",
		zap.String("challenge_id", resp.ID),
		zap.String("creator_uid", identity.UID),
	)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetChallenge handles GET /api/challenges/:id
func (h *ChallengeHandler) GetChallenge(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domain.NewInvalidInputError("challenge id is required")
	}

	resp, err := h.service.GetChallenge(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListChallenges handles GET /api/challenges
func (h *ChallengeHandler) ListChallenges(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	resp, err := h.service.ListChallenges(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
