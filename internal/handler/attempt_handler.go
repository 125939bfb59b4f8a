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

// AttemptHandler handles attempt submission and result lookup requests
type AttemptHandler struct {
	service     service.AttemptService
	resultCache service.ResultCacheService
}

// NewAttemptHandler creates a new AttemptHandler instance
func NewAttemptHandler(service service.AttemptService, resultCache service.ResultCacheService) *AttemptHandler {
	return &AttemptHandler{
		service:     service,
		resultCache: resultCache,
	}
}

// SubmitAttempt handles POST /api/attempts
func (h *AttemptHandler) SubmitAttempt(c *fiber.Ctx) error {
	var req dto.CreateAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	// An authenticated identity overrides whatever the payload claims.
	if identity := middleware.IdentityFromCtx(c); !identity.Anonymous() {
		req.UserUID = identity.UID
		req.Email = identity.Email
		req.DisplayName = identity.DisplayName
	}

	resp, err := h.service.SubmitAttempt(c.Context(), &req)
	if err != nil {
		return err
	}

	logger.Get().Info("Attempt submitted",
		zap.String("attempt_id", resp.ID),
		zap.String("challenge_id", resp.ChallengeID),
		zap.Int("score", resp.Score),
	)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetAttemptResult handles GET /api/attempts/:id
func (h *AttemptHandler) GetAttemptResult(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domain.NewInvalidInputError("attempt id is required")
	}

	resp, err := h.resultCache.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
