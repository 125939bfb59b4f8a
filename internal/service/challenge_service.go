package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quizquest/internal/cache"
	"quizquest/internal/domain"
	"quizquest/internal/dto"
	"quizquest/internal/logger"
	"quizquest/internal/util"

	"go.uber.org/zap"
)

// ChallengeService defines the interface for challenge authoring and lookup
type ChallengeService interface {
	CreateChallenge(ctx context.Context, req *dto.CreateChallengeRequest, creator domain.Identity) (*dto.ChallengeResponse, error)
	GetChallenge(ctx context.Context, id string) (*dto.ChallengeResponse, error)
	ListChallenges(ctx context.Context, limit int) (*dto.ChallengeListResponse, error)
}

// challengeService implements ChallengeService
type challengeService struct {
	repo     domain.ChallengeRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewChallengeService creates a new instance of challengeService. The cache
// may be nil; lookups then always hit the repository.
func NewChallengeService(repo domain.ChallengeRepository, challengeCache domain.Cache, cacheTTL time.Duration) ChallengeService {
	return &challengeService{
		repo:     repo,
		cache:    challengeCache,
		cacheTTL: cacheTTL,
	}
}

// CreateChallenge validates the authored questions and persists the challenge.
// Question and entry ids missing from the payload are assigned here, once;
// they stay stable for the challenge's lifetime.
func (s *challengeService) CreateChallenge(ctx context.Context, req *dto.CreateChallengeRequest, creator domain.Identity) (*dto.ChallengeResponse, error) {
	questions := make([]domain.Question, len(req.Questions))
	copy(questions, req.Questions)
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = util.NewULID()
		}
		for j := range questions[i].TableEntries {
			if questions[i].TableEntries[j].EntryID == "" {
				questions[i].TableEntries[j].EntryID = util.NewULID()
			}
		}
	}

	challenge := domain.NewChallenge(req.Title, req.Description, req.Theme, domain.ParseDifficulty(req.Difficulty), creator.UID, questions)
	challenge.ID = util.NewULID()
	if err := challenge.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, challenge); err != nil {
		return nil, err
	}

	logger.Get().Info("Challenge created",
		zap.String("challenge_id", challenge.ID),
		zap.String("creator_uid", creator.UID),
		zap.Int("question_count", len(challenge.Questions)))

	return toChallengeResponse(challenge), nil
}

// GetChallenge returns a challenge by id, reading through the cache.
func (s *challengeService) GetChallenge(ctx context.Context, id string) (*dto.ChallengeResponse, error) {
	cacheKey := cache.GenerateCacheKey("challenge", "byid", id)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			var resp dto.ChallengeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			logger.Get().Warn("Failed to unmarshal cached challenge, falling back to repository",
				zap.String("challenge_id", id))
		} else if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Error("Challenge cache read failed",
				zap.String("challenge_id", id),
				zap.Error(err))
		}
	}

	challenge, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, domain.NewChallengeNotFoundError(id)
	}

	resp := toChallengeResponse(challenge)

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), s.cacheTTL); err != nil {
				logger.Get().Error("Challenge cache write failed",
					zap.String("challenge_id", id),
					zap.Error(err))
			}
		}
	}

	return resp, nil
}

// ListChallenges returns the published challenge summaries.
func (s *challengeService) ListChallenges(ctx context.Context, limit int) (*dto.ChallengeListResponse, error) {
	challenges, err := s.repo.ListPublished(ctx, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ChallengeSummaryResponse, 0, len(challenges))
	for _, c := range challenges {
		summaries = append(summaries, dto.ChallengeSummaryResponse{
			ID:            c.ID,
			Title:         c.Title,
			Description:   c.Description,
			Theme:         c.Theme,
			Difficulty:    string(c.Difficulty),
			PlayCount:     c.PlayCount,
			QuestionCount: len(c.Questions),
		})
	}
	return &dto.ChallengeListResponse{Challenges: summaries}, nil
}

func toChallengeResponse(c *domain.Challenge) *dto.ChallengeResponse {
	return &dto.ChallengeResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Theme:       c.Theme,
		Difficulty:  string(c.Difficulty),
		IsPublished: c.IsPublished,
		PlayCount:   c.PlayCount,
		Questions:   c.Questions,
	}
}
