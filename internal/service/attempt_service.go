package service

import (
	"context"
	"math"
	"time"

	"quizquest/internal/domain"
	"quizquest/internal/dto"
	"quizquest/internal/logger"
	"quizquest/internal/util"

	"go.uber.org/zap"
)

// Difficulty multipliers and bonus amounts for the XP breakdown. These rules
// live here, server-side; clients render the returned breakdown verbatim.
const (
	firstTimeBonusXP = 50
	perfectBonusXP   = 25
)

var difficultyMultipliers = map[domain.Difficulty]float64{
	domain.DifficultyEasy:   1.0,
	domain.DifficultyMedium: 1.5,
	domain.DifficultyHard:   2.0,
}

// AttemptService defines the interface for grading and recording attempts
type AttemptService interface {
	SubmitAttempt(ctx context.Context, req *dto.CreateAttemptRequest) (*dto.AttemptResponse, error)
}

// attemptService implements AttemptService
type attemptService struct {
	challenges  domain.ChallengeRepository
	attempts    domain.AttemptRepository
	users       domain.UserRepository
	resultCache ResultCacheService
}

// NewAttemptService creates a new instance of attemptService
func NewAttemptService(
	challenges domain.ChallengeRepository,
	attempts domain.AttemptRepository,
	users domain.UserRepository,
	resultCache ResultCacheService,
) AttemptService {
	return &attemptService{
		challenges:  challenges,
		attempts:    attempts,
		users:       users,
		resultCache: resultCache,
	}
}

// SubmitAttempt grades a submission against its challenge, computes the XP
// breakdown, persists the attempt, and updates the user's totals.
func (s *attemptService) SubmitAttempt(ctx context.Context, req *dto.CreateAttemptRequest) (*dto.AttemptResponse, error) {
	if req.ChallengeID == "" {
		return nil, domain.NewInvalidInputError("challenge_id is required")
	}

	challenge, err := s.challenges.GetByID(ctx, req.ChallengeID)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, domain.NewChallengeNotFoundError(req.ChallengeID)
	}
	if len(req.SubmittedAnswers) != len(challenge.Questions) {
		return nil, domain.NewInvalidInputError("submitted answer count does not match question count")
	}

	score, graded := gradeSubmission(challenge, req.SubmittedAnswers)

	multiplier, ok := difficultyMultipliers[challenge.Difficulty]
	if !ok {
		multiplier = difficultyMultipliers[domain.DifficultyMedium]
	}
	baseXP := int(math.Round(float64(score) * multiplier))

	firstTimeBonus := 0
	if req.UserUID != "" {
		previous, err := s.attempts.CountByUserAndChallenge(ctx, req.UserUID, req.ChallengeID)
		if err != nil {
			return nil, err
		}
		if previous == 0 {
			firstTimeBonus = firstTimeBonusXP
		}
	}

	perfectBonus := 0
	if score >= 100 {
		perfectBonus = perfectBonusXP
	}
	totalXP := baseXP + firstTimeBonus + perfectBonus

	attempt := &domain.Attempt{
		ID:               util.NewULID(),
		ChallengeID:      req.ChallengeID,
		UserUID:          req.UserUID,
		SubmittedAnswers: graded,
		Score:            score,
		TotalTime:        req.TotalTime,
		XPEarned:         totalXP,
		CreatedAt:        time.Now(),
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, err
	}

	resp := &dto.AttemptResponse{
		ID:          attempt.ID,
		ChallengeID: req.ChallengeID,
		Score:       score,
		XPEarned:    totalXP,
		XPBreakdown: dto.XPBreakdownResponse{
			BaseXP:               baseXP,
			DifficultyMultiplier: multiplier,
			FirstTimeBonus:       firstTimeBonus,
			PerfectBonus:         perfectBonus,
			TotalXP:              totalXP,
		},
	}

	if req.UserUID != "" {
		if err := s.creditUser(ctx, req, totalXP); err != nil {
			// The attempt itself is recorded; surface the bookkeeping failure
			// in logs rather than failing the submission.
			logger.Get().Error("Failed to credit user XP",
				zap.String("user_uid", req.UserUID),
				zap.Error(err))
		} else if profile, err := s.users.GetByUID(ctx, req.UserUID); err == nil && profile != nil {
			total := profile.TotalXP
			resp.NewTotalXP = &total
		}
	}

	if err := s.challenges.IncrementPlayCount(ctx, req.ChallengeID); err != nil {
		logger.Get().Warn("Failed to increment play count",
			zap.String("challenge_id", req.ChallengeID),
			zap.Error(err))
	}

	if s.resultCache != nil {
		if err := s.resultCache.Put(ctx, attempt.ID, resp); err != nil {
			logger.Get().Warn("Failed to cache attempt result",
				zap.String("attempt_id", attempt.ID),
				zap.Error(err))
		}
	}

	logger.Get().Info("Attempt graded",
		zap.String("attempt_id", attempt.ID),
		zap.String("challenge_id", req.ChallengeID),
		zap.Int("score", score),
		zap.Int("total_xp", totalXP))

	return resp, nil
}

func (s *attemptService) creditUser(ctx context.Context, req *dto.CreateAttemptRequest, totalXP int) error {
	profile := domain.NewUserProfile(req.UserUID, req.Email, req.DisplayName)
	if err := s.users.Upsert(ctx, profile); err != nil {
		return err
	}
	return s.users.AddXP(ctx, req.UserUID, totalXP)
}

// gradeSubmission scores the wire answers against the challenge questions,
// matching submissions to questions by question_id with a fallback to
// positional order. It returns a whole percentage and the reconstructed
// domain answers in question order.
func gradeSubmission(challenge *domain.Challenge, submitted []dto.SubmittedAnswer) (int, []domain.Answer) {
	byID := make(map[string]dto.SubmittedAnswer, len(submitted))
	for _, ans := range submitted {
		if ans.QuestionID != "" {
			byID[ans.QuestionID] = ans
		}
	}

	answers := make([]domain.Answer, 0, len(challenge.Questions))
	var earned float64
	for i, q := range challenge.Questions {
		wire, ok := byID[q.ID]
		if !ok && i < len(submitted) {
			wire = submitted[i]
		}
		answer := wireToAnswer(q, wire)
		earned += q.Score(answer)
		answers = append(answers, answer)
	}
	if len(challenge.Questions) == 0 {
		return 0, answers
	}
	return int(math.Round(earned / float64(len(challenge.Questions)) * 100)), answers
}

// wireToAnswer reconstructs a domain answer from its wire form. Single-answer
// multiple choice arrives as the selected option text and is mapped back to
// its index.
func wireToAnswer(q domain.Question, wire dto.SubmittedAnswer) domain.Answer {
	switch q.Type {
	case domain.QuestionMultipleChoice:
		if q.IsMultiAnswer() {
			return domain.NewMultiChoiceAnswer(wire.SelectedIndices...)
		}
		for i, opt := range q.Options {
			if opt == wire.Text {
				return domain.NewSingleChoiceAnswer(i)
			}
		}
		return domain.EmptyAnswerFor(q)
	case domain.QuestionShortAnswer:
		return domain.NewShortAnswer(wire.Text)
	case domain.QuestionForcedRecall:
		return domain.NewForcedRecallAnswer(wire.TableEntries)
	}
	return domain.EmptyAnswerFor(q)
}
