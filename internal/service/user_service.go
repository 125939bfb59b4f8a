package service

import (
	"context"
	"fmt"

	"quizquest/internal/domain"
	"quizquest/internal/dto"
)

// UserService defines the interface for user profile and leaderboard queries
type UserService interface {
	GetProfile(ctx context.Context, uid string) (*dto.UserProfileResponse, error)
	GetLeaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error)
}

// userService implements UserService
type userService struct {
	users    domain.UserRepository
	attempts domain.AttemptRepository
}

// NewUserService creates a new instance of userService
func NewUserService(users domain.UserRepository, attempts domain.AttemptRepository) UserService {
	return &userService{users: users, attempts: attempts}
}

func (s *userService) GetProfile(ctx context.Context, uid string) (*dto.UserProfileResponse, error) {
	if uid == "" {
		return nil, domain.NewInvalidInputError("user uid is required")
	}
	profile, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("User not found: %s", uid))
	}
	return &dto.UserProfileResponse{
		UID:                 profile.UID,
		Email:               profile.Email,
		DisplayName:         profile.DisplayName,
		TotalXP:             profile.TotalXP,
		ChallengesCompleted: profile.ChallengesCompleted,
	}, nil
}

func (s *userService) GetLeaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	top, err := s.users.TopByXP(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.LeaderboardEntryResponse, 0, len(top))
	for i, profile := range top {
		entries = append(entries, dto.LeaderboardEntryResponse{
			Rank:        i + 1,
			DisplayName: profile.DisplayName,
			TotalXP:     profile.TotalXP,
		})
	}
	return &dto.LeaderboardResponse{Entries: entries}, nil
}
