package service

import (
	"context"
	"errors"
	"testing"

	"quizquest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetProfileSuccess(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByUID", mock.Anything, "u1").Return(&domain.UserProfile{
		UID:                 "u1",
		Email:               "u@example.com",
		DisplayName:         "U",
		TotalXP:             300,
		ChallengesCompleted: 4,
	}, nil)

	svc := NewUserService(mockUsers, new(MockAttemptRepository))

	profile, err := svc.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.UID)
	assert.Equal(t, 300, profile.TotalXP)
	assert.Equal(t, 4, profile.ChallengesCompleted)
	mockUsers.AssertExpectations(t)
}

func TestGetProfileNotFound(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByUID", mock.Anything, "ghost").Return(nil, nil)

	svc := NewUserService(mockUsers, new(MockAttemptRepository))

	_, err := svc.GetProfile(context.Background(), "ghost")
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestGetProfileRequiresUID(t *testing.T) {
	svc := NewUserService(new(MockUserRepository), new(MockAttemptRepository))
	_, err := svc.GetProfile(context.Background(), "")
	assert.Error(t, err)
}

func TestGetLeaderboardRanksInOrder(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("TopByXP", mock.Anything, 3).Return([]*domain.UserProfile{
		{UID: "a", DisplayName: "Alice", TotalXP: 900},
		{UID: "b", DisplayName: "Bob", TotalXP: 500},
		{UID: "c", DisplayName: "Cleo", TotalXP: 100},
	}, nil)

	svc := NewUserService(mockUsers, new(MockAttemptRepository))

	board, err := svc.GetLeaderboard(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, board.Entries, 3)
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Equal(t, "Alice", board.Entries[0].DisplayName)
	assert.Equal(t, 3, board.Entries[2].Rank)
	assert.Equal(t, 100, board.Entries[2].TotalXP)
}

func TestGetLeaderboardClampsLimit(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("TopByXP", mock.Anything, 10).Return([]*domain.UserProfile{}, nil)

	svc := NewUserService(mockUsers, new(MockAttemptRepository))

	board, err := svc.GetLeaderboard(context.Background(), -5)
	require.NoError(t, err)
	assert.Empty(t, board.Entries)
	mockUsers.AssertExpectations(t)
}
