package service

import (
	"context"
	"os"
	"testing"
	"time"

	"quizquest/internal/config"
	"quizquest/internal/domain"
	"quizquest/internal/dto"
	"quizquest/internal/logger"

	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Initialize(config.LoggerConfig{Level: "info", Env: "test"})
	os.Exit(m.Run())
}

// --- MockChallengeRepository ---
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) Save(ctx context.Context, challenge *domain.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeRepository) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) ListPublished(ctx context.Context, limit int) ([]*domain.Challenge, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) IncrementPlayCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Save(ctx context.Context, attempt *domain.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) CountByUserAndChallenge(ctx context.Context, userUID, challengeID string) (int, error) {
	args := m.Called(ctx, userUID, challengeID)
	return args.Int(0), args.Error(1)
}

func (m *MockAttemptRepository) ListByUser(ctx context.Context, userUID string, limit int) ([]*domain.Attempt, error) {
	args := m.Called(ctx, userUID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attempt), args.Error(1)
}

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) AddXP(ctx context.Context, uid string, xp int) error {
	args := m.Called(ctx, uid, xp)
	return args.Error(0)
}

func (m *MockUserRepository) TopByXP(ctx context.Context, limit int) ([]*domain.UserProfile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserProfile), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockResultCache ---
type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) Put(ctx context.Context, attemptID string, result *dto.AttemptResponse) error {
	args := m.Called(ctx, attemptID, result)
	return args.Error(0)
}

func (m *MockResultCache) Get(ctx context.Context, attemptID string) (*dto.AttemptResponse, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AttemptResponse), args.Error(1)
}
