package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"quizquest/internal/cache"
	"quizquest/internal/domain"
	"quizquest/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authoredQuestions() []domain.Question {
	return []domain.Question{
		{
			Type:           domain.QuestionMultipleChoice,
			Text:           "Capital of France?",
			Options:        []string{"London", "Paris"},
			CorrectAnswers: []int{1},
		},
		{
			Type: domain.QuestionForcedRecall,
			Text: "Benelux",
			TableEntries: []domain.TableEntry{
				{Label: "B", AcceptableAnswers: []string{"Belgium"}, Points: 10},
			},
		},
	}
}

func TestCreateChallengeAssignsIDs(t *testing.T) {
	mockRepo := new(MockChallengeRepository)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Challenge")).Return(nil)

	svc := NewChallengeService(mockRepo, nil, 0)

	resp, err := svc.CreateChallenge(context.Background(), &dto.CreateChallengeRequest{
		Title:      "Europe",
		Theme:      "geography",
		Difficulty: "easy",
		Questions:  authoredQuestions(),
	}, domain.Identity{UID: "creator"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	require.Len(t, resp.Questions, 2)
	assert.NotEmpty(t, resp.Questions[0].ID)
	assert.NotEmpty(t, resp.Questions[1].TableEntries[0].EntryID)

	saved := mockRepo.Calls[0].Arguments.Get(1).(*domain.Challenge)
	assert.Equal(t, "creator", saved.CreatorUID)
	assert.True(t, saved.IsPublished)
	mockRepo.AssertExpectations(t)
}

func TestCreateChallengeRejectsInvalidQuestions(t *testing.T) {
	mockRepo := new(MockChallengeRepository)
	svc := NewChallengeService(mockRepo, nil, 0)

	questions := authoredQuestions()
	questions[0].Options = []string{"only one"}

	_, err := svc.CreateChallenge(context.Background(), &dto.CreateChallengeRequest{
		Title:     "Broken",
		Questions: questions,
	}, domain.Identity{})

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidQuestionFormat, domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetChallengeCacheMissReadsRepositoryAndPopulates(t *testing.T) {
	mockRepo := new(MockChallengeRepository)
	mockCache := new(MockCache)

	challenge := &domain.Challenge{
		ID:         "c1",
		Title:      "Europe",
		Difficulty: domain.DifficultyEasy,
		Questions:  []domain.Question{{ID: "q1", Type: domain.QuestionShortAnswer, Text: "?", AcceptableAnswers: []string{"x"}}},
	}
	cacheKey := cache.GenerateCacheKey("challenge", "byid", "c1")

	mockCache.On("Get", mock.Anything, cacheKey).Return("", domain.ErrCacheMiss)
	mockCache.On("Set", mock.Anything, cacheKey, mock.AnythingOfType("string"), 5*time.Minute).Return(nil)
	mockRepo.On("GetByID", mock.Anything, "c1").Return(challenge, nil)

	svc := NewChallengeService(mockRepo, mockCache, 5*time.Minute)

	resp, err := svc.GetChallenge(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Europe", resp.Title)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestGetChallengeCacheHitSkipsRepository(t *testing.T) {
	mockRepo := new(MockChallengeRepository)
	mockCache := new(MockCache)

	cached := dto.ChallengeResponse{ID: "c1", Title: "Cached Europe"}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	mockCache.On("Get", mock.Anything, cache.GenerateCacheKey("challenge", "byid", "c1")).Return(string(data), nil)

	svc := NewChallengeService(mockRepo, mockCache, time.Minute)

	resp, err := svc.GetChallenge(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Cached Europe", resp.Title)

	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetChallengeNotFound(t *testing.T) {
	mockRepo := new(MockChallengeRepository)
	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	svc := NewChallengeService(mockRepo, nil, 0)

	_, err := svc.GetChallenge(context.Background(), "missing")
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeChallengeNotFound, domainErr.Code)
}

func TestListChallengesBuildsSummaries(t *testing.T) {
	mockRepo := new(MockChallengeRepository)
	mockRepo.On("ListPublished", mock.Anything, 20).Return([]*domain.Challenge{
		{
			ID:         "c1",
			Title:      "Europe",
			Difficulty: domain.DifficultyEasy,
			PlayCount:  7,
			Questions:  authoredQuestions(),
		},
	}, nil)

	svc := NewChallengeService(mockRepo, nil, 0)

	resp, err := svc.ListChallenges(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, resp.Challenges, 1)
	assert.Equal(t, 7, resp.Challenges[0].PlayCount)
	assert.Equal(t, 2, resp.Challenges[0].QuestionCount)
}
