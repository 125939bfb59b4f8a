package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizquest/internal/domain"
	"quizquest/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchChallengeSuccess(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(dto.ChallengeResponse{
			ID:         "c1",
			Title:      "Europe",
			Difficulty: "hard",
			Questions: []domain.Question{
				{
					ID:             "q1",
					Type:           domain.QuestionMultipleChoice,
					Text:           "Capital of France?",
					Options:        []string{"London", "Paris"},
					CorrectAnswers: []int{1},
				},
			},
		})
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL, WithAuthToken("tok"))

	challenge, err := c.FetchChallenge(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "/api/challenges/c1", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "Europe", challenge.Title)
	assert.Equal(t, domain.DifficultyHard, challenge.Difficulty)
	require.Len(t, challenge.Questions, 1)
	assert.Equal(t, "Paris", challenge.Questions[0].Options[1])
}

func TestFetchChallengeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL)

	_, err := c.FetchChallenge(context.Background(), "missing")
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeChallengeNotFound, domainErr.Code)
}

func TestFetchChallengeTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := NewHTTPClient(server.URL)

	_, err := c.FetchChallenge(context.Background(), "c1")
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeTransport, domainErr.Code)
}

func TestSubmitAttemptSuccess(t *testing.T) {
	var gotBody dto.CreateAttemptRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/attempts", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(dto.AttemptResponse{ID: "a1", ChallengeID: "c1", Score: 100})
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL)

	resp, err := c.SubmitAttempt(context.Background(), &dto.CreateAttemptRequest{
		ChallengeID: "c1",
		SubmittedAnswers: []dto.SubmittedAnswer{
			{QuestionID: "q1", Text: "Paris"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "a1", resp.ID)
	assert.Equal(t, "c1", gotBody.ChallengeID)
	require.Len(t, gotBody.SubmittedAnswers, 1)
}

func TestSubmitAttemptServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "submitted answer count does not match question count"})
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL)

	_, err := c.SubmitAttempt(context.Background(), &dto.CreateAttemptRequest{ChallengeID: "c1"})
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	assert.Contains(t, domainErr.Message, "answer count")
}
