package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quizquest/internal/domain"
	"quizquest/internal/dto"
)

const defaultTimeout = 15 * time.Second

// HTTPClient talks to a quizquest API server. It satisfies the attempt
// engine's fetcher and submitter collaborators.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithAuthToken attaches a bearer token to every request.
func WithAuthToken(token string) Option {
	return func(c *HTTPClient) {
		c.authToken = token
	}
}

// NewHTTPClient creates a client for the given base URL, e.g.
// "http://localhost:8080".
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchChallenge retrieves a challenge with its full question list.
func (c *HTTPClient) FetchChallenge(ctx context.Context, id string) (*domain.Challenge, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/challenges/"+id, nil)
	if err != nil {
		return nil, domain.NewInternalError("failed to build challenge request", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.NewChallengeNotFoundError(id)
	case resp.StatusCode != http.StatusOK:
		return nil, domain.NewFetchFailedError(id, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readErrorMessage(resp.Body)))
	}

	var body dto.ChallengeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.NewFetchFailedError(id, err)
	}

	return &domain.Challenge{
		ID:          body.ID,
		Title:       body.Title,
		Description: body.Description,
		Theme:       body.Theme,
		Difficulty:  domain.ParseDifficulty(body.Difficulty),
		Questions:   body.Questions,
	}, nil
}

// SubmitAttempt posts a completed submission for grading.
func (c *HTTPClient) SubmitAttempt(ctx context.Context, submission *dto.CreateAttemptRequest) (*dto.AttemptResponse, error) {
	payload, err := json.Marshal(submission)
	if err != nil {
		return nil, domain.NewInternalError("failed to marshal submission", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/attempts", bytes.NewReader(payload))
	if err != nil {
		return nil, domain.NewInternalError("failed to build submission request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, domain.NewInvalidInputError(readErrorMessage(resp.Body))
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.NewChallengeNotFoundError(submission.ChallengeID)
	case resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK:
		return nil, domain.NewError(domain.CodeFetchFailed,
			fmt.Sprintf("submission rejected with status %d: %s", resp.StatusCode, readErrorMessage(resp.Body)), nil)
	}

	var body dto.AttemptResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.NewInternalError("failed to decode attempt response", err)
	}
	return &body, nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}

// readErrorMessage pulls the message out of an error response body, falling
// back to the raw body when it is not the standard shape.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no error detail"
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
