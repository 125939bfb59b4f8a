package dto

import "quizquest/internal/domain"

// CreateChallengeRequest is the authoring payload for a new challenge.
type CreateChallengeRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Theme       string            `json:"theme"`
	Difficulty  string            `json:"difficulty"`
	Questions   []domain.Question `json:"questions"`
}

// ChallengeResponse represents a full challenge in the API response
type ChallengeResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Theme       string            `json:"theme"`
	Difficulty  string            `json:"difficulty"`
	IsPublished bool              `json:"is_published"`
	PlayCount   int               `json:"play_count"`
	Questions   []domain.Question `json:"questions"`
}

// ChallengeSummaryResponse is the list view of a challenge, without questions.
type ChallengeSummaryResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Theme         string `json:"theme"`
	Difficulty    string `json:"difficulty"`
	PlayCount     int    `json:"play_count"`
	QuestionCount int    `json:"question_count"`
}

// ChallengeListResponse wraps the published challenge listing.
type ChallengeListResponse struct {
	Challenges []ChallengeSummaryResponse `json:"challenges"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
