package domain

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty levels for a challenge
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes a difficulty string, defaulting to medium.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Valid reports whether the difficulty is one of the known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Challenge is an ordered sequence of questions. Once fetched for an attempt
// it is read-only; the attempt engine never mutates it.
type Challenge struct {
	ID          string
	Title       string
	Description string
	Theme       string
	Difficulty  Difficulty
	CreatorUID  string
	IsPublished bool
	PlayCount   int
	Questions   []Question
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewChallenge creates a new Challenge instance
func NewChallenge(title, description, theme string, difficulty Difficulty, creatorUID string, questions []Question) *Challenge {
	now := time.Now()
	return &Challenge{
		Title:       title,
		Description: description,
		Theme:       theme,
		Difficulty:  difficulty,
		CreatorUID:  creatorUID,
		IsPublished: true,
		Questions:   questions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate validates the challenge for authoring. Every question must satisfy
// its variant invariants; play-time containment of malformed questions is the
// attempt engine's job, not the author's.
func (c *Challenge) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return NewInvalidInputError("title is required")
	}
	if !c.Difficulty.Valid() {
		return NewInvalidInputError(fmt.Sprintf("invalid difficulty: %s", c.Difficulty))
	}
	if len(c.Questions) == 0 {
		return NewInvalidInputError("at least one question is required")
	}
	for _, q := range c.Questions {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}
