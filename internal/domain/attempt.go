package domain

import (
	"context"
	"time"
)

// XPBreakdown is the server-supplied reward structure for a completed attempt.
// Bonus eligibility rules live on the server; clients render this verbatim.
type XPBreakdown struct {
	BaseXP               int     `json:"base_xp"`
	DifficultyMultiplier float64 `json:"difficulty_multiplier"`
	FirstTimeBonus       int     `json:"first_time_bonus"`
	PerfectBonus         int     `json:"perfect_bonus"`
	TotalXP              int     `json:"total_xp"`
}

// AttemptResult carries the authoritative outcome of a submission from the
// submit step to the result display. It travels as an explicit value, never
// through ambient storage.
type AttemptResult struct {
	AttemptID      string
	ChallengeID    string
	Score          int // percent, 0-100
	Breakdown      XPBreakdown
	ElapsedSeconds int
}

// Attempt is a persisted record of a completed challenge run.
type Attempt struct {
	ID               string
	ChallengeID      string
	UserUID          string
	SubmittedAnswers []Answer
	Score            int
	TotalTime        int
	XPEarned         int
	CreatedAt        time.Time
}

// ChallengeRepository is the port for challenge persistence.
type ChallengeRepository interface {
	Save(ctx context.Context, challenge *Challenge) error
	GetByID(ctx context.Context, id string) (*Challenge, error)
	ListPublished(ctx context.Context, limit int) ([]*Challenge, error)
	IncrementPlayCount(ctx context.Context, id string) error
}

// AttemptRepository is the port for attempt persistence.
type AttemptRepository interface {
	Save(ctx context.Context, attempt *Attempt) error
	CountByUserAndChallenge(ctx context.Context, userUID, challengeID string) (int, error)
	ListByUser(ctx context.Context, userUID string, limit int) ([]*Attempt, error)
}

// UserRepository is the port for user profile persistence.
type UserRepository interface {
	GetByUID(ctx context.Context, uid string) (*UserProfile, error)
	Upsert(ctx context.Context, profile *UserProfile) error
	AddXP(ctx context.Context, uid string, xp int) error
	TopByXP(ctx context.Context, limit int) ([]*UserProfile, error)
}
