package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"quizquest/internal/domain"
)

// QuestionList stores the ordered question sequence as a JSON column.
type QuestionList []domain.Question

// Value implements the driver.Valuer interface
func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]domain.Question(q))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (q *QuestionList) Scan(src interface{}) error {
	if src == nil {
		*q = QuestionList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported type for QuestionList: %T", src)
	}
	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return fmt.Errorf("failed to unmarshal questions: %w", err)
	}
	*q = QuestionList(questions)
	return nil
}

// Challenge is the database model for a challenge row.
type Challenge struct {
	ID          string       `db:"id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Theme       string       `db:"theme"`
	Difficulty  string       `db:"difficulty"`
	CreatorUID  string       `db:"creator_uid"`
	IsPublished bool         `db:"is_published"`
	PlayCount   int          `db:"play_count"`
	Questions   QuestionList `db:"questions"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// Attempt is the database model for an attempt row. The raw submitted answers
// are kept as JSON for auditing and replay.
type Attempt struct {
	ID               string         `db:"id"`
	ChallengeID      string         `db:"challenge_id"`
	UserUID          sql.NullString `db:"user_uid"`
	SubmittedAnswers string         `db:"submitted_answers"`
	Score            int            `db:"score"`
	TotalTime        int            `db:"total_time"`
	XPEarned         int            `db:"xp_earned"`
	CreatedAt        time.Time      `db:"created_at"`
}

// User is the database model for a user profile row.
type User struct {
	UID                 string    `db:"uid"`
	Email               string    `db:"email"`
	DisplayName         string    `db:"display_name"`
	TotalXP             int       `db:"total_xp"`
	ChallengesCompleted int       `db:"challenges_completed"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}
