package repository

import (
	"context"
	"encoding/json"
	"time"

	"quizquest/internal/domain"
	"quizquest/internal/repository/models"
	"quizquest/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func (r *sqlxAttemptRepository) Save(ctx context.Context, attempt *domain.Attempt) error {
	answersJSON, err := json.Marshal(attempt.SubmittedAnswers)
	if err != nil {
		return domain.NewInternalError("failed to marshal submitted answers", err)
	}

	model := &models.Attempt{
		ID:               attempt.ID,
		ChallengeID:      attempt.ChallengeID,
		UserUID:          util.StringToNullString(attempt.UserUID),
		SubmittedAnswers: string(answersJSON),
		Score:            attempt.Score,
		TotalTime:        attempt.TotalTime,
		XPEarned:         attempt.XPEarned,
		CreatedAt:        attempt.CreatedAt,
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO attempts (id, challenge_id, user_uid, submitted_answers, score, total_time, xp_earned, created_at)
		VALUES (:id, :challenge_id, :user_uid, :submitted_answers, :score, :total_time, :xp_earned, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return domain.NewInternalError("failed to save attempt", err)
	}
	return nil
}

func (r *sqlxAttemptRepository) CountByUserAndChallenge(ctx context.Context, userUID, challengeID string) (int, error) {
	if userUID == "" {
		return 0, nil
	}
	var count int
	query := `SELECT COUNT(*) FROM attempts WHERE user_uid = ? AND challenge_id = ?`
	if err := r.db.GetContext(ctx, &count, query, userUID, challengeID); err != nil {
		return 0, domain.NewInternalError("failed to count attempts", err)
	}
	return count, nil
}

func (r *sqlxAttemptRepository) ListByUser(ctx context.Context, userUID string, limit int) ([]*domain.Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.Attempt
	query := `SELECT id, challenge_id, user_uid, submitted_answers, score, total_time, xp_earned, created_at
		FROM attempts WHERE user_uid = ? ORDER BY created_at DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &rows, query, userUID, limit); err != nil {
		return nil, domain.NewInternalError("failed to list attempts", err)
	}

	attempts := make([]*domain.Attempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainAttempt(&rows[i]))
	}
	return attempts, nil
}

func toDomainAttempt(m *models.Attempt) *domain.Attempt {
	if m == nil {
		return nil
	}
	var userUID string
	if m.UserUID.Valid {
		userUID = m.UserUID.String
	}
	return &domain.Attempt{
		ID:          m.ID,
		ChallengeID: m.ChallengeID,
		UserUID:     userUID,
		Score:       m.Score,
		TotalTime:   m.TotalTime,
		XPEarned:    m.XPEarned,
		CreatedAt:   m.CreatedAt,
	}
}
