package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"quizquest/internal/domain"
	"quizquest/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxChallengeRepository implements domain.ChallengeRepository using sqlx.
type sqlxChallengeRepository struct {
	db *sqlx.DB
}

// NewSQLXChallengeRepository creates a new instance of sqlxChallengeRepository.
func NewSQLXChallengeRepository(db *sqlx.DB) domain.ChallengeRepository {
	return &sqlxChallengeRepository{db: db}
}

func toDomainChallenge(m *models.Challenge) *domain.Challenge {
	if m == nil {
		return nil
	}
	return &domain.Challenge{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Theme:       m.Theme,
		Difficulty:  domain.Difficulty(m.Difficulty),
		CreatorUID:  m.CreatorUID,
		IsPublished: m.IsPublished,
		PlayCount:   m.PlayCount,
		Questions:   []domain.Question(m.Questions),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromDomainChallenge(c *domain.Challenge) *models.Challenge {
	if c == nil {
		return nil
	}
	return &models.Challenge{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Theme:       c.Theme,
		Difficulty:  string(c.Difficulty),
		CreatorUID:  c.CreatorUID,
		IsPublished: c.IsPublished,
		PlayCount:   c.PlayCount,
		Questions:   models.QuestionList(c.Questions),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *sqlxChallengeRepository) Save(ctx context.Context, challenge *domain.Challenge) error {
	model := fromDomainChallenge(challenge)
	model.UpdatedAt = time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = model.UpdatedAt
	}

	query := `
		INSERT INTO challenges (id, title, description, theme, difficulty, creator_uid, is_published, play_count, questions, created_at, updated_at)
		VALUES (:id, :title, :description, :theme, :difficulty, :creator_uid, :is_published, :play_count, :questions, :created_at, :updated_at)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			theme = excluded.theme,
			difficulty = excluded.difficulty,
			is_published = excluded.is_published,
			questions = excluded.questions,
			updated_at = excluded.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return domain.NewInternalError("failed to save challenge", err)
	}
	return nil
}

func (r *sqlxChallengeRepository) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	var model models.Challenge
	query := `SELECT id, title, description, theme, difficulty, creator_uid, is_published, play_count, questions, created_at, updated_at
		FROM challenges WHERE id = ?`
	err := r.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewInternalError("failed to get challenge", err)
	}
	return toDomainChallenge(&model), nil
}

func (r *sqlxChallengeRepository) ListPublished(ctx context.Context, limit int) ([]*domain.Challenge, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.Challenge
	query := `SELECT id, title, description, theme, difficulty, creator_uid, is_published, play_count, questions, created_at, updated_at
		FROM challenges WHERE is_published = 1 ORDER BY created_at DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, domain.NewInternalError("failed to list challenges", err)
	}
	challenges := make([]*domain.Challenge, 0, len(rows))
	for i := range rows {
		challenges = append(challenges, toDomainChallenge(&rows[i]))
	}
	return challenges, nil
}

func (r *sqlxChallengeRepository) IncrementPlayCount(ctx context.Context, id string) error {
	query := `UPDATE challenges SET play_count = play_count + 1 WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return domain.NewInternalError("failed to increment play count", err)
	}
	return nil
}
