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

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.UserProfile {
	if m == nil {
		return nil
	}
	return &domain.UserProfile{
		UID:                 m.UID,
		Email:               m.Email,
		DisplayName:         m.DisplayName,
		TotalXP:             m.TotalXP,
		ChallengesCompleted: m.ChallengesCompleted,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func (r *sqlxUserRepository) GetByUID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	var model models.User
	query := `SELECT uid, email, display_name, total_xp, challenges_completed, created_at, updated_at
		FROM users WHERE uid = ?`
	err := r.db.GetContext(ctx, &model, query, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewInternalError("failed to get user", err)
	}
	return toDomainUser(&model), nil
}

func (r *sqlxUserRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	now := time.Now()
	model := &models.User{
		UID:                 profile.UID,
		Email:               profile.Email,
		DisplayName:         profile.DisplayName,
		TotalXP:             profile.TotalXP,
		ChallengesCompleted: profile.ChallengesCompleted,
		CreatedAt:           profile.CreatedAt,
		UpdatedAt:           now,
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}

	// Existing XP totals are not overwritten here; AddXP owns them.
	query := `
		INSERT INTO users (uid, email, display_name, total_xp, challenges_completed, created_at, updated_at)
		VALUES (:uid, :email, :display_name, :total_xp, :challenges_completed, :created_at, :updated_at)
		ON CONFLICT(uid) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			updated_at = excluded.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return domain.NewInternalError("failed to upsert user", err)
	}
	return nil
}

func (r *sqlxUserRepository) AddXP(ctx context.Context, uid string, xp int) error {
	query := `UPDATE users SET total_xp = total_xp + ?, challenges_completed = challenges_completed + 1, updated_at = ? WHERE uid = ?`
	if _, err := r.db.ExecContext(ctx, query, xp, time.Now(), uid); err != nil {
		return domain.NewInternalError("failed to add xp", err)
	}
	return nil
}

func (r *sqlxUserRepository) TopByXP(ctx context.Context, limit int) ([]*domain.UserProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.User
	query := `SELECT uid, email, display_name, total_xp, challenges_completed, created_at, updated_at
		FROM users ORDER BY total_xp DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, domain.NewInternalError("failed to list top users", err)
	}
	users := make([]*domain.UserProfile, 0, len(rows))
	for i := range rows {
		users = append(users, toDomainUser(&rows[i]))
	}
	return users, nil
}
