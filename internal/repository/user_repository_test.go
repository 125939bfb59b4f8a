package repository

import (
	"context"
	"testing"
	"time"

	"quizquest/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryGetByUID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"uid", "email", "display_name", "total_xp", "challenges_completed", "created_at", "updated_at"}).
		AddRow("u1", "u@example.com", "U", 300, 4, now, now)

	mock.ExpectQuery(`SELECT .* FROM users WHERE uid = \?`).
		WithArgs("u1").
		WillReturnRows(rows)

	profile, err := repo.GetByUID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 300, profile.TotalXP)
	assert.Equal(t, 4, profile.ChallengesCompleted)
}

func TestUserRepositoryGetByUIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXUserRepository(db)

	mock.ExpectQuery(`SELECT .* FROM users WHERE uid = \?`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"uid"}))

	profile, err := repo.GetByUID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestUserRepositoryUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), domain.NewUserProfile("u1", "u@example.com", ""))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryAddXP(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXUserRepository(db)

	mock.ExpectExec(`UPDATE users SET total_xp = total_xp \+ \?`).
		WithArgs(125, sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AddXP(context.Background(), "u1", 125))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryTopByXP(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"uid", "email", "display_name", "total_xp", "challenges_completed", "created_at", "updated_at"}).
		AddRow("a", "a@example.com", "Alice", 900, 9, now, now).
		AddRow("b", "b@example.com", "Bob", 500, 5, now, now)

	mock.ExpectQuery(`SELECT .* FROM users ORDER BY total_xp DESC LIMIT \?`).
		WithArgs(2).
		WillReturnRows(rows)

	users, err := repo.TopByXP(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].DisplayName)
	assert.Equal(t, 500, users[1].TotalXP)
}
