package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, userID, token string, expiresAt time.Time) (domain.Session, error) {
	now := time.Now().UTC()
	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		LastUsed:  now,
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO user_sessions (id, user_id, token, expires_at, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), session.ID, session.UserID, session.Token, session.ExpiresAt, session.CreatedAt, session.LastUsed)
	return session, err
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (domain.Session, error) {
	var session domain.Session
	err := r.db.GetContext(ctx, &session, r.db.Rebind(`
		SELECT id, user_id, token, expires_at, created_at, last_used_at
		FROM user_sessions
		WHERE token = ?
	`), token)
	return session, err
}

func (r *SessionRepository) Touch(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE user_sessions SET last_used_at = ? WHERE id = ?
	`), time.Now().UTC(), id)
	return err
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		DELETE FROM user_sessions WHERE token = ?
	`), token)
	return err
}
