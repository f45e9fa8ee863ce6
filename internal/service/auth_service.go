package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
	"github.com/mahamadoubmaiga/Koraprompt/internal/repository"
)

// AuthService is the identity provider: it resolves an email to a stable
// user, creates users on signup, and issues opaque session tokens. There is
// no password material in this system.
type AuthService struct {
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	ttl      time.Duration
}

func NewAuthService(users *repository.UserRepository, sessions *repository.SessionRepository, ttl time.Duration) *AuthService {
	return &AuthService{users: users, sessions: sessions, ttl: ttl}
}

func (s *AuthService) Signup(ctx context.Context, email string) (domain.User, domain.Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("%w: user %s already exists", ErrConflict, email)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.Session{}, err
	}

	user, err := s.users.Create(ctx, email)
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email string) (domain.User, domain.Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, domain.Session{}, translateNoRows(err, "user", email)
	}
	return s.issueSession(ctx, user)
}

// Verify resolves a session token to its user, rejecting unknown and expired
// tokens.
func (s *AuthService) Verify(ctx context.Context, token string) (domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, fmt.Errorf("%w: unknown session", ErrUnauthorized)
		}
		return domain.User{}, err
	}
	if session.ExpiresAt.Before(time.Now()) {
		_ = s.sessions.DeleteByToken(ctx, token)
		return domain.User{}, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	user, err := s.users.Get(ctx, session.UserID)
	if err != nil {
		return domain.User{}, translateNoRows(err, "user", session.UserID)
	}
	_ = s.sessions.Touch(ctx, session.ID)
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteByToken(ctx, token)
}

func (s *AuthService) issueSession(ctx context.Context, user domain.User) (domain.User, domain.Session, error) {
	token, err := generateToken()
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	session, err := s.sessions.Create(ctx, user.ID, token, time.Now().Add(s.ttl))
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	return user, session, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", validationf("a valid email is required")
	}
	return email, nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
