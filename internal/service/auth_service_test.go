package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginVerify(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, session, err := env.auth.Signup(ctx, "  Alice@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, session.Token)

	verified, err := env.auth.Verify(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	_, loginSession, err := env.auth.Login(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, session.Token, loginSession.Token)
}

func TestSignupExistingEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.auth.Signup(ctx, "alice@example.com")
	require.NoError(t, err)

	_, _, err = env.auth.Signup(ctx, "alice@example.com")
	require.ErrorIs(t, err, ErrConflict)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Login(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAuthValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.auth.Signup(ctx, "   ")
	require.ErrorIs(t, err, ErrValidation)

	_, _, err = env.auth.Login(ctx, "not-an-email")
	require.ErrorIs(t, err, ErrValidation)
}

func TestVerifyRejectsUnknownAndExpiredTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Verify(ctx, "bogus")
	require.ErrorIs(t, err, ErrUnauthorized)

	user := env.user(t, "alice@example.com")
	expired, err := env.sessions.Create(ctx, user.ID, "expired-token", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = env.auth.Verify(ctx, expired.Token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, session, err := env.auth.Signup(ctx, "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, session.Token))

	_, err = env.auth.Verify(ctx, session.Token)
	require.ErrorIs(t, err, ErrUnauthorized)
}
