package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bikramkgupta/care-circle-journal/utils"
)

func TestAuthServiceSignupAndLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	secret := []byte("test-secret")
	svc := NewAuthService(db, testLogger(), secret, time.Hour)

	user, token, err := svc.Signup(ctx, "Amy@Example.com", "password123", "Amy")
	require.NoError(t, err)
	require.Equal(t, "amy@example.com", user.Email)
	require.NotEmpty(t, token)
	require.NotEqual(t, "password123", user.PasswordHash, "password must be hashed")

	// Token carries the user id.
	parsed, err := utils.ParseUserID(token, secret)
	require.NoError(t, err)
	require.Equal(t, user.ID, parsed)

	// Duplicate email rejected regardless of case.
	_, _, err = svc.Signup(ctx, "amy@example.com", "password123", "Amy Again")
	require.ErrorIs(t, err, ErrEmailTaken)

	// Login round-trip.
	logged, token2, err := svc.Login(ctx, "amy@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)
	require.NotEmpty(t, token2)

	_, _, err = svc.Login(ctx, "amy@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Amy", got.Name)
}

func TestAuthServiceSignupValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewAuthService(db, testLogger(), []byte("s"), time.Hour)

	var verr *ValidationError

	_, _, err := svc.Signup(ctx, "not-an-email", "password123", "Amy")
	require.ErrorAs(t, err, &verr)

	_, _, err = svc.Signup(ctx, "amy@example.com", "short", "Amy")
	require.ErrorAs(t, err, &verr)

	_, _, err = svc.Signup(ctx, "amy@example.com", "password123", "A")
	require.ErrorAs(t, err, &verr)
}
