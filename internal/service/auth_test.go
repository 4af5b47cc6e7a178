package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/simonrowe/mealdex-server/internal/errors"
)

func TestRegister(t *testing.T) {
	svc := newTestServices(t)

	user, err := svc.auth.Register(context.Background(), RegisterRequest{
		Email:    "chef@example.com",
		Password: "a long enough password",
		Name:     "Chef",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(user.ID, "user-"))
	assert.Equal(t, "chef@example.com", user.Email)
	assert.Equal(t, "Chef", user.Name)
	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "a long enough password", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	registerTestUser(t, svc, "dup@example.com")

	_, err := svc.auth.Register(ctx, RegisterRequest{
		Email:    "DUP@example.com", // case differs, still the same address
		Password: "another fine password",
		Name:     "Imposter",
	})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeAlreadyExists, domainErr.Code)
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestServices(t)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "long enough pass", Name: "X"}},
		{"bad email", RegisterRequest{Email: "nope", Password: "long enough pass", Name: "X"}},
		{"short password", RegisterRequest{Email: "a@b.com", Password: "short", Name: "X"}},
		{"missing name", RegisterRequest{Email: "a@b.com", Password: "long enough pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.auth.Register(context.Background(), tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	registerTestUser(t, svc, "login@example.com")

	resp, err := svc.auth.Login(ctx, LoginRequest{
		Email:    "login@example.com",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "login@example.com", resp.User.Email)

	// The access token verifies back to the same user.
	user, claims, err := svc.auth.VerifyAccessToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	registerTestUser(t, svc, "victim@example.com")

	// Wrong password and unknown email produce the same error code.
	_, errWrongPass := svc.auth.Login(ctx, LoginRequest{
		Email:    "victim@example.com",
		Password: "not the password",
	})
	_, errNoUser := svc.auth.Login(ctx, LoginRequest{
		Email:    "nobody@example.com",
		Password: "not the password",
	})

	for _, err := range []error{errWrongPass, errNoUser} {
		require.Error(t, err)
		var domainErr *domainerrors.Error
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domainerrors.CodeInvalidCredentials, domainErr.Code)
	}
}

func TestRefreshTokens_RotatesRefreshToken(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	registerTestUser(t, svc, "refresh@example.com")
	login, err := svc.auth.Login(ctx, LoginRequest{
		Email:    "refresh@example.com",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)

	refreshed, err := svc.auth.RefreshTokens(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is dead after rotation.
	_, err = svc.auth.RefreshTokens(ctx, login.RefreshToken)
	require.Error(t, err)

	// The new one works.
	_, err = svc.auth.RefreshTokens(ctx, refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestLogout_Idempotent(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	registerTestUser(t, svc, "logout@example.com")
	login, err := svc.auth.Login(ctx, LoginRequest{
		Email:    "logout@example.com",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)

	require.NoError(t, svc.auth.Logout(ctx, login.RefreshToken))

	// Refresh after logout fails.
	_, err = svc.auth.RefreshTokens(ctx, login.RefreshToken)
	assert.Error(t, err)

	// Logging out again is fine.
	assert.NoError(t, svc.auth.Logout(ctx, login.RefreshToken))
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	svc := newTestServices(t)

	_, _, err := svc.auth.VerifyAccessToken(context.Background(), "v4.local.garbage")
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeUnauthorized, domainErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "profile@example.com")

	newName := "Renamed Chef"
	newPassword := "a brand new password"
	updated, err := svc.auth.UpdateProfile(ctx, user.ID, UpdateProfileRequest{
		Name:     &newName,
		Password: &newPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Chef", updated.Name)

	// Old password no longer works, new one does.
	_, err = svc.auth.Login(ctx, LoginRequest{Email: "profile@example.com", Password: "correct horse battery staple"})
	assert.Error(t, err)
	_, err = svc.auth.Login(ctx, LoginRequest{Email: "profile@example.com", Password: newPassword})
	assert.NoError(t, err)
}

func TestUpdateProfile_PartialLeavesPassword(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "partial@example.com")

	newName := "Only The Name"
	_, err := svc.auth.UpdateProfile(ctx, user.ID, UpdateProfileRequest{Name: &newName})
	require.NoError(t, err)

	// Password untouched.
	_, err = svc.auth.Login(ctx, LoginRequest{Email: "partial@example.com", Password: "correct horse battery staple"})
	assert.NoError(t, err)
}
