package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/simonrowe/mealdex-server/internal/auth"
	"github.com/simonrowe/mealdex-server/internal/domain"
	domainerrors "github.com/simonrowe/mealdex-server/internal/errors"
	"github.com/simonrowe/mealdex-server/internal/id"
	"github.com/simonrowe/mealdex-server/internal/store"
)

// SessionService manages refresh token sessions: creation at login,
// rotation at refresh, and removal at logout.
type SessionService struct {
	store        store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(store store.Store, tokenService *auth.TokenService, logger *slog.Logger) *SessionService {
	return &SessionService{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// SessionResponse contains the token pair handed to a client.
type SessionResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// CreateSession mints a fresh token pair for the user and persists the
// session with the refresh token's hash.
func (s *SessionService) CreateSession(ctx context.Context, user *domain.User) (*SessionResponse, error) {
	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	sessionID, err := id.Generate("session")
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:               sessionID,
		UserID:           user.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		ExpiresAt:        now.Add(s.tokenService.RefreshTokenDuration()),
		CreatedAt:        now,
		LastSeenAt:       now,
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &SessionResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  now.Add(s.tokenService.AccessTokenDuration()),
		RefreshTokenExpiresAt: session.ExpiresAt,
	}, nil
}

// RefreshSession validates a refresh token, rotates it, and returns a new
// token pair. Expired or unknown tokens fail with an unauthorized error.
func (s *SessionService) RefreshSession(ctx context.Context, refreshToken string) (*domain.User, *SessionResponse, error) {
	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		return nil, nil, domainerrors.Unauthorized("invalid refresh token")
	}

	if session.IsExpired() {
		// Clean up eagerly; the periodic sweep would get it anyway.
		if err := s.store.DeleteSession(ctx, session.ID); err != nil {
			s.logger.Warn("failed to delete expired session", "session_id", session.ID, "error", err)
		}
		return nil, nil, domainerrors.Unauthorized("refresh token expired")
	}

	user, err := s.store.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, domainerrors.Unauthorized("invalid refresh token")
	}

	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate access token: %w", err)
	}

	newRefreshToken, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, nil, fmt.Errorf("generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	newExpiry := now.Add(s.tokenService.RefreshTokenDuration())
	if err := s.store.TouchSession(ctx, session.ID, auth.HashRefreshToken(newRefreshToken), newExpiry); err != nil {
		return nil, nil, fmt.Errorf("rotate session: %w", err)
	}

	return user, &SessionResponse{
		AccessToken:           accessToken,
		RefreshToken:          newRefreshToken,
		AccessTokenExpiresAt:  now.Add(s.tokenService.AccessTokenDuration()),
		RefreshTokenExpiresAt: newExpiry,
	}, nil
}

// DeleteSessionByToken removes the session matching a refresh token.
// Unknown tokens are a no-op: logout is idempotent.
func (s *SessionService) DeleteSessionByToken(ctx context.Context, refreshToken string) error {
	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if err == store.ErrNotFound {
			return nil
		}
		return fmt.Errorf("lookup session: %w", err)
	}

	if err := s.store.DeleteSession(ctx, session.ID); err != nil && err != store.ErrNotFound {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all sessions past their expiry.
func (s *SessionService) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	if n > 0 {
		s.logger.Info("cleaned up expired sessions", "count", n)
	}
	return n, nil
}
