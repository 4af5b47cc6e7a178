package service

import (
	"context"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simonrowe/mealdex-server/internal/auth"
	"github.com/simonrowe/mealdex-server/internal/domain"
	"github.com/simonrowe/mealdex-server/internal/store/sqlite"
	"github.com/simonrowe/mealdex-server/internal/validation"
)

// testServices bundles the full service stack over a temp sqlite store.
type testServices struct {
	auth        *AuthService
	sessions    *SessionService
	recipes     *RecipeService
	tags        *TagService
	ingredients *IngredientService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	authKey, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(
		hex.EncodeToString(authKey),
		15*time.Minute,
		30*24*time.Hour,
	)
	require.NoError(t, err)

	v := validation.New()

	sessionService := NewSessionService(s, tokenService, logger)
	authService := NewAuthService(s, tokenService, sessionService, v, logger)
	tagService := NewTagService(s, v, logger)
	ingredientService := NewIngredientService(s, v, logger)
	recipeService := NewRecipeService(s, tagService, ingredientService, v, logger)

	return &testServices{
		auth:        authService,
		sessions:    sessionService,
		recipes:     recipeService,
		tags:        tagService,
		ingredients: ingredientService,
	}
}

// registerTestUser creates a user through the normal registration path.
func registerTestUser(t *testing.T, svc *testServices, email string) *domain.User {
	t.Helper()
	user, err := svc.auth.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "correct horse battery staple",
		Name:     "Test Chef",
	})
	require.NoError(t, err)
	return user
}
