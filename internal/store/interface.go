package store

import (
	"context"
	"time"

	"github.com/simonrowe/mealdex-server/internal/domain"
)

// Store is the persistence interface the service layer depends on.
// The sqlite implementation is the only one in tree; the interface exists so
// services never reach for backend specifics.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	TouchSession(ctx context.Context, sessionID, newTokenHash string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	// Recipes
	CreateRecipe(ctx context.Context, r *domain.Recipe) error
	GetRecipe(ctx context.Context, userID string, recipeID int64) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, userID string) ([]*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, r *domain.Recipe) error
	DeleteRecipe(ctx context.Context, userID string, recipeID int64) error
	SetRecipeTags(ctx context.Context, recipeID int64, tagIDs []int64) error
	SetRecipeIngredients(ctx context.Context, recipeID int64, ingredientIDs []int64) error
	GetRecipeTags(ctx context.Context, recipeID int64) ([]*domain.Tag, error)
	GetRecipeIngredients(ctx context.Context, recipeID int64) ([]*domain.Ingredient, error)

	// Tags
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTag(ctx context.Context, userID string, tagID int64) (*domain.Tag, error)
	GetTagByName(ctx context.Context, userID, name string) (*domain.Tag, error)
	ListTags(ctx context.Context, userID string, assignedOnly bool) ([]*domain.Tag, error)
	FindOrCreateTag(ctx context.Context, userID, name string) (*domain.Tag, bool, error)
	UpdateTag(ctx context.Context, t *domain.Tag) error
	DeleteTag(ctx context.Context, userID string, tagID int64) error

	// Ingredients
	CreateIngredient(ctx context.Context, ing *domain.Ingredient) error
	GetIngredient(ctx context.Context, userID string, ingredientID int64) (*domain.Ingredient, error)
	GetIngredientByName(ctx context.Context, userID, name string) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context, userID string, assignedOnly bool) ([]*domain.Ingredient, error)
	FindOrCreateIngredient(ctx context.Context, userID, name string) (*domain.Ingredient, bool, error)
	UpdateIngredient(ctx context.Context, ing *domain.Ingredient) error
	DeleteIngredient(ctx context.Context, userID string, ingredientID int64) error

	Close() error
}
