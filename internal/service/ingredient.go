package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/simonrowe/mealdex-server/internal/domain"
	"github.com/simonrowe/mealdex-server/internal/store"
	"github.com/simonrowe/mealdex-server/internal/validation"
)

// IngredientService manages a user's ingredients. Like tags, ingredients are
// created implicitly through recipe writes.
type IngredientService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(store store.Store, validator *validation.Validator, logger *slog.Logger) *IngredientService {
	return &IngredientService{store: store, validator: validator, logger: logger}
}

// UpdateIngredientRequest carries the replacement name for an ingredient rename.
type UpdateIngredientRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// List returns the user's ingredients, name-descending. When assignedOnly is
// true, only ingredients used by at least one recipe are returned, deduplicated.
func (s *IngredientService) List(ctx context.Context, userID string, assignedOnly bool) ([]*domain.Ingredient, error) {
	return s.store.ListIngredients(ctx, userID, assignedOnly)
}

// Update renames one of the user's ingredients. The new name may collide
// with a sibling ingredient's; names are labels, not keys.
func (s *IngredientService) Update(ctx context.Context, userID string, ingredientID int64, name string) (*domain.Ingredient, error) {
	if err := s.validator.Validate(&UpdateIngredientRequest{Name: name}); err != nil {
		return nil, err
	}

	ing, err := s.store.GetIngredient(ctx, userID, ingredientID)
	if err != nil {
		return nil, err
	}

	ing.Name = name
	ing.Touch()
	if err := s.store.UpdateIngredient(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// Delete removes one of the user's ingredients. Recipes that used it lose
// the association but are otherwise untouched.
func (s *IngredientService) Delete(ctx context.Context, userID string, ingredientID int64) error {
	return s.store.DeleteIngredient(ctx, userID, ingredientID)
}

// ResolveOrCreate maps ingredient names to owned ingredients, creating any
// that don't exist yet. Resolution is by exact name; duplicates in the input
// collapse to one ingredient.
func (s *IngredientService) ResolveOrCreate(ctx context.Context, userID string, names []string) ([]*domain.Ingredient, error) {
	seen := make(map[string]bool, len(names))
	ingredients := make([]*domain.Ingredient, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		ing, _, err := s.store.FindOrCreateIngredient(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("resolve ingredient %q: %w", name, err)
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, nil
}
