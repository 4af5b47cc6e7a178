package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/simonrowe/mealdex-server/internal/domain"
	"github.com/simonrowe/mealdex-server/internal/store"
	"github.com/simonrowe/mealdex-server/internal/validation"
)

// RecipeService manages a user's recipes and their tag/ingredient
// associations. Tag and ingredient names on recipe writes are resolved
// through the respective services, creating missing ones on the fly.
type RecipeService struct {
	store       store.Store
	tags        *TagService
	ingredients *IngredientService
	validator   *validation.Validator
	logger      *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	store store.Store,
	tags *TagService,
	ingredients *IngredientService,
	validator *validation.Validator,
	logger *slog.Logger,
) *RecipeService {
	return &RecipeService{
		store:       store,
		tags:        tags,
		ingredients: ingredients,
		validator:   validator,
		logger:      logger,
	}
}

// CreateRecipeRequest contains the full set of recipe fields.
// Tags and Ingredients carry names, not IDs; missing ones are created.
type CreateRecipeRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description"`
	TimeMinutes int      `json:"time_minutes" validate:"gte=0"`
	Price       float64  `json:"price" validate:"gte=0"`
	Link        string   `json:"link" validate:"omitempty,max=255"`
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
}

// PatchRecipeRequest contains optional recipe fields for partial update.
// Nil fields are left untouched; a non-nil Tags/Ingredients slice replaces
// the whole association set (an empty slice clears it).
type PatchRecipeRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string   `json:"description,omitempty"`
	TimeMinutes *int      `json:"time_minutes,omitempty" validate:"omitempty,gte=0"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Link        *string   `json:"link,omitempty" validate:"omitempty,max=255"`
	Tags        *[]string `json:"tags,omitempty"`
	Ingredients *[]string `json:"ingredients,omitempty"`
}

// List returns summaries of the user's recipes, most recent first.
// Associations are not loaded.
func (s *RecipeService) List(ctx context.Context, userID string) ([]*domain.Recipe, error) {
	return s.store.ListRecipes(ctx, userID)
}

// Get returns one of the user's recipes with tags and ingredients attached.
func (s *RecipeService) Get(ctx context.Context, userID string, recipeID int64) (*domain.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.loadAssociations(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Create validates and stores a new recipe, resolving tag and ingredient
// names to owned rows.
func (s *RecipeService) Create(ctx context.Context, userID string, req CreateRecipeRequest) (*domain.Recipe, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recipe := &domain.Recipe{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	if err := s.setAssociations(ctx, userID, recipe.ID, req.Tags, req.Ingredients); err != nil {
		return nil, err
	}

	if err := s.loadAssociations(ctx, recipe); err != nil {
		return nil, err
	}

	s.logger.Info("recipe created", "recipe_id", recipe.ID, "user_id", userID)
	return recipe, nil
}

// Update replaces all fields of one of the user's recipes. Absent tag and
// ingredient lists in the request clear the association sets, matching full
// replacement semantics.
func (s *RecipeService) Update(ctx context.Context, userID string, recipeID int64, req CreateRecipeRequest) (*domain.Recipe, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	recipe.Title = req.Title
	recipe.Description = req.Description
	recipe.TimeMinutes = req.TimeMinutes
	recipe.Price = req.Price
	recipe.Link = req.Link
	recipe.Touch()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	if err := s.setAssociations(ctx, userID, recipe.ID, req.Tags, req.Ingredients); err != nil {
		return nil, err
	}

	if err := s.loadAssociations(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Patch updates only the provided fields of one of the user's recipes.
func (s *RecipeService) Patch(ctx context.Context, userID string, recipeID int64, req PatchRecipeRequest) (*domain.Recipe, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
	recipe.Touch()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		tags, err := s.tags.ResolveOrCreate(ctx, userID, *req.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.store.SetRecipeTags(ctx, recipe.ID, tagIDs(tags)); err != nil {
			return nil, fmt.Errorf("set recipe tags: %w", err)
		}
	}
	if req.Ingredients != nil {
		ingredients, err := s.ingredients.ResolveOrCreate(ctx, userID, *req.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.store.SetRecipeIngredients(ctx, recipe.ID, ingredientIDs(ingredients)); err != nil {
			return nil, fmt.Errorf("set recipe ingredients: %w", err)
		}
	}

	if err := s.loadAssociations(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes one of the user's recipes. Tags and ingredients survive.
func (s *RecipeService) Delete(ctx context.Context, userID string, recipeID int64) error {
	return s.store.DeleteRecipe(ctx, userID, recipeID)
}

// setAssociations resolves names and replaces both association sets.
func (s *RecipeService) setAssociations(ctx context.Context, userID string, recipeID int64, tagNames, ingredientNames []string) error {
	tags, err := s.tags.ResolveOrCreate(ctx, userID, tagNames)
	if err != nil {
		return err
	}
	if err := s.store.SetRecipeTags(ctx, recipeID, tagIDs(tags)); err != nil {
		return fmt.Errorf("set recipe tags: %w", err)
	}

	ingredients, err := s.ingredients.ResolveOrCreate(ctx, userID, ingredientNames)
	if err != nil {
		return err
	}
	if err := s.store.SetRecipeIngredients(ctx, recipeID, ingredientIDs(ingredients)); err != nil {
		return fmt.Errorf("set recipe ingredients: %w", err)
	}
	return nil
}

// loadAssociations populates a recipe's tag and ingredient lists.
func (s *RecipeService) loadAssociations(ctx context.Context, recipe *domain.Recipe) error {
	tags, err := s.store.GetRecipeTags(ctx, recipe.ID)
	if err != nil {
		return fmt.Errorf("load recipe tags: %w", err)
	}
	recipe.Tags = tags

	ingredients, err := s.store.GetRecipeIngredients(ctx, recipe.ID)
	if err != nil {
		return fmt.Errorf("load recipe ingredients: %w", err)
	}
	recipe.Ingredients = ingredients
	return nil
}

func tagIDs(tags []*domain.Tag) []int64 {
	ids := make([]int64, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}

func ingredientIDs(ingredients []*domain.Ingredient) []int64 {
	ids := make([]int64, len(ingredients))
	for i, ing := range ingredients {
		ids[i] = ing.ID
	}
	return ids
}
