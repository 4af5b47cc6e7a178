package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/simonrowe/mealdex-server/internal/errors"
	"github.com/simonrowe/mealdex-server/internal/store"
)

func TestCreateRecipe_ResolvesTagsAndIngredients(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	recipe, err := svc.recipes.Create(ctx, user.ID, CreateRecipeRequest{
		Title:       "Lemonade",
		TimeMinutes: 5,
		Price:       1.50,
		Tags:        []string{"Summer", "Drinks"},
		Ingredients: []string{"Lemon", "Sugar", "Water"},
	})
	require.NoError(t, err)
	require.NotZero(t, recipe.ID)

	tagNames := make([]string, len(recipe.Tags))
	for i, tag := range recipe.Tags {
		tagNames[i] = tag.Name
	}
	assert.ElementsMatch(t, []string{"Summer", "Drinks"}, tagNames)

	ingNames := make([]string, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		ingNames[i] = ing.Name
	}
	assert.ElementsMatch(t, []string{"Lemon", "Sugar", "Water"}, ingNames)
}

func TestCreateRecipe_ReusesExistingByExactName(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	first, err := svc.recipes.Create(ctx, user.ID, CreateRecipeRequest{
		Title:       "Lemon Tart",
		Ingredients: []string{"Lemon"},
	})
	require.NoError(t, err)

	second, err := svc.recipes.Create(ctx, user.ID, CreateRecipeRequest{
		Title:       "Lemon Posset",
		Ingredients: []string{"Lemon"},
	})
	require.NoError(t, err)

	// Same name resolves to the same ingredient row, no duplicate.
	require.Len(t, first.Ingredients, 1)
	require.Len(t, second.Ingredients, 1)
	assert.Equal(t, first.Ingredients[0].ID, second.Ingredients[0].ID)

	all, err := svc.ingredients.List(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateRecipe_Validation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	tests := []struct {
		name string
		req  CreateRecipeRequest
	}{
		{"missing title", CreateRecipeRequest{TimeMinutes: 5}},
		{"negative time", CreateRecipeRequest{Title: "X", TimeMinutes: -1}},
		{"negative price", CreateRecipeRequest{Title: "X", Price: -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.recipes.Create(ctx, user.ID, tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
		})
	}
}

func TestGetRecipe_CrossUser(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	owner := registerTestUser(t, svc, "owner@example.com")
	other := registerTestUser(t, svc, "other@example.com")

	recipe, err := svc.recipes.Create(ctx, owner.ID, CreateRecipeRequest{Title: "Private Dish"})
	require.NoError(t, err)

	_, err = svc.recipes.Get(ctx, other.ID, recipe.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListRecipes_MostRecentFirst(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	for _, title := range []string{"Monday", "Tuesday", "Wednesday"} {
		_, err := svc.recipes.Create(ctx, user.ID, CreateRecipeRequest{Title: title})
		require.NoError(t, err)
	}

	recipes, err := svc.recipes.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Wednesday", recipes[0].Title)
	assert.Equal(t, "Tuesday", recipes[1].Title)
	assert.Equal(t, "Monday", recipes[2].Title)
}

func TestUpdateRecipe_ReplacesAssociations(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	recipe, err := svc.recipes.Create(ctx, user.ID, CreateRecipeRequest{
		Title: "Soup",
		Tags:  []string{"Winter"},
	})
	require.NoError(t, err)

	updated, err := svc.recipes.Update(ctx, user.ID, recipe.ID, CreateRecipeRequest{
		Title: "Gazpacho",
		Tags:  []string{"Summer"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Gazpacho", updated.Title)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "Summer", updated.Tags[0].Name)

	// The Winter tag still exists, just unassigned.
	tags, err := svc.tags.List(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	assigned, err := svc.tags.List(ctx, user.ID, true)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "Summer", assigned[0].Name)
}

func TestPatchRecipe_PartialUpdate(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	recipe, err := svc.recipes.Create(ctx, user.ID, CreateRecipeRequest{
		Title:       "Original",
		Description: "Keep me",
		TimeMinutes: 60,
		Price:       10,
		Link:        "https://example.com/original",
		Tags:        []string{"Keeper"},
	})
	require.NoError(t, err)

	newTitle := "Patched"
	patched, err := svc.recipes.Patch(ctx, user.ID, recipe.ID, PatchRecipeRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)

	// Only the title changed; everything else is retained.
	assert.Equal(t, "Patched", patched.Title)
	assert.Equal(t, "Keep me", patched.Description)
	assert.Equal(t, 60, patched.TimeMinutes)
	assert.Equal(t, 10.0, patched.Price)
	assert.Equal(t, "https://example.com/original", patched.Link)
	require.Len(t, patched.Tags, 1)
	assert.Equal(t, "Keeper", patched.Tags[0].Name)
}

func TestPatchRecipe_EmptyTagListClears(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	recipe, err := svc.recipes.Create(ctx, user.ID, CreateRecipeRequest{
		Title: "Tagged",
		Tags:  []string{"A", "B"},
	})
	require.NoError(t, err)

	empty := []string{}
	patched, err := svc.recipes.Patch(ctx, user.ID, recipe.ID, PatchRecipeRequest{Tags: &empty})
	require.NoError(t, err)
	assert.Empty(t, patched.Tags)
}

func TestDeleteRecipe_Terminal(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	recipe, err := svc.recipes.Create(ctx, user.ID, CreateRecipeRequest{Title: "Ephemeral"})
	require.NoError(t, err)

	require.NoError(t, svc.recipes.Delete(ctx, user.ID, recipe.ID))

	_, err = svc.recipes.Get(ctx, user.ID, recipe.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.recipes.Delete(ctx, user.ID, recipe.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
