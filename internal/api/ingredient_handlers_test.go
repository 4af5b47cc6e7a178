package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) listIngredients(t *testing.T, token, query string) []IngredientResponse {
	t.Helper()

	resp := ts.api.Get("/api/v1/ingredients"+query, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[[]IngredientResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestListIngredients_DescendingByName(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "chef@example.com")

	ts.createRecipe(t, token, map[string]any{
		"title":       "Stir Fry",
		"ingredients": []string{"Carrot", "Tofu", "Ginger"},
	})

	ingredients := ts.listIngredients(t, token, "")
	require.Len(t, ingredients, 3)
	assert.Equal(t, "Tofu", ingredients[0].Name)
	assert.Equal(t, "Ginger", ingredients[1].Name)
	assert.Equal(t, "Carrot", ingredients[2].Name)
}

func TestUpdateIngredient_Rename(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "chef@example.com")

	ts.createRecipe(t, token, map[string]any{"title": "Stir Fry", "ingredients": []string{"Tofuu"}})
	ingredients := ts.listIngredients(t, token, "")
	require.Len(t, ingredients, 1)

	resp := ts.api.Patch(fmt.Sprintf("/api/v1/ingredients/%d", ingredients[0].ID),
		map[string]any{"name": "Tofu"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[IngredientResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "Tofu", envelope.Data.Name)
}

func TestUpdateIngredient_SiblingNameAllowed(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "chef@example.com")

	ts.createRecipe(t, token, map[string]any{"title": "Soup", "ingredients": []string{"Salt", "Pepper"}})
	ingredients := ts.listIngredients(t, token, "")
	require.Len(t, ingredients, 2)
	require.Equal(t, "Salt", ingredients[0].Name)

	// Renaming onto a sibling's name succeeds; both rows survive.
	resp := ts.api.Patch(fmt.Sprintf("/api/v1/ingredients/%d", ingredients[1].ID),
		map[string]any{"name": "Salt"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	after := ts.listIngredients(t, token, "")
	require.Len(t, after, 2)
	for _, ing := range after {
		assert.Equal(t, "Salt", ing.Name)
	}
}

func TestUpdateIngredient_RejectsBlankName(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "chef@example.com")

	ts.createRecipe(t, token, map[string]any{"title": "Stir Fry", "ingredients": []string{"Tofu"}})
	ingredients := ts.listIngredients(t, token, "")
	require.Len(t, ingredients, 1)

	for _, body := range []map[string]any{{"name": ""}, {}} {
		resp := ts.api.Patch(fmt.Sprintf("/api/v1/ingredients/%d", ingredients[0].ID),
			body,
			"Authorization: Bearer "+token)
		require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

		var envelope testEnvelope[any]
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
		assert.Equal(t, "VALIDATION", envelope.Code)
	}

	after := ts.listIngredients(t, token, "")
	require.Len(t, after, 1)
	assert.Equal(t, "Tofu", after[0].Name)
}

func TestDeleteIngredient(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "chef@example.com")

	ts.createRecipe(t, token, map[string]any{"title": "Stir Fry", "ingredients": []string{"Tofu"}})
	ingredients := ts.listIngredients(t, token, "")
	require.Len(t, ingredients, 1)

	resp := ts.api.Delete(fmt.Sprintf("/api/v1/ingredients/%d", ingredients[0].ID), "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	assert.Empty(t, ts.listIngredients(t, token, ""))
}

// Full scenario: two recipes share an ingredient, one carries extras.
// assigned_only lists each ingredient exactly once; clearing one recipe's
// list leaves the shared ingredient assigned through the other.
func TestScenario_SharedIngredientAssignment(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "chef@example.com")

	eggsID := ts.createRecipe(t, token, map[string]any{
		"title":       "Scrambled Eggs",
		"ingredients": []string{"Egg", "Butter"},
	})
	ts.createRecipe(t, token, map[string]any{
		"title":       "Lemon Curd",
		"ingredients": []string{"Egg", "Lemon"},
	})

	// "Egg" shows once despite riding on two recipes; descending name order.
	assigned := ts.listIngredients(t, token, "?assigned_only=1")
	require.Len(t, assigned, 3)
	assert.Equal(t, "Lemon", assigned[0].Name)
	assert.Equal(t, "Egg", assigned[1].Name)
	assert.Equal(t, "Butter", assigned[2].Name)

	// Clearing the eggs recipe unassigns Butter but Egg survives through
	// the curd.
	resp := ts.api.Patch(fmt.Sprintf("/api/v1/recipes/%d", eggsID),
		map[string]any{"ingredients": []string{}},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	assigned = ts.listIngredients(t, token, "?assigned_only=1")
	require.Len(t, assigned, 2)
	assert.Equal(t, "Lemon", assigned[0].Name)
	assert.Equal(t, "Egg", assigned[1].Name)

	// The full vocabulary still holds all three.
	assert.Len(t, ts.listIngredients(t, token, ""), 3)
}
