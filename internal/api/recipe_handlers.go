package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/simonrowe/mealdex-server/internal/domain"
	"github.com/simonrowe/mealdex-server/internal/service"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns the authenticated user's recipes, most recent first",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createRecipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes",
		Summary:       "Create recipe",
		Description:   "Creates a recipe owned by the authenticated user",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a single recipe with its tags and ingredients",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPut,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Replace recipe",
		Description: "Replaces every field of a recipe, including its tag and ingredient lists",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "patchRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Updates the provided fields of a recipe; absent fields keep their values",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePatchRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteRecipe",
		Method:        http.MethodDelete,
		Path:          "/api/v1/recipes/{id}",
		Summary:       "Delete recipe",
		Description:   "Deletes a recipe; its tags and ingredients remain",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteRecipe)
}

// === DTOs ===

// RecipeSummary is the list shape: identifying fields without the
// description or association lists.
type RecipeSummary struct {
	ID          int64   `json:"id" doc:"Recipe ID"`
	Title       string  `json:"title" doc:"Recipe title"`
	TimeMinutes int     `json:"time_minutes" doc:"Preparation time in minutes"`
	Price       float64 `json:"price" doc:"Estimated cost"`
	Link        string  `json:"link" doc:"External reference URL"`
}

// RecipeDetail is the full shape returned by detail, create, and update
// operations.
type RecipeDetail struct {
	ID          int64    `json:"id" doc:"Recipe ID"`
	Title       string   `json:"title" doc:"Recipe title"`
	Description string   `json:"description" doc:"Free-form description"`
	TimeMinutes int      `json:"time_minutes" doc:"Preparation time in minutes"`
	Price       float64  `json:"price" doc:"Estimated cost"`
	Link        string   `json:"link" doc:"External reference URL"`
	Tags        []string `json:"tags" doc:"Tag names attached to this recipe"`
	Ingredients []string `json:"ingredients" doc:"Ingredient names attached to this recipe"`
}

// RecipeListOutput wraps the recipe list for Huma.
type RecipeListOutput struct {
	Body []RecipeSummary
}

// RecipeDetailOutput wraps a single recipe for Huma.
type RecipeDetailOutput struct {
	Body RecipeDetail
}

// ListRecipesInput carries the auth header for the list operation.
type ListRecipesInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

// RecipeRequest is the request body for create and full update.
// Constraints are enforced in the service layer.
type RecipeRequest struct {
	Title       string   `json:"title,omitempty" doc:"Recipe title"`
	Description string   `json:"description,omitempty" doc:"Free-form description"`
	TimeMinutes int      `json:"time_minutes,omitempty" doc:"Preparation time in minutes"`
	Price       float64  `json:"price,omitempty" doc:"Estimated cost"`
	Link        string   `json:"link,omitempty" doc:"External reference URL"`
	Tags        []string `json:"tags,omitempty" doc:"Tag names; missing tags are created"`
	Ingredients []string `json:"ingredients,omitempty" doc:"Ingredient names; missing ingredients are created"`
}

// CreateRecipeInput wraps the create request for Huma.
type CreateRecipeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          RecipeRequest
}

// RecipeIDInput identifies a recipe by path parameter.
type RecipeIDInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Recipe ID"`
}

// UpdateRecipeInput wraps the full update request for Huma.
type UpdateRecipeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Recipe ID"`
	Body          RecipeRequest
}

// PatchRecipeBody is the partial update body. Absent fields are left
// untouched; an explicit empty tag or ingredient list clears the set.
type PatchRecipeBody struct {
	Title       *string   `json:"title,omitempty" doc:"New title"`
	Description *string   `json:"description,omitempty" doc:"New description"`
	TimeMinutes *int      `json:"time_minutes,omitempty" doc:"New preparation time"`
	Price       *float64  `json:"price,omitempty" doc:"New estimated cost"`
	Link        *string   `json:"link,omitempty" doc:"New reference URL"`
	Tags        *[]string `json:"tags,omitempty" doc:"Replacement tag names"`
	Ingredients *[]string `json:"ingredients,omitempty" doc:"Replacement ingredient names"`
}

// PatchRecipeInput wraps the partial update request for Huma.
type PatchRecipeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Recipe ID"`
	Body          PatchRecipeBody
}

// DeleteRecipeOutput is the empty 204 response for recipe deletion.
type DeleteRecipeOutput struct{}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, input *ListRecipesInput) (*RecipeListOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipes, err := s.services.Recipe.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		summaries = append(summaries, mapRecipeSummary(recipe))
	}

	return &RecipeListOutput{Body: summaries}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.Create(ctx, userID, mapRecipeRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &RecipeDetailOutput{Body: mapRecipeDetail(recipe)}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *RecipeIDInput) (*RecipeDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeDetailOutput{Body: mapRecipeDetail(recipe)}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.Update(ctx, userID, input.ID, mapRecipeRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &RecipeDetailOutput{Body: mapRecipeDetail(recipe)}, nil
}

func (s *Server) handlePatchRecipe(ctx context.Context, input *PatchRecipeInput) (*RecipeDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.Patch(ctx, userID, input.ID, service.PatchRecipeRequest{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		TimeMinutes: input.Body.TimeMinutes,
		Price:       input.Body.Price,
		Link:        input.Body.Link,
		Tags:        input.Body.Tags,
		Ingredients: input.Body.Ingredients,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeDetailOutput{Body: mapRecipeDetail(recipe)}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *RecipeIDInput) (*DeleteRecipeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipe.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &DeleteRecipeOutput{}, nil
}

// === Mapping ===

func mapRecipeRequest(body RecipeRequest) service.CreateRecipeRequest {
	return service.CreateRecipeRequest{
		Title:       body.Title,
		Description: body.Description,
		TimeMinutes: body.TimeMinutes,
		Price:       body.Price,
		Link:        body.Link,
		Tags:        body.Tags,
		Ingredients: body.Ingredients,
	}
}

func mapRecipeSummary(recipe *domain.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
	}
}

func mapRecipeDetail(recipe *domain.Recipe) RecipeDetail {
	tags := make([]string, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, tag.Name)
	}

	ingredients := make([]string, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, ingredient.Name)
	}

	return RecipeDetail{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Description: recipe.Description,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
}
