package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/simonrowe/mealdex-server/internal/domain"
)

func (s *Server) registerIngredientRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listIngredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients",
		Summary:     "List ingredients",
		Description: "Returns the authenticated user's ingredients ordered by name descending. With assigned_only, returns only ingredients attached to at least one recipe, without duplicates.",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListIngredients)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateIngredient",
		Method:      http.MethodPatch,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Rename ingredient",
		Description: "Renames an ingredient owned by the authenticated user",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteIngredient",
		Method:        http.MethodDelete,
		Path:          "/api/v1/ingredients/{id}",
		Summary:       "Delete ingredient",
		Description:   "Deletes an ingredient; recipes that carried it are unaffected",
		Tags:          []string{"Ingredients"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteIngredient)
}

// === DTOs ===

// IngredientResponse contains ingredient information in API responses.
type IngredientResponse struct {
	ID   int64  `json:"id" doc:"Ingredient ID"`
	Name string `json:"name" doc:"Ingredient name"`
}

// IngredientListOutput wraps the ingredient list for Huma.
type IngredientListOutput struct {
	Body []IngredientResponse
}

// IngredientOutput wraps a single ingredient for Huma.
type IngredientOutput struct {
	Body IngredientResponse
}

// ListIngredientsInput carries the auth header and optional assignment filter.
type ListIngredientsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	AssignedOnly  string `query:"assigned_only" doc:"When truthy (1, true, yes), only ingredients attached to a recipe"`
}

// UpdateIngredientBody is the request body for renaming an ingredient. Name
// is a pointer so an absent field reaches the service as blank and fails
// validation there.
type UpdateIngredientBody struct {
	Name *string `json:"name,omitempty" doc:"New ingredient name"`
}

// UpdateIngredientInput wraps the rename request for Huma.
type UpdateIngredientInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Ingredient ID"`
	Body          UpdateIngredientBody
}

// IngredientIDInput identifies an ingredient by path parameter.
type IngredientIDInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Ingredient ID"`
}

// DeleteIngredientOutput is the empty 204 response for ingredient deletion.
type DeleteIngredientOutput struct{}

// === Handlers ===

func (s *Server) handleListIngredients(ctx context.Context, input *ListIngredientsInput) (*IngredientListOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.services.Ingredient.List(ctx, userID, parseAssignedOnly(input.AssignedOnly))
	if err != nil {
		return nil, err
	}

	responses := make([]IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		responses = append(responses, mapIngredientResponse(ingredient))
	}

	return &IngredientListOutput{Body: responses}, nil
}

func (s *Server) handleUpdateIngredient(ctx context.Context, input *UpdateIngredientInput) (*IngredientOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	name := ""
	if input.Body.Name != nil {
		name = *input.Body.Name
	}

	ingredient, err := s.services.Ingredient.Update(ctx, userID, input.ID, name)
	if err != nil {
		return nil, err
	}

	return &IngredientOutput{Body: mapIngredientResponse(ingredient)}, nil
}

func (s *Server) handleDeleteIngredient(ctx context.Context, input *IngredientIDInput) (*DeleteIngredientOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Ingredient.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &DeleteIngredientOutput{}, nil
}

func mapIngredientResponse(ingredient *domain.Ingredient) IngredientResponse {
	return IngredientResponse{ID: ingredient.ID, Name: ingredient.Name}
}
