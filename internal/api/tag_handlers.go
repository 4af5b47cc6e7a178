package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/simonrowe/mealdex-server/internal/domain"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns the authenticated user's tags ordered by name descending. With assigned_only, returns only tags attached to at least one recipe, without duplicates.",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Rename tag",
		Description: "Renames a tag owned by the authenticated user",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteTag",
		Method:        http.MethodDelete,
		Path:          "/api/v1/tags/{id}",
		Summary:       "Delete tag",
		Description:   "Deletes a tag; recipes that carried it are unaffected",
		Tags:          []string{"Tags"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteTag)
}

// === DTOs ===

// TagResponse contains tag information in API responses.
type TagResponse struct {
	ID   int64  `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Tag name"`
}

// TagListOutput wraps the tag list for Huma.
type TagListOutput struct {
	Body []TagResponse
}

// TagOutput wraps a single tag for Huma.
type TagOutput struct {
	Body TagResponse
}

// ListTagsInput carries the auth header and optional assignment filter.
type ListTagsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	AssignedOnly  string `query:"assigned_only" doc:"When truthy (1, true, yes), only tags attached to a recipe"`
}

// UpdateTagBody is the request body for renaming a tag. Name is a pointer so
// an absent field reaches the service as blank and fails validation there.
type UpdateTagBody struct {
	Name *string `json:"name,omitempty" doc:"New tag name"`
}

// UpdateTagInput wraps the rename request for Huma.
type UpdateTagInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Tag ID"`
	Body          UpdateTagBody
}

// TagIDInput identifies a tag by path parameter.
type TagIDInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Tag ID"`
}

// DeleteTagOutput is the empty 204 response for tag deletion.
type DeleteTagOutput struct{}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, input *ListTagsInput) (*TagListOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.List(ctx, userID, parseAssignedOnly(input.AssignedOnly))
	if err != nil {
		return nil, err
	}

	responses := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, mapTagResponse(tag))
	}

	return &TagListOutput{Body: responses}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	name := ""
	if input.Body.Name != nil {
		name = *input.Body.Name
	}

	tag, err := s.services.Tag.Update(ctx, userID, input.ID, name)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: mapTagResponse(tag)}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *TagIDInput) (*DeleteTagOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &DeleteTagOutput{}, nil
}

func mapTagResponse(tag *domain.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name}
}
