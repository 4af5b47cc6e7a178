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

// TagService manages a user's recipe tags. Tags are only ever created
// implicitly, through recipe writes that name them.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, validator *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{store: store, validator: validator, logger: logger}
}

// UpdateTagRequest carries the replacement name for a tag rename.
type UpdateTagRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// List returns the user's tags, name-descending. When assignedOnly is true,
// only tags attached to at least one recipe are returned, deduplicated.
func (s *TagService) List(ctx context.Context, userID string, assignedOnly bool) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx, userID, assignedOnly)
}

// Update renames one of the user's tags. The new name may collide with a
// sibling tag's; names are labels, not keys.
func (s *TagService) Update(ctx context.Context, userID string, tagID int64, name string) (*domain.Tag, error) {
	if err := s.validator.Validate(&UpdateTagRequest{Name: name}); err != nil {
		return nil, err
	}

	tag, err := s.store.GetTag(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}

	tag.Name = name
	tag.Touch()
	if err := s.store.UpdateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete removes one of the user's tags. Recipes that carried it lose the
// association but are otherwise untouched.
func (s *TagService) Delete(ctx context.Context, userID string, tagID int64) error {
	return s.store.DeleteTag(ctx, userID, tagID)
}

// ResolveOrCreate maps tag names to owned tags, creating any that don't
// exist yet. Resolution is by exact name; duplicates in the input collapse
// to one tag. Order of the result follows first appearance in the input.
func (s *TagService) ResolveOrCreate(ctx context.Context, userID string, names []string) ([]*domain.Tag, error) {
	seen := make(map[string]bool, len(names))
	tags := make([]*domain.Tag, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, _, err := s.store.FindOrCreateTag(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}

	return tags, nil
}
