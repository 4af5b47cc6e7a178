package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/simonrowe/mealdex-server/internal/errors"
	"github.com/simonrowe/mealdex-server/internal/store"
)

func TestTagResolveOrCreate_DeduplicatesInput(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	tags, err := svc.tags.ResolveOrCreate(ctx, user.ID, []string{"Vegan", "Vegan", "  ", "Dessert"})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, "Dessert", tags[1].Name)
}

func TestTagUpdate(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	tags, err := svc.tags.ResolveOrCreate(ctx, user.ID, []string{"Misspeled"})
	require.NoError(t, err)

	updated, err := svc.tags.Update(ctx, user.ID, tags[0].ID, "Misspelled")
	require.NoError(t, err)
	assert.Equal(t, "Misspelled", updated.Name)
}

func TestTagUpdate_RejectsInvalidName(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	tags, err := svc.tags.ResolveOrCreate(ctx, user.ID, []string{"Keeper"})
	require.NoError(t, err)

	for _, name := range []string{"", strings.Repeat("x", 256)} {
		_, err = svc.tags.Update(ctx, user.ID, tags[0].ID, name)
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	}

	// The name is untouched.
	list, err := svc.tags.List(ctx, user.ID, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Keeper", list[0].Name)
}

func TestIngredientUpdate_RejectsBlankName(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	ings, err := svc.ingredients.ResolveOrCreate(ctx, user.ID, []string{"Basil"})
	require.NoError(t, err)

	_, err = svc.ingredients.Update(ctx, user.ID, ings[0].ID, "")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestTagUpdate_CrossUser(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	owner := registerTestUser(t, svc, "owner@example.com")
	other := registerTestUser(t, svc, "other@example.com")

	tags, err := svc.tags.ResolveOrCreate(ctx, owner.ID, []string{"Mine"})
	require.NoError(t, err)

	_, err = svc.tags.Update(ctx, other.ID, tags[0].ID, "Stolen")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTagDelete(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	tags, err := svc.tags.ResolveOrCreate(ctx, user.ID, []string{"Doomed"})
	require.NoError(t, err)

	require.NoError(t, svc.tags.Delete(ctx, user.ID, tags[0].ID))

	remaining, err := svc.tags.List(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestIngredientListAndUpdate(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "chef@example.com")

	ings, err := svc.ingredients.ResolveOrCreate(ctx, user.ID, []string{"Bazil"})
	require.NoError(t, err)

	updated, err := svc.ingredients.Update(ctx, user.ID, ings[0].ID, "Basil")
	require.NoError(t, err)
	assert.Equal(t, "Basil", updated.Name)

	list, err := svc.ingredients.List(ctx, user.ID, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Basil", list[0].Name)
}
