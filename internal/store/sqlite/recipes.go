package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/simonrowe/mealdex-server/internal/domain"
	"github.com/simonrowe/mealdex-server/internal/store"
)

// recipeColumns is the ordered list of columns selected in recipe queries.
// Must match the scan order in scanRecipe.
const recipeColumns = `id, user_id, title, description, time_minutes, price, link, created_at, updated_at`

// scanRecipe scans a sql.Row (or sql.Rows via its Scan method) into a domain.Recipe.
// Associations are not loaded here; see GetRecipeTags/GetRecipeIngredients.
func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var r domain.Recipe

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.Description,
		&r.TimeMinutes,
		&r.Price,
		&r.Link,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRecipe inserts a new recipe and assigns its ID.
func (s *Store) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO recipes (user_id, title, description, time_minutes, price, link, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UserID,
		r.Title,
		r.Description,
		r.TimeMinutes,
		r.Price,
		r.Link,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	)
	if err != nil {
		return err
	}

	r.ID, err = res.LastInsertId()
	return err
}

// GetRecipe retrieves one of the user's recipes by ID.
// A recipe owned by a different user is indistinguishable from a missing
// one: both return store.ErrNotFound.
func (s *Store) GetRecipe(ctx context.Context, userID string, recipeID int64) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ? AND user_id = ?`, recipeID, userID)

	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns the user's recipes ordered by ID descending, which is
// most-recently-created first.
func (s *Store) ListRecipes(ctx context.Context, userID string) ([]*domain.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if recipes == nil {
		recipes = []*domain.Recipe{}
	}

	return recipes, nil
}

// UpdateRecipe persists changes to a recipe's scalar fields.
// Returns store.ErrNotFound for missing or foreign recipes.
func (s *Store) UpdateRecipe(ctx context.Context, r *domain.Recipe) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE recipes
		SET title = ?, description = ?, time_minutes = ?, price = ?, link = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		r.Title,
		r.Description,
		r.TimeMinutes,
		r.Price,
		r.Link,
		formatTime(r.UpdatedAt),
		r.ID,
		r.UserID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteRecipe removes one of the user's recipes. Junction rows cascade;
// the tags and ingredients themselves survive.
func (s *Store) DeleteRecipe(ctx context.Context, userID string, recipeID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ? AND user_id = ?`, recipeID, userID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetRecipeTags replaces all tag associations for a recipe in one transaction.
func (s *Store) SetRecipeTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, recipeID); err != nil {
		return fmt.Errorf("delete recipe_tags: %w", err)
	}

	now := formatTime(time.Now().UTC())
	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_tags (recipe_id, tag_id, created_at)
			VALUES (?, ?, ?)`,
			recipeID,
			tagID,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert recipe_tag: %w", err)
		}
	}

	return tx.Commit()
}

// SetRecipeIngredients replaces all ingredient associations for a recipe in
// one transaction.
func (s *Store) SetRecipeIngredients(ctx context.Context, recipeID int64, ingredientIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipeID); err != nil {
		return fmt.Errorf("delete recipe_ingredients: %w", err)
	}

	now := formatTime(time.Now().UTC())
	for _, ingredientID := range ingredientIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, created_at)
			VALUES (?, ?, ?)`,
			recipeID,
			ingredientID,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert recipe_ingredient: %w", err)
		}
	}

	return tx.Commit()
}

// GetRecipeTags returns the tags attached to a recipe, name-descending.
func (s *Store) GetRecipeTags(ctx context.Context, recipeID int64) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.name, t.created_at, t.updated_at
		FROM tags t
		JOIN recipe_tags rt ON rt.tag_id = t.id
		WHERE rt.recipe_id = ?
		ORDER BY t.name DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe_tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}

// GetRecipeIngredients returns the ingredients attached to a recipe, name-descending.
func (s *Store) GetRecipeIngredients(ctx context.Context, recipeID int64) ([]*domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.user_id, i.name, i.created_at, i.updated_at
		FROM ingredients i
		JOIN recipe_ingredients ri ON ri.ingredient_id = i.id
		WHERE ri.recipe_id = ?
		ORDER BY i.name DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe_ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []*domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if ingredients == nil {
		ingredients = []*domain.Ingredient{}
	}

	return ingredients, nil
}
