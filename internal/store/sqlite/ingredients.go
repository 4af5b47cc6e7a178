package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/simonrowe/mealdex-server/internal/domain"
	"github.com/simonrowe/mealdex-server/internal/store"
)

// ingredientColumns is the ordered list of columns selected in ingredient queries.
// Must match the scan order in scanIngredient.
const ingredientColumns = `id, user_id, name, created_at, updated_at`

// scanIngredient scans a sql.Row (or sql.Rows via its Scan method) into a domain.Ingredient.
func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&ing.ID,
		&ing.UserID,
		&ing.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ing.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	ing.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &ing, nil
}

// CreateIngredient inserts a new ingredient for a user. Names carry no
// uniqueness constraint; inserting a name the user already has creates a
// second row.
func (s *Store) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		ing.UserID,
		ing.Name,
		formatTime(ing.CreatedAt),
		formatTime(ing.UpdatedAt),
	)
	if err != nil {
		return err
	}

	ing.ID, err = res.LastInsertId()
	return err
}

// GetIngredient retrieves one of the user's ingredients by ID.
// Missing and foreign-owned ingredients both return store.ErrNotFound.
func (s *Store) GetIngredient(ctx context.Context, userID string, ingredientID int64) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ? AND user_id = ?`, ingredientID, userID)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// GetIngredientByName retrieves one of the user's ingredients by exact name.
// When several rows share the name, the oldest wins.
func (s *Store) GetIngredientByName(ctx context.Context, userID, name string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE user_id = ? AND name = ? ORDER BY id LIMIT 1`, userID, name)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// ListIngredients returns the user's ingredients ordered by name descending.
// When assignedOnly is true, only ingredients attached to at least one of
// the user's recipes are returned, each at most once.
func (s *Store) ListIngredients(ctx context.Context, userID string, assignedOnly bool) ([]*domain.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE user_id = ? ORDER BY name DESC`
	if assignedOnly {
		query = `SELECT DISTINCT i.id, i.user_id, i.name, i.created_at, i.updated_at
			FROM ingredients i
			JOIN recipe_ingredients ri ON ri.ingredient_id = i.id
			WHERE i.user_id = ?
			ORDER BY i.name DESC`
	}

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
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

// FindOrCreateIngredient finds the user's ingredient by exact name or creates it.
// Returns (ingredient, created, error) where created is true if a new row was made.
func (s *Store) FindOrCreateIngredient(ctx context.Context, userID, name string) (*domain.Ingredient, bool, error) {
	existing, err := s.GetIngredientByName(ctx, userID, name)
	if err == nil {
		return existing, false, nil
	}
	if err != store.ErrNotFound {
		return nil, false, err
	}

	now := time.Now().UTC()
	ing := &domain.Ingredient{
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.CreateIngredient(ctx, ing); err != nil {
		return nil, false, err
	}

	return ing, true, nil
}

// UpdateIngredient renames one of the user's ingredients. The new name may
// match a sibling's; duplicates are tolerated.
func (s *Store) UpdateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE ingredients SET name = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		ing.Name,
		formatTime(ing.UpdatedAt),
		ing.ID,
		ing.UserID,
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

// DeleteIngredient removes one of the user's ingredients. Junction rows
// cascade; recipes that used the ingredient are untouched.
func (s *Store) DeleteIngredient(ctx context.Context, userID string, ingredientID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM ingredients WHERE id = ? AND user_id = ?`, ingredientID, userID)
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
