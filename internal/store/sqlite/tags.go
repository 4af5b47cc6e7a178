package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/simonrowe/mealdex-server/internal/domain"
	"github.com/simonrowe/mealdex-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, user_id, name, created_at, updated_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag for a user. Names carry no uniqueness
// constraint; inserting a name the user already has creates a second row.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		t.UserID,
		t.Name,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return err
	}

	t.ID, err = res.LastInsertId()
	return err
}

// GetTag retrieves one of the user's tags by ID.
// A tag owned by a different user is indistinguishable from a missing one:
// both return store.ErrNotFound.
func (s *Store) GetTag(ctx context.Context, userID string, tagID int64) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ? AND user_id = ?`, tagID, userID)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagByName retrieves one of the user's tags by exact name. When several
// rows share the name, the oldest wins. Returns store.ErrNotFound if the
// user owns no tag with that name.
func (s *Store) GetTagByName(ctx context.Context, userID, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id = ? AND name = ? ORDER BY id LIMIT 1`, userID, name)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns the user's tags ordered by name descending.
// When assignedOnly is true, only tags attached to at least one of the
// user's recipes are returned, each at most once.
func (s *Store) ListTags(ctx context.Context, userID string, assignedOnly bool) ([]*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = ? ORDER BY name DESC`
	if assignedOnly {
		query = `SELECT DISTINCT t.id, t.user_id, t.name, t.created_at, t.updated_at
			FROM tags t
			JOIN recipe_tags rt ON rt.tag_id = t.id
			WHERE t.user_id = ?
			ORDER BY t.name DESC`
	}

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
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

// FindOrCreateTag finds the user's tag by exact name or creates it.
// Returns (tag, created, error) where created is true if a new tag was made.
func (s *Store) FindOrCreateTag(ctx context.Context, userID, name string) (*domain.Tag, bool, error) {
	existing, err := s.GetTagByName(ctx, userID, name)
	if err == nil {
		return existing, false, nil
	}
	if err != store.ErrNotFound {
		return nil, false, err
	}

	now := time.Now().UTC()
	t := &domain.Tag{
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.CreateTag(ctx, t); err != nil {
		return nil, false, err
	}

	return t, true, nil
}

// UpdateTag renames one of the user's tags. The new name may match a
// sibling's; duplicates are tolerated.
// Returns store.ErrNotFound for missing or foreign tags.
func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tags SET name = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		t.Name,
		formatTime(t.UpdatedAt),
		t.ID,
		t.UserID,
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

// DeleteTag removes one of the user's tags. Junction rows cascade; recipes
// that carried the tag are untouched.
func (s *Store) DeleteTag(ctx context.Context, userID string, tagID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tags WHERE id = ? AND user_id = ?`, tagID, userID)
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
