package domain

import "time"

// Ingredient is a user-owned component of recipes. Like tags, names are
// unique per user and invisible across user boundaries.
type Ingredient struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (i *Ingredient) Touch() {
	i.UpdatedAt = time.Now().UTC()
}
