package domain

import "time"

// Recipe is the central entity: a dish owned by a single user, optionally
// linked to tags and ingredients owned by the same user.
//
// IDs are monotonically increasing integers assigned by the store, so
// descending-ID ordering doubles as most-recently-created-first.
type Recipe struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TimeMinutes int       `json:"time_minutes"`
	Price       float64   `json:"price"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations. Populated on detail reads; nil on summary reads.
	Tags        []*Tag        `json:"tags,omitempty"`
	Ingredients []*Ingredient `json:"ingredients,omitempty"`
}

// Touch updates the UpdatedAt timestamp.
func (r *Recipe) Touch() {
	r.UpdatedAt = time.Now().UTC()
}
