package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe represents a recipe entity in the database. Tags and Ingredients are
// only populated by queries that load associations.
type Recipe struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
	Image       *string         `json:"image,omitempty"` // Relative path under the media root, nil when no image
	Tags        []Attribute     `json:"tags"`
	Ingredients []Attribute     `json:"ingredients"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TagIDs returns the IDs of the loaded tags in order.
func (r *Recipe) TagIDs() []int64 {
	return attributeIDs(r.Tags)
}

// IngredientIDs returns the IDs of the loaded ingredients in order.
func (r *Recipe) IngredientIDs() []int64 {
	return attributeIDs(r.Ingredients)
}

func attributeIDs(attrs []Attribute) []int64 {
	ids := make([]int64, len(attrs))
	for i, a := range attrs {
		ids[i] = a.ID
	}
	return ids
}
