package models

import "github.com/shopspring/decimal"

// RecipeRequest is the body for POST (create) and PUT (full replace).
// On PUT, omitted tags and ingredients clear the recipe's associations.
type RecipeRequest struct {
	Title       string           `json:"title" binding:"required,notblank,max=255"`
	TimeMinutes *int             `json:"time_minutes" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Link        string           `json:"link" binding:"max=255"`
	Tags        []int64          `json:"tags"`
	Ingredients []int64          `json:"ingredients"`
}

// RecipePatchRequest is the body for PATCH. Only non-nil fields change;
// a present tags or ingredients list replaces the whole set.
type RecipePatchRequest struct {
	Title       *string          `json:"title" binding:"omitempty,notblank,max=255"`
	TimeMinutes *int             `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link" binding:"omitempty,max=255"`
	Tags        *[]int64         `json:"tags"`
	Ingredients *[]int64         `json:"ingredients"`
}

// RecipeFilter holds the parsed ?tags= and ?ingredients= query parameters
type RecipeFilter struct {
	TagIDs        []int64
	IngredientIDs []int64
}
