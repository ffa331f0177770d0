package models

// RecipeSummaryResponse is a recipe in list form: associations as IDs
type RecipeSummaryResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Tags        []int64 `json:"tags"`
	Ingredients []int64 `json:"ingredients"`
	TimeMinutes int     `json:"time_minutes"`
	Price       string  `json:"price"` // Fixed two decimal places, e.g. "5.00"
	Link        string  `json:"link"`
	Image       *string `json:"image"`
}

// RecipeDetailResponse is a single recipe with nested tags and ingredients
type RecipeDetailResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Tags        []AttributeResponse `json:"tags"`
	Ingredients []AttributeResponse `json:"ingredients"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       string              `json:"price"`
	Link        string              `json:"link"`
	Image       *string             `json:"image"`
}

// RecipeImageResponse is returned after a successful image upload
type RecipeImageResponse struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}
