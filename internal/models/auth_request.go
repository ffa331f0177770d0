package models

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,notblank,max=255"`
}

// TokenRequest represents the request body for obtaining a bearer token
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a partial profile update; nil fields are left unchanged
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,notblank,max=255"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
}
