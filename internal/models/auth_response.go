package models

// ProfileResponse is the public view of a user. The password is never echoed.
type ProfileResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenResponse represents the response after successful authentication
type TokenResponse struct {
	Token string `json:"token"`
}
