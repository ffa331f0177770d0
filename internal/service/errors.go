package service

import (
	"errors"
	"fmt"

	"recipe-be/internal/entities"
	"recipe-be/internal/repository"
)

// ValidationError is a request that parsed but cannot be applied. It always maps to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

var (
	ErrEmailRequired = &ValidationError{Field: "email", Message: "users must have an email address"}
	ErrUserExists    = &ValidationError{Field: "email", Message: "user with this email already exists"}
	ErrNameRequired  = &ValidationError{Field: "name", Message: "this field may not be blank"}
	ErrPasswordLong  = &ValidationError{Field: "password", Message: "ensure this field has no more than 72 bytes"}

	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrUnauthorized       = errors.New("authentication credentials were not provided or are invalid")
	ErrNotFound           = errors.New("not found")
)

// unknownAttributes converts a repository ownership failure into the 400 the
// client sees
func unknownAttributes(unknown *repository.UnknownAttributeError) *ValidationError {
	field := "tags"
	if unknown.Kind == entities.KindIngredient {
		field = "ingredients"
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("invalid pk in %v: object does not exist", unknown.IDs),
	}
}
