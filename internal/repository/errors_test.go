package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"recipe-be/internal/entities"
)

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, uniqueIDs([]int64{3, 1, 3, 2, 1}))
	assert.Empty(t, uniqueIDs(nil))
}

func TestUnknownAttributeError(t *testing.T) {
	err := &UnknownAttributeError{Kind: entities.KindIngredient, IDs: []int64{4, 9}}
	assert.Equal(t, "unknown ingredient ids [4 9]", err.Error())
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}
