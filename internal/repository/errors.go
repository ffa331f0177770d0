package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"recipe-be/internal/entities"
)

var (
	// ErrNotFound is returned when a row does not exist or is owned by another user.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("record already exists")
)

// UnknownAttributeError reports association IDs that do not exist or belong to another user.
type UnknownAttributeError struct {
	Kind entities.AttributeKind
	IDs  []int64
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown %s ids %v", e.Kind, e.IDs)
}

const uniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
