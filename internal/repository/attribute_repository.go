package repository

import (
	"context"
	"database/sql"
	"fmt"

	"recipe-be/internal/entities"
)

//go:generate mockgen -source=attribute_repository.go -destination=mocks/mock_attribute_repository.go -package=mocks

// AttributeRepository stores one kind of owned, named label (tags or ingredients).
// Every method is scoped to the owning user.
type AttributeRepository interface {
	Kind() entities.AttributeKind
	Create(ctx context.Context, userID int64, name string) (*entities.Attribute, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Attribute, error)
}

type attributeRepository struct {
	db   *sql.DB
	kind entities.AttributeKind
}

// NewAttributeRepository creates a repository over the table for kind
func NewAttributeRepository(db *sql.DB, kind entities.AttributeKind) AttributeRepository {
	return &attributeRepository{db: db, kind: kind}
}

func (r *attributeRepository) Kind() entities.AttributeKind {
	return r.kind
}

// Create inserts a new attribute owned by userID
func (r *attributeRepository) Create(ctx context.Context, userID int64, name string) (*entities.Attribute, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name
	`, r.kind.Table())

	var attr entities.Attribute
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&attr.ID, &attr.UserID, &attr.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", r.kind, err)
	}

	return &attr, nil
}

// ListByUser returns the user's attributes, names in descending order
func (r *attributeRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Attribute, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name
		FROM %s
		WHERE user_id = $1
		ORDER BY name DESC, id DESC
	`, r.kind.Table())

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", r.kind, err)
	}
	defer rows.Close()

	attrs := make([]*entities.Attribute, 0)
	for rows.Next() {
		var attr entities.Attribute
		if err := rows.Scan(&attr.ID, &attr.UserID, &attr.Name); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.kind, err)
		}
		attrs = append(attrs, &attr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %ss: %w", r.kind, err)
	}

	return attrs, nil
}
