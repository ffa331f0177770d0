package service

import (
	"context"
	"fmt"
	"strings"

	"recipe-be/internal/models"
	"recipe-be/internal/repository"
)

//go:generate mockgen -source=attribute_service.go -destination=mocks/mock_attribute_service.go -package=mocks

// AttributeService lists and creates the caller's tags or ingredients,
// depending on the repository it wraps
type AttributeService interface {
	List(ctx context.Context, userID int64) ([]models.AttributeResponse, error)
	Create(ctx context.Context, userID int64, req *models.AttributeRequest) (*models.AttributeResponse, error)
}

type attributeService struct {
	repo repository.AttributeRepository
}

// NewAttributeService creates a service over one attribute kind
func NewAttributeService(repo repository.AttributeRepository) AttributeService {
	return &attributeService{repo: repo}
}

func (s *attributeService) List(ctx context.Context, userID int64) ([]models.AttributeResponse, error) {
	attrs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", s.repo.Kind(), err)
	}

	responses := make([]models.AttributeResponse, len(attrs))
	for i, attr := range attrs {
		responses[i] = models.AttributeResponse{ID: attr.ID, Name: attr.Name}
	}
	return responses, nil
}

// Create stores a new attribute owned by userID; the name is trimmed and must not be blank
func (s *attributeService) Create(ctx context.Context, userID int64, req *models.AttributeRequest) (*models.AttributeResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	attr, err := s.repo.Create(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.repo.Kind(), err)
	}

	return &models.AttributeResponse{ID: attr.ID, Name: attr.Name}, nil
}
