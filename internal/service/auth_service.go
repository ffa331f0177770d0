package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"recipe-be/internal/entities"
	"recipe-be/internal/jwt"
	"recipe-be/internal/models"
	"recipe-be/internal/repository"
)

//go:generate mockgen -source=auth_service.go -destination=mocks/mock_auth_service.go -package=mocks

// AuthService defines the interface for account and authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.ProfileResponse, error)
	RegisterSuperuser(ctx context.Context, email, password, name string) (*entities.User, error)
	Authenticate(ctx context.Context, req *models.TokenRequest) (*models.TokenResponse, error)
	ResolveToken(ctx context.Context, token string) (*entities.User, error)
	GetProfile(ctx context.Context, userID int64) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.ProfileResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// NormalizeEmail trims the address and lowercases its domain part. The local
// part is case-sensitive and kept as given.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// Register creates a regular user account
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.ProfileResponse, error) {
	user, err := s.createUser(ctx, req.Email, req.Password, req.Name, false)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// RegisterSuperuser creates an account with staff and superuser rights
func (s *authService) RegisterSuperuser(ctx context.Context, email, password, name string) (*entities.User, error) {
	return s.createUser(ctx, email, password, name, true)
}

func (s *authService) createUser(ctx context.Context, email, password, name string, superuser bool) (*entities.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &entities.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate checks the credentials of an active user and issues a bearer token
func (s *authService) Authenticate(ctx context.Context, req *models.TokenRequest) (*models.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.TokenResponse{Token: token}, nil
}

// ResolveToken returns the active user a bearer token was issued to
func (s *authService) ResolveToken(ctx context.Context, token string) (*entities.User, error) {
	userID, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUnauthorized
	}

	return user, nil
}

// GetProfile returns the caller's public profile
func (s *authService) GetProfile(ctx context.Context, userID int64) (*models.ProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// UpdateProfile changes the provided fields only; a new password is re-hashed
func (s *authService) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		user.Name = name
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	updated, err := s.userRepo.Update(ctx, user)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return toProfile(updated), nil
}

func (s *authService) findUser(ctx context.Context, userID int64) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordLong
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func toProfile(user *entities.User) *models.ProfileResponse {
	return &models.ProfileResponse{
		Email: user.Email,
		Name:  user.Name,
	}
}
