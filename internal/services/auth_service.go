package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles staff login and account management
type AuthService struct {
	staffRepo *repository.StaffRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo *repository.StaffRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		staffRepo: staffRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Login verifies credentials and issues a signed bearer token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, invalid("username and password are required")
	}

	staff, err := s.staffRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}

	now := time.Now()
	claims := &models.AuthClaims{
		UserID:   staff.ID,
		Username: staff.Username,
		Role:     staff.Role,
		FullName: staff.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   staff.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.LoginResponse{
		Token:    token,
		UserID:   staff.ID,
		Username: staff.Username,
		Role:     staff.Role,
		FullName: staff.FullName,
	}, nil
}

// CreateStaff registers a staff member with a hashed password
func (s *AuthService) CreateStaff(ctx context.Context, username, fullName, password string, role models.Role) (*models.Staff, error) {
	if username == "" || password == "" || fullName == "" {
		return nil, invalid("username, fullname and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &models.Staff{
		Username:     username,
		FullName:     fullName,
		Role:         role,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// ListDoctors returns the active doctors available for assignment
func (s *AuthService) ListDoctors(ctx context.Context) ([]models.Staff, error) {
	return s.staffRepo.ListByRole(ctx, models.RoleDoctor)
}
