package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/grupo-nexus/planner/internal/model"
	"github.com/grupo-nexus/planner/internal/store"
	"github.com/grupo-nexus/planner/internal/validate"
)

// UserService handles planner account operations.
type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService { return &UserService{store: s} }

// CreateUser registers an account with a bcrypt-hashed password.
func (s *UserService) CreateUser(ctx context.Context, email, displayName, password string) (*model.User, error) {
	if err := validate.Email(email); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", model.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.store.Users().Create(ctx, &model.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	})
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.store.Users().Get(ctx, userID)
}
