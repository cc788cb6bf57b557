package service

import (
	"context"

	"github.com/rauf-alluviam/auto-rack-sub000/internal/models"
)

// CreateUser persists a buyer or seller account
func (s *service) CreateUser(ctx context.Context, user *models.User) error {
	return s.repo.CreateUser(ctx, user)
}

// GetUser loads a user by id
func (s *service) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.FindUserByID(ctx, id)
}
