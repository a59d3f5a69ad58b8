package repository

import (
	"context"
	"errors"

	"emberlink/internal/apperr"
	"emberlink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with a fresh opaque id. The username unique
// index is the source of truth for duplicates; the store's violation error
// is translated to a conflict.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	user := models.User{
		ID:       uuid.New().String(),
		Username: username,
		Password: passwordHash,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Username already used")
		}
		return nil, apperr.Internal("failed to create user", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if isNotFound(err) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to look up user", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if isNotFound(err) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to look up user", err)
	}
	return &user, nil
}
