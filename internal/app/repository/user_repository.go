package repository

import (
	"context"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Ensure(ctx context.Context, user *model.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	logger.Debug("Finding user by ID in database", map[string]interface{}{
		"user_id": id,
	})

	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}

	logger.Debug("User found by ID in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return &user, nil
}

// Ensure inserts the user row mirrored from a token when it is not stored yet.
// An existing row is loaded into user unchanged.
func (r *userRepository) Ensure(ctx context.Context, user *model.User) error {
	logger.Debug("Ensuring user exists in database", map[string]interface{}{
		"user_id": user.ID,
	})

	err := r.db.WithContext(ctx).
		Where(model.User{ID: user.ID}).
		Attrs(model.User{Email: user.Email, Name: user.Name}).
		FirstOrCreate(user).Error
	if err != nil {
		logger.Error("Failed to ensure user in database", err, map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
		})
		return err
	}
	return nil
}
