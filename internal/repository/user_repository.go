package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"homekeeper/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user, refusing a username that is already registered.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		var count int64
		if err := db.Model(&model.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return persistenceError("check username", err)
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		if err := db.Create(user).Error; err != nil {
			return persistenceError("create user", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrUsernameTaken) && !IsPersistence(err) {
		return persistenceError("create user", err)
	}
	return err
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrUserNotFound
	default:
		return nil, persistenceError("find user", err)
	}
}
