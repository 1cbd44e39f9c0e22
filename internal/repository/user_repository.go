package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogql/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

// AppendPost links a post into the user's post list. Deliberately a second,
// separate write after the post insert; see the concurrency notes in DESIGN.md.
func (r *UserRepository) AppendPost(userID, postID uint) error {
	if err := r.db.Model(&model.Post{}).
		Where("id = ?", postID).
		Update("user_id", userID).Error; err != nil {
		return fmt.Errorf("append post to user failed: %w", err)
	}
	return nil
}
