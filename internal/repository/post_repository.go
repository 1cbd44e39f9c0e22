package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogql/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Omit("Creator").Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint, withCreator bool) (*model.Post, error) {
	query := r.db
	if withCreator {
		query = query.Preload("Creator")
	}

	var post model.Post
	if err := query.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&model.Post{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count posts failed: %w", err)
	}
	return total, nil
}

func (r *PostRepository) List(offset, limit int, newestFirst, withCreator bool) ([]model.Post, error) {
	query := r.db
	if withCreator {
		query = query.Preload("Creator")
	}
	if newestFirst {
		query = query.Order("created_at DESC")
	}

	var posts []model.Post
	if err := query.Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}

// Update replaces the post's mutable fields. The creator link never changes.
// Running the update on post itself lets gorm write the fresh UpdatedAt back
// into the struct, so callers return the timestamp the row actually carries.
func (r *PostRepository) Update(post *model.Post) error {
	if err := r.db.Model(post).
		Updates(map[string]interface{}{
			"title":     post.Title,
			"content":   post.Content,
			"image_url": post.ImageURL,
		}).Error; err != nil {
		return fmt.Errorf("update post failed: %w", err)
	}
	return nil
}
