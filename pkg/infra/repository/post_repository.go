package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SentraLabs/Sentra/pkg/domain/post"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) post.Repository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByAuthorSince(ctx context.Context, authorID uuid.UUID, since time.Time) ([]post.Post, error) {
	var posts []post.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND created_at >= ?", authorID, since).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) FindRecentByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]post.Post, error) {
	var posts []post.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountFlagged(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&post.Post{}).
		Where("flagged = ?", true).Count(&count).Error
	return count, err
}

func (r *postRepository) CountApproved(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&post.Post{}).
		Where("approved = ?", true).Count(&count).Error
	return count, err
}
