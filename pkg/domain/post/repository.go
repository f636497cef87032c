package post

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the collaborator content store.
type Repository interface {
	FindByAuthorSince(ctx context.Context, authorID uuid.UUID, since time.Time) ([]Post, error)
	FindRecentByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]Post, error)
	CountFlagged(ctx context.Context) (int64, error)
	CountApproved(ctx context.Context) (int64, error)
}
