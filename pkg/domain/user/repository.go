package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the collaborator store for user records. The engine only
// reads; any moderation-status mutation is applied by the caller.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	CountBanned(ctx context.Context) (int64, error)
	CountWarned(ctx context.Context) (int64, error)
	CountHighRisk(ctx context.Context, minScore float64) (int64, error)
}
