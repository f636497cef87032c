package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the collaborator report store.
type Repository interface {
	FindAgainstUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Report, error)
	FindByReporterSince(ctx context.Context, reporterID uuid.UUID, since time.Time) ([]Report, error)
	CountPending(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
}
