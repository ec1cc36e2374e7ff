package question

import (
	"context"
	"time"
)

// Repository defines persistence operations for question records.
type Repository interface {
	// Create persists a new record and fills in its store-assigned
	// ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	// Update writes the approval-time mutation (edited answer, approval
	// flag, approver, timestamps) as a single-row update.
	Update(ctx context.Context, rec *Record) error
	ListPending(ctx context.Context, limit int) ([]*Record, error)
	ListRecent(ctx context.Context, limit int) ([]*Record, error)
	CountPending(ctx context.Context) (int, error)
	CountApprovedSince(ctx context.Context, since time.Time) (int, error)
}
