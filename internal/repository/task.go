package repository

import (
	"context"
	"time"

	"github.com/DavidRprt/deskflow/internal/domain"
)

// TaskRepository defines persistence operations for tasks. Ownership is
// enforced through the parent project's profile id.
type TaskRepository interface {
	Init(ctx context.Context) error
	ListByProject(ctx context.Context, projectID, profileID int64) ([]domain.Task, error)
	GetByID(ctx context.Context, id, profileID int64) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (int64, error)
	Update(ctx context.Context, id, profileID int64, update domain.TaskUpdate) error
	Complete(ctx context.Context, id, profileID int64, at time.Time) error
	Reopen(ctx context.Context, id, profileID int64) error
	Delete(ctx context.Context, id, profileID int64) error
	CountPending(ctx context.Context, profileID int64) (int, error)
	CountDone(ctx context.Context, profileID int64) (int, error)
	Upcoming(ctx context.Context, profileID int64, limit int) ([]domain.Task, error)
}
