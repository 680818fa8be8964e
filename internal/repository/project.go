package repository

import (
	"context"

	"github.com/DavidRprt/deskflow/internal/domain"
)

// ProjectRepository defines persistence operations for projects, scoped to
// the owning profile.
type ProjectRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context, profileID int64, includeArchived bool) ([]domain.Project, error)
	Recent(ctx context.Context, profileID int64, limit int) ([]domain.Project, error)
	GetByID(ctx context.Context, id, profileID int64) (*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (int64, error)
	Update(ctx context.Context, project *domain.Project) error
	// DeleteWithTasks removes the project and its tasks and detaches finance
	// records in a single transaction; a failure on any step rolls back all.
	DeleteWithTasks(ctx context.Context, id, profileID int64) error
	CountByStatus(ctx context.Context, profileID int64) ([]domain.StatusCount, error)
	BudgetSummary(ctx context.Context, profileID int64) (*domain.BudgetSummary, error)
}
