package service

import (
	"context"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

// DashboardStats is the aggregate snapshot shown on the home page.
type DashboardStats struct {
	Clients          domain.ClientStats
	ProjectsTotal    int
	ProjectsByStatus []domain.StatusCount
	TasksPending     int
	TasksDone        int
	TasksTotal       int
}

// DashboardService composes the cross-entity aggregates for the home page.
type DashboardService interface {
	Stats(ctx context.Context, profileID int64) (*DashboardStats, error)
	RecentProjects(ctx context.Context, profileID int64, limit int) ([]domain.Project, error)
	UpcomingTasks(ctx context.Context, profileID int64, limit int) ([]domain.Task, error)
	BudgetSummary(ctx context.Context, profileID int64) (*domain.BudgetSummary, error)
}

type dashboardService struct {
	clients  repository.ClientRepository
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
}

func NewDashboardService(clients repository.ClientRepository, projects repository.ProjectRepository, tasks repository.TaskRepository) DashboardService {
	return &dashboardService{clients: clients, projects: projects, tasks: tasks}
}

func (s *dashboardService) Stats(ctx context.Context, profileID int64) (*DashboardStats, error) {
	clientStats, err := s.clients.Stats(ctx, profileID)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.projects.CountByStatus(ctx, profileID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, row := range byStatus {
		total += row.Count
	}

	pending, err := s.tasks.CountPending(ctx, profileID)
	if err != nil {
		return nil, err
	}
	done, err := s.tasks.CountDone(ctx, profileID)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Clients:          *clientStats,
		ProjectsTotal:    total,
		ProjectsByStatus: byStatus,
		TasksPending:     pending,
		TasksDone:        done,
		TasksTotal:       pending + done,
	}, nil
}

func (s *dashboardService) RecentProjects(ctx context.Context, profileID int64, limit int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.projects.Recent(ctx, profileID, limit)
}

func (s *dashboardService) UpcomingTasks(ctx context.Context, profileID int64, limit int) ([]domain.Task, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.tasks.Upcoming(ctx, profileID, limit)
}

func (s *dashboardService) BudgetSummary(ctx context.Context, profileID int64) (*domain.BudgetSummary, error) {
	return s.projects.BudgetSummary(ctx, profileID)
}
