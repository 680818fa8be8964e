package service

import (
	"context"
	"strings"
	"time"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/metrics"
	"github.com/DavidRprt/deskflow/internal/repository"
)

// ProjectInput carries the fields accepted when creating a project.
type ProjectInput struct {
	Name     string
	ClientID int64
	TypeID   *int64
	Budget   float64
	DueDate  *time.Time
}

// ProjectUpdate is a partial update; nil fields are left untouched.
type ProjectUpdate struct {
	Name     *string
	ClientID *int64
	TypeID   *int64
	StatusID *int64
	Budget   *float64
	DueDate  *time.Time
}

// ProjectService manages projects and decorates them with the derived
// numbers (weighted progress, timing, financials) the screens show.
type ProjectService interface {
	List(ctx context.Context, profileID int64, includeArchived bool) ([]domain.ProjectOverview, error)
	Get(ctx context.Context, id, profileID int64) (*domain.ProjectOverview, error)
	Create(ctx context.Context, profileID int64, input ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id, profileID int64, update ProjectUpdate) (*domain.Project, error)
	TogglePinned(ctx context.Context, id, profileID int64) (*domain.Project, error)
	ToggleArchived(ctx context.Context, id, profileID int64) (*domain.Project, error)
	SetPaid(ctx context.Context, id, profileID int64, paid bool) (*domain.Project, error)
	Delete(ctx context.Context, id, profileID int64) error
}

type projectService struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	finance  repository.FinanceRepository
	now      func() time.Time
}

func NewProjectService(projects repository.ProjectRepository, tasks repository.TaskRepository, finance repository.FinanceRepository) ProjectService {
	return &projectService{
		projects: projects,
		tasks:    tasks,
		finance:  finance,
		now:      time.Now,
	}
}

func (s *projectService) List(ctx context.Context, profileID int64, includeArchived bool) ([]domain.ProjectOverview, error) {
	projects, err := s.projects.List(ctx, profileID, includeArchived)
	if err != nil {
		return nil, err
	}

	overviews := make([]domain.ProjectOverview, len(projects))
	for i := range projects {
		tasks, err := s.tasks.ListByProject(ctx, projects[i].ID, profileID)
		if err != nil {
			return nil, err
		}
		overviews[i] = s.buildOverview(projects[i], tasks)
	}
	return overviews, nil
}

func (s *projectService) Get(ctx context.Context, id, profileID int64) (*domain.ProjectOverview, error) {
	project, err := s.projects.GetByID(ctx, id, profileID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, id, profileID)
	if err != nil {
		return nil, err
	}

	overview := s.buildOverview(*project, tasks)

	total, err := s.finance.ProjectExpenseTotal(ctx, id)
	if err != nil {
		return nil, err
	}
	overview.TotalExpenses = total
	overview.NetProfit = metrics.NetProfit(project.Budget, total)
	overview.PercentSpent = metrics.PercentSpent(project.Budget, total)

	return &overview, nil
}

func (s *projectService) Create(ctx context.Context, profileID int64, input ProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ValidationError("project name is required")
	}
	if input.ClientID <= 0 {
		return nil, domain.ValidationError("a client is required")
	}
	if input.Budget < 0 {
		return nil, domain.ValidationError("budget cannot be negative")
	}

	project := &domain.Project{
		Name:      name,
		ProfileID: profileID,
		ClientID:  input.ClientID,
		TypeID:    input.TypeID,
		StatusID:  domain.TaskStatusTodo,
		Budget:    input.Budget,
		StartDate: s.now().UTC(),
		DueDate:   input.DueDate,
	}
	if _, err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, project.ID, profileID)
}

func (s *projectService) Update(ctx context.Context, id, profileID int64, update ProjectUpdate) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id, profileID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.ValidationError("project name cannot be empty")
		}
		project.Name = name
	}
	if update.ClientID != nil {
		if *update.ClientID <= 0 {
			return nil, domain.ValidationError("a client is required")
		}
		project.ClientID = *update.ClientID
	}
	if update.TypeID != nil {
		project.TypeID = update.TypeID
	}
	if update.StatusID != nil {
		project.StatusID = *update.StatusID
	}
	if update.Budget != nil {
		if *update.Budget < 0 {
			return nil, domain.ValidationError("budget cannot be negative")
		}
		project.Budget = *update.Budget
	}
	if update.DueDate != nil {
		project.DueDate = update.DueDate
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, id, profileID)
}

func (s *projectService) TogglePinned(ctx context.Context, id, profileID int64) (*domain.Project, error) {
	return s.toggleFlag(ctx, id, profileID, func(p *domain.Project) { p.Pinned = !p.Pinned })
}

func (s *projectService) ToggleArchived(ctx context.Context, id, profileID int64) (*domain.Project, error) {
	return s.toggleFlag(ctx, id, profileID, func(p *domain.Project) { p.Archived = !p.Archived })
}

func (s *projectService) SetPaid(ctx context.Context, id, profileID int64, paid bool) (*domain.Project, error) {
	return s.toggleFlag(ctx, id, profileID, func(p *domain.Project) { p.Paid = paid })
}

func (s *projectService) Delete(ctx context.Context, id, profileID int64) error {
	return s.projects.DeleteWithTasks(ctx, id, profileID)
}

func (s *projectService) toggleFlag(ctx context.Context, id, profileID int64, mutate func(*domain.Project)) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id, profileID)
	if err != nil {
		return nil, err
	}
	mutate(project)
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) buildOverview(project domain.Project, tasks []domain.Task) domain.ProjectOverview {
	overview := domain.ProjectOverview{
		Project:  project,
		Tasks:    tasks,
		Progress: metrics.WeightedProgress(tasks),
		Timing:   metrics.Classify(tasks, s.now()),
	}
	for _, t := range tasks {
		overview.EstimatedHours += t.EstimatedHours
		if t.Done() {
			overview.CompletedHours += t.EstimatedHours
		}
	}
	return overview
}
