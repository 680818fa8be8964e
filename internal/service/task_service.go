package service

import (
	"context"
	"strings"
	"time"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

// TaskInput carries the fields accepted when creating a task.
type TaskInput struct {
	Name           string
	Description    string
	Importance     int
	EstimatedHours int
	StatusID       int64
	StartDate      *time.Time
	DueDate        *time.Time
}

// TaskService manages tasks inside a profile's projects.
type TaskService interface {
	ListByProject(ctx context.Context, projectID, profileID int64) ([]domain.Task, error)
	Get(ctx context.Context, id, profileID int64) (*domain.Task, error)
	Create(ctx context.Context, projectID, profileID int64, input TaskInput) (*domain.Task, error)
	Update(ctx context.Context, id, profileID int64, update domain.TaskUpdate) (*domain.Task, error)
	Complete(ctx context.Context, id, profileID int64) (*domain.Task, error)
	Reopen(ctx context.Context, id, profileID int64) (*domain.Task, error)
	Delete(ctx context.Context, id, profileID int64) error
}

type taskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	now      func() time.Time
}

func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository) TaskService {
	return &taskService{
		tasks:    tasks,
		projects: projects,
		now:      time.Now,
	}
}

func (s *taskService) ListByProject(ctx context.Context, projectID, profileID int64) ([]domain.Task, error) {
	if _, err := s.projects.GetByID(ctx, projectID, profileID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID, profileID)
}

func (s *taskService) Get(ctx context.Context, id, profileID int64) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id, profileID)
}

func (s *taskService) Create(ctx context.Context, projectID, profileID int64, input TaskInput) (*domain.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ValidationError("task name is required")
	}

	// ownership check before writing
	if _, err := s.projects.GetByID(ctx, projectID, profileID); err != nil {
		return nil, err
	}

	importance := input.Importance
	if importance == 0 {
		importance = 3
	}
	if importance < 1 || importance > 5 {
		return nil, domain.ValidationError("importance must be between 1 and 5")
	}
	statusID := input.StatusID
	if statusID == 0 {
		statusID = domain.TaskStatusTodo
	}

	task := &domain.Task{
		ProjectID:      projectID,
		Name:           name,
		Description:    strings.TrimSpace(input.Description),
		Importance:     importance,
		EstimatedHours: input.EstimatedHours,
		StatusID:       statusID,
		StartDate:      input.StartDate,
		DueDate:        input.DueDate,
	}
	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, task.ID, profileID)
}

func (s *taskService) Update(ctx context.Context, id, profileID int64, update domain.TaskUpdate) (*domain.Task, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.ValidationError("task name cannot be empty")
		}
		update.Name = &name
	}
	if update.Importance != nil && (*update.Importance < 1 || *update.Importance > 5) {
		return nil, domain.ValidationError("importance must be between 1 and 5")
	}

	if err := s.tasks.Update(ctx, id, profileID, update); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id, profileID)
}

func (s *taskService) Complete(ctx context.Context, id, profileID int64) (*domain.Task, error) {
	if err := s.tasks.Complete(ctx, id, profileID, s.now()); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id, profileID)
}

func (s *taskService) Reopen(ctx context.Context, id, profileID int64) (*domain.Task, error) {
	if err := s.tasks.Reopen(ctx, id, profileID); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id, profileID)
}

func (s *taskService) Delete(ctx context.Context, id, profileID int64) error {
	return s.tasks.Delete(ctx, id, profileID)
}
