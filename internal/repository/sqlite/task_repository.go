package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES projects(id),
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	importance INTEGER NOT NULL DEFAULT 3,
	estimated_hours INTEGER NOT NULL DEFAULT 0,
	status_id INTEGER NOT NULL DEFAULT 1,
	start_date DATETIME,
	due_date DATETIME,
	completed_at DATETIME
);
`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTasksTable); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

const taskColumns = `
t.id, t.project_id, p.name, t.name, t.description, t.importance, t.estimated_hours,
t.status_id, COALESCE(s.name, ''), t.start_date, t.due_date, t.completed_at`

const taskJoins = `
FROM tasks t
JOIN projects p ON p.id = t.project_id
LEFT JOIN statuses s ON s.id = t.status_id`

func (r *TaskRepository) ListByProject(ctx context.Context, projectID, profileID int64) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+taskColumns+taskJoins+`
WHERE t.project_id = ? AND p.profile_id = ?
ORDER BY t.status_id ASC, t.importance DESC, t.due_date ASC`,
		projectID, profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *TaskRepository) GetByID(ctx context.Context, id, profileID int64) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+taskColumns+taskJoins+`
WHERE t.id = ? AND p.profile_id = ?`,
		id, profileID,
	)
	return scanTask(row)
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (project_id, name, description, importance, estimated_hours, status_id, start_date, due_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ProjectID,
		task.Name,
		task.Description,
		task.Importance,
		task.EstimatedHours,
		task.StatusID,
		nullTime(task.StartDate),
		nullTime(task.DueDate),
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	task.ID = id
	return id, nil
}

func (r *TaskRepository) Update(ctx context.Context, id, profileID int64, update domain.TaskUpdate) error {
	var sets []string
	var args []any

	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Importance != nil {
		sets = append(sets, "importance = ?")
		args = append(args, *update.Importance)
	}
	if update.EstimatedHours != nil {
		sets = append(sets, "estimated_hours = ?")
		args = append(args, *update.EstimatedHours)
	}
	if update.StatusID != nil {
		sets = append(sets, "status_id = ?")
		args = append(args, *update.StatusID)
	}
	if update.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, update.StartDate.UTC())
	}
	if update.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, update.DueDate.UTC())
	}
	if len(sets) == 0 {
		return nil
	}

	query := `
UPDATE tasks SET ` + strings.Join(sets, ", ") + `
WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE profile_id = ?)`
	args = append(args, id, profileID)

	return r.execOwned(ctx, query, args...)
}

func (r *TaskRepository) Complete(ctx context.Context, id, profileID int64, at time.Time) error {
	return r.execOwned(ctx, `
UPDATE tasks SET status_id = ?, completed_at = ?
WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE profile_id = ?)`,
		domain.TaskStatusDone, at.UTC(), id, profileID,
	)
}

func (r *TaskRepository) Reopen(ctx context.Context, id, profileID int64) error {
	return r.execOwned(ctx, `
UPDATE tasks SET status_id = ?, completed_at = NULL
WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE profile_id = ?)`,
		domain.TaskStatusInProgress, id, profileID,
	)
}

func (r *TaskRepository) Delete(ctx context.Context, id, profileID int64) error {
	return r.execOwned(ctx, `
DELETE FROM tasks
WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE profile_id = ?)`,
		id, profileID,
	)
}

func (r *TaskRepository) CountPending(ctx context.Context, profileID int64) (int, error) {
	return r.countByDone(ctx, profileID, false)
}

func (r *TaskRepository) CountDone(ctx context.Context, profileID int64) (int, error) {
	return r.countByDone(ctx, profileID, true)
}

func (r *TaskRepository) Upcoming(ctx context.Context, profileID int64, limit int) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+taskColumns+taskJoins+`
WHERE p.profile_id = ? AND t.status_id != ?
ORDER BY t.importance DESC, t.due_date ASC
LIMIT ?`,
		profileID, domain.TaskStatusDone, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("upcoming tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *TaskRepository) countByDone(ctx context.Context, profileID int64, done bool) (int, error) {
	op := "!="
	if done {
		op = "="
	}
	row := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM tasks t
JOIN projects p ON p.id = t.project_id
WHERE p.profile_id = ? AND t.status_id `+op+` ?`,
		profileID, domain.TaskStatusDone,
	)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}

func (r *TaskRepository) execOwned(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec task statement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("task rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NotFoundError("task not found")
	}
	return nil
}

func collectTasks(rows *sql.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...any) error
}) (*domain.Task, error) {
	var task domain.Task
	var start, due, completed sql.NullTime
	if err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.ProjectName,
		&task.Name,
		&task.Description,
		&task.Importance,
		&task.EstimatedHours,
		&task.StatusID,
		&task.StatusName,
		&start,
		&due,
		&completed,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError("task not found")
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	task.StartDate = timePtr(start)
	task.DueDate = timePtr(due)
	task.CompletedAt = timePtr(completed)
	return &task, nil
}
