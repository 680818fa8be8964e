package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	profile_id INTEGER NOT NULL REFERENCES profiles(id),
	client_id INTEGER NOT NULL REFERENCES clients(id),
	type_id INTEGER REFERENCES project_types(id),
	status_id INTEGER NOT NULL DEFAULT 1,
	budget REAL NOT NULL DEFAULT 0,
	archived INTEGER NOT NULL DEFAULT 0,
	pinned INTEGER NOT NULL DEFAULT 0,
	paid INTEGER NOT NULL DEFAULT 0,
	start_date DATETIME NOT NULL,
	due_date DATETIME
);
`

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProjectsTable); err != nil {
		return fmt.Errorf("create projects table: %w", err)
	}
	return nil
}

const projectColumns = `
p.id, p.name, p.profile_id, p.client_id, COALESCE(c.name, ''), p.type_id, COALESCE(pt.name, ''),
p.status_id, COALESCE(s.name, ''), p.budget, p.archived, p.pinned, p.paid, p.start_date, p.due_date`

const projectJoins = `
FROM projects p
LEFT JOIN clients c ON c.id = p.client_id
LEFT JOIN project_types pt ON pt.id = p.type_id
LEFT JOIN statuses s ON s.id = p.status_id`

func (r *ProjectRepository) List(ctx context.Context, profileID int64, includeArchived bool) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + projectJoins + ` WHERE p.profile_id = ?`
	if !includeArchived {
		query += ` AND p.archived = 0`
	}
	query += ` ORDER BY p.pinned DESC, p.start_date DESC`

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

func (r *ProjectRepository) Recent(ctx context.Context, profileID int64, limit int) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+projectColumns+projectJoins+`
WHERE p.profile_id = ? AND p.archived = 0
ORDER BY p.start_date DESC
LIMIT ?`,
		profileID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id, profileID int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+projectColumns+projectJoins+`
WHERE p.id = ? AND p.profile_id = ?`,
		id, profileID,
	)
	return scanProject(row)
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO projects (name, profile_id, client_id, type_id, status_id, budget, archived, pinned, paid, start_date, due_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.Name,
		project.ProfileID,
		project.ClientID,
		nullInt(project.TypeID),
		project.StatusID,
		project.Budget,
		project.Archived,
		project.Pinned,
		project.Paid,
		project.StartDate.UTC(),
		nullTime(project.DueDate),
	)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("project last insert id: %w", err)
	}
	project.ID = id
	return id, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE projects
SET name = ?, client_id = ?, type_id = ?, status_id = ?, budget = ?, archived = ?, pinned = ?, paid = ?, start_date = ?, due_date = ?
WHERE id = ? AND profile_id = ?`,
		project.Name,
		project.ClientID,
		nullInt(project.TypeID),
		project.StatusID,
		project.Budget,
		project.Archived,
		project.Pinned,
		project.Paid,
		project.StartDate.UTC(),
		nullTime(project.DueDate),
		project.ID,
		project.ProfileID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project rows: %w", err)
	}
	if affected == 0 {
		return domain.NotFoundError("project not found")
	}
	return nil
}

// DeleteWithTasks removes the project, its tasks and the project reference on
// finance records as one atomic unit.
func (r *ProjectRepository) DeleteWithTasks(ctx context.Context, id, profileID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete project: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
DELETE FROM tasks WHERE project_id = ? AND project_id IN (SELECT id FROM projects WHERE id = ? AND profile_id = ?)`,
		id, id, profileID,
	); err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE expenses SET project_id = NULL WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("detach project expenses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE incomes SET project_id = NULL WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("detach project incomes: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND profile_id = ?`, id, profileID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project rows: %w", err)
	}
	if affected == 0 {
		return domain.NotFoundError("project not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) CountByStatus(ctx context.Context, profileID int64) ([]domain.StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT p.status_id, COALESCE(s.name, ''), COUNT(*)
FROM projects p
LEFT JOIN statuses s ON s.id = p.status_id
WHERE p.profile_id = ?
GROUP BY p.status_id, s.name
ORDER BY p.status_id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("count projects by status: %w", err)
	}
	defer rows.Close()

	var counts []domain.StatusCount
	for rows.Next() {
		var c domain.StatusCount
		if err := rows.Scan(&c.StatusID, &c.StatusName, &c.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *ProjectRepository) BudgetSummary(ctx context.Context, profileID int64) (*domain.BudgetSummary, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT
	COALESCE(SUM(p.budget), 0),
	COALESCE((SELECT SUM(e.amount) FROM expenses e WHERE e.project_id IN (SELECT id FROM projects WHERE profile_id = ?)), 0),
	COALESCE(SUM(p.paid), 0),
	COUNT(*) - COALESCE(SUM(p.paid), 0)
FROM projects p
WHERE p.profile_id = ?`,
		profileID, profileID,
	)

	var summary domain.BudgetSummary
	if err := row.Scan(
		&summary.TotalBudget,
		&summary.TotalExpenses,
		&summary.PaidProjects,
		&summary.PendingProjects,
	); err != nil {
		return nil, fmt.Errorf("scan budget summary: %w", err)
	}
	summary.Balance = summary.TotalBudget - summary.TotalExpenses
	return &summary, nil
}

func collectProjects(rows *sql.Rows) ([]domain.Project, error) {
	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func scanProject(row interface {
	Scan(dest ...any) error
}) (*domain.Project, error) {
	var project domain.Project
	var typeID sql.NullInt64
	var dueDate sql.NullTime
	if err := row.Scan(
		&project.ID,
		&project.Name,
		&project.ProfileID,
		&project.ClientID,
		&project.ClientName,
		&typeID,
		&project.TypeName,
		&project.StatusID,
		&project.StatusName,
		&project.Budget,
		&project.Archived,
		&project.Pinned,
		&project.Paid,
		&project.StartDate,
		&dueDate,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError("project not found")
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	project.TypeID = intPtr(typeID)
	project.DueDate = timePtr(dueDate)
	return &project, nil
}
