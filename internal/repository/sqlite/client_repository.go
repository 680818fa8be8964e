package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

const createClientsTable = `
CREATE TABLE IF NOT EXISTS clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	type_id INTEGER REFERENCES client_types(id),
	active INTEGER NOT NULL DEFAULT 1,
	signed_up DATETIME NOT NULL,
	profile_id INTEGER NOT NULL REFERENCES profiles(id)
);
`

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createClientsTable); err != nil {
		return fmt.Errorf("create clients table: %w", err)
	}
	return nil
}

const clientColumns = `
c.id, c.name, c.phone, c.email, c.type_id, COALESCE(ct.name, ''), c.active, c.signed_up, c.profile_id,
(SELECT COUNT(*) FROM projects p WHERE p.client_id = c.id),
(SELECT COUNT(*) FROM projects p WHERE p.client_id = c.id AND p.status_id != ?)`

func (r *ClientRepository) List(ctx context.Context, profileID int64, filter domain.ClientFilter) ([]domain.Client, error) {
	query := `
SELECT ` + clientColumns + `
FROM clients c
LEFT JOIN client_types ct ON ct.id = c.type_id
WHERE c.profile_id = ?`
	args := []any{domain.TaskStatusDone, profileID}

	if filter.Search != "" {
		query += ` AND (c.name LIKE ? OR c.email LIKE ? OR c.phone LIKE ?)`
		needle := "%" + filter.Search + "%"
		args = append(args, needle, needle, needle)
	}
	if filter.TypeID > 0 {
		query += ` AND c.type_id = ?`
		args = append(args, filter.TypeID)
	}
	if filter.Active != nil {
		query += ` AND c.active = ?`
		args = append(args, *filter.Active)
	}
	query += ` ORDER BY c.active DESC, c.name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) GetByID(ctx context.Context, id, profileID int64) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+clientColumns+`
FROM clients c
LEFT JOIN client_types ct ON ct.id = c.type_id
WHERE c.id = ? AND c.profile_id = ?`,
		domain.TaskStatusDone, id, profileID,
	)
	return scanClient(row)
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO clients (name, phone, email, type_id, active, signed_up, profile_id)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		client.Name,
		client.Phone,
		client.Email,
		nullInt(client.TypeID),
		client.Active,
		client.SignedUp.UTC(),
		client.ProfileID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("client last insert id: %w", err)
	}
	client.ID = id
	return id, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE clients
SET name = ?, phone = ?, email = ?, type_id = ?, active = ?
WHERE id = ? AND profile_id = ?`,
		client.Name,
		client.Phone,
		client.Email,
		nullInt(client.TypeID),
		client.Active,
		client.ID,
		client.ProfileID,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update client rows: %w", err)
	}
	if affected == 0 {
		return domain.NotFoundError("client not found")
	}
	return nil
}

func (r *ClientRepository) SetActive(ctx context.Context, id, profileID int64, active bool) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE clients SET active = ? WHERE id = ? AND profile_id = ?`,
		active, id, profileID,
	)
	if err != nil {
		return fmt.Errorf("set client active: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set client active rows: %w", err)
	}
	if affected == 0 {
		return domain.NotFoundError("client not found")
	}
	return nil
}

func (r *ClientRepository) Stats(ctx context.Context, profileID int64) (*domain.ClientStats, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(active), 0)
FROM clients
WHERE profile_id = ?`,
		profileID,
	)

	var stats domain.ClientStats
	if err := row.Scan(&stats.Total, &stats.Active); err != nil {
		return nil, fmt.Errorf("scan client stats: %w", err)
	}
	stats.Inactive = stats.Total - stats.Active
	return &stats, nil
}

func scanClient(row interface {
	Scan(dest ...any) error
}) (*domain.Client, error) {
	var client domain.Client
	var typeID sql.NullInt64
	if err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Phone,
		&client.Email,
		&typeID,
		&client.TypeName,
		&client.Active,
		&client.SignedUp,
		&client.ProfileID,
		&client.ProjectCount,
		&client.ActiveProjectCount,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError("client not found")
		}
		return nil, fmt.Errorf("scan client: %w", err)
	}
	client.TypeID = intPtr(typeID)
	return &client, nil
}
