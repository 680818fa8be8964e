package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

const createFinanceTables = `
CREATE TABLE IF NOT EXISTS expenses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	amount REAL NOT NULL,
	date DATETIME NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	deductible INTEGER NOT NULL DEFAULT 0,
	account_id INTEGER NOT NULL REFERENCES accounts(id),
	project_id INTEGER REFERENCES projects(id),
	currency_id INTEGER NOT NULL REFERENCES currencies(id),
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS incomes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	amount REAL NOT NULL,
	date DATETIME NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	account_id INTEGER NOT NULL REFERENCES accounts(id),
	project_id INTEGER REFERENCES projects(id),
	currency_id INTEGER NOT NULL REFERENCES currencies(id),
	created_at DATETIME NOT NULL
);
`

type FinanceRepository struct {
	db *sql.DB
}

func NewFinanceRepository(db *sql.DB) repository.FinanceRepository {
	return &FinanceRepository{db: db}
}

func (r *FinanceRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFinanceTables); err != nil {
		return fmt.Errorf("create finance tables: %w", err)
	}
	return nil
}

func (r *FinanceRepository) ListExpenses(ctx context.Context, accountID int64, filter domain.FinanceFilter) ([]domain.Expense, error) {
	query := `
SELECT e.id, e.amount, e.date, e.description, e.deductible, e.account_id, e.project_id, COALESCE(p.name, ''),
       e.currency_id, COALESCE(cu.code, ''), COALESCE(cu.name, ''), COALESCE(cu.symbol, ''), e.created_at
FROM expenses e
LEFT JOIN projects p ON p.id = e.project_id
LEFT JOIN currencies cu ON cu.id = e.currency_id
WHERE e.account_id = ?`
	args := []any{accountID}
	query, args = applyFinanceFilter(query, args, "e", filter, true)
	query += ` ORDER BY e.date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		var projectID sql.NullInt64
		if err := rows.Scan(
			&e.ID, &e.Amount, &e.Date, &e.Description, &e.Deductible, &e.AccountID, &projectID, &e.ProjectName,
			&e.CurrencyID, &e.Currency.Code, &e.Currency.Name, &e.Currency.Symbol, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.ProjectID = intPtr(projectID)
		e.Currency.ID = e.CurrencyID
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *FinanceRepository) ListIncomes(ctx context.Context, accountID int64, filter domain.FinanceFilter) ([]domain.Income, error) {
	query := `
SELECT i.id, i.amount, i.date, i.description, i.account_id, i.project_id, COALESCE(p.name, ''),
       i.currency_id, COALESCE(cu.code, ''), COALESCE(cu.name, ''), COALESCE(cu.symbol, ''), i.created_at
FROM incomes i
LEFT JOIN projects p ON p.id = i.project_id
LEFT JOIN currencies cu ON cu.id = i.currency_id
WHERE i.account_id = ?`
	args := []any{accountID}
	query, args = applyFinanceFilter(query, args, "i", filter, false)
	query += ` ORDER BY i.date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	var incomes []domain.Income
	for rows.Next() {
		var in domain.Income
		var projectID sql.NullInt64
		if err := rows.Scan(
			&in.ID, &in.Amount, &in.Date, &in.Description, &in.AccountID, &projectID, &in.ProjectName,
			&in.CurrencyID, &in.Currency.Code, &in.Currency.Name, &in.Currency.Symbol, &in.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		in.ProjectID = intPtr(projectID)
		in.Currency.ID = in.CurrencyID
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

func (r *FinanceRepository) CreateExpense(ctx context.Context, expense *domain.Expense) (int64, error) {
	expense.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO expenses (amount, date, description, deductible, account_id, project_id, currency_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.Amount,
		expense.Date.UTC(),
		expense.Description,
		expense.Deductible,
		expense.AccountID,
		nullInt(expense.ProjectID),
		expense.CurrencyID,
		expense.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense last insert id: %w", err)
	}
	expense.ID = id
	return id, nil
}

func (r *FinanceRepository) CreateIncome(ctx context.Context, income *domain.Income) (int64, error) {
	income.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO incomes (amount, date, description, account_id, project_id, currency_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		income.Amount,
		income.Date.UTC(),
		income.Description,
		income.AccountID,
		nullInt(income.ProjectID),
		income.CurrencyID,
		income.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("income last insert id: %w", err)
	}
	income.ID = id
	return id, nil
}

func (r *FinanceRepository) DeleteExpense(ctx context.Context, id, accountID int64) error {
	return r.deleteRecord(ctx, "expenses", id, accountID, "expense not found")
}

func (r *FinanceRepository) DeleteIncome(ctx context.Context, id, accountID int64) error {
	return r.deleteRecord(ctx, "incomes", id, accountID, "income not found")
}

func (r *FinanceRepository) ProjectExpenseTotal(ctx context.Context, projectID int64) (float64, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE project_id = ?`,
		projectID,
	)

	var total float64
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("project expense total: %w", err)
	}
	return total, nil
}

func (r *FinanceRepository) deleteRecord(ctx context.Context, table string, id, accountID int64, missing string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ? AND account_id = ?`, id, accountID)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s rows: %w", table, err)
	}
	if affected == 0 {
		return domain.NotFoundError(missing)
	}
	return nil
}

func applyFinanceFilter(query string, args []any, alias string, filter domain.FinanceFilter, withDeductible bool) (string, []any) {
	if filter.ProjectID > 0 {
		query += ` AND ` + alias + `.project_id = ?`
		args = append(args, filter.ProjectID)
	}
	if filter.From != nil {
		query += ` AND ` + alias + `.date >= ?`
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		query += ` AND ` + alias + `.date <= ?`
		args = append(args, filter.To.UTC())
	}
	if withDeductible && filter.Deductible != nil {
		query += ` AND ` + alias + `.deductible = ?`
		args = append(args, *filter.Deductible)
	}
	return query, args
}
