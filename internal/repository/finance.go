package repository

import (
	"context"

	"github.com/DavidRprt/deskflow/internal/domain"
)

// FinanceRepository defines persistence operations for expense and income
// records, scoped to the owning account.
type FinanceRepository interface {
	Init(ctx context.Context) error
	ListExpenses(ctx context.Context, accountID int64, filter domain.FinanceFilter) ([]domain.Expense, error)
	ListIncomes(ctx context.Context, accountID int64, filter domain.FinanceFilter) ([]domain.Income, error)
	CreateExpense(ctx context.Context, expense *domain.Expense) (int64, error)
	CreateIncome(ctx context.Context, income *domain.Income) (int64, error)
	DeleteExpense(ctx context.Context, id, accountID int64) error
	DeleteIncome(ctx context.Context, id, accountID int64) error
	// ProjectExpenseTotal sums the expense records attached to one project.
	ProjectExpenseTotal(ctx context.Context, projectID int64) (float64, error)
}
