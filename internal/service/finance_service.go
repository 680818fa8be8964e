package service

import (
	"context"
	"strings"
	"time"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/metrics"
	"github.com/DavidRprt/deskflow/internal/repository"
)

// ExpenseInput carries the fields accepted when recording an expense.
type ExpenseInput struct {
	Amount      float64
	Date        time.Time
	Description string
	Deductible  bool
	ProjectID   *int64
	CurrencyID  int64
}

// IncomeInput carries the fields accepted when recording an income.
type IncomeInput struct {
	Amount      float64
	Date        time.Time
	Description string
	ProjectID   *int64
	CurrencyID  int64
}

// FinanceService records the freelancer's money flow. Summaries sum amounts
// regardless of currency; no conversion is applied.
type FinanceService interface {
	ListExpenses(ctx context.Context, accountID int64, filter domain.FinanceFilter) ([]domain.Expense, error)
	ListIncomes(ctx context.Context, accountID int64, filter domain.FinanceFilter) ([]domain.Income, error)
	AddExpense(ctx context.Context, accountID int64, input ExpenseInput) (*domain.Expense, error)
	AddIncome(ctx context.Context, accountID int64, input IncomeInput) (*domain.Income, error)
	DeleteExpense(ctx context.Context, id, accountID int64) error
	DeleteIncome(ctx context.Context, id, accountID int64) error
	// Summary aggregates the account's records, optionally windowed to a
	// calendar month (both month and year set) or a whole year.
	Summary(ctx context.Context, accountID int64, month, year int) (metrics.Summary, error)
}

type financeService struct {
	finance repository.FinanceRepository
}

func NewFinanceService(finance repository.FinanceRepository) FinanceService {
	return &financeService{finance: finance}
}

func (s *financeService) ListExpenses(ctx context.Context, accountID int64, filter domain.FinanceFilter) ([]domain.Expense, error) {
	return s.finance.ListExpenses(ctx, accountID, filter)
}

func (s *financeService) ListIncomes(ctx context.Context, accountID int64, filter domain.FinanceFilter) ([]domain.Income, error) {
	return s.finance.ListIncomes(ctx, accountID, filter)
}

func (s *financeService) AddExpense(ctx context.Context, accountID int64, input ExpenseInput) (*domain.Expense, error) {
	if err := validateRecord(input.Amount, input.Date, input.CurrencyID); err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		Amount:      input.Amount,
		Date:        input.Date,
		Description: strings.TrimSpace(input.Description),
		Deductible:  input.Deductible,
		AccountID:   accountID,
		ProjectID:   input.ProjectID,
		CurrencyID:  input.CurrencyID,
	}
	if _, err := s.finance.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *financeService) AddIncome(ctx context.Context, accountID int64, input IncomeInput) (*domain.Income, error) {
	if err := validateRecord(input.Amount, input.Date, input.CurrencyID); err != nil {
		return nil, err
	}

	income := &domain.Income{
		Amount:      input.Amount,
		Date:        input.Date,
		Description: strings.TrimSpace(input.Description),
		AccountID:   accountID,
		ProjectID:   input.ProjectID,
		CurrencyID:  input.CurrencyID,
	}
	if _, err := s.finance.CreateIncome(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

func (s *financeService) DeleteExpense(ctx context.Context, id, accountID int64) error {
	return s.finance.DeleteExpense(ctx, id, accountID)
}

func (s *financeService) DeleteIncome(ctx context.Context, id, accountID int64) error {
	return s.finance.DeleteIncome(ctx, id, accountID)
}

func (s *financeService) Summary(ctx context.Context, accountID int64, month, year int) (metrics.Summary, error) {
	var filter domain.FinanceFilter
	switch {
	case month > 0 && year > 0:
		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0).Add(-time.Second)
		filter.From, filter.To = &from, &to
	case year > 0:
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
		filter.From, filter.To = &from, &to
	}

	expenses, err := s.finance.ListExpenses(ctx, accountID, filter)
	if err != nil {
		return metrics.Summary{}, err
	}
	incomes, err := s.finance.ListIncomes(ctx, accountID, filter)
	if err != nil {
		return metrics.Summary{}, err
	}

	return metrics.Summarize(incomes, expenses), nil
}

func validateRecord(amount float64, date time.Time, currencyID int64) error {
	if amount <= 0 {
		return domain.ValidationError("amount must be greater than 0")
	}
	if date.IsZero() {
		return domain.ValidationError("date is required")
	}
	if currencyID <= 0 {
		return domain.ValidationError("currency is required")
	}
	return nil
}
