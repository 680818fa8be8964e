package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DavidRprt/deskflow/internal/domain"
)

type fakeFinanceRepo struct {
	expenses   []domain.Expense
	incomes    []domain.Income
	lastFilter domain.FinanceFilter
}

func (r *fakeFinanceRepo) Init(ctx context.Context) error { return nil }

func (r *fakeFinanceRepo) ListExpenses(ctx context.Context, accountID int64, filter domain.FinanceFilter) ([]domain.Expense, error) {
	r.lastFilter = filter
	return r.expenses, nil
}

func (r *fakeFinanceRepo) ListIncomes(ctx context.Context, accountID int64, filter domain.FinanceFilter) ([]domain.Income, error) {
	r.lastFilter = filter
	return r.incomes, nil
}

func (r *fakeFinanceRepo) CreateExpense(ctx context.Context, expense *domain.Expense) (int64, error) {
	expense.ID = int64(len(r.expenses) + 1)
	r.expenses = append(r.expenses, *expense)
	return expense.ID, nil
}

func (r *fakeFinanceRepo) CreateIncome(ctx context.Context, income *domain.Income) (int64, error) {
	income.ID = int64(len(r.incomes) + 1)
	r.incomes = append(r.incomes, *income)
	return income.ID, nil
}

func (r *fakeFinanceRepo) DeleteExpense(ctx context.Context, id, accountID int64) error { return nil }
func (r *fakeFinanceRepo) DeleteIncome(ctx context.Context, id, accountID int64) error  { return nil }

func (r *fakeFinanceRepo) ProjectExpenseTotal(ctx context.Context, projectID int64) (float64, error) {
	return 0, nil
}

func TestAddExpenseValidation(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceRepo{})
	ctx := context.Background()

	cases := []struct {
		name  string
		input ExpenseInput
	}{
		{"zero amount", ExpenseInput{Amount: 0, Date: time.Now(), CurrencyID: 1}},
		{"negative amount", ExpenseInput{Amount: -5, Date: time.Now(), CurrencyID: 1}},
		{"missing date", ExpenseInput{Amount: 10, CurrencyID: 1}},
		{"missing currency", ExpenseInput{Amount: 10, Date: time.Now()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddExpense(ctx, 1, tc.input)
			require.Equal(t, domain.CategoryValidation, domain.CategoryOf(err))
		})
	}
}

func TestSummaryMixesCurrenciesWithoutConversion(t *testing.T) {
	repo := &fakeFinanceRepo{
		incomes: []domain.Income{
			{Amount: 100, CurrencyID: 1},
			{Amount: 50, CurrencyID: 3},
		},
		expenses: []domain.Expense{
			{Amount: 30, CurrencyID: 1, Deductible: true},
			{Amount: 20, CurrencyID: 2},
		},
	}
	svc := NewFinanceService(repo)

	summary, err := svc.Summary(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 150.0, summary.TotalIncome)
	require.Equal(t, 50.0, summary.TotalExpense)
	require.Equal(t, 100.0, summary.Balance)
	require.Equal(t, 30.0, summary.DeductibleExpenses)
	require.Nil(t, repo.lastFilter.From)
	require.Nil(t, repo.lastFilter.To)
}

func TestSummaryWindows(t *testing.T) {
	repo := &fakeFinanceRepo{}
	svc := NewFinanceService(repo)
	ctx := context.Background()

	_, err := svc.Summary(ctx, 1, 2, 2026)
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.From)
	require.NotNil(t, repo.lastFilter.To)
	require.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), *repo.lastFilter.From)
	require.Equal(t, time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC), *repo.lastFilter.To)

	_, err = svc.Summary(ctx, 1, 0, 2026)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), *repo.lastFilter.From)
	require.Equal(t, time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC), *repo.lastFilter.To)
}
