package domain

import "time"

// Expense is money going out, optionally tied to a project. Amounts are
// stored in the record's own currency and never converted.
type Expense struct {
	ID          int64
	Amount      float64
	Date        time.Time
	Description string
	Deductible  bool
	AccountID   int64
	ProjectID   *int64
	ProjectName string
	CurrencyID  int64
	Currency    Currency
	CreatedAt   time.Time
}

// Income is money coming in, optionally tied to a project.
type Income struct {
	ID          int64
	Amount      float64
	Date        time.Time
	Description string
	AccountID   int64
	ProjectID   *int64
	ProjectName string
	CurrencyID  int64
	Currency    Currency
	CreatedAt   time.Time
}

// FinanceFilter narrows expense/income listings.
type FinanceFilter struct {
	ProjectID  int64
	From       *time.Time
	To         *time.Time
	Deductible *bool
}
