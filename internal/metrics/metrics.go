// Package metrics computes presentation-ready numbers from already-fetched
// records. Every function is pure: no I/O, no clock reads, deterministic for
// identical inputs.
package metrics

import (
	"math"
	"time"

	"github.com/DavidRprt/deskflow/internal/domain"
)

// Timing classification of a project's schedule health.
const (
	TimingLate   = "late"
	TimingEarly  = "early"
	TimingOnTime = "on-time"
)

// WeightedProgress returns the completion percentage of a task set, weighted
// by each task's importance ordinal. Importance defaults to 1 when unset.
// An empty set is 0, not a division by zero.
func WeightedProgress(tasks []domain.Task) int {
	var total, completed int
	for _, t := range tasks {
		w := t.Importance
		if w <= 0 {
			w = 1
		}
		total += w
		if t.Done() {
			completed += w
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Classify tags a task set as late, early or on-time. Lateness always wins:
// any incomplete task whose due date is strictly before now makes the whole
// set late. Early requires a non-empty set where every task is done and was
// completed strictly before its own due date.
func Classify(tasks []domain.Task, now time.Time) string {
	for _, t := range tasks {
		if !t.Done() && t.DueDate != nil && t.DueDate.Before(now) {
			return TimingLate
		}
	}

	if len(tasks) == 0 {
		return TimingOnTime
	}
	for _, t := range tasks {
		if !t.Done() || t.CompletedAt == nil || t.DueDate == nil || !t.CompletedAt.Before(*t.DueDate) {
			return TimingOnTime
		}
	}
	return TimingEarly
}

// Summary aggregates income and expense records. Amounts are summed
// regardless of their currency reference; no conversion is applied.
type Summary struct {
	TotalIncome        float64
	TotalExpense       float64
	Balance            float64
	DeductibleExpenses float64
}

// Summarize totals the given records.
func Summarize(incomes []domain.Income, expenses []domain.Expense) Summary {
	var s Summary
	for _, in := range incomes {
		s.TotalIncome += in.Amount
	}
	for _, ex := range expenses {
		s.TotalExpense += ex.Amount
		if ex.Deductible {
			s.DeductibleExpenses += ex.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// NetProfit is the project budget minus its recorded expenses.
func NetProfit(budget, totalExpenses float64) float64 {
	return budget - totalExpenses
}

// PercentSpent reports how much of the budget the expenses consume. A zero
// or absent budget yields 0 rather than an error.
func PercentSpent(budget, totalExpenses float64) int {
	if budget <= 0 {
		return 0
	}
	return int(math.Round(totalExpenses / budget * 100))
}
