package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DavidRprt/deskflow/internal/domain"
)

func task(importance int, done bool) domain.Task {
	t := domain.Task{Importance: importance, StatusID: domain.TaskStatusInProgress}
	if done {
		t.StatusID = domain.TaskStatusDone
	}
	return t
}

func datePtr(t time.Time) *time.Time { return &t }

func TestWeightedProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		tasks []domain.Task
		want  int
	}{
		{name: "empty set", tasks: nil, want: 0},
		{
			name:  "uniform importance rounds to nearest",
			tasks: []domain.Task{task(1, true), task(1, true), task(1, false)},
			want:  67,
		},
		{
			name:  "importance weighs completion",
			tasks: []domain.Task{task(5, true), task(1, false), task(1, false), task(1, false)},
			want:  63, // 5/8
		},
		{
			name:  "unset importance defaults to 1",
			tasks: []domain.Task{task(0, true), task(0, false)},
			want:  50,
		},
		{
			name:  "all done",
			tasks: []domain.Task{task(3, true), task(2, true)},
			want:  100,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeightedProgress(tc.tasks))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	lastWeek := now.AddDate(0, 0, -7)

	doneEarly := domain.Task{
		StatusID:    domain.TaskStatusDone,
		DueDate:     datePtr(yesterday),
		CompletedAt: datePtr(lastWeek),
	}
	doneLate := domain.Task{
		StatusID:    domain.TaskStatusDone,
		DueDate:     datePtr(lastWeek),
		CompletedAt: datePtr(yesterday),
	}
	pendingOverdue := domain.Task{StatusID: domain.TaskStatusInProgress, DueDate: datePtr(yesterday)}
	pendingFuture := domain.Task{StatusID: domain.TaskStatusInProgress, DueDate: datePtr(tomorrow)}
	doneNoDates := domain.Task{StatusID: domain.TaskStatusDone}

	tests := []struct {
		name  string
		tasks []domain.Task
		want  string
	}{
		{name: "empty set is on time", tasks: nil, want: TimingOnTime},
		{name: "pending with future due date", tasks: []domain.Task{pendingFuture}, want: TimingOnTime},
		{name: "one overdue pending task is late", tasks: []domain.Task{pendingOverdue}, want: TimingLate},
		{
			name:  "lateness wins over early completions",
			tasks: []domain.Task{doneEarly, doneEarly, pendingOverdue},
			want:  TimingLate,
		},
		{name: "all completed before due date", tasks: []domain.Task{doneEarly, doneEarly}, want: TimingEarly},
		{name: "completed after due date is on time", tasks: []domain.Task{doneEarly, doneLate}, want: TimingOnTime},
		{name: "done without tracked dates is on time", tasks: []domain.Task{doneNoDates}, want: TimingOnTime},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.tasks, now))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{StatusID: domain.TaskStatusInProgress, DueDate: datePtr(now.AddDate(0, 0, -3))},
	}
	first := Classify(tasks, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(tasks, now))
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	incomes := []domain.Income{{Amount: 100}, {Amount: 50}}
	expenses := []domain.Expense{{Amount: 30, Deductible: true}, {Amount: 20}}

	got := Summarize(incomes, expenses)

	assert.Equal(t, 150.0, got.TotalIncome)
	assert.Equal(t, 50.0, got.TotalExpense)
	assert.Equal(t, 100.0, got.Balance)
	assert.Equal(t, 30.0, got.DeductibleExpenses)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	got := Summarize(nil, nil)
	assert.Equal(t, Summary{}, got)
}

func TestNetProfitAndPercentSpent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 700.0, NetProfit(1000, 300))
	assert.Equal(t, -50.0, NetProfit(0, 50))

	assert.Equal(t, 30, PercentSpent(1000, 300))
	assert.Equal(t, 0, PercentSpent(0, 300))
	assert.Equal(t, 0, PercentSpent(-10, 300))
	assert.Equal(t, 67, PercentSpent(3, 2))
}
