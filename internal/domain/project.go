package domain

import "time"

// Task status ids follow the seeded status catalog; 4 means done.
const (
	TaskStatusTodo       int64 = 1
	TaskStatusInProgress int64 = 2
	TaskStatusDone       int64 = 4
)

// Project is a unit of billable work owned by a profile and tied to a client.
type Project struct {
	ID         int64
	Name       string
	ProfileID  int64
	ClientID   int64
	ClientName string
	TypeID     *int64
	TypeName   string
	StatusID   int64
	StatusName string
	Budget     float64
	Archived   bool
	Pinned     bool
	Paid       bool
	StartDate  time.Time
	DueDate    *time.Time
}

// ProjectOverview is a project with its tasks and the derived numbers the
// list and detail screens show.
type ProjectOverview struct {
	Project
	Tasks          []Task
	Progress       int
	Timing         string
	TotalExpenses  float64
	NetProfit      float64
	PercentSpent   int
	EstimatedHours int
	CompletedHours int
}

// StatusCount is one row of the projects-by-status aggregate.
type StatusCount struct {
	StatusID   int64
	StatusName string
	Count      int
}

// BudgetSummary aggregates budget versus recorded project expenses.
type BudgetSummary struct {
	TotalBudget     float64
	TotalExpenses   float64
	Balance         float64
	PaidProjects    int
	PendingProjects int
}
