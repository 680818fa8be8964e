package domain

import "time"

// Task belongs to a project. Importance is an ordinal from 1 (very low) to
// 5 (critical) and weighs the task in progress computations.
type Task struct {
	ID             int64
	ProjectID      int64
	ProjectName    string
	Name           string
	Description    string
	Importance     int
	EstimatedHours int
	StatusID       int64
	StatusName     string
	StartDate      *time.Time
	DueDate        *time.Time
	CompletedAt    *time.Time
}

// Done reports whether the task has reached the done status.
func (t Task) Done() bool {
	return t.StatusID == TaskStatusDone
}

// TaskUpdate carries a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Name           *string
	Description    *string
	Importance     *int
	EstimatedHours *int
	StatusID       *int64
	StartDate      *time.Time
	DueDate        *time.Time
}
