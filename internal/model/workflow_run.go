package model

import "time"

// WorkflowKind names one of the console workflows.
type WorkflowKind string

const (
	WorkflowSeed     WorkflowKind = "seed"
	WorkflowGenerate WorkflowKind = "generate"
	WorkflowRefresh  WorkflowKind = "refresh"
)

// RunOutcome is the terminal result of a workflow invocation.
type RunOutcome string

const (
	OutcomeSucceeded RunOutcome = "succeeded"
	OutcomeFailed    RunOutcome = "failed"
	OutcomeDiscarded RunOutcome = "discarded" // superseded by a newer generation
)

// MaxRunMessageLength matches the size of the message column, in characters.
const MaxRunMessageLength = 1024

// WorkflowRun is the persisted record of one workflow invocation.
type WorkflowRun struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Kind        WorkflowKind `gorm:"size:16;index;not null" json:"kind"`
	StartDate   string       `gorm:"size:32" json:"start_date,omitempty"`
	EndDate     string       `gorm:"size:32" json:"end_date,omitempty"`
	Outcome     RunOutcome   `gorm:"size:16;not null" json:"outcome"`
	Message     string       `gorm:"size:1024" json:"message,omitempty"`
	Providers   int          `json:"providers"`
	Assignments int          `json:"assignments"`
	Conflicts   int          `json:"conflicts"`
	StartedAt   time.Time    `gorm:"not null;index" json:"started_at"`
	FinishedAt  time.Time    `gorm:"not null" json:"finished_at"`
}

// Duration reports how long the run took.
func (r WorkflowRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
