package console

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"schedule-console/internal/model"
)

// Messages shown on the panel when a workflow fails.
const (
	SeedFailedMessage     = "Failed to seed demo data. Check API connectivity."
	RefreshFailedMessage  = "Failed to refresh data. Check API connectivity."
	GenerateFailedMessage = "An error occurred while generating schedule"
)

// Scheduler is the subset of the scheduling service the workflows call.
type Scheduler interface {
	Health(ctx context.Context) error
	CreateProvider(ctx context.Context, p model.Provider) error
	CreateShiftType(ctx context.Context, st model.ShiftType) error
	ListProviders(ctx context.Context) ([]model.Provider, error)
	Generate(ctx context.Context, req model.GenerateRequest) (*model.GenerateResult, error)
	ListAssignments(ctx context.Context) ([]model.Assignment, error)
}

// RunRecorder persists the outcome of each workflow invocation.
type RunRecorder interface {
	RecordRun(ctx context.Context, run *model.WorkflowRun) error
}

// Options configures a Console.
type Options struct {
	Range model.DateRange
	// DiscardStaleGenerations drops every update of a generation that has been
	// superseded by a newer BeginGenerate, including its loading reset.
	DiscardStaleGenerations bool
	Runs                    RunRecorder
}

// Console owns the view state and runs the seed, generate and refresh
// workflows against the scheduling service.
type Console struct {
	scheduler    Scheduler
	runs         RunRecorder
	discardStale bool
	now          func() time.Time

	mu     sync.RWMutex
	view   View
	latest uint64
}

// New creates a console with an empty view.
func New(s Scheduler, opts Options) *Console {
	return &Console{
		scheduler:    s,
		runs:         opts.Runs,
		discardStale: opts.DiscardStaleGenerations,
		now:          time.Now,
		view:         NewView(opts.Range),
	}
}

// Snapshot returns a copy of the current view.
func (c *Console) Snapshot() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view.clone()
}

// SetRange updates the date range input.
func (c *Console) SetRange(r model.DateRange) {
	c.apply(withRange(r))
}

func (c *Console) apply(t transition) {
	c.mu.Lock()
	c.view = t(c.view)
	c.mu.Unlock()
}

// ProbeHealth pings the service once. Failures are logged and otherwise ignored.
func (c *Console) ProbeHealth(ctx context.Context) {
	if err := c.scheduler.Health(ctx); err != nil {
		log.Printf("health probe failed (ignored): %v", err)
		return
	}
	log.Println("health probe ok")
}

// SeedDemoData creates the demo providers and shift type, then reloads the
// provider list. The provider cache is only replaced when the final fetch
// succeeds; server-side effects of a partial run are left as they are.
func (c *Console) SeedDemoData(ctx context.Context) error {
	run := c.startRun(model.WorkflowSeed, model.DateRange{})
	c.apply(clearError)

	providers, err := c.seed(ctx)
	if err != nil {
		log.Printf("seed demo data: %v", err)
		c.apply(withError(SeedFailedMessage))
		c.finishRun(ctx, run, model.OutcomeFailed, SeedFailedMessage)
		return fmt.Errorf("seed demo data: %w", err)
	}

	c.apply(withProviders(providers))
	run.Providers = len(providers)
	c.finishRun(ctx, run, model.OutcomeSucceeded, "")
	return nil
}

func (c *Console) seed(ctx context.Context) ([]model.Provider, error) {
	demo := Demo()
	for _, p := range demo.Providers {
		if err := c.scheduler.CreateProvider(ctx, p); err != nil {
			return nil, fmt.Errorf("create provider %s: %w", p.ID, err)
		}
	}
	for _, st := range demo.ShiftTypes {
		if err := c.scheduler.CreateShiftType(ctx, st); err != nil {
			return nil, fmt.Errorf("create shift type %s: %w", st.ID, err)
		}
	}
	providers, err := c.scheduler.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return providers, nil
}

// Refresh reloads providers and then assignments. Each cache is replaced as
// soon as its own fetch succeeds; the first failure stops the sequence.
func (c *Console) Refresh(ctx context.Context) error {
	run := c.startRun(model.WorkflowRefresh, model.DateRange{})
	c.apply(clearError)

	fail := func(err error) error {
		log.Printf("refresh: %v", err)
		c.apply(withError(RefreshFailedMessage))
		c.finishRun(ctx, run, model.OutcomeFailed, RefreshFailedMessage)
		return fmt.Errorf("refresh: %w", err)
	}

	providers, err := c.scheduler.ListProviders(ctx)
	if err != nil {
		return fail(fmt.Errorf("list providers: %w", err))
	}
	c.apply(withProviders(providers))
	run.Providers = len(providers)

	assignments, err := c.scheduler.ListAssignments(ctx)
	if err != nil {
		return fail(fmt.Errorf("list assignments: %w", err))
	}
	c.apply(withAssignments(assignments))
	run.Assignments = len(assignments)

	c.finishRun(ctx, run, model.OutcomeSucceeded, "")
	return nil
}

// GenerateRun is an in-flight generation started by BeginGenerate.
type GenerateRun struct {
	token  uint64
	Range  model.DateRange
	record *model.WorkflowRun
}

// GenerateSchedule runs the whole generation workflow for r.
func (c *Console) GenerateSchedule(ctx context.Context, r model.DateRange) error {
	return c.CompleteGenerate(ctx, c.BeginGenerate(r))
}

// BeginGenerate marks a generation as in progress: loading is set and error
// and conflicts are cleared before any network call is made.
func (c *Console) BeginGenerate(r model.DateRange) *GenerateRun {
	run := &GenerateRun{Range: r, record: c.startRun(model.WorkflowGenerate, r)}

	c.mu.Lock()
	c.latest++
	run.token = c.latest
	c.view = beginGenerate(r)(c.view)
	c.mu.Unlock()

	return run
}

// CompleteGenerate performs the network half of a generation: request the
// schedule, publish its conflicts, then reload assignments. Conflicts set
// before a later failure stay visible next to the error. Loading is always
// cleared on return.
func (c *Console) CompleteGenerate(ctx context.Context, run *GenerateRun) (err error) {
	applied := true
	defer func() {
		applied = c.applyGeneration(run, endGenerate) && applied

		outcome, msg := model.OutcomeSucceeded, ""
		if err != nil {
			outcome, msg = model.OutcomeFailed, failureMessage(err)
		}
		if !applied {
			outcome = model.OutcomeDiscarded
		}
		c.finishRun(ctx, run.record, outcome, msg)
	}()

	fail := func(cause error) error {
		log.Printf("generate %s..%s: %v", run.Range.Start, run.Range.End, cause)
		applied = c.applyGeneration(run, withError(failureMessage(cause))) && applied
		return cause
	}

	result, err := c.scheduler.Generate(ctx, model.NewGenerateRequest(run.Range))
	if err != nil {
		return fail(err)
	}
	conflicts := result.Conflicts
	if conflicts == nil {
		conflicts = []string{}
	}
	applied = c.applyGeneration(run, withConflicts(conflicts)) && applied
	run.record.Conflicts = len(conflicts)

	assignments, err := c.scheduler.ListAssignments(ctx)
	if err != nil {
		return fail(err)
	}
	applied = c.applyGeneration(run, withAssignments(assignments)) && applied
	run.record.Assignments = len(assignments)

	return nil
}

// applyGeneration applies t on behalf of run. With stale discarding enabled a
// run that is no longer the latest is ignored and false is returned.
func (c *Console) applyGeneration(run *GenerateRun, t transition) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.discardStale && run.token != c.latest {
		return false
	}
	c.view = t(c.view)
	return true
}

// failureMessage picks the message surfaced for a failed generation.
func failureMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenerateFailedMessage
}

func (c *Console) startRun(kind model.WorkflowKind, r model.DateRange) *model.WorkflowRun {
	return &model.WorkflowRun{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartDate: r.Start,
		EndDate:   r.End,
		StartedAt: c.now().UTC(),
	}
}

// finishRun stamps and records the run. Recording errors are only logged.
func (c *Console) finishRun(ctx context.Context, run *model.WorkflowRun, outcome model.RunOutcome, msg string) {
	run.Outcome = outcome
	run.Message = truncate(msg, model.MaxRunMessageLength)
	run.FinishedAt = c.now().UTC()

	if c.runs == nil {
		return
	}
	if err := c.runs.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		log.Printf("failed to record %s run %s: %v", run.Kind, run.ID, err)
	}
}

// truncate cuts s to at most n characters, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
