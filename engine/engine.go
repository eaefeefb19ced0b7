package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/evaluation"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/router"
	"github.com/hupe1980/roundtable/transcript"
)

// Options configures an Engine instance using the functional options pattern.
type Options struct {
	// MaxIterations is the orchestration cycle budget per run. Defaults to 5.
	MaxIterations int

	// ConvergenceThreshold is the score at which a run exits early. Only used
	// when Policy is nil. Defaults to evaluation.DefaultThreshold.
	ConvergenceThreshold float64

	// MaxTurnRetries bounds how often a failing responder turn is retried
	// before the run is marked failed. Defaults to 1.
	MaxTurnRetries int

	// MessageBufferSize sets the channel buffer for streamed messages.
	MessageBufferSize int

	// Router selects the worker for each cycle. Defaults to the standard
	// research/critique/execution table. Must be the same router instance the
	// coordinator responder was built with.
	Router *router.Router

	// Policy decides when a run is finished. Defaults to ConvergencePolicy.
	Policy TerminationPolicy

	// TranscriptStore persists per-run message history and state snapshots.
	// Defaults to an in-memory implementation.
	TranscriptStore core.TranscriptStore

	// Logger provides structured logging. Defaults to NoOp if nil.
	Logger logging.Logger
}

// Engine drives orchestration runs over an injected role table. Public
// methods are safe for concurrent use; the per-run loop itself is strictly
// sequential.
type Engine struct {
	table core.RoleTable

	maxIterations     int
	maxTurnRetries    int
	messageBufferSize int

	router          *router.Router
	policy          TerminationPolicy
	transcriptStore core.TranscriptStore
	logger          logging.Logger

	activeRuns map[string]context.CancelFunc
	mu         sync.RWMutex
}

// New constructs an Engine around a role table with optional overrides. The
// table is injected, never registered globally; callers own the lifecycle of
// their responders.
func New(table core.RoleTable, optFns ...func(o *Options)) *Engine {
	opts := Options{
		MaxIterations:        5,
		ConvergenceThreshold: evaluation.DefaultThreshold,
		MaxTurnRetries:       1,
		MessageBufferSize:    100,
		Router:               router.New(),
		TranscriptStore:      transcript.NewInMemoryStore(),
		Logger:               logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Policy == nil {
		opts.Policy = NewConvergencePolicy(opts.ConvergenceThreshold)
	}

	return &Engine{
		table:             table,
		maxIterations:     opts.MaxIterations,
		maxTurnRetries:    opts.MaxTurnRetries,
		messageBufferSize: opts.MessageBufferSize,
		router:            opts.Router,
		policy:            opts.Policy,
		transcriptStore:   opts.TranscriptStore,
		logger:            opts.Logger,
	}
}

// Start begins an asynchronous run and returns channels streaming every
// message as it is appended to the log. The message channel is closed when
// the run completes; the error channel carries at most one terminal error.
// Configuration errors are returned immediately, before the loop starts.
func (e *Engine) Start(ctx context.Context, task string) (string, <-chan core.Message, <-chan error, error) {
	if err := e.validate(); err != nil {
		return "", nil, nil, err
	}

	runID := core.NewID()
	state := core.NewState(task, e.maxIterations)
	state.RunID = runID

	msgCh := make(chan core.Message, e.messageBufferSize)
	errCh := make(chan error, 1)

	runCtx, cancel := context.WithCancel(ctx)

	e.mu.Lock()
	if e.activeRuns == nil {
		e.activeRuns = make(map[string]context.CancelFunc)
	}
	e.activeRuns[runID] = cancel
	e.mu.Unlock()

	go func() {
		defer func() {
			close(msgCh)
			close(errCh)
			cancel()
			e.mu.Lock()
			delete(e.activeRuns, runID)
			e.mu.Unlock()
		}()

		err := e.loop(runCtx, state, msgCh)

		// Persist the snapshot even on failure so prior messages are never
		// lost; a failed run's partial state stays available for diagnostics.
		if serr := e.transcriptStore.SaveSnapshot(runID, state.Clone()); serr != nil {
			e.logger.Warn("failed to save state snapshot run_id=%s: %v", runID, serr)
		}

		if err != nil {
			errCh <- err
		}
	}()

	return runID, msgCh, errCh, nil
}

// Run executes a task to completion and returns the final state. On failure
// the partial state accumulated so far is returned alongside the error.
func (e *Engine) Run(ctx context.Context, task string) (*core.State, error) {
	runID, msgCh, errCh, err := e.Start(ctx, task)
	if err != nil {
		return nil, err
	}

	var runErr error

	for msgCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return e.snapshotOrNil(runID), ctx.Err()
		case _, ok := <-msgCh:
			if !ok {
				msgCh = nil
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				runErr = err
			}
		}
	}

	state, err := e.transcriptStore.Snapshot(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load final state: %w", err)
	}

	return state, runErr
}

// Cancel requests cooperative termination of an in-flight run. Cancelling an
// unknown or already finished run returns ErrRunNotFound.
func (e *Engine) Cancel(runID string) error {
	e.mu.Lock()
	cancel, exists := e.activeRuns[runID]
	e.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	cancel()

	return nil
}

// State returns the persisted state snapshot of a finished or failed run.
func (e *Engine) State(runID string) (*core.State, error) {
	return e.transcriptStore.Snapshot(runID)
}

// Transcript returns the persisted message history of a run.
func (e *Engine) Transcript(runID string) ([]core.Message, error) {
	return e.transcriptStore.Messages(runID)
}

// validate checks the configuration before a loop starts: a positive
// iteration budget, a routable phase table, a coordinator binding, and a
// binding for every role the router can select.
func (e *Engine) validate() error {
	if e.maxIterations <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, e.maxIterations)
	}

	if len(e.router.Phases()) == 0 {
		return ErrNoPhases
	}

	if _, ok := e.table[core.RoleCoordinator]; !ok {
		return fmt.Errorf("%w: %s", ErrMissingResponder, core.RoleCoordinator)
	}

	for _, role := range e.router.Roles() {
		if _, ok := e.table[role]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingResponder, role)
		}
	}

	return nil
}

// loop runs orchestration cycles until the termination policy fires or a
// turn fails. Each cycle is a coordinator turn followed by the selected
// worker's turn; the policy is checked once per full cycle.
func (e *Engine) loop(ctx context.Context, state *core.State, msgCh chan<- core.Message) error {
	starved := map[core.Role]int{}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		e.noteStarvation(state, starved)

		if err := e.turn(ctx, core.RoleCoordinator, state, msgCh); err != nil {
			return err
		}

		worker := state.ActiveRole
		if err := e.turn(ctx, worker, state, msgCh); err != nil {
			return err
		}

		if e.policy.Finished(state) {
			e.logger.Info("run finished run_id=%s iteration=%d score=%.2f", state.RunID, state.Iteration, state.ConvergenceScore)
			return nil
		}
	}
}

// noteStarvation warns when a role stays unresponsive across consecutive
// cycles. Route is pure, so consulting it here does not disturb the
// coordinator's own routing.
func (e *Engine) noteStarvation(state *core.State, starved map[core.Role]int) {
	d := e.router.Route(state)

	missing := map[core.Role]bool{}
	for _, role := range d.Missing {
		missing[role] = true
		starved[role]++
		if starved[role] >= 2 {
			e.logger.Warn("role %s has not responded for %d consecutive cycles run_id=%s", role, starved[role], state.RunID)
		}
	}

	for role := range starved {
		if !missing[role] {
			delete(starved, role)
		}
	}
}

// turn invokes one responder with bounded retries, enforces score ownership,
// and delivers the appended messages to the transcript store and stream. A
// failed attempt is rolled back to the pre-turn mark before retrying so a
// retried turn cannot double-append; delivered messages never disappear.
func (e *Engine) turn(ctx context.Context, role core.Role, state *core.State, msgCh chan<- core.Message) error {
	rsp, ok := e.table[role]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingResponder, role)
	}

	mark := len(state.Messages)
	scoreBefore := state.ConvergenceScore
	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= e.maxTurnRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := rsp.Respond(ctx, state); err != nil {
			lastErr = err
			state.Messages = state.Messages[:mark]
			e.logger.Warn("responder failed role=%s iteration=%d attempt=%d: %v", role, state.Iteration, attempt+1, err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("turn abandoned role=%s iteration=%d after %d attempts", role, state.Iteration, e.maxTurnRetries+1)
		return fmt.Errorf("role %s failed at iteration %d: %w", role, state.Iteration, lastErr)
	}

	if role != core.RoleEvaluator && state.ConvergenceScore != scoreBefore {
		return fmt.Errorf("%w: role %s", ErrScoreOwnership, role)
	}

	for _, m := range state.Messages[mark:] {
		if err := e.transcriptStore.AppendMessage(state.RunID, m); err != nil {
			return fmt.Errorf("failed to append message to transcript: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msgCh <- m:
		}
	}

	e.logger.Debug("turn completed role=%s iteration=%d messages=%d duration=%s", role, state.Iteration, len(state.Messages)-mark, time.Since(start))

	return nil
}

func (e *Engine) snapshotOrNil(runID string) *core.State {
	state, err := e.transcriptStore.Snapshot(runID)
	if err != nil {
		return nil
	}
	return state
}
