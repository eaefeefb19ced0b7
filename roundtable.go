// Package roundtable provides a high-level façade over the orchestration
// engine and its services (routing, transcripts, artifacts, memory, logging)
// enabling rapid construction of coordinated multi-role problem-solving runs.
// Most applications interact with this package by:
//  1. Creating a Roundtable via New() (optionally overriding responders or services)
//  2. Running a task synchronously (Run) or streaming it (Start)
//  3. Inspecting the returned state: solution, evaluation, message log
//
// The façade delegates orchestration to engine.Engine while keeping setup and
// usage ergonomics concise. The defaults run fully offline with scripted
// responders; production deployments typically bind model-backed responders
// and supply durable stores and a structured logger.
package roundtable

import (
	"context"

	"github.com/hupe1980/roundtable/artifact"
	"github.com/hupe1980/roundtable/config"
	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/engine"
	"github.com/hupe1980/roundtable/evaluation"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/memory"
	"github.com/hupe1980/roundtable/responder"
	"github.com/hupe1980/roundtable/router"
	"github.com/hupe1980/roundtable/transcript"
)

// Options configures the Roundtable instance.
type Options struct {
	// MaxIterations is the orchestration cycle budget per run.
	MaxIterations int

	// ConvergenceThreshold is the evaluation score at which a run exits early.
	ConvergenceThreshold float64

	// MaxTurnRetries bounds retries of a failing responder turn.
	MaxTurnRetries int

	// MessageBufferSize sets the channel buffer for streamed messages.
	MessageBufferSize int

	// Phases overrides the routing phase table. Defaults to the
	// research/critique/execution cycle.
	Phases []router.Phase

	// Responders overlays the default role table. Roles present here replace
	// the scripted defaults; roles absent keep them. Supplying a coordinator
	// here takes over sequencing entirely.
	Responders core.RoleTable

	// Scorer grades solutions during the evaluation turn.
	Scorer evaluation.Scorer

	// Stores (default to in-memory implementations if not provided)
	TranscriptStore core.TranscriptStore
	ArtifactStore   core.ArtifactStore
	MemoryStore     core.MemoryStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Roundtable is the high-level façade aggregating the engine and services.
type Roundtable struct {
	opts   Options
	engine *engine.Engine
}

// New creates a Roundtable with optional overrides. Any unset service is
// initialized with an in-memory implementation and any unbound role with its
// scripted default, so a zero-configuration instance runs end to end offline.
func New(optFns ...func(o *Options)) *Roundtable {
	opts := Options{
		MaxIterations:        5,
		ConvergenceThreshold: evaluation.DefaultThreshold,
		MaxTurnRetries:       1,
		MessageBufferSize:    100,
		Phases:               router.DefaultPhases,
		Scorer:               evaluation.DefaultScorer(),
		TranscriptStore:      transcript.NewInMemoryStore(),
		ArtifactStore:        artifact.NewInMemoryStore(),
		MemoryStore:          memory.NewInMemoryStore(),
		Logger:               logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	rt := router.New(func(o *router.Options) {
		o.Phases = opts.Phases
	})

	table := core.RoleTable{
		core.RoleCoordinator: responder.NewCoordinator(func(o *responder.CoordinatorOptions) {
			o.Router = rt
			o.ArtifactStore = opts.ArtifactStore
		}),
		core.RoleResearcher: responder.NewResearcher(func(o *responder.ResearcherOptions) {
			o.MemoryStore = opts.MemoryStore
		}),
		core.RoleCritic:   responder.NewCritic(),
		core.RoleExecutor: responder.NewExecutor(),
		core.RoleEvaluator: responder.NewEvaluator(func(o *responder.EvaluatorOptions) {
			o.Scorer = opts.Scorer
		}),
	}
	for role, r := range opts.Responders {
		table[role] = r
	}

	eng := engine.New(table, func(o *engine.Options) {
		o.MaxIterations = opts.MaxIterations
		o.ConvergenceThreshold = opts.ConvergenceThreshold
		o.MaxTurnRetries = opts.MaxTurnRetries
		o.MessageBufferSize = opts.MessageBufferSize
		o.Router = rt
		o.TranscriptStore = opts.TranscriptStore
		o.Logger = opts.Logger
	})

	return &Roundtable{opts: opts, engine: eng}
}

// NewFromConfig creates a Roundtable from a parsed configuration, applying
// any further overrides afterwards.
func NewFromConfig(cfg config.Config, optFns ...func(o *Options)) *Roundtable {
	base := func(o *Options) {
		o.MaxIterations = cfg.MaxIterations
		o.ConvergenceThreshold = cfg.ConvergenceThreshold
		o.MaxTurnRetries = cfg.MaxTurnRetries
		o.Phases = cfg.PhaseTable()
		o.Logger = cfg.Logging.Logger()
	}
	return New(append([]func(o *Options){base}, optFns...)...)
}

// Run executes a task to completion and returns the final state. On failure
// the partial state persisted up to that point is returned alongside the
// error when available.
func (r *Roundtable) Run(ctx context.Context, task string) (*core.State, error) {
	return r.engine.Run(ctx, task)
}

// Start begins an asynchronous run, returning the run ID plus channels
// streaming every message as it is logged. The message channel closes when
// the run completes; the error channel carries at most one terminal error.
func (r *Roundtable) Start(ctx context.Context, task string) (string, <-chan core.Message, <-chan error, error) {
	return r.engine.Start(ctx, task)
}

// Cancel aborts an active run.
func (r *Roundtable) Cancel(runID string) error { return r.engine.Cancel(runID) }

// State returns the persisted state snapshot for a run.
func (r *Roundtable) State(runID string) (*core.State, error) { return r.engine.State(runID) }

// Transcript returns the persisted message log for a run.
func (r *Roundtable) Transcript(runID string) ([]core.Message, error) {
	return r.engine.Transcript(runID)
}

// ArtifactStore exposes the artifact service for callers that want to
// inspect plans and solutions a run saved.
func (r *Roundtable) ArtifactStore() core.ArtifactStore { return r.opts.ArtifactStore }

// MemoryStore exposes the memory service.
func (r *Roundtable) MemoryStore() core.MemoryStore { return r.opts.MemoryStore }
