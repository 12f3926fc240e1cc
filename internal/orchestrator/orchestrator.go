// Package orchestrator runs the generation stages one after another in a
// fixed order and stops at the first failure.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/diewo77/go-datawriter/internal/generators"
)

var (
	ErrNoStages       = errors.New("orchestrator: no stages")
	ErrNilStage       = errors.New("orchestrator: nil stage")
	ErrAlreadyStarted = errors.New("orchestrator: already started")
)

// Stage is a single generation step.
type Stage interface {
	Name() string
	Run(ctx context.Context) (generators.Result, error)
}

// State is the lifecycle of a run.
type State int

const (
	NotStarted State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Orchestrator executes its stages sequentially. There is no retry and no
// rollback: rows written by completed stages stay written.
type Orchestrator struct {
	stages []Stage

	mu      sync.Mutex
	state   State
	current string
}

// New returns an orchestrator running stages in the given order.
func New(stages ...Stage) (*Orchestrator, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("%w at position %d", ErrNilStage, i)
		}
	}
	return &Orchestrator{stages: stages}, nil
}

// State returns the current state and, while running or after a failure,
// the name of the stage concerned.
func (o *Orchestrator) State() (State, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state, o.current
}

func (o *Orchestrator) set(state State, stage string) {
	o.mu.Lock()
	o.state, o.current = state, stage
	o.mu.Unlock()
}

// Run executes every stage. On failure the stage error is returned as is and
// the remaining stages are not run. An orchestrator runs at most once.
func (o *Orchestrator) Run(ctx context.Context) ([]generators.Result, error) {
	o.mu.Lock()
	if o.state != NotStarted {
		o.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	o.state = Running
	o.mu.Unlock()

	results := make([]generators.Result, 0, len(o.stages))
	for _, stage := range o.stages {
		name := stage.Name()
		if err := ctx.Err(); err != nil {
			o.set(Failed, name)
			log.Error().Err(err).Str("stage", name).Msg("run canceled before stage")
			return results, err
		}

		o.set(Running, name)
		log.Info().Str("stage", name).Msg("stage started")
		res, err := stage.Run(ctx)
		if err != nil {
			o.set(Failed, name)
			log.Error().Err(err).Str("stage", name).Msg("stage failed")
			return results, err
		}

		results = append(results, res)
		ev := log.Info().Str("stage", name).Int("created", res.Created)
		if res.Links > 0 {
			ev = ev.Int("links", res.Links)
		}
		ev.Bool("skipped", res.Skipped).Msg("stage completed")
	}

	o.set(Completed, "")
	return results, nil
}
