package flow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/scholarmatch/core"
	"github.com/poiesic/scholarmatch/match"
)

// Runner drives the guided eligibility flow. At the terminal step it runs
// the same matching pipeline as a direct search, so the guided path can
// never drift from the rules used elsewhere. Semantic matching is not
// exposed through the guided flow; results are rule-based only.
type Runner struct {
	matcher *match.Matcher
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a new guided flow runner.
func NewRunner(matcher *match.Matcher, opts ...Option) (*Runner, error) {
	if matcher == nil {
		return nil, ErrMatcherRequired
	}
	r := &Runner{
		matcher: matcher,
		logger:  slog.Default().With("component", "guided-flow"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// StepResult is the outcome of one flow transition: either the next
// question, or the match results at the terminal step.
type StepResult struct {
	NextState *State              `json:"nextState"`
	Question  *Step               `json:"question,omitempty"`
	Results   []*core.MatchResult `json:"results,omitempty"`
	Progress  float64             `json:"progress"`
}

// Start returns a fresh state and the first question.
func (r *Runner) Start() *StepResult {
	state := NewState()
	return &StepResult{
		NextState: state,
		Question:  state.Current(),
		Progress:  state.Progress(),
	}
}

// Resume recomputes the next question and progress for a previously
// serialized state, without side effects.
func (r *Runner) Resume(state *State) (*StepResult, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return &StepResult{
		NextState: state,
		Question:  state.Current(),
		Progress:  state.Progress(),
	}, nil
}

// Advance records an answer for stepId and moves the flow forward.
//
// The step must be the current one or an earlier, already-reached one:
// re-answering an earlier step changes that answer without discarding the
// later answers already collected. When the final question is answered the
// flow transitions to the results state and runs the matcher with the
// accumulated answers as the profile.
//
// The input state is never mutated; the returned result carries the next
// state.
func (r *Runner) Advance(ctx context.Context, state *State, stepId StepId, answer string) (*StepResult, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if state.Done() {
		return nil, ErrFlowComplete
	}

	idx, ok := stepIndexById[stepId]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, stepId)
	}
	if idx > state.StepIndex {
		return nil, fmt.Errorf("%w: %q", ErrStepNotReached, stepId)
	}

	next := state.Clone()
	if _, answered := next.Answers[stepId]; !answered {
		next.Answered = append(next.Answered, stepId)
	}
	next.Answers[stepId] = answer

	// Answering the current step advances; re-answering an earlier one
	// keeps the position (later answers stay collected, results go stale
	// until resubmission).
	if idx == next.StepIndex {
		next.StepIndex++
	}

	if !next.Done() {
		return &StepResult{
			NextState: next,
			Question:  next.Current(),
			Progress:  next.Progress(),
		}, nil
	}

	profile := next.Profile()
	r.logger.Debug("guided flow complete, running matcher", "answers", len(next.Answers))

	response, err := r.matcher.Match(ctx, profile, false)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		NextState: next,
		Results:   response.Recommendations,
		Progress:  next.Progress(),
	}, nil
}
