package filtering

import (
	"context"
	"fmt"

	"github.com/udem-connect/campus-connect/internal/student"
	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to match candidates.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, subject *student.Profile, candidates []*student.Profile) ([]*student.Profile, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Filtering runs an ordered list of steps over a candidate pool.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filtering{steps: steps, logger: logger}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func (f *Filtering) DisableByName(name, reason string) {
	for _, step := range f.steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the filters sequentially and returns the candidates left after the last one.
// The input slice is never modified.
func (f *Filtering) Run(ctx context.Context, subject *student.Profile, candidates []*student.Profile) ([]*student.Profile, error) {
	if subject == nil {
		return nil, fmt.Errorf("subject is required")
	}

	left := candidates
	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, subject, left)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		left = next
	}

	return left, nil
}

// Describe returns status entries for the configured filters.
func (f *Filtering) Describe() []Status {
	statuses := make([]Status, 0, len(f.steps))
	for _, step := range f.steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// Default returns the matcher pipeline. Only the name guard runs; narrowing the
// candidate set otherwise is up to whoever loads the candidates.
func Default(logger *zap.Logger) *Filtering {
	return New([]Filter{NewSelfMatch(logger)}, logger)
}

// keep returns the candidates for which pred holds, and the names of the others.
func keep(candidates []*student.Profile, pred func(*student.Profile) bool) ([]*student.Profile, []string) {
	kept := make([]*student.Profile, 0, len(candidates))
	var dropped []string
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		if pred(candidate) {
			kept = append(kept, candidate)
			continue
		}
		dropped = append(dropped, candidate.Name)
	}
	return kept, dropped
}
