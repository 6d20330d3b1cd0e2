package filtering

import (
	"context"

	"github.com/udem-connect/campus-connect/internal/student"
	"go.uber.org/zap"
)

const SelfMatchName = "self_match"

type selfMatchFilter struct {
	logger *zap.Logger
}

// NewSelfMatch creates a filter that removes candidates sharing the subject's name.
// Two different students with the same name are treated as one person.
func NewSelfMatch(logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &selfMatchFilter{logger: logger}
}

func (f *selfMatchFilter) Name() string { return SelfMatchName }

// The name guard cannot be turned off.
func (f *selfMatchFilter) Disable(string) {}

func (f *selfMatchFilter) IsEnabled() bool { return true }

func (f *selfMatchFilter) Apply(_ context.Context, subject *student.Profile, candidates []*student.Profile) ([]*student.Profile, Step, error) {
	initial := len(candidates)
	kept, dropped := keep(candidates, func(candidate *student.Profile) bool {
		return candidate.Name != subject.Name
	})

	if len(dropped) > 0 {
		f.logger.Debug("excluding the subject from its own candidates",
			zap.String("subject", subject.Name),
			zap.Int("candidates_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *selfMatchFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{"compared_field": "name"}}
}
