// Package matching ranks candidate students for a subject with the configured scoring strategy.
package matching

import (
	"context"
	"sort"
	"time"

	"github.com/udem-connect/campus-connect/internal/ai"
	"github.com/udem-connect/campus-connect/internal/filtering"
	"github.com/udem-connect/campus-connect/internal/logger"
	"github.com/udem-connect/campus-connect/internal/metrics"
	"github.com/udem-connect/campus-connect/internal/student"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MaxMatches is the number of results returned by FindBestMatches.
const MaxMatches = 3

// Config is built once at startup and never changed afterwards.
type Config struct {
	// Heuristic is always required.
	Heuristic ai.Scorer
	// Remote is nil when the remote strategy could not be set up.
	Remote ai.Scorer
	// Filters narrows the candidate pool. The default pipeline is used when nil.
	Filters *filtering.Filtering
	// Concurrency bounds parallel scoring. Values below 2 score sequentially.
	Concurrency int
	Logger      *zap.Logger
}

// Selector scores candidates for a subject and returns the best ones.
type Selector struct {
	heuristic   ai.Scorer
	remote      ai.Scorer
	useRemote   bool
	filters     *filtering.Filtering
	concurrency int
	logger      *zap.Logger
}

func New(cfg Config) *Selector {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	filters := cfg.Filters
	if filters == nil {
		filters = filtering.Default(logger)
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Selector{
		heuristic:   cfg.Heuristic,
		remote:      cfg.Remote,
		useRemote:   cfg.Remote != nil,
		filters:     filters,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Strategy returns the name of the scorer used for every request.
func (s *Selector) Strategy() string {
	return s.active().Name()
}

// Filters exposes the candidate pipeline for status reporting.
func (s *Selector) Filters() *filtering.Filtering {
	return s.filters
}

func (s *Selector) active() ai.Scorer {
	if s.useRemote {
		return s.remote
	}
	return s.heuristic
}

// FindBestMatches returns up to MaxMatches results ordered by descending score.
// Ties keep the order of candidates. It never fails: an unusable subject yields
// an empty result.
func (s *Selector) FindBestMatches(ctx context.Context, subject *student.Profile, candidates []*student.Profile, lang ai.Language) []ai.MatchResult {
	scorer := s.active()
	strategy := scorer.Name()
	start := time.Now()

	metrics.MatchRequests.WithLabelValues(strategy).Inc()
	defer func() {
		metrics.MatchDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	}()

	pool, err := s.filters.Run(ctx, subject, candidates)
	if err != nil {
		s.logger.Warn("filtering candidates failed", zap.Error(err))
		return []ai.MatchResult{}
	}

	metrics.MatchCandidates.Observe(float64(len(pool)))

	results := s.scoreAll(ctx, scorer, subject, pool, lang)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > MaxMatches {
		results = results[:MaxMatches]
	}

	s.logger.Debug("matches computed",
		zap.String("subject", subject.Name),
		zap.String(logger.FieldStrategy, strategy),
		zap.String(logger.FieldLanguage, string(lang)),
		zap.Int("candidates", len(pool)),
		zap.Int("matches", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return results
}

// scoreAll keeps results in candidate order regardless of completion order.
func (s *Selector) scoreAll(ctx context.Context, scorer ai.Scorer, subject *student.Profile, pool []*student.Profile, lang ai.Language) []ai.MatchResult {
	results := make([]ai.MatchResult, len(pool))

	if s.concurrency < 2 || len(pool) < 2 {
		for i, candidate := range pool {
			results[i] = scorer.Score(ctx, subject, candidate, lang)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, candidate := range pool {
		g.Go(func() error {
			results[i] = scorer.Score(ctx, subject, candidate, lang)
			return nil
		})
	}
	// Scorers do not return errors.
	_ = g.Wait()

	return results
}
