package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/udem-connect/campus-connect/internal/ai"
	"github.com/udem-connect/campus-connect/internal/ai/gemini"
	"github.com/udem-connect/campus-connect/internal/ai/heuristic"
	"github.com/udem-connect/campus-connect/internal/filtering"
	"github.com/udem-connect/campus-connect/internal/logger"
	"github.com/udem-connect/campus-connect/internal/matching"
	"github.com/udem-connect/campus-connect/internal/secrets"
	"github.com/udem-connect/campus-connect/internal/store"
	"go.uber.org/zap"
)

var errAIDisabled = errors.New("ai scoring is disabled")

func openStore(cfg *StoreConfig, log *zap.Logger) (*store.Store, error) {
	return store.Open(store.Options{
		Path:     cfg.Path,
		InMemory: cfg.InMemory,
		Logger:   log.Named("store"),
	})
}

// newSelector picks the scoring strategy once. A remote scorer that cannot be
// built leaves the process on the heuristic strategy.
func newSelector(ctx context.Context, cfg *Config, log *zap.Logger) *matching.Selector {
	local := heuristic.New(heuristic.NewRand(cfg.Matching.Seed), log.Named(heuristic.Name))

	var remote ai.Scorer
	scorer, err := newRemoteScorer(ctx, cfg.AI, local, log)
	switch {
	case errors.Is(err, errAIDisabled):
		log.Info("ai scoring disabled by configuration")
	case err != nil:
		log.Warn("remote scoring unavailable, using heuristic strategy",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file"),
		)
	default:
		remote = scorer
	}

	selector := matching.New(matching.Config{
		Heuristic:   local,
		Remote:      remote,
		Filters:     filtering.Default(log.Named("filtering")),
		Concurrency: cfg.Matching.Concurrency,
		Logger:      log.Named("matching"),
	})

	model := ""
	if remote != nil {
		model = cfg.AI.Gemini.Model
	}
	logger.WithScorerFields(log, selector.Strategy(), providerOf(remote), model).Info("matching strategy selected",
		zap.Int("concurrency", cfg.Matching.Concurrency),
	)

	return selector
}

func newRemoteScorer(ctx context.Context, cfg *AIConfig, fallback *heuristic.Scorer, log *zap.Logger) (*gemini.Scorer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errAIDisabled
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Name {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithScorerFields(log.Named("gemini"), gemini.Name, gemini.Name, cfg.Gemini.Model).With(
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewScorer(generator, fallback, cfg.Timeout, cfg.Gemini.MaxLogLength, genLogger), nil
}

func providerOf(remote ai.Scorer) string {
	if remote == nil {
		return ""
	}
	return remote.Name()
}
