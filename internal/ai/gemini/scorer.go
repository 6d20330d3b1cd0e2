package gemini

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/udem-connect/campus-connect/internal/ai"
	"github.com/udem-connect/campus-connect/internal/metrics"
	"github.com/udem-connect/campus-connect/internal/student"
	"github.com/udem-connect/campus-connect/internal/utils"
	"go.uber.org/zap"
)

const (
	Name = "gemini"

	defaultScore          = 75
	maxExplanationLength  = 500
	defaultMaxLogLength   = 200
	defaultRequestTimeout = 30 * time.Second
)

//go:embed prompt.md
var promptTemplate string

//go:embed system_en.md
var systemPromptEnglish string

//go:embed system_fr.md
var systemPromptFrench string

var (
	scorePattern = regexp.MustCompile(`\b(\d{1,3})\b`)
	scoreKeyword = regexp.MustCompile(`(?i)score`)
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// fallbackScorer is the offline scorer used when a generation fails. It also owns the
// interest to activity table.
type fallbackScorer interface {
	ai.Scorer
	Activity(common []string, lang ai.Language) string
}

// Scorer asks Gemini to rate a pair and falls back to the heuristic scorer for that
// pair when the call fails.
type Scorer struct {
	generator contentGenerator
	fallback  fallbackScorer
	logger    *zap.Logger
	maxLogLen int
	timeout   time.Duration
}

func NewScorer(generator contentGenerator, fallback fallbackScorer, timeout time.Duration, maxLogLength int, logger *zap.Logger) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scorer{
		generator: generator,
		fallback:  fallback,
		logger:    logger,
		maxLogLen: maxLogLength,
		timeout:   timeout,
	}
}

func (s *Scorer) Name() string { return Name }

func (s *Scorer) Score(ctx context.Context, subject, candidate *student.Profile, lang ai.Language) ai.MatchResult {
	result, err := s.Evaluate(ctx, subject, candidate, lang)
	if err != nil {
		s.logger.Warn("gemini scoring failed, using heuristic score",
			zap.String("subject", subject.Name),
			zap.String("candidate", candidate.Name),
			zap.Error(err),
		)
		metrics.ScorerFallbacks.WithLabelValues("remote_error").Inc()
		return s.fallback.Score(ctx, subject, candidate, lang)
	}

	return *result
}

// Evaluate performs a single generation for the pair and parses the answer.
func (s *Scorer) Evaluate(ctx context.Context, subject, candidate *student.Profile, lang ai.Language) (*ai.MatchResult, error) {
	if subject == nil || candidate == nil {
		return nil, fmt.Errorf("subject and candidate are required")
	}

	prompt := buildPrompt(subject, candidate, lang)

	s.logger.Debug("gemini generate content request",
		zap.String("candidate", candidate.Name),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.GenerateContent(callCtx, systemPrompt(lang), prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini generate content response",
		zap.String("candidate", candidate.Name),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	common := subject.CommonInterests(candidate)
	score, found := parseScore(raw)
	if !found {
		s.logger.Debug("no score in gemini response, using default",
			zap.String("candidate", candidate.Name),
			zap.Int("default_score", defaultScore),
		)
		metrics.RemoteScoreParseDefaults.Inc()
	}

	return &ai.MatchResult{
		Name:              candidate.Name,
		Score:             score,
		Explanation:       utils.Truncate(raw, maxExplanationLength),
		CommonInterests:   common,
		SuggestedActivity: s.fallback.Activity(common, lang),
	}, nil
}

func systemPrompt(lang ai.Language) string {
	if lang == ai.French {
		return strings.TrimSpace(systemPromptFrench)
	}
	return strings.TrimSpace(systemPromptEnglish)
}

func buildPrompt(subject, candidate *student.Profile, lang ai.Language) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Student:\n{{STUDENT}}\n\nCandidate:\n{{CANDIDATE}}\n\nAnswer in {{LANGUAGE}} with a score from 0 to 100."
	}

	prompt := strings.ReplaceAll(template, "{{LANGUAGE}}", string(lang))
	prompt = strings.ReplaceAll(prompt, "{{STUDENT}}", describeProfile(subject))
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATE}}", describeProfile(candidate))
	return strings.TrimSpace(prompt)
}

func describeProfile(p *student.Profile) string {
	lines := []string{
		"- Name: " + p.Name,
		"- Interests: " + strings.Join(p.Interests, ", "),
		"- Languages: " + strings.Join(p.Languages, ", "),
		"- French Level: " + p.Level,
		"- Looking For: " + strings.Join(p.LookingFor, ", "),
		"- Bio: " + p.Bio,
	}
	return strings.Join(lines, "\n")
}

// parseScore takes the first standalone 1-3 digit number in raw, capped at 100.
// When raw mentions a score, the search starts there so numbered headings before
// it are skipped.
func parseScore(raw string) (float64, bool) {
	if loc := scoreKeyword.FindStringIndex(raw); loc != nil && scorePattern.MatchString(raw[loc[0]:]) {
		raw = raw[loc[0]:]
	}

	match := scorePattern.FindStringSubmatch(raw)
	if match == nil {
		return defaultScore, false
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return defaultScore, false
	}

	return ai.Clamp(float64(value), ai.MinScore, ai.MaxScore), true
}
