// Package heuristic scores student pairs with fixed rules and needs no external service.
package heuristic

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/udem-connect/campus-connect/internal/ai"
	"github.com/udem-connect/campus-connect/internal/student"
	"go.uber.org/zap"
)

const (
	Name = "heuristic"

	interestPoints   = 12
	languageBonus    = 20
	lookingForPoints = 5

	// Heuristic scores are clamped into [MinScore, MaxScore].
	MinScore = 65
	MaxScore = 95
)

// Rand is the randomness used to pick explanation templates and fallback activities.
type Rand interface {
	IntN(n int) int
}

// lockedRand makes a *rand.Rand safe to share between concurrent requests.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRand returns a concurrency-safe source. A zero seed draws a random one.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &lockedRand{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}

type Scorer struct {
	rnd    Rand
	logger *zap.Logger
}

func New(rnd Rand, logger *zap.Logger) *Scorer {
	if rnd == nil {
		rnd = NewRand(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{rnd: rnd, logger: logger}
}

func (s *Scorer) Name() string { return Name }

func (s *Scorer) Score(_ context.Context, subject, candidate *student.Profile, lang ai.Language) ai.MatchResult {
	common := subject.CommonInterests(candidate)
	total := RawScore(subject, candidate)
	score := ai.Clamp(float64(total), MinScore, MaxScore)

	b := bankFor(lang)
	interests := b.genericInterests
	if len(common) > 0 {
		interests = strings.Join(common, ", ")
	}
	template := b.explanations[s.rnd.IntN(len(b.explanations))]

	s.logger.Debug("heuristic score",
		zap.String("subject", subject.Name),
		zap.String("candidate", candidate.Name),
		zap.Int("raw_score", total),
		zap.Float64("score", score),
		zap.Strings("common_interests", common),
	)

	return ai.MatchResult{
		Name:              candidate.Name,
		Score:             score,
		Explanation:       strings.ReplaceAll(template, interestsPlaceholder, interests),
		CommonInterests:   common,
		SuggestedActivity: s.Activity(common, lang),
	}
}

// RawScore is the unclamped rule-based score.
func RawScore(subject, candidate *student.Profile) int {
	total := len(subject.CommonInterests(candidate)) * interestPoints

	practice := subject.Seeks(student.LookingForFrenchPractice) && candidate.Speaks(student.LanguageFrench)
	help := candidate.Seeks(student.LookingForFrenchHelp) && subject.FrenchLevel() >= student.LevelB2
	if practice || help {
		total += languageBonus
	}

	total += len(student.Intersect(subject.LookingFor, candidate.LookingFor)) * lookingForPoints
	return total
}

// Activity suggests something to do together based on the first common interest.
// Interests without a dedicated activity get a random one from the table.
func (s *Scorer) Activity(common []string, lang ai.Language) string {
	b := bankFor(lang)
	if len(common) == 0 {
		return b.defaultActivity
	}
	if activity, ok := b.activities[strings.ToLower(common[0])]; ok {
		return activity
	}
	return b.activityFallbacks[s.rnd.IntN(len(b.activityFallbacks))]
}
