package ai

import (
	"context"
	"strings"

	"github.com/udem-connect/campus-connect/internal/student"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Language selects the template banks used for generated text.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// ParseLanguage maps "fr", "FR" or "fr-CA" to French and everything else to English.
func ParseLanguage(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == string(French) || strings.HasPrefix(s, "fr-") || strings.HasPrefix(s, "fr_") {
		return French
	}
	return English
}

type MatchResult struct {
	Name              string   `json:"name"`
	Score             float64  `json:"match_score"`
	Explanation       string   `json:"explanation"`
	CommonInterests   []string `json:"common_interests"`
	SuggestedActivity string   `json:"suggested_activity"`
}

// Scorer rates how well candidate fits subject. Implementations recover from their own
// failures, so a result is always produced.
type Scorer interface {
	Score(ctx context.Context, subject, candidate *student.Profile, lang Language) MatchResult
	Name() string
}

// Clamp bounds score into [low, high].
func Clamp(score, low, high float64) float64 {
	return min(max(score, low), high)
}
