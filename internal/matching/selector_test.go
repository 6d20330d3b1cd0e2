package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/udem-connect/campus-connect/internal/ai"
	"github.com/udem-connect/campus-connect/internal/ai/gemini"
	"github.com/udem-connect/campus-connect/internal/ai/heuristic"
	"github.com/udem-connect/campus-connect/internal/logger"
	"github.com/udem-connect/campus-connect/internal/student"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// tableScorer returns a fixed score per candidate name.
type tableScorer struct {
	name   string
	scores map[string]float64
	calls  atomic.Int32
}

func (s *tableScorer) Name() string { return s.name }

func (s *tableScorer) Score(_ context.Context, _, candidate *student.Profile, _ ai.Language) ai.MatchResult {
	s.calls.Add(1)
	return ai.MatchResult{Name: candidate.Name, Score: s.scores[candidate.Name]}
}

type firstIndex struct{}

func (firstIndex) IntN(int) int { return 0 }

func profiles(names ...string) []*student.Profile {
	out := make([]*student.Profile, 0, len(names))
	for _, name := range names {
		out = append(out, &student.Profile{Name: name})
	}
	return out
}

func resultNames(results []ai.MatchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Name)
	}
	return out
}

func TestFindBestMatchesOrdersAndTruncates(t *testing.T) {
	t.Parallel()

	scorer := &tableScorer{name: "table", scores: map[string]float64{"b": 70, "c": 90, "d": 80, "e": 65}}
	selector := New(Config{Heuristic: scorer})

	got := selector.FindBestMatches(context.Background(), &student.Profile{Name: "a"}, profiles("a", "b", "c", "d", "e"), ai.English)

	if diff := cmp.Diff([]string{"c", "d", "b"}, resultNames(got)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if scorer.calls.Load() != 4 {
		t.Fatalf("expected the subject not to be scored, got %d calls", scorer.calls.Load())
	}
}

func TestFindBestMatchesResultCount(t *testing.T) {
	t.Parallel()

	scorer := &tableScorer{name: "table", scores: map[string]float64{}}
	selector := New(Config{Heuristic: scorer})
	subject := &student.Profile{Name: "self"}

	for n := 0; n <= 5; n++ {
		candidates := []*student.Profile{{Name: "self"}}
		for i := 0; i < n; i++ {
			candidates = append(candidates, &student.Profile{Name: fmt.Sprintf("c%d", i)})
		}

		got := selector.FindBestMatches(context.Background(), subject, candidates, ai.English)
		if len(got) != min(MaxMatches, n) {
			t.Fatalf("with %d candidates expected %d results, got %d", n, min(MaxMatches, n), len(got))
		}
		if got == nil {
			t.Fatalf("expected an empty slice, not nil")
		}
		for _, r := range got {
			if r.Name == "self" {
				t.Fatalf("subject matched with itself")
			}
		}
	}
}

func TestFindBestMatchesStableTies(t *testing.T) {
	t.Parallel()

	scorer := &tableScorer{name: "table", scores: map[string]float64{"x": 80, "y": 80, "z": 80, "w": 90}}
	selector := New(Config{Heuristic: scorer})
	subject := &student.Profile{Name: "s"}

	first := selector.FindBestMatches(context.Background(), subject, profiles("x", "y", "w", "z"), ai.English)
	if diff := cmp.Diff([]string{"w", "x", "y"}, resultNames(first)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	second := selector.FindBestMatches(context.Background(), subject, profiles("z", "y", "x", "w"), ai.English)
	if diff := cmp.Diff([]string{"w", "z", "y"}, resultNames(second)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestFindBestMatchesConcurrentKeepsInputOrder(t *testing.T) {
	t.Parallel()

	scores := map[string]float64{}
	names := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("c%02d", i)
		names = append(names, name)
		scores[name] = 70
	}
	scorer := &tableScorer{name: "table", scores: scores}
	selector := New(Config{Heuristic: scorer, Concurrency: 4})

	for i := 0; i < 10; i++ {
		got := selector.FindBestMatches(context.Background(), &student.Profile{Name: "s"}, profiles(names...), ai.English)
		if diff := cmp.Diff([]string{"c00", "c01", "c02"}, resultNames(got)); diff != "" {
			t.Fatalf("unexpected order (-want +got):\n%s", diff)
		}
	}
	if scorer.calls.Load() != 200 {
		t.Fatalf("expected 200 scoring calls, got %d", scorer.calls.Load())
	}
}

func TestStrategyIsFixedAtConstruction(t *testing.T) {
	t.Parallel()

	local := &tableScorer{name: heuristic.Name, scores: map[string]float64{}}
	remote := &tableScorer{name: gemini.Name, scores: map[string]float64{}}

	withoutRemote := New(Config{Heuristic: local})
	if withoutRemote.Strategy() != heuristic.Name {
		t.Fatalf("expected heuristic strategy, got %q", withoutRemote.Strategy())
	}

	withRemote := New(Config{Heuristic: local, Remote: remote})
	if withRemote.Strategy() != gemini.Name {
		t.Fatalf("expected gemini strategy, got %q", withRemote.Strategy())
	}

	withRemote.FindBestMatches(context.Background(), &student.Profile{Name: "s"}, profiles("a", "b"), ai.English)
	if local.calls.Load() != 0 || remote.calls.Load() != 2 {
		t.Fatalf("expected only the remote scorer to run, got local=%d remote=%d", local.calls.Load(), remote.calls.Load())
	}
}

func TestFindBestMatchesWithoutSubject(t *testing.T) {
	t.Parallel()

	selector := New(Config{Heuristic: &tableScorer{name: "table"}})
	got := selector.FindBestMatches(context.Background(), nil, profiles("a"), ai.English)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

// failingFor fails generation for one candidate and answers for the others.
type failingFor struct {
	candidate string
}

func (g failingFor) GenerateContent(_ context.Context, _, prompt string) (string, error) {
	if strings.Contains(prompt, "- Name: "+g.candidate+"\n") {
		return "", errors.New("connection reset by peer")
	}
	return "Compatibility: 99. Great pair.", nil
}

func TestRemoteFailureFallsBackForOneCandidate(t *testing.T) {
	t.Parallel()

	fallback := heuristic.New(firstIndex{}, nil)
	remote := gemini.NewScorer(failingFor{candidate: "Bob"}, fallback, time.Second, 0, zap.NewNop())
	selector := New(Config{Heuristic: fallback, Remote: remote})

	subject := &student.Profile{
		Name:       "Alice",
		Interests:  []string{"coffee", "art"},
		LookingFor: []string{"french_practice"},
		Level:      "A2",
	}
	bob := &student.Profile{Name: "Bob", Interests: []string{"art"}, Languages: []string{"fr"}}
	carol := &student.Profile{Name: "Carol", Interests: []string{"coffee"}}
	dave := &student.Profile{Name: "Dave"}

	got := selector.FindBestMatches(context.Background(), subject, []*student.Profile{bob, carol, dave}, ai.English)
	if diff := cmp.Diff([]string{"Carol", "Dave", "Bob"}, resultNames(got)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	want := fallback.Score(context.Background(), subject, bob, ai.English)
	if diff := cmp.Diff(want, got[2]); diff != "" {
		t.Fatalf("expected heuristic result for Bob (-want +got):\n%s", diff)
	}

	for _, r := range got[:2] {
		if r.Score != 99 || r.Explanation != "Compatibility: 99. Great pair." {
			t.Fatalf("expected remote result for %s, got %+v", r.Name, r)
		}
	}
}

func TestHeuristicScoresStayInBand(t *testing.T) {
	t.Parallel()

	interests := []string{"art", "coffee", "music", "cinema", "sports", "museums", "technology", "hiking"}
	candidates := make([]*student.Profile, 0, len(interests))
	for i := range interests {
		candidates = append(candidates, &student.Profile{
			Name:       fmt.Sprintf("c%d", i),
			Interests:  interests[:i],
			Languages:  []string{"fr"},
			LookingFor: []string{"french_help"},
		})
	}
	subject := &student.Profile{Name: "s", Interests: interests, Level: "C1", LookingFor: []string{"french_practice"}}

	selector := New(Config{Heuristic: heuristic.New(heuristic.NewRand(1), nil), Concurrency: 3})
	for _, lang := range []ai.Language{ai.English, ai.French} {
		for _, r := range selector.FindBestMatches(context.Background(), subject, candidates, lang) {
			if r.Score < heuristic.MinScore || r.Score > heuristic.MaxScore {
				t.Fatalf("score %v outside [%d, %d]", r.Score, heuristic.MinScore, heuristic.MaxScore)
			}
		}
	}
}

func TestFindBestMatchesRanksInactiveCandidates(t *testing.T) {
	t.Parallel()

	inactive := false
	selector := New(Config{Heuristic: heuristic.New(heuristic.NewRand(3), nil)})
	subject := &student.Profile{Name: "a", Interests: []string{"art"}}
	candidates := []*student.Profile{
		{Name: "b", Interests: []string{"art"}, Active: &inactive},
		{Name: "c"},
	}

	got := selector.FindBestMatches(context.Background(), subject, candidates, ai.English)
	if diff := cmp.Diff([]string{"b", "c"}, resultNames(got)); diff != "" {
		t.Fatalf("unexpected matches (-want +got):\n%s", diff)
	}
}

func TestFindBestMatchesLogsRequest(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	selector := New(Config{Heuristic: &tableScorer{name: "table"}, Logger: zap.New(core)})

	selector.FindBestMatches(context.Background(), &student.Profile{Name: "s"}, profiles("a", "b"), ai.French)

	entries := logs.FilterMessage("matches computed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one summary entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields[logger.FieldStrategy] != "table" || fields[logger.FieldLanguage] != "fr" || fields["matches"] != int64(2) {
		t.Fatalf("unexpected summary fields: %v", fields)
	}
}
