package student

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseFrenchLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    FrenchLevel
		wantErr bool
	}{
		{input: "A1", want: LevelA1},
		{input: " b2 ", want: LevelB2},
		{input: "c2", want: LevelC2},
		{input: "native", want: LevelUnknown, wantErr: true},
		{input: "", want: LevelUnknown, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFrenchLevel(tt.input)
			if tt.wantErr != (err != nil) {
				t.Fatalf("unexpected error state: %v", err)
			}
			if err != nil && !errors.Is(err, ErrUnknownLevel) {
				t.Fatalf("expected ErrUnknownLevel, got %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if !(LevelA2 < LevelB1 && LevelB2 < LevelC1 && LevelUnknown < LevelA1) {
		t.Fatal("levels must be ordered A1 < A2 < B1 < B2 < C1 < C2")
	}
}

func TestIntersectKeepsFirstListOrder(t *testing.T) {
	t.Parallel()

	got := Intersect([]string{"music", "art", "coffee", "art"}, []string{"coffee", "art", "hiking"})
	want := []string{"art", "coffee"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected intersection (-want +got):\n%s", diff)
	}

	if got := Intersect(nil, []string{"art"}); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSpeaksAndSeeksIgnoreCase(t *testing.T) {
	t.Parallel()

	p := &Profile{Languages: []string{"EN", " fr"}, LookingFor: []string{"French_Practice"}}
	if !p.Speaks(LanguageFrench) {
		t.Fatal("expected profile to speak french")
	}
	if !p.Seeks(LookingForFrenchPractice) {
		t.Fatal("expected profile to seek french practice")
	}
	if p.Seeks(LookingForFrenchHelp) {
		t.Fatal("did not expect french help")
	}
}

func TestProfileDocumentConversion(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 9, 1, 12, 30, 0, 0, time.UTC)
	inactive := false
	original := &Profile{
		ID:         "s-1",
		Name:       "Marie Tremblay",
		Email:      "marie.tremblay@umontreal.ca",
		Interests:  []string{"art", "coffee"},
		Languages:  []string{"fr", "en"},
		Level:      "C2",
		LookingFor: []string{"french_help"},
		Bio:        "Local student",
		Role:       RoleStudent,
		Active:     &inactive,
		CreatedAt:  created,
	}

	doc, err := ToDocument(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc["french_level"] != "C2" {
		t.Fatalf("expected json field names in document, got %v", doc)
	}

	// Store metadata must not break decoding.
	doc["_seq"] = float64(7)

	var decoded Profile
	if err := FromDocument(doc, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(original, &decoded); diff != "" {
		t.Fatalf("profile changed after conversion (-want +got):\n%s", diff)
	}
	if decoded.IsActive() {
		t.Fatal("expected inactive profile")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &Profile{Name: "  Léa  "}
	p.Normalize(now)

	if p.Name != "Léa" || p.Role != RoleGuest || !p.IsActive() || !p.CreatedAt.Equal(now) {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}
