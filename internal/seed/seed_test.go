package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/udem-connect/campus-connect/internal/store"
	"github.com/udem-connect/campus-connect/internal/student"
)

func TestStudentsRoster(t *testing.T) {
	t.Parallel()

	profiles, err := Students()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 8 {
		t.Fatalf("expected 8 demo students, got %d", len(profiles))
	}

	seen := map[string]bool{}
	for _, p := range profiles {
		if seen[p.Name] {
			t.Fatalf("duplicate name %q", p.Name)
		}
		seen[p.Name] = true

		if !strings.HasSuffix(p.Email, CampusDomain) {
			t.Fatalf("%s: unexpected email %q", p.Name, p.Email)
		}
		if p.FrenchLevel() == student.LevelUnknown {
			t.Fatalf("%s: unparsable french level %q", p.Name, p.Level)
		}
	}
}

func TestApplyReplacesDemoStudents(t *testing.T) {
	t.Parallel()

	s, err := store.Open(store.Options{InMemory: true})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	students := s.Collection(store.Students)

	if _, err := students.Insert(ctx, store.Document{"name": "Old Demo", "email": "old@umontreal.ca"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := students.Insert(ctx, store.Document{"name": "Guest", "email": "guest@example.com"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	for round := 0; round < 2; round++ {
		result, err := Apply(ctx, students, now, nil)
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		wantRemoved := 1
		if round == 1 {
			wantRemoved = 8
		}
		if result.Removed != wantRemoved {
			t.Fatalf("round %d: expected %d removed, got %d", round, wantRemoved, result.Removed)
		}
	}

	total, err := students.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 9 {
		t.Fatalf("expected 8 demo students plus the guest, got %d", total)
	}

	doc, err := students.FindOne(ctx, store.Eq("name", "Wei Zhang"))
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	var wei student.Profile
	if err := student.FromDocument(doc, &wei); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if wei.ID == "" || !wei.IsActive() || !wei.CreatedAt.Equal(now) || wei.Role != student.RoleStudent {
		t.Fatalf("unexpected stored profile: %+v", wei)
	}
}
