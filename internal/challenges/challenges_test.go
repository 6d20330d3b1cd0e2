package challenges

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/udem-connect/campus-connect/internal/ai"
	"github.com/udem-connect/campus-connect/internal/student"
)

func TestSuggest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile *student.Profile
		lang    ai.Language
		want    []string
	}{
		{
			name:    "english with interests",
			profile: &student.Profile{Interests: []string{"photography", "chess", "yoga"}},
			lang:    ai.English,
			want: []string{
				"Visit a museum related to photography",
				"Order coffee in French at a local café",
				"Join a chess club on campus",
			},
		},
		{
			name:    "french with one interest",
			profile: &student.Profile{Interests: []string{"cinéma"}},
			lang:    ai.French,
			want: []string{
				"Visiter un musée lié à cinéma",
				"Commander un café en français dans un café local",
				"Rejoindre un club de étudiant sur le campus",
			},
		},
		{
			name:    "defaults without interests",
			profile: &student.Profile{},
			lang:    ai.English,
			want: []string{
				"Visit a museum related to art",
				"Order coffee in French at a local café",
				"Join a student club on campus",
			},
		},
		{
			name: "nil profile",
			lang: ai.French,
			want: []string{
				"Visiter un musée lié à art",
				"Commander un café en français dans un café local",
				"Rejoindre un club de étudiant sur le campus",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, Suggest(tt.profile, tt.lang)); diff != "" {
				t.Fatalf("unexpected challenges (-want +got):\n%s", diff)
			}
		})
	}
}
