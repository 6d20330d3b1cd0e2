// Package challenges suggests small campus activities tailored to a student's interests.
package challenges

import (
	"fmt"

	"github.com/udem-connect/campus-connect/internal/ai"
	"github.com/udem-connect/campus-connect/internal/student"
)

// MaxSuggestions is the number of challenges returned per student.
const MaxSuggestions = 3

type templates struct {
	museum          string
	coffee          string
	club            string
	oldMontreal     string
	workshop        string
	defaultInterest string
	defaultClub     string
}

var (
	english = templates{
		museum:          "Visit a museum related to %s",
		coffee:          "Order coffee in French at a local café",
		club:            "Join a %s club on campus",
		oldMontreal:     "Explore Old Montreal and take photos",
		workshop:        "Attend a free campus workshop or event",
		defaultInterest: "art",
		defaultClub:     "student",
	}
	french = templates{
		museum:          "Visiter un musée lié à %s",
		coffee:          "Commander un café en français dans un café local",
		club:            "Rejoindre un club de %s sur le campus",
		oldMontreal:     "Explorer le Vieux-Montréal et prendre des photos",
		workshop:        "Assister à un atelier ou événement universitaire gratuit",
		defaultInterest: "art",
		defaultClub:     "étudiant",
	}
)

// Suggest returns the first MaxSuggestions challenges for p in lang.
func Suggest(p *student.Profile, lang ai.Language) []string {
	t := english
	if lang == ai.French {
		t = french
	}

	first, second := t.defaultInterest, t.defaultClub
	if p != nil && len(p.Interests) > 0 {
		first = p.Interests[0]
	}
	if p != nil && len(p.Interests) > 1 {
		second = p.Interests[1]
	}

	all := []string{
		fmt.Sprintf(t.museum, first),
		t.coffee,
		fmt.Sprintf(t.club, second),
		t.oldMontreal,
		t.workshop,
	}

	return all[:MaxSuggestions]
}
