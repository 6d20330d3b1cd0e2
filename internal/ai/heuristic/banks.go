package heuristic

import "github.com/udem-connect/campus-connect/internal/ai"

const interestsPlaceholder = "{interests}"

// bank holds the localized text for one language. Banks are read-only after init.
type bank struct {
	explanations      []string
	genericInterests  string
	activities        map[string]string
	activityFallbacks []string
	defaultActivity   string
}

var englishBank = newBank(
	[]string{
		"Great match! You both share interests in {interests} and could help each other with language exchange.",
		"Perfect connection! Your shared passion for {interests} makes this a promising friendship.",
		"Excellent match for cultural exchange and practicing French together! You both enjoy {interests}.",
		"You both seem to enjoy similar activities like {interests} and could explore Montreal together.",
		"Strong compatibility! Shared interests in {interests} and complementary language skills.",
		"Ideal match for language practice and cultural exploration. Common interests: {interests}.",
	},
	"various activities",
	[][2]string{
		{"art", "Visit Montreal Museum of Fine Arts"},
		{"coffee", "Try a local Montreal café"},
		{"museums", "Explore Montreal's museum district"},
		{"technology", "Attend a tech meetup or workshop"},
		{"sports", "Play sports at Mount Royal Park"},
		{"music", "Check out local live music venues"},
		{"photography", "Photo walk through Old Montreal"},
		{"cinema", "Watch a film at Cinéma du Parc"},
	},
	"Coffee chat at a campus café",
)

var frenchBank = newBank(
	[]string{
		"Excellent jumelage ! Vous partagez des intérêts communs pour {interests} et pourriez vous aider mutuellement avec l'échange linguistique.",
		"Connexion parfaite ! Votre passion commune pour {interests} rend cette amitié prometteuse.",
		"Jumelage idéal pour l'échange culturel et pratiquer le français ensemble ! Vous aimez tous les deux {interests}.",
		"Vous semblez tous deux apprécier des activités similaires comme {interests} et pourriez explorer Montréal ensemble.",
		"Forte compatibilité ! Intérêts communs pour {interests} et compétences linguistiques complémentaires.",
		"Jumelage parfait pour la pratique linguistique et l'exploration culturelle. Intérêts communs : {interests}.",
	},
	"diverses activités",
	[][2]string{
		{"art", "Visiter le Musée des Beaux-Arts de Montréal"},
		{"coffee", "Essayer un café local montréalais"},
		{"museums", "Explorer le quartier des musées de Montréal"},
		{"technology", "Assister à une rencontre technologique ou un atelier"},
		{"sports", "Faire du sport au parc du Mont-Royal"},
		{"music", "Découvrir les salles de musique locales"},
		{"photography", "Promenade photo dans le Vieux-Montréal"},
		{"cinema", "Regarder un film au Cinéma du Parc"},
	},
	"Café discussion au Café Campus",
)

// newBank keeps the fallback list in table order so random picks are reproducible with a seed.
func newBank(explanations []string, generic string, table [][2]string, defaultActivity string) *bank {
	b := &bank{
		explanations:     explanations,
		genericInterests: generic,
		activities:       make(map[string]string, len(table)),
		defaultActivity:  defaultActivity,
	}
	for _, entry := range table {
		b.activities[entry[0]] = entry[1]
		b.activityFallbacks = append(b.activityFallbacks, entry[1])
	}
	return b
}

func bankFor(lang ai.Language) *bank {
	if lang == ai.French {
		return frenchBank
	}
	return englishBank
}

// activities returns every activity text lang can produce, including the default.
func activities(lang ai.Language) []string {
	b := bankFor(lang)
	return append(append([]string(nil), b.activityFallbacks...), b.defaultActivity)
}
