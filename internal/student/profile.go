package student

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	RoleStudent = "udem_student"
	RoleGuest   = "guest"

	// Tags of looking_for that trigger the language bonus.
	LookingForFrenchPractice = "french_practice"
	LookingForFrenchHelp     = "french_help"

	LanguageFrench = "fr"
)

var ErrUnknownLevel = errors.New("unknown french level")

// FrenchLevel is a CEFR proficiency level. The zero value sorts below A1.
type FrenchLevel int

const (
	LevelUnknown FrenchLevel = iota
	LevelA1
	LevelA2
	LevelB1
	LevelB2
	LevelC1
	LevelC2
)

var levelNames = map[string]FrenchLevel{
	"A1": LevelA1,
	"A2": LevelA2,
	"B1": LevelB1,
	"B2": LevelB2,
	"C1": LevelC1,
	"C2": LevelC2,
}

// ParseFrenchLevel accepts levels case-insensitively, e.g. "b2".
func ParseFrenchLevel(s string) (FrenchLevel, error) {
	level, ok := levelNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return LevelUnknown, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return level, nil
}

func (l FrenchLevel) String() string {
	for name, level := range levelNames {
		if level == l {
			return name
		}
	}
	return "unknown"
}

type Profile struct {
	ID         string     `json:"id,omitempty"`
	Name       string     `json:"name" validate:"required,max=120"`
	Email      string     `json:"email" validate:"required,email"`
	Username   string     `json:"username,omitempty"`
	Interests  []string   `json:"interests" validate:"dive,required"`
	Languages  []string   `json:"languages" validate:"dive,required"`
	Level      string     `json:"french_level" validate:"required,french_level"`
	LookingFor []string   `json:"looking_for" validate:"dive,required"`
	Bio        string     `json:"bio" validate:"max=2000"`
	AvatarURL  string     `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Role       string     `json:"role,omitempty" validate:"omitempty,oneof=udem_student guest"`
	Active     *bool      `json:"is_active,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// FrenchLevel returns the parsed proficiency; unparsable levels are LevelUnknown.
func (p *Profile) FrenchLevel() FrenchLevel {
	level, _ := ParseFrenchLevel(p.Level)
	return level
}

// ActiveField is the document key of the account activity flag.
const ActiveField = "is_active"

// IsActive treats a missing flag as active.
func (p *Profile) IsActive() bool {
	return p.Active == nil || *p.Active
}

func (p *Profile) Speaks(language string) bool {
	return containsFold(p.Languages, language)
}

func (p *Profile) Seeks(tag string) bool {
	return containsFold(p.LookingFor, tag)
}

// Normalize fills defaults applied on registration.
func (p *Profile) Normalize(now time.Time) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	if p.Role == "" {
		p.Role = RoleGuest
	}
	if p.Active == nil {
		active := true
		p.Active = &active
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now.UTC()
	}
}

// CommonInterests returns the interests present in both profiles, ordered as they
// appear in p and without duplicates.
func (p *Profile) CommonInterests(other *Profile) []string {
	return Intersect(p.Interests, other.Interests)
}

// Intersect keeps the order of a and drops duplicates. Tags are compared exactly.
func Intersect(a, b []string) []string {
	result := make([]string, 0)
	for _, tag := range a {
		if !slices.Contains(b, tag) || slices.Contains(result, tag) {
			continue
		}
		result = append(result, tag)
	}
	return result
}

func containsFold(list []string, value string) bool {
	value = strings.TrimSpace(value)
	return slices.ContainsFunc(list, func(item string) bool {
		return strings.EqualFold(strings.TrimSpace(item), value)
	})
}
