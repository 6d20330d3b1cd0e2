// Package seed loads the demo student roster into the store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/udem-connect/campus-connect/internal/store"
	"github.com/udem-connect/campus-connect/internal/student"
	"go.uber.org/zap"
)

// CampusDomain marks demo accounts; seeding replaces every student with this email domain.
const CampusDomain = "@umontreal.ca"

//go:embed students.json
var studentsJSON []byte

// Students returns a fresh copy of the demo roster.
func Students() ([]*student.Profile, error) {
	var profiles []*student.Profile
	if err := json.Unmarshal(studentsJSON, &profiles); err != nil {
		return nil, fmt.Errorf("decode demo students: %w", err)
	}
	return profiles, nil
}

type Result struct {
	Removed  int
	Inserted []*student.Profile
}

// Apply removes previous demo accounts from students and inserts the roster.
func Apply(ctx context.Context, students *store.Collection, now time.Time, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	profiles, err := Students()
	if err != nil {
		return nil, err
	}

	removed, err := students.DeleteMany(ctx, store.HasSuffix("email", CampusDomain))
	if err != nil {
		return nil, fmt.Errorf("clear demo students: %w", err)
	}
	logger.Info("cleared demo students", zap.Int("removed", removed))

	for _, p := range profiles {
		p.Normalize(now)

		doc, err := student.ToDocument(p)
		if err != nil {
			return nil, err
		}

		id, err := students.Insert(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("insert %s: %w", p.Name, err)
		}
		p.ID = id

		logger.Debug("inserted demo student",
			zap.String("name", p.Name),
			zap.String("french_level", p.Level),
			zap.Strings("languages", p.Languages),
		)
	}

	logger.Info("inserted demo students", zap.Int("count", len(profiles)))

	return &Result{Removed: removed, Inserted: profiles}, nil
}
