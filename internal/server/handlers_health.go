package server

import (
	"net/http"

	"go.uber.org/zap"
)

var features = []string{"student_matching", "bilingual_support", "document_storage", "ai_matching"}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"message":  "campus-connect API is running",
		"version":  s.opts.Version,
		"strategy": s.matcher.Strategy(),
		"endpoints": map[string]string{
			"register":     "POST /api/students/register",
			"get_matches":  "GET /api/students/matches/{student_name}",
			"all_students": "GET /api/students",
			"challenges":   "GET /api/challenges/suggest/{student_name}",
			"connect":      "POST /api/connections/connect",
			"events":       "GET /api/events",
			"health":       "GET /api/health",
			"metrics":      "GET /metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	database := "connected"
	registered := 0

	if err := s.opts.Store.Ping(r.Context()); err != nil {
		s.logger.Warn("store ping failed", zap.Error(err))
		status = "degraded"
		database = "disconnected"
	} else if n, err := s.students.Count(r.Context()); err == nil {
		registered = n
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":              status,
		"service":             ServiceName,
		"version":             s.opts.Version,
		"database":            database,
		"strategy":            s.matcher.Strategy(),
		"filters":             s.matcher.Filters().Describe(),
		"include_inactive":    s.opts.IncludeInactive,
		"students_registered": registered,
		"features":            features,
	})
}
