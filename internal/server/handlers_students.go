package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/udem-connect/campus-connect/internal/ai"
	"github.com/udem-connect/campus-connect/internal/challenges"
	"github.com/udem-connect/campus-connect/internal/store"
	"github.com/udem-connect/campus-connect/internal/student"
	"go.uber.org/zap"
)

const (
	msgStudentNotFound  = "Student not found"
	msgNoOtherStudents  = "No other students registered yet. Be the first!"
	msgStudentDuplicate = "Student already exists"
)

func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if value, err := url.PathUnescape(raw); err == nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(raw)
}

func (s *Server) handleRegisterStudent(w http.ResponseWriter, r *http.Request) {
	var profile student.Profile
	if !s.decodeAndValidate(w, r, &profile, func() { profile.Normalize(s.now()) }) {
		return
	}

	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	exists, err := s.students.Count(r.Context(), store.Eq("name", profile.Name))
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Registration failed", err)
		return
	}
	if exists > 0 {
		s.respondError(w, http.StatusBadRequest, msgStudentDuplicate, nil)
		return
	}

	profile.ID = ""
	doc, err := student.ToDocument(&profile)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Registration failed", err)
		return
	}

	id, err := s.students.Insert(r.Context(), doc)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Registration failed", err)
		return
	}
	profile.ID = id

	s.logger.Info("student registered", zap.String("name", profile.Name), zap.String("id", id))

	s.respondJSON(w, http.StatusCreated, map[string]any{
		"message":    "Student registered successfully!",
		"student_id": id,
		"student":    &profile,
	})
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	docs, err := s.students.Find(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch students", err)
		return
	}

	profiles, err := student.ProfilesFromDocuments(docs)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch students", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"total_students": len(profiles),
		"students":       profiles,
	})
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.findStudent(w, r, pathParam(r, "name"))
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	err := s.students.DeleteOne(r.Context(), store.Eq("name", name))
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, msgStudentNotFound, nil)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to delete student", err)
		return
	}

	s.logger.Info("student deleted", zap.String("name", name))
	s.respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Student %s deleted successfully", name),
	})
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	lang := ai.ParseLanguage(r.URL.Query().Get("language"))

	subject, ok := s.findStudent(w, r, name)
	if !ok {
		return
	}

	docs, err := s.students.Find(r.Context(), CandidateFilters(name, s.opts.IncludeInactive)...)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to get matches", err)
		return
	}

	if len(docs) == 0 {
		s.respondJSON(w, http.StatusOK, map[string]any{
			"matches": []ai.MatchResult{},
			"message": msgNoOtherStudents,
		})
		return
	}

	candidates, err := student.ProfilesFromDocuments(docs)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to get matches", err)
		return
	}

	matches := s.matcher.FindBestMatches(r.Context(), subject, candidates, lang)

	s.respondJSON(w, http.StatusOK, map[string]any{
		"student":          name,
		"language":         lang,
		"strategy":         s.matcher.Strategy(),
		"total_candidates": len(candidates),
		"matches_found":    len(matches),
		"matches":          matches,
	})
}

func (s *Server) handleSuggestChallenges(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	lang := ai.ParseLanguage(r.URL.Query().Get("language"))

	profile, ok := s.findStudent(w, r, name)
	if !ok {
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"student":                 name,
		"language":                lang,
		"personalized_challenges": challenges.Suggest(profile, lang),
	})
}

// findStudent writes a 404 or 500 response itself when it returns false.
func (s *Server) findStudent(w http.ResponseWriter, r *http.Request, name string) (*student.Profile, bool) {
	doc, err := s.students.FindOne(r.Context(), store.Eq("name", name))
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, msgStudentNotFound, nil)
		return nil, false
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch student", err)
		return nil, false
	}

	var profile student.Profile
	if err := student.FromDocument(doc, &profile); err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch student", err)
		return nil, false
	}
	return &profile, true
}

// CandidateFilters selects the students that may be matched with subject:
// everyone else, minus deactivated accounts unless includeInactive is set.
func CandidateFilters(subject string, includeInactive bool) []store.Filter {
	filters := []store.Filter{store.Ne("name", subject)}
	if !includeInactive {
		filters = append(filters, store.Ne(student.ActiveField, false))
	}
	return filters
}
