package server

import (
	"net/http"

	"github.com/udem-connect/campus-connect/internal/student"
	"go.uber.org/zap"
)

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	docs, err := s.events.Find(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to get events", err)
		return
	}

	if len(docs) == 0 {
		s.respondJSON(w, http.StatusOK, map[string]any{"events": student.DefaultEvents()})
		return
	}

	events := make([]*student.Event, 0, len(docs))
	for _, doc := range docs {
		var event student.Event
		if err := student.FromDocument(doc, &event); err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to get events", err)
			return
		}
		events = append(events, &event)
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var event student.Event
	if !s.decodeAndValidate(w, r, &event, nil) {
		return
	}

	event.ID = ""
	doc, err := student.ToDocument(&event)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to create event", err)
		return
	}

	id, err := s.events.Insert(r.Context(), doc)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to create event", err)
		return
	}
	event.ID = id

	s.logger.Info("event created", zap.String("id", id), zap.String("title", event.Title))

	s.respondJSON(w, http.StatusCreated, map[string]any{
		"message":  "Event created successfully",
		"event_id": id,
		"event":    &event,
	})
}
