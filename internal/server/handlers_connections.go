package server

import (
	"net/http"

	"github.com/udem-connect/campus-connect/internal/store"
	"github.com/udem-connect/campus-connect/internal/student"
	"go.uber.org/zap"
)

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var conn student.Connection
	if !s.decodeAndValidate(w, r, &conn, func() { conn.Normalize(s.now()) }) {
		return
	}

	conn.ID = ""
	doc, err := student.ToDocument(&conn)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Connection failed", err)
		return
	}

	id, err := s.connections.Insert(r.Context(), doc)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Connection failed", err)
		return
	}

	s.logger.Info("students connected",
		zap.String("student_id", conn.StudentID),
		zap.String("partner_id", conn.PartnerID),
		zap.String("connection_id", id),
	)

	s.respondJSON(w, http.StatusCreated, map[string]string{
		"message":       "Connected successfully",
		"connection_id": id,
	})
}

func (s *Server) handleListConnections(w http.ResponseWriter, r *http.Request) {
	docs, err := s.connections.Find(r.Context(), store.Eq("student_id", pathParam(r, "studentID")))
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to get connections", err)
		return
	}

	connections := make([]*student.Connection, 0, len(docs))
	for _, doc := range docs {
		var conn student.Connection
		if err := student.FromDocument(doc, &conn); err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to get connections", err)
			return
		}
		connections = append(connections, &conn)
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"connections": connections})
}
