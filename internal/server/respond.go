package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Detail string       `json:"detail"`
	Errors []FieldError `json:"errors,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.Error("marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("write response", zap.Error(err))
	}
}

// respondError logs err, if any, and writes detail to the client.
func (s *Server) respondError(w http.ResponseWriter, status int, detail string, err error) {
	if err != nil {
		s.logger.Error("api error",
			zap.Int("status", status),
			zap.String("detail", detail),
			zap.Error(err),
		)
	}
	s.respondJSON(w, status, errorResponse{Detail: detail})
}

// decodeAndValidate reads a JSON body into dst, lets normalize fill defaults, then validates.
// It writes the error response itself and returns false on failure.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any, normalize func()) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "could not read request body", nil)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err), nil)
		return false
	}

	if normalize != nil {
		normalize()
	}

	if err := validateStruct(dst); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "validation failed", Errors: verr.Fields})
			return false
		}
		s.respondError(w, http.StatusUnprocessableEntity, err.Error(), nil)
		return false
	}

	return true
}
