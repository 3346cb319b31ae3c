package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/record-hub/student-record-hub/internal/application/assistant"
	"github.com/record-hub/student-record-hub/internal/domain/shared"
	"github.com/record-hub/student-record-hub/internal/domain/student"
	"github.com/record-hub/student-record-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot handles GET / with basic service information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found", "unknown endpoint")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "student-record-hub",
		"status":  "running",
		"uptime":  s.Uptime().String(),
	})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    s.Uptime().String(),
	}

	code := http.StatusOK
	if s.deps.HealthChecker != nil {
		if err := s.deps.HealthChecker.Ping(r.Context()); err != nil {
			status["status"] = "unhealthy"
			status["store"] = err.Error()
			code = http.StatusServiceUnavailable
		} else {
			status["store"] = "ok"
		}
	}

	writeJSON(w, code, status)
}

// handleReady handles GET /ready. The service is ready once the store
// answers; the in-memory store is always ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		if err := s.deps.HealthChecker.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "not ready", err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles GET /live.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// RECORD CRUD HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleListStudents handles GET /api/students.
func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	records, err := s.deps.Students.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if records == nil {
		records = []student.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handleGetStudent handles GET /api/students/{id}.
func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := s.deps.Students.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// handleCreateStudent handles POST /api/students.
func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var input student.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "request body must be valid JSON")
		return
	}

	if err := input.Validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	created, err := s.deps.Students.Create(r.Context(), input.Resolve())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info("student created",
		logger.RecordID(created.ID),
		logger.Course(created.Course),
	)

	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateStudent handles PUT /api/students/{id}. The body is a partial
// patch: omitted fields keep their prior values.
func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch student.UpdatePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "request body must be valid JSON")
		return
	}

	if err := patch.Validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	updated, err := s.deps.Students.Update(r.Context(), id, patch)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteStudent handles DELETE /api/students/{id}. Deleting an absent
// record still succeeds.
func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.deps.Students.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

// ══════════════════════════════════════════════════════════════════════════════
// STATISTICS HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// handleGetStats handles GET /api/stats. The result is the five aggregate
// views as one flat JSON object.
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.Statistics.Handle(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// ASSISTANT HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// assistantResponse is the success body of POST /api/assistant.
type assistantResponse struct {
	OK       bool            `json:"ok"`
	Response string          `json:"response"`
	Raw      json.RawMessage `json:"raw,omitempty"`
}

// handleAssistant handles POST /api/assistant.
func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistant.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "request body must be valid JSON")
		return
	}

	result, err := s.deps.Assistant.Ask(r.Context(), req)
	if err != nil {
		var askErr *assistant.AskError
		if errors.As(err, &askErr) {
			writeError(w, askErr.Status, askErr.Category, askErr.Detail)
			return
		}
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, assistantResponse{
		OK:       true,
		Response: result.Response,
		Raw:      result.Raw,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// SHARED HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// pathID parses the {id} path segment. Writes a client error and returns
// false when the segment is not a number.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "id must be an integer")
		return 0, false
	}
	return id, true
}

// respondError maps a domain error onto a status and the uniform error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case shared.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not found", "Student not found")
	case shared.IsValidation(err):
		writeError(w, http.StatusBadRequest, "validation failed", errDetail(err))
	case shared.IsConfiguration(err):
		writeError(w, http.StatusInternalServerError, "configuration error", errDetail(err))
	default:
		s.logger.Error("request failed",
			logger.String("path", r.URL.Path),
			logger.RequestID(getRequestID(r.Context())),
			logger.Err(err),
		)
		writeError(w, http.StatusInternalServerError, "store error", errDetail(err))
	}
}

// errDetail extracts the displayable message of a domain error, falling back
// to the raw error text.
func errDetail(err error) string {
	var derr *shared.DomainError
	if errors.As(err, &derr) {
		return derr.Message
	}
	return err.Error()
}
