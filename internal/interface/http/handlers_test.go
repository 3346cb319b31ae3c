package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/record-hub/student-record-hub/internal/application/assistant"
	"github.com/record-hub/student-record-hub/internal/application/query"
	"github.com/record-hub/student-record-hub/internal/domain/student"
	"github.com/record-hub/student-record-hub/internal/infrastructure/persistence/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	repo := memory.NewSeededStudentRepository()

	assistantService := assistant.NewService(repo, nil, nil, assistant.Config{
		MockMode: true,
	}, nil)

	return NewServer(DefaultConfig(), Dependencies{
		Students:   repo,
		Statistics: query.NewGetStatisticsHandler(repo),
		Assistant:  assistantService,
	})
}

func doRequest(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestListStudents(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/students", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var records []student.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 7)
	assert.Equal(t, "Ruhan", records[0].Name)
}

func TestGetStudent(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/students/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var found student.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Equal(t, "Ahmed", found.Name)
}

func TestGetStudent_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/students/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.OK)
	assert.Equal(t, "not found", body.Error)
	assert.Equal(t, "Student not found", body.Detail)
}

func TestCreateStudent(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/students", map[string]any{
		"name":     "New Student",
		"course":   "Go Basics",
		"semester": "Fall 2025",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var created student.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 8, created.ID)
	// Defaults applied for omitted fields
	assert.Equal(t, 0.0, created.Score)
	assert.Equal(t, student.StatusActive, created.Status)
}

func TestCreateStudent_ValidationError(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/students", map[string]any{
		"course":   "Go Basics",
		"semester": "Fall 2025",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, "name is required", body.Detail)
}

func TestCreateStudent_ScoreOutOfRange(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/students", map[string]any{
		"name":     "New Student",
		"course":   "Go Basics",
		"semester": "Fall 2025",
		"score":    150,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStudent_PartialPatch(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPut, "/api/students/1", map[string]any{
		"score": 42,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var updated student.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 42.0, updated.Score)
	// Unpatched fields retained
	assert.Equal(t, "Ruhan", updated.Name)
}

func TestUpdateStudent_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPut, "/api/students/999", map[string]any{"score": 42})

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStudent_InvalidID(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPut, "/api/students/abc", map[string]any{"score": 42})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteStudent(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodDelete, "/api/students/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Deleted"}`, rec.Body.String())

	// Deleting again still succeeds
	rec = doRequest(s, http.MethodDelete, "/api/students/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetStats(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats query.GetStatisticsResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))

	total := 0
	for _, p := range stats.CourseParticipation {
		total += p.Count
	}
	assert.Equal(t, 7, total)
	require.Len(t, stats.StatusDist, 2)
	assert.Equal(t, 5, stats.StatusDist[0].Value)
	assert.Equal(t, 2, stats.StatusDist[1].Value)
}

func TestGetStats_FlatShape(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	for _, key := range []string{"scoresByCourse", "courseParticipation", "semesterDistribution", "statusDist", "avgTrend"} {
		assert.Contains(t, body, key)
	}
}

func TestAssistant_MockMode(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/assistant", map[string]any{
		"message": "hello",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body assistantResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, `Mock reply: "hello"`, body.Response)
}

func TestAssistant_MissingMessage(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/assistant", map[string]any{})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.OK)
	assert.Equal(t, "missing message", body.Error)
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/healthz", "/ready", "/live"} {
		rec := doRequest(s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/students", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// A supplied request ID is echoed back
	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	req.Header.Set("X-Request-ID", "test-id-123")
	echo := httptest.NewRecorder()
	s.Handler().ServeHTTP(echo, req)
	assert.Equal(t, "test-id-123", echo.Header().Get("X-Request-ID"))
}

func TestUnknownEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
