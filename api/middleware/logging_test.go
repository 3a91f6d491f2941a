package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger implements the Logger interface for testing
type MockLogger struct {
	logs []LogEntry
}

type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.logs = append(m.logs, LogEntry{Level: "DEBUG", Message: msg, Fields: fields})
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.logs = append(m.logs, LogEntry{Level: "INFO", Message: msg, Fields: fields})
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.logs = append(m.logs, LogEntry{Level: "WARN", Message: msg, Fields: fields})
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.logs = append(m.logs, LogEntry{Level: "ERROR", Message: msg, Fields: fields})
}

func serve(logger *MockLogger, status int, req *http.Request) *httptest.ResponseRecorder {
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequestLoggingMiddleware_LogsRequestMethodAndPath(t *testing.T) {
	logger := &MockLogger{}
	serve(logger, http.StatusOK, httptest.NewRequest("GET", "/api/torznab?t=caps", nil))

	require.Len(t, logger.logs, 2)

	startLog := logger.logs[0]
	assert.Equal(t, "DEBUG", startLog.Level)
	assert.Equal(t, "Request started", startLog.Message)
	assert.Equal(t, "GET", startLog.Fields["method"])
	assert.Equal(t, "/api/torznab", startLog.Fields["path"])
	assert.Equal(t, "t=caps", startLog.Fields["query"])

	endLog := logger.logs[1]
	assert.Equal(t, "INFO", endLog.Level)
	assert.Equal(t, "Request completed", endLog.Message)
	assert.Equal(t, http.StatusOK, endLog.Fields["status"])
	assert.Contains(t, endLog.Fields, "duration_ms")
}

func TestRequestLoggingMiddleware_ServerErrorsLoggedAsError(t *testing.T) {
	logger := &MockLogger{}
	serve(logger, http.StatusInternalServerError, httptest.NewRequest("GET", "/api/torznab", nil))

	require.Len(t, logger.logs, 2)
	assert.Equal(t, "ERROR", logger.logs[1].Level)
	assert.Equal(t, http.StatusInternalServerError, logger.logs[1].Fields["status"])
}

func TestRequestLoggingMiddleware_ClientErrorsLoggedAsInfo(t *testing.T) {
	logger := &MockLogger{}
	serve(logger, http.StatusBadRequest, httptest.NewRequest("GET", "/api/torznab?t=nope", nil))

	assert.Equal(t, "INFO", logger.logs[1].Level)
	assert.Equal(t, http.StatusBadRequest, logger.logs[1].Fields["status"])
}

func TestRequestLoggingMiddleware_IncludesRequestID(t *testing.T) {
	logger := &MockLogger{}
	var seen string
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	id := rec.Header().Get("X-Request-ID")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, seen)
	assert.Equal(t, id, logger.logs[0].Fields["request_id"])
	assert.Equal(t, id, logger.logs[1].Fields["request_id"])
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "", RequestIDFromContext(req.Context()))
}

func TestResponseWriter_CapturesStatusCode(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusNotFound, rw.statusCode)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponseWriter_DefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, err := rw.Write([]byte("<rss/>"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rw.statusCode)
	assert.True(t, rw.written)
}

func TestExtractIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1:5555", extractIP(req))

	req.Header.Set("X-Real-IP", "192.168.1.2")
	assert.Equal(t, "192.168.1.2", extractIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", extractIP(req))
}
