package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wisker-app/wisker/internal/pkg/logger"
)

func TestLogger_FieldsSurviveWriterWrapping(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "info"}, &buf)

	// Inner middleware re-wraps the ResponseWriter the way the metrics
	// middleware does; fields must still reach the request log line.
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		AddLogField(r, "user_id", int64(42))
		w.WriteHeader(http.StatusNoContent)
	})
	rewrapping := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner.ServeHTTP(struct{ http.ResponseWriter }{w}, r)
	})

	rec := httptest.NewRecorder()
	Logger(log)(rewrapping).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/subjects", nil))

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if got, ok := line["user_id"].(float64); !ok || int64(got) != 42 {
		t.Errorf("user_id = %v, want 42", line["user_id"])
	}
	if got, ok := line["status"].(float64); !ok || int(got) != http.StatusNoContent {
		t.Errorf("status = %v, want %d", line["status"], http.StatusNoContent)
	}
}

func TestAddLogField_OutsideLogger(t *testing.T) {
	// Must not panic on a request that never passed through Logger
	AddLogField(httptest.NewRequest(http.MethodGet, "/", nil), "user_id", int64(1))
}
