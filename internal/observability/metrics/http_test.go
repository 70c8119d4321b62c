package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/healthz":                    "/healthz",
		"/v1/submissions":             "/v1/submissions",
		"/v1/submissions/export":      "/v1/submissions/export",
		"/v1/submissions/sub-123":     "/v1/submissions/{submission_id}",
		"/v1/submissions/another-one": "/v1/submissions/{submission_id}",
	}
	for in, want := range cases {
		if got := normalizePath(in); got != want {
			t.Errorf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMiddlewareCountsRequests(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	handler := m.Middleware("api", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/submissions/sub-1", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}

	m.RecordUpload("api", "succeeded", "", 2048, 150*time.Millisecond)

	exposition := httptest.NewRecorder()
	m.Handler().ServeHTTP(exposition, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := exposition.Body.String()

	if !strings.Contains(body, `receiptdrop_http_requests_total{method="GET",path="/v1/submissions/{submission_id}",service="api",status="418"} 1`) {
		t.Fatalf("request counter missing from exposition:\n%s", body)
	}
	if !strings.Contains(body, `receiptdrop_upload_attempts_total{error_kind="",outcome="succeeded",service="api"} 1`) {
		t.Fatalf("upload counter missing from exposition:\n%s", body)
	}
}
