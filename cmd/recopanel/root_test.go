package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kailas-cloud/recopanel/internal/domain/panel"
	"github.com/kailas-cloud/recopanel/internal/domain/recommendation"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENV", "local")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func recommendServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recommend":
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		case "/health":
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"status":"ok","assessments_loaded":7}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAsk_Table(t *testing.T) {
	srv := recommendServer(t, http.StatusOK,
		`[{"assessment_name":"Java Test","score":0.87,"assessment_url":"https://x/y"}]`)

	out, err := run(t, "--api-url", srv.URL, "ask", "java", "developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"1 results", "Java Test", "87%", "https://x/y", "Match Score"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAsk_JSON(t *testing.T) {
	srv := recommendServer(t, http.StatusOK,
		`[{"assessment_name":"A","score":0.5,"assessment_url":"u"},{"assessment_name":"B"}]`)

	out, err := run(t, "--api-url", srv.URL, "ask", "--json", "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err := recommendation.DecodeList([]byte(out))
	if err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(items) != 2 || items[0].Name != "A" || items[1].ScoreLabel() != "NaN%" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestAsk_EmptyResultJSON(t *testing.T) {
	srv := recommendServer(t, http.StatusOK, `[]`)

	out, err := run(t, "--api-url", srv.URL, "ask", "--json", "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("expected empty array, got %q", out)
	}
}

func TestAsk_Failure(t *testing.T) {
	srv := recommendServer(t, http.StatusInternalServerError, `{"detail":"boom"}`)

	out, err := run(t, "--api-url", srv.URL, "ask", "q")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != panel.FailureMessage {
		t.Errorf("error = %q, want generic message", err.Error())
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestAsk_BlankQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("blank query must not reach the service")
	}))
	defer srv.Close()

	out, err := run(t, "--api-url", srv.URL, "ask", "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestInvalidAPIURL(t *testing.T) {
	if _, err := run(t, "--api-url", "localhost:8000", "ask", "q"); err == nil {
		t.Fatal("expected error for relative api url")
	}
}

func TestHealthCmd(t *testing.T) {
	srv := recommendServer(t, http.StatusOK, `[]`)

	out, err := run(t, "--api-url", srv.URL, "health")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var report struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Status != "ok" || report.Checks["collaborator"] != "ok" {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestHealthCmd_Degraded(t *testing.T) {
	srv := recommendServer(t, http.StatusServiceUnavailable, ``)

	out, err := run(t, "--api-url", srv.URL, "health")
	if err == nil {
		t.Fatal("expected error when degraded")
	}
	if !strings.Contains(out, `"degraded"`) {
		t.Errorf("expected degraded report, got %s", out)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "recopanel dev") {
		t.Errorf("unexpected version output %q", out)
	}
}
