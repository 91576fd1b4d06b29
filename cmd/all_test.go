package cmd

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"
)

func dashboardHandler(t *testing.T, seen *sync.Map) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		seen.Store(r.URL.Path, q.Get("domain")+q.Get("url"))
		switch r.URL.Path {
		case "/api/health":
			writeTestJSON(w, http.StatusOK, `{"status":"ok"}`)
		case "/api/dns":
			writeTestJSON(w, http.StatusOK, `{"success":true,"data":{"domain":"www.example.com","recordType":"A","records":[],"timestamp":"t"}}`)
		case "/api/whois":
			writeTestJSON(w, http.StatusOK, `{"success":true,"data":{"domain":"example.com","registrar":"Example Registrar","rawData":"{}","timestamp":"t"}}`)
		case "/api/ssl":
			writeTestJSON(w, http.StatusOK, `{"success":true,"data":{"domain":"www.example.com","valid":true,"issuer":"Unavailable","timestamp":"t"}}`)
		case "/api/headers":
			writeTestJSON(w, http.StatusOK, `{"success":true,"data":{"url":"https://www.example.com","headers":{},"securityHeaders":[],"securityScore":0,"timestamp":"t"}}`)
		case "/api/security":
			writeTestJSON(w, http.StatusOK, `{"success":true,"data":{"url":"https://www.example.com","safeBrowsing":{"safe":true,"threats":[]},"https":true,"mixedContent":false,"securityScore":40,"timestamp":"t"}}`)
		case "/api/performance":
			writeTestJSON(w, http.StatusInternalServerError, `{"success":false,"error":{"message":"Performance check failed"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}
}

func TestAllCommandRunsEveryCheck(t *testing.T) {
	disableColor(t)
	useJSONOutput(t, false)

	var seen sync.Map
	useTestAPI(t, dashboardHandler(t, &seen))

	out, err := runCommand(t, allCmd, "www.example.com")
	if err == nil || err.Error() != "1 of 6 checks failed" {
		t.Fatalf("expected one failure, got %v", err)
	}

	want := map[string]string{
		"/api/dns":         "www.example.com",
		"/api/whois":       "example.com",
		"/api/ssl":         "www.example.com",
		"/api/headers":     "https://www.example.com",
		"/api/security":    "https://www.example.com",
		"/api/performance": "https://www.example.com",
	}
	for path, arg := range want {
		got, ok := seen.Load(path)
		if !ok {
			t.Fatalf("%s was not called", path)
		}
		if got != arg {
			t.Fatalf("%s called with %q, want %q", path, got, arg)
		}
	}

	for _, section := range []string{"DNS A records", "WHOIS for example.com", "SSL certificate", "Headers for", "Security scan for", "Performance check failed (HTTP 500)"} {
		if !strings.Contains(out, section) {
			t.Fatalf("expected %q in output:\n%s", section, out)
		}
	}
	// Sections keep display order regardless of completion order.
	if strings.Index(out, "DNS A records") > strings.Index(out, "Security scan for") {
		t.Fatalf("sections out of order:\n%s", out)
	}
}

func TestAllCommandJSON(t *testing.T) {
	useJSONOutput(t, true)

	var seen sync.Map
	useTestAPI(t, dashboardHandler(t, &seen))

	out, err := runCommand(t, allCmd, "https://www.example.com")
	if err == nil {
		t.Fatal("expected failure to be reported")
	}

	var board map[string]struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal([]byte(out), &board); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(board) != 6 {
		t.Fatalf("expected six sections, got %d", len(board))
	}
	if board["performance"].Success || !board["dns"].Success {
		t.Fatalf("unexpected section results: %+v", board)
	}
}

func TestAllCommandStopsWhenAPIUnhealthy(t *testing.T) {
	useJSONOutput(t, false)
	calls := 0
	useTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeTestJSON(w, http.StatusServiceUnavailable, `{"success":false,"error":{"message":"Service unavailable"}}`)
	})

	_, err := runCommand(t, allCmd, "example.com")
	if err == nil || !strings.Contains(err.Error(), "is not reachable") {
		t.Fatalf("expected reachability error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected only the health probe, got %d calls", calls)
	}
}
