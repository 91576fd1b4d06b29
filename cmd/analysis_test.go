package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/khanhnv2901/siteprobe/internal/client"
	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
)

func TestDomainArg(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "Example.COM", want: "example.com"},
		{in: "https://www.example.com/path?q=1", want: "www.example.com"},
		{in: "example.com:8443", want: "example.com"},
		{in: "münchen.de", want: "xn--mnchen-3ya.de"},
		{in: "localhost", wantErr: true},
		{in: "-bad-.com", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domainArg(tt.in)
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Message != msgInvalidDomain {
					t.Fatalf("expected domain validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("domainArg(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("domainArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestURLArg(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "example.com", want: "https://example.com"},
		{in: "http://example.com/a", want: "http://example.com/a"},
		{in: "HTTPS://example.com", want: "HTTPS://example.com"},
		{in: "exa mple.com", wantErr: true},
		{in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := urlArg(tt.in)
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Message != msgInvalidURL {
					t.Fatalf("expected URL validation error, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("urlArg(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Input: "x y", Message: msgInvalidURL}
	if err.Error() != `Please enter a valid URL: "x y"` {
		t.Fatalf("unexpected error text %q", err.Error())
	}
	if (&ValidationError{Message: msgInvalidDomain}).Error() != msgInvalidDomain {
		t.Fatal("expected bare message when input is empty")
	}
}

func TestDNSCommandRendersRecords(t *testing.T) {
	disableColor(t)
	useJSONOutput(t, false)
	original := dnsRecordType
	dnsRecordType = "mx"
	t.Cleanup(func() { dnsRecordType = original })

	useTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dns" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("domain"); got != "example.com" {
			t.Errorf("unexpected domain %q", got)
		}
		if got := r.URL.Query().Get("type"); got != "MX" {
			t.Errorf("record type should be upper-cased, got %q", got)
		}
		w.Header().Set("X-Cache", "HIT")
		writeTestJSON(w, http.StatusOK, `{"success":true,"data":{"domain":"example.com","recordType":"MX","records":[{"name":"example.com","type":"MX","TTL":300,"data":"10 mail.example.com."}],"timestamp":"2026-05-04T10:30:00.000Z"},"meta":{"timestamp":"2026-05-04T10:30:00.000Z","cached":false}}`)
	})

	out, err := runCommand(t, dnsCmd, "Example.com")
	if err != nil {
		t.Fatalf("dns command: %v", err)
	}
	for _, want := range []string{"DNS MX records for example.com", "cache hit", "10 mail.example.com.", "300"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWhoisCommandQueriesRegistrableDomain(t *testing.T) {
	disableColor(t)
	useJSONOutput(t, false)

	useTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("domain"); got != "example.co.uk" {
			t.Errorf("expected registrable domain, got %q", got)
		}
		writeTestJSON(w, http.StatusOK, `{"success":true,"data":{"domain":"example.co.uk","registrar":"Example Registrar","nameServers":["ns1.example.net","ns2.example.net"],"rawData":"{}","timestamp":"t"},"meta":{"timestamp":"t","cached":false}}`)
	})

	out, err := runCommand(t, whoisCmd, "www.example.co.uk")
	if err != nil {
		t.Fatalf("whois command: %v", err)
	}
	if !strings.Contains(out, "Example Registrar") || !strings.Contains(out, "ns1.example.net, ns2.example.net") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "Registrant:") {
		t.Fatalf("empty fields should be omitted:\n%s", out)
	}
}

func TestCheckCommandsRejectInvalidInputWithoutCallingAPI(t *testing.T) {
	useJSONOutput(t, false)
	useTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("API must not be called, got %s", r.URL)
	})

	if _, err := runCommand(t, sslCmd, "not a domain"); err == nil || !strings.Contains(err.Error(), msgInvalidDomain) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if _, err := runCommand(t, performanceCmd, "bad url"); err == nil || !strings.Contains(err.Error(), msgInvalidURL) {
		t.Fatalf("expected URL error, got %v", err)
	}
}

func TestCheckCommandSurfacesAPIFailure(t *testing.T) {
	useJSONOutput(t, false)
	useTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusInternalServerError, `{"success":false,"error":{"message":"Security check failed"}}`)
	})

	_, err := runCommand(t, securityCmd, "example.com")
	var reqErr *client.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if err.Error() != "Security check failed (HTTP 500)" {
		t.Fatalf("unexpected error %q", err.Error())
	}
}

func TestJSONOutputPrintsEnvelope(t *testing.T) {
	useJSONOutput(t, true)
	useTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != "https://example.com" {
			t.Errorf("expected normalized URL, got %q", got)
		}
		writeTestJSON(w, http.StatusOK, `{"success":true,"data":{"url":"https://example.com","loadTime":12,"responseTime":12,"contentSize":5,"statusCode":200,"redirects":0,"metrics":{"ttfb":12},"timestamp":"t"},"meta":{"timestamp":"t","cached":false}}`)
	})

	out, err := runCommand(t, performanceCmd, "example.com")
	if err != nil {
		t.Fatalf("performance command: %v", err)
	}
	var env analysis.Envelope[analysis.PerformanceResult]
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("output is not an envelope: %v\n%s", err, out)
	}
	if !env.Success || env.Data == nil || env.Data.ContentSize != 5 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestJSONOutputStillFailsOnError(t *testing.T) {
	useJSONOutput(t, true)
	useTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusBadRequest, `{"success":false,"error":{"message":"URL parameter is required"}}`)
	})

	out, err := runCommand(t, headersCmd, "example.com")
	if err == nil {
		t.Fatal("expected error for failed envelope")
	}
	if !strings.Contains(out, `"success": false`) || !strings.Contains(out, `"code": "400"`) {
		t.Fatalf("expected failed envelope in output:\n%s", out)
	}
}
