package cmd

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestInfoCommand(t *testing.T) {
	isolateConfig(t)

	output, err := runCommand(t, infoCmd)
	if err != nil {
		t.Fatalf("info command failed: %v", err)
	}

	expectedSections := []string{
		"siteprobe System Information",
		"Platform:",
		"Configuration File:",
		"(using defaults)",
		"Effective configuration:",
		":8080",
	}
	for _, section := range expectedSections {
		if !strings.Contains(output, section) {
			t.Errorf("Expected output to contain '%s', got:\n%s", section, output)
		}
	}

	expectedPlatform := runtime.GOOS + "/" + runtime.GOARCH
	if !strings.Contains(output, expectedPlatform) {
		t.Errorf("Expected platform '%s' in output, got:\n%s", expectedPlatform, output)
	}
}

func TestEffectiveConfigRoundTripsThroughYAML(t *testing.T) {
	cfg := newCLIConfig()
	cfg.Server.ShutdownTimeout = 3 * time.Second
	cfg.Cache.Backend = "redis"

	body, err := yaml.Marshal(effectiveConfig(cfg))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Server struct {
			ShutdownTimeout string `yaml:"shutdown_timeout"`
			RateLimit       int    `yaml:"rate_limit"`
		} `yaml:"server"`
		Cache struct {
			Backend string `yaml:"backend"`
		} `yaml:"cache"`
		Upstream struct {
			RDAPServers []string `yaml:"rdap_servers"`
		} `yaml:"upstream"`
	}
	if err := yaml.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Server.ShutdownTimeout != "3s" {
		t.Fatalf("expected duration string, got %q", decoded.Server.ShutdownTimeout)
	}
	if decoded.Server.RateLimit != cfg.Server.RateLimit {
		t.Fatalf("expected rate limit %d, got %d", cfg.Server.RateLimit, decoded.Server.RateLimit)
	}
	if decoded.Cache.Backend != "redis" {
		t.Fatalf("expected redis backend, got %q", decoded.Cache.Backend)
	}
	if len(decoded.Upstream.RDAPServers) != len(cfg.Upstream.RDAPServers) {
		t.Fatalf("expected %d RDAP servers, got %v", len(cfg.Upstream.RDAPServers), decoded.Upstream.RDAPServers)
	}
}
