package validator

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"  example.com/path ", "https://example.com/path"},
		{"http://example.com", "http://example.com"},
		{"HTTPS://Example.com", "HTTPS://Example.com"},
		{"ftp://example.com", "https://ftp://example.com"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://example.com:8080/a?b=c",
		"https://sub.example.co.uk/",
	}
	invalid := []string{
		"",
		"https://",
		"not a url",
		"https://exa mple.com",
		"example.com",
	}
	for _, in := range valid {
		if !IsValidURL(in) {
			t.Errorf("expected %q to be valid", in)
		}
	}
	for _, in := range invalid {
		if IsValidURL(in) {
			t.Errorf("expected %q to be invalid", in)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	tests := map[string]string{
		"https://www.example.com/path": "www.example.com",
		"example.com":                  "example.com",
		"http://example.com:8080":      "example.com",
	}
	for in, want := range tests {
		if got := ExtractDomain(in); got != want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Example.COM", "example.com"},
		{"https://www.example.com/about", "www.example.com"},
		{"example.com.", "example.com"},
		{"example.com:8443", "example.com"},
		{"  example.org  ", "example.org"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDomain(tt.in); got != tt.want {
			t.Errorf("NormalizeDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidDomain(t *testing.T) {
	valid := []string{
		"example.com",
		"sub.example.co.uk",
		"a-b.example.io",
		"münchen.de",
		"xn--mnchen-3ya.de",
	}
	invalid := []string{
		"",
		"localhost",
		"-bad.example.com",
		"bad-.example.com",
		"exa_mple.com",
		"example..com",
		"example.c0m",
		"example.c",
	}
	for _, in := range valid {
		if !IsValidDomain(in) {
			t.Errorf("expected %q to be valid", in)
		}
	}
	for _, in := range invalid {
		if IsValidDomain(in) {
			t.Errorf("expected %q to be invalid", in)
		}
	}
}

func TestRegistrableDomain(t *testing.T) {
	tests := map[string]string{
		"www.example.com":   "example.com",
		"a.b.example.co.uk": "example.co.uk",
		"example.com":       "example.com",
		"com":               "com",
	}
	for in, want := range tests {
		if got := RegistrableDomain(in); got != want {
			t.Errorf("RegistrableDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseTarget(t *testing.T) {
	info := ParseTarget("example.com:8080/path")
	if info.Host != "example.com" || info.Port != "8080" || info.Path != "/path" {
		t.Fatalf("unexpected parse: %+v", info)
	}
	if info.Scheme != "https" {
		t.Fatalf("expected default scheme https, got %q", info.Scheme)
	}

	info = ParseTarget("http://example.com")
	if info.Scheme != "http" || info.FullURL != "http://example.com" {
		t.Fatalf("unexpected parse: %+v", info)
	}
}
