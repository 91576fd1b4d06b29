package validator

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultScheme is prepended to inputs that carry no scheme.
const DefaultScheme = "https"

var schemePrefix = regexp.MustCompile(`(?i)^https?://`)

// NormalizeURL prepends https:// unless the input already starts with http:// or https://.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !schemePrefix.MatchString(raw) {
		return DefaultScheme + "://" + raw
	}
	return raw
}

// IsValidURL reports whether raw parses as an absolute URL with a host.
func IsValidURL(raw string) bool {
	if raw == "" || strings.ContainsAny(raw, " \t\r\n") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Hostname() != ""
}

// ExtractDomain returns the hostname of the normalized URL, or raw unchanged
// when it cannot be parsed.
func ExtractDomain(raw string) string {
	u, err := url.Parse(NormalizeURL(raw))
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
