package checker

import (
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
)

// SecurityHeaderSpec defines one tracked security header.
type SecurityHeaderSpec struct {
	Name           string
	Severity       string // "high", "medium"
	Recommendation string // shown when the header is absent
	Review         func(value string) []string
}

// trackedSecurityHeaders is ordered; the headers result lists entries in this order.
var trackedSecurityHeaders = []SecurityHeaderSpec{
	{
		Name:           "Strict-Transport-Security",
		Severity:       "high",
		Recommendation: "Enable HSTS to force HTTPS connections",
		Review:         reviewHSTS,
	},
	{
		Name:           "Content-Security-Policy",
		Severity:       "high",
		Recommendation: "Implement CSP to prevent XSS attacks",
		Review:         reviewCSP,
	},
	{
		Name:           "X-Frame-Options",
		Severity:       "high",
		Recommendation: "Prevent clickjacking attacks",
		Review:         reviewXFrameOptions,
	},
	{
		Name:           "X-Content-Type-Options",
		Severity:       "high",
		Recommendation: "Prevent MIME-sniffing attacks",
		Review:         reviewXContentTypeOptions,
	},
	{
		Name:           "Referrer-Policy",
		Severity:       "medium",
		Recommendation: "Control referrer information",
		Review:         reviewReferrerPolicy,
	},
	{
		Name:           "Permissions-Policy",
		Severity:       "medium",
		Recommendation: "Control browser features and APIs",
		Review:         reviewPermissionsPolicy,
	},
}

// scannedSecurityHeaders are the headers whose presence adds to the security scan score.
var scannedSecurityHeaders = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Frame-Options",
}

// informationDisclosureHeaders lists headers that should be removed/obfuscated
var informationDisclosureHeaders = []string{
	"Server",
	"X-Powered-By",
	"X-AspNet-Version",
	"X-AspNetMvc-Version",
}

// TrackedSecurityHeaders returns the names of the six tracked headers in order.
func TrackedSecurityHeaders() []string {
	names := make([]string, 0, len(trackedSecurityHeaders))
	for _, spec := range trackedSecurityHeaders {
		names = append(names, spec.Name)
	}
	return names
}

// AnalyzeSecurityHeaders reports each tracked header and the share present,
// rounded to a 0-100 score. An empty value counts as absent.
func AnalyzeSecurityHeaders(headers http.Header) ([]analysis.SecurityHeader, int) {
	entries := make([]analysis.SecurityHeader, 0, len(trackedSecurityHeaders))
	present := 0
	for _, spec := range trackedSecurityHeaders {
		value := headers.Get(spec.Name)
		entry := analysis.SecurityHeader{Name: spec.Name, Present: value != ""}
		if entry.Present {
			entry.Value = value
			present++
		} else {
			entry.Recommendation = spec.Recommendation
		}
		entries = append(entries, entry)
	}

	score := int(math.Round(100 * float64(present) / float64(len(trackedSecurityHeaders))))
	return entries, score
}

// ReviewHeaderValue returns configuration issues for a tracked header value.
// Unknown headers and clean values yield nil.
func ReviewHeaderValue(name, value string) []string {
	for _, spec := range trackedSecurityHeaders {
		if strings.EqualFold(spec.Name, name) {
			return spec.Review(value)
		}
	}
	return nil
}

// HeaderWarnings flags deprecated and information-disclosing headers in a
// lower-cased header map, sorted for stable output.
func HeaderWarnings(headers map[string]string) []string {
	var warnings []string

	if xss, ok := headers["x-xss-protection"]; ok && xss != "0" {
		warnings = append(warnings,
			"X-XSS-Protection is deprecated and may introduce vulnerabilities. Set to '0' or remove it.")
	}
	if _, ok := headers["expect-ct"]; ok {
		warnings = append(warnings, "Expect-CT is deprecated. Remove this header.")
	}
	if _, ok := headers["public-key-pins"]; ok {
		warnings = append(warnings,
			"Public-Key-Pins (HPKP) is deprecated and dangerous. Remove this header immediately.")
	}

	for _, name := range informationDisclosureHeaders {
		if value := headers[strings.ToLower(name)]; value != "" {
			warnings = append(warnings,
				name+" header exposes server information: '"+value+"'. Consider removing or obfuscating.")
		}
	}

	sort.Strings(warnings)
	return warnings
}

func reviewHSTS(value string) []string {
	var issues []string
	value = strings.ToLower(value)

	switch {
	case !strings.Contains(value, "max-age="):
		issues = append(issues, "Missing 'max-age' directive")
	case strings.Contains(value, "max-age=0"):
		issues = append(issues, "max-age is set to 0 (HSTS disabled)")
	case !strings.Contains(value, "max-age=31536000") && !strings.Contains(value, "max-age=63072000"):
		issues = append(issues, "Consider increasing max-age to at least 31536000 (1 year)")
	}

	if !strings.Contains(value, "includesubdomains") {
		issues = append(issues, "Missing 'includeSubDomains' directive")
	}
	return issues
}

func reviewCSP(value string) []string {
	var issues []string
	value = strings.ToLower(value)
	directives := parseCSPDirectives(value)

	if strings.Contains(value, "'unsafe-inline'") {
		issues = append(issues, "Contains 'unsafe-inline' which weakens CSP protection")
	}
	if strings.Contains(value, "'unsafe-eval'") {
		issues = append(issues, "Contains 'unsafe-eval' which allows eval() and similar functions")
	}
	if strings.Contains(value, "*") {
		issues = append(issues, "Contains wildcard (*) which is too permissive")
	}
	if _, ok := directives["default-src"]; !ok {
		issues = append(issues, "Missing 'default-src' directive (recommended fallback)")
	}

	for _, token := range directives["script-src"] {
		switch token {
		case "data:", "blob:", "filesystem:":
			issues = append(issues, "Script sources allow "+token+" URLs which may enable CSP bypasses")
		}
		if strings.HasPrefix(token, "http:") {
			issues = append(issues, "Script sources allow insecure http scheme")
		}
	}
	return issues
}

func parseCSPDirectives(value string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(value, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		result[fields[0]] = fields[1:]
	}
	return result
}

func reviewXFrameOptions(value string) []string {
	value = strings.ToUpper(strings.TrimSpace(value))
	switch {
	case value == "DENY" || value == "SAMEORIGIN":
		return nil
	case strings.HasPrefix(value, "ALLOW-FROM"):
		return []string{"ALLOW-FROM is deprecated; use Content-Security-Policy frame-ancestors instead"}
	default:
		return []string{"Invalid X-Frame-Options value, set to 'DENY' or 'SAMEORIGIN'"}
	}
}

func reviewXContentTypeOptions(value string) []string {
	if strings.EqualFold(strings.TrimSpace(value), "nosniff") {
		return nil
	}
	return []string{"Invalid value, should be 'nosniff'"}
}

func reviewReferrerPolicy(value string) []string {
	value = strings.ToLower(value)
	for _, policy := range []string{"no-referrer", "strict-origin", "same-origin"} {
		if strings.Contains(value, policy) {
			return nil
		}
	}
	if strings.Contains(value, "unsafe-url") || strings.Contains(value, "origin-when-cross-origin") {
		return []string{"Policy may leak sensitive information in referrer"}
	}
	return []string{"Unusual or weak referrer policy"}
}

func reviewPermissionsPolicy(value string) []string {
	if len(value) < 10 {
		return []string{"Permissions-Policy seems minimal, consider adding more restrictions"}
	}
	return nil
}

// Grade converts a 0-100 score to a letter grade.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	case score >= 50:
		return "E"
	default:
		return "F"
	}
}
