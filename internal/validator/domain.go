package validator

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

const (
	maxDomainLength = 253
	maxLabelLength  = 63
)

var (
	labelRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
	tldRegex   = regexp.MustCompile(`^([a-z]{2,}|xn--[a-z0-9-]+)$`)
	lookup     = idna.New(idna.MapForLookup(), idna.Transitional(false))
)

// NormalizeDomain reduces a domain-ish input (possibly a URL) to a bare,
// lower-cased host name without scheme, path, port or trailing dot.
func NormalizeDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	host := ParseTarget(raw).Host
	host = strings.TrimRight(host, ".")
	return strings.ToLower(host)
}

// ToASCII converts an internationalized domain to its punycode form.
func ToASCII(domain string) (string, error) {
	return lookup.ToASCII(strings.TrimRight(strings.TrimSpace(domain), "."))
}

// IsValidDomain reports whether domain is a well-formed host name with at
// least two labels and an alphabetic (or punycode) top-level label.
func IsValidDomain(domain string) bool {
	if domain == "" || len(domain) > maxDomainLength {
		return false
	}
	ascii, err := ToASCII(domain)
	if err != nil || ascii == "" || len(ascii) > maxDomainLength {
		return false
	}
	ascii = strings.ToLower(ascii)

	labels := strings.Split(ascii, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || len(label) > maxLabelLength {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		if !labelRegex.MatchString(label) {
			return false
		}
	}
	return tldRegex.MatchString(labels[len(labels)-1])
}

// RegistrableDomain returns the eTLD+1 of domain ("www.example.co.uk" ->
// "example.co.uk"), or domain unchanged when no public suffix applies.
func RegistrableDomain(domain string) string {
	etld1, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain
	}
	return etld1
}
