package constants

import "time"

// Cache lifetimes per check.
const (
	DNSCacheTTL         = 3600 * time.Second
	WhoisCacheTTL       = 86400 * time.Second
	SSLCacheTTL         = 3600 * time.Second
	SecurityCacheTTL    = 1800 * time.Second
	PerformanceCacheTTL = 300 * time.Second
	HeadersCacheTTL     = 300 * time.Second
)

// Default upstream endpoints.
const (
	DefaultDoHURL        = "https://cloudflare-dns.com/dns-query"
	DefaultSSLGradingURL = "https://api.ssllabs.com/api/v3/analyze"
)

// DefaultRDAPServers are tried in order; %s is replaced with the domain.
var DefaultRDAPServers = []string{
	"https://rdap.org/domain/%s",
	"https://rdap.verisign.com/com/v1/domain/%s",
}

const (
	// DefaultUpstreamTimeout bounds every outbound request made by a check.
	DefaultUpstreamTimeout = 10 * time.Second
	// MaxRedirects caps redirect chains followed by the checks.
	MaxRedirects = 10
	// MaxBodyBytes caps how much of an upstream or target body is read.
	MaxBodyBytes = 10 << 20
)

const (
	// DefaultRateLimitRequests and DefaultRateLimitWindow describe the per-client API budget.
	DefaultRateLimitRequests = 100
	DefaultRateLimitWindow   = time.Minute
	// DefaultRateBurst lets short bursts through before the limiter kicks in.
	DefaultRateBurst = 20
)

// TimestampLayout is the ISO-8601 form used in every response body.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in TimestampLayout (UTC, millisecond precision).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

const (
	// DefaultServerAddr is where `serve` listens unless configured otherwise.
	DefaultServerAddr = ":8080"
	// DefaultAPIURL is the base URL the CLI client calls.
	DefaultAPIURL = "http://localhost:8080"
	// DefaultClientTimeout bounds one CLI-to-API call; it must cover the slowest check.
	DefaultClientTimeout = 30 * time.Second
	// DefaultShutdownTimeout bounds graceful shutdown of the API server.
	DefaultShutdownTimeout = 10 * time.Second
)
