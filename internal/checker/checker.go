package checker

import (
	"context"
	"net/http"
	"time"

	consts "github.com/khanhnv2901/siteprobe/internal/shared/constants"
	"go.uber.org/zap"
)

// Config points the checks at their upstream collaborators.
type Config struct {
	Timeout       time.Duration
	DoHURL        string
	RDAPServers   []string
	SSLGradingURL string
	UserAgent     string
}

// DefaultConfig returns the production upstream endpoints.
func DefaultConfig() Config {
	return Config{
		Timeout:       consts.DefaultUpstreamTimeout,
		DoHURL:        consts.DefaultDoHURL,
		RDAPServers:   append([]string(nil), consts.DefaultRDAPServers...),
		SSLGradingURL: consts.DefaultSSLGradingURL,
		UserAgent:     "siteprobe/dev",
	}
}

// Checker runs the six website checks. It holds no per-request state and is
// safe for concurrent use.
type Checker struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*Checker)

// WithHTTPClient replaces the outbound client (tests point it at httptest servers).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) { c.client = client }
}

// WithClock replaces time.Now for timestamps and certificate expiry math.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Checker) { c.logger = logger }
}

func New(cfg Config, opts ...Option) *Checker {
	defaults := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.DoHURL == "" {
		cfg.DoHURL = defaults.DoHURL
	}
	if len(cfg.RDAPServers) == 0 {
		cfg.RDAPServers = defaults.RDAPServers
	}
	if cfg.SSLGradingURL == "" {
		cfg.SSLGradingURL = defaults.SSLGradingURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}

	c := &Checker{
		cfg:    cfg,
		client: newHTTPClient(cfg.Timeout),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checker) timestamp() string {
	return consts.FormatTimestamp(c.now())
}

// Default failure messages, one per check.
const (
	MsgDNSFailed         = "DNS lookup failed"
	MsgWhoisFailed       = "WHOIS lookup failed"
	MsgSSLFailed         = "SSL check failed"
	MsgHeadersFailed     = "Headers analysis failed"
	MsgSecurityFailed    = "Security check failed"
	MsgPerformanceFailed = "Performance check failed"
)

// Registry returns one descriptor per check, in dashboard order.
func (c *Checker) Registry() []Descriptor {
	return []Descriptor{
		{
			Name:         "dns",
			TTL:          consts.DNSCacheTTL,
			Required:     Param{Name: "domain", Label: "Domain"},
			Optional:     []Param{{Name: "type", Label: "Record type", Default: "A", Allowed: SupportedRecordTypes()}},
			DefaultError: MsgDNSFailed,
			Run: func(ctx context.Context, q Query) (any, error) {
				return c.LookupDNS(ctx, q.Get("domain"), q.Get("type"))
			},
		},
		{
			Name:         "whois",
			TTL:          consts.WhoisCacheTTL,
			Required:     Param{Name: "domain", Label: "Domain"},
			DefaultError: MsgWhoisFailed,
			Run: func(ctx context.Context, q Query) (any, error) {
				return c.LookupWhois(ctx, q.Get("domain"))
			},
		},
		{
			Name:         "ssl",
			TTL:          consts.SSLCacheTTL,
			Required:     Param{Name: "domain", Label: "Domain"},
			DefaultError: MsgSSLFailed,
			Run: func(ctx context.Context, q Query) (any, error) {
				return c.CheckSSL(ctx, q.Get("domain"))
			},
		},
		{
			Name:         "headers",
			TTL:          consts.HeadersCacheTTL,
			Required:     Param{Name: "url", Label: "URL"},
			DefaultError: MsgHeadersFailed,
			Run: func(ctx context.Context, q Query) (any, error) {
				return c.AnalyzeHeaders(ctx, q.Get("url"))
			},
		},
		{
			Name:         "security",
			TTL:          consts.SecurityCacheTTL,
			Required:     Param{Name: "url", Label: "URL"},
			DefaultError: MsgSecurityFailed,
			Run: func(ctx context.Context, q Query) (any, error) {
				return c.ScanSecurity(ctx, q.Get("url"))
			},
		},
		{
			Name:         "performance",
			TTL:          consts.PerformanceCacheTTL,
			Required:     Param{Name: "url", Label: "URL"},
			DefaultError: MsgPerformanceFailed,
			Run: func(ctx context.Context, q Query) (any, error) {
				return c.MeasurePerformance(ctx, q.Get("url"))
			},
		},
	}
}
