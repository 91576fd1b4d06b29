package client

import (
	"context"
	"net/url"

	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
)

func (c *Client) DNS(ctx context.Context, domain, recordType string) analysis.Envelope[analysis.DNSResult] {
	q := url.Values{"domain": {domain}}
	if recordType != "" {
		q.Set("type", recordType)
	}
	return Decode[analysis.DNSResult](c.Get(ctx, "/api/dns?"+q.Encode()))
}

func (c *Client) Whois(ctx context.Context, domain string) analysis.Envelope[analysis.WhoisResult] {
	return Decode[analysis.WhoisResult](c.Get(ctx, "/api/whois?"+url.Values{"domain": {domain}}.Encode()))
}

func (c *Client) SSL(ctx context.Context, domain string) analysis.Envelope[analysis.SSLResult] {
	return Decode[analysis.SSLResult](c.Get(ctx, "/api/ssl?"+url.Values{"domain": {domain}}.Encode()))
}

func (c *Client) Headers(ctx context.Context, target string) analysis.Envelope[analysis.HeadersResult] {
	return Decode[analysis.HeadersResult](c.Get(ctx, "/api/headers?"+url.Values{"url": {target}}.Encode()))
}

func (c *Client) Security(ctx context.Context, target string) analysis.Envelope[analysis.SecurityResult] {
	return Decode[analysis.SecurityResult](c.Get(ctx, "/api/security?"+url.Values{"url": {target}}.Encode()))
}

func (c *Client) Performance(ctx context.Context, target string) analysis.Envelope[analysis.PerformanceResult] {
	return Decode[analysis.PerformanceResult](c.Get(ctx, "/api/performance?"+url.Values{"url": {target}}.Encode()))
}

// Health reports whether the API answers /api/health.
func (c *Client) Health(ctx context.Context) error {
	env := c.Get(ctx, "/api/health")
	_, err := Result(env, "API unreachable")
	return err
}
