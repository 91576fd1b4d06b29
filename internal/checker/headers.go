package checker

import (
	"context"
	"net/http"
	"strings"

	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
)

// AnalyzeHeaders reports every response header of a HEAD request plus the
// tracked security headers and their score.
func (c *Checker) AnalyzeHeaders(ctx context.Context, target string) (*analysis.HeadersResult, error) {
	resp, err := c.send(ctx, http.MethodHead, target, nil)
	if err != nil {
		return nil, err
	}
	discardBody(resp)

	securityHeaders, score := AnalyzeSecurityHeaders(resp.Header)
	return &analysis.HeadersResult{
		URL:             target,
		Headers:         flattenHeaders(resp.Header),
		SecurityHeaders: securityHeaders,
		SecurityScore:   score,
		Timestamp:       c.timestamp(),
	}, nil
}

// flattenHeaders lower-cases names and joins repeated values with ", ".
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		out[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return out
}
