package checker

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
)

// MeasurePerformance times a single redirect-following GET. The clock stops
// when response headers arrive; the body is not read.
func (c *Checker) MeasurePerformance(ctx context.Context, target string) (*analysis.PerformanceResult, error) {
	start := time.Now()
	resp, err := c.send(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start).Milliseconds()
	defer discardBody(resp)

	contentSize, err := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	if err != nil || contentSize < 0 {
		contentSize = 0
	}

	redirects := 0
	if resp.Request != nil && resp.Request.URL.String() != target {
		redirects = 1
	}

	return &analysis.PerformanceResult{
		URL:          target,
		LoadTime:     loadTime,
		ResponseTime: loadTime,
		ContentSize:  contentSize,
		StatusCode:   resp.StatusCode,
		Redirects:    redirects,
		Metrics:      analysis.PerformanceMetrics{TTFB: loadTime},
		Timestamp:    c.timestamp(),
	}, nil
}
