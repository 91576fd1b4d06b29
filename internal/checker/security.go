package checker

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
	sharederrors "github.com/khanhnv2901/siteprobe/internal/shared/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Security score weights.
const (
	httpsWeight          = 40
	noMixedContentWeight = 30
	headerWeight         = 10
)

var mixedContentMarkers = []string{`http://`, `src="http:`, `href="http:`}

// ScanSecurity scores a URL from its scheme, its body and three response
// headers. The GET and HEAD probes run concurrently and neither failure
// fails the scan.
func (c *Checker) ScanSecurity(ctx context.Context, target string) (*analysis.SecurityResult, error) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, sharederrors.ErrInvalidURL
	}
	isHTTPS := u.Scheme == "https"

	var (
		body             []byte
		bodyErr, headErr error
		headers          http.Header
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := c.send(gctx, http.MethodGet, target, nil)
		if err != nil {
			bodyErr = err
			return nil
		}
		body, bodyErr = readBody(resp)
		return nil
	})
	g.Go(func() error {
		resp, err := c.send(gctx, http.MethodHead, target, nil)
		if err != nil {
			headErr = err
			return nil
		}
		discardBody(resp)
		headers = resp.Header
		return nil
	})
	_ = g.Wait()

	score := 0
	if isHTTPS {
		score += httpsWeight
	}

	mixed := false
	if bodyErr != nil {
		c.logger.Debug("security body probe failed", zap.String("url", target), zap.Error(bodyErr))
	} else if isHTTPS {
		mixed = hasMixedContent(string(body))
	}
	if !mixed {
		score += noMixedContentWeight
	}

	if headErr != nil {
		c.logger.Debug("security header probe failed", zap.String("url", target), zap.Error(headErr))
	} else {
		for _, name := range scannedSecurityHeaders {
			if len(headers.Values(name)) > 0 {
				score += headerWeight
			}
		}
	}

	return &analysis.SecurityResult{
		URL:           target,
		SafeBrowsing:  analysis.SafeBrowsing{Safe: true, Threats: []string{}},
		HTTPS:         isHTTPS,
		MixedContent:  mixed,
		SecurityScore: score,
		Timestamp:     c.timestamp(),
	}, nil
}

func hasMixedContent(body string) bool {
	for _, marker := range mixedContentMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}
