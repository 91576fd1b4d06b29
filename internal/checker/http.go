package checker

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	consts "github.com/khanhnv2901/siteprobe/internal/shared/constants"
)

// newHTTPClient builds the client shared by every check. It follows up to
// MaxRedirects redirects and verifies TLS.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= consts.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", consts.MaxRedirects)
			}
			return nil
		},
	}
}

// send issues a request with the checker's User-Agent and the given extra headers.
func (c *Checker) send(ctx context.Context, method, target string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	for name, values := range header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	return c.client.Do(req)
}

// readBody reads at most MaxBodyBytes and closes the body.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, consts.MaxBodyBytes))
}

// discardBody drains and closes the body so the connection can be reused.
func discardBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, consts.MaxBodyBytes))
	resp.Body.Close()
}

func isOK(status int) bool {
	return status >= 200 && status < 300
}
