package checker

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
	consts "github.com/khanhnv2901/siteprobe/internal/shared/constants"
	sharederrors "github.com/khanhnv2901/siteprobe/internal/shared/errors"
	"go.uber.org/zap"
)

// UnavailableIssuer is reported when the grading service has no finished report.
const UnavailableIssuer = "Unable to retrieve (use SSL Labs for details)"

const gradingReady = "READY"

type gradingReport struct {
	Status    string            `json:"status"`
	Endpoints []gradingEndpoint `json:"endpoints"`
}

type gradingEndpoint struct {
	Details *gradingDetails `json:"details"`
}

type gradingDetails struct {
	Cert      *gradingCert      `json:"cert"`
	Protocols []gradingProtocol `json:"protocols"`
	Suites    json.RawMessage   `json:"suites"`
}

type gradingCert struct {
	Subject     string `json:"subject"`
	IssuerLabel string `json:"issuerLabel"`
	NotBefore   int64  `json:"notBefore"`
	NotAfter    int64  `json:"notAfter"`
}

type gradingProtocol struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type gradingSuites struct {
	List []struct {
		Name string `json:"name"`
	} `json:"list"`
}

// firstCipher accepts both the single-object and per-protocol array forms of "suites".
func (d *gradingDetails) firstCipher() string {
	if len(d.Suites) == 0 {
		return ""
	}
	var single gradingSuites
	if err := json.Unmarshal(d.Suites, &single); err == nil {
		if len(single.List) > 0 {
			return single.List[0].Name
		}
		return ""
	}
	var perProtocol []gradingSuites
	if err := json.Unmarshal(d.Suites, &perProtocol); err == nil {
		for _, s := range perProtocol {
			if len(s.List) > 0 {
				return s.List[0].Name
			}
		}
	}
	return ""
}

// CheckSSL probes https://domain with a HEAD request, then consults the
// grading service for certificate details.
func (c *Checker) CheckSSL(ctx context.Context, domain string) (*analysis.SSLResult, error) {
	resp, err := c.send(ctx, http.MethodHead, "https://"+domain, nil)
	if err != nil {
		return nil, err
	}
	discardBody(resp)
	valid := isOK(resp.StatusCode)

	report, err := c.fetchGrading(ctx, domain)
	if err != nil {
		return nil, err
	}

	result := &analysis.SSLResult{
		Domain:    domain,
		Valid:     valid,
		Timestamp: c.timestamp(),
	}

	if report.Status != gradingReady || len(report.Endpoints) == 0 {
		c.logger.Debug("ssl grading not ready", zap.String("domain", domain), zap.String("status", report.Status))
		result.Issuer = UnavailableIssuer
		return result, nil
	}

	if details := report.Endpoints[0].Details; details != nil {
		if cert := details.Cert; cert != nil {
			result.Issuer = cert.IssuerLabel
			result.Subject = cert.Subject
			if cert.NotBefore != 0 {
				result.ValidFrom = consts.FormatTimestamp(time.UnixMilli(cert.NotBefore))
			}
			if cert.NotAfter != 0 {
				validTo := time.UnixMilli(cert.NotAfter)
				result.ValidTo = consts.FormatTimestamp(validTo)
				days := DaysRemaining(validTo, c.now())
				result.DaysRemaining = &days
			}
		}
		if len(details.Protocols) > 0 {
			result.Protocol = details.Protocols[0].Name
		}
		result.Cipher = details.firstCipher()
	}
	result.CertificateChain = peerChain(resp.TLS)

	return result, nil
}

// DaysRemaining is the whole number of days until validTo, floored, so an
// expired certificate yields a negative count.
func DaysRemaining(validTo, now time.Time) int {
	return int(math.Floor(float64(validTo.Sub(now)) / float64(24*time.Hour)))
}

func (c *Checker) fetchGrading(ctx context.Context, domain string) (*gradingReport, error) {
	endpoint := c.cfg.SSLGradingURL + "?host=" + url.QueryEscape(domain) + "&fromCache=on&maxAge=24"
	resp, err := c.send(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var report gradingReport
	var typeErr *json.UnmarshalTypeError
	// A field of unexpected type is skipped; the rest of the report still decodes.
	if err := json.Unmarshal(body, &report); err != nil && !errors.As(err, &typeErr) {
		return nil, &UpstreamError{
			Message: MsgSSLFailed,
			Err:     fmt.Errorf("%w: %v", sharederrors.ErrUpstreamDecoding, err),
		}
	}
	return &report, nil
}

// peerChain lists the subjects of the certificates the server presented, leaf first.
func peerChain(state *tls.ConnectionState) []string {
	if state == nil {
		return nil
	}
	chain := make([]string, 0, len(state.PeerCertificates))
	for _, cert := range state.PeerCertificates {
		chain = append(chain, cert.Subject.String())
	}
	return chain
}
