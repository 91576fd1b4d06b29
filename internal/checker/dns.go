package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
	sharederrors "github.com/khanhnv2901/siteprobe/internal/shared/errors"
	"github.com/miekg/dns"
	"go.uber.org/zap"
)

// supportedRecordTypes are the record types the DNS check accepts, in display order.
var supportedRecordTypes = []uint16{
	dns.TypeA,
	dns.TypeAAAA,
	dns.TypeMX,
	dns.TypeTXT,
	dns.TypeNS,
	dns.TypeCNAME,
	dns.TypeSOA,
}

// SupportedRecordTypes returns the accepted record type mnemonics.
func SupportedRecordTypes() []string {
	names := make([]string, 0, len(supportedRecordTypes))
	for _, t := range supportedRecordTypes {
		names = append(names, dns.TypeToString[t])
	}
	return names
}

// RecordTypeNumber maps a supported mnemonic ("MX") to its wire number.
// Matching is exact; lower-case names are rejected.
func RecordTypeNumber(name string) (uint16, bool) {
	t, ok := dns.StringToType[name]
	if !ok || !isSupportedType(t) {
		return 0, false
	}
	return t, true
}

// RecordTypeName maps a wire number back to its mnemonic, or "UNKNOWN".
func RecordTypeName(t int) string {
	if t < 0 || t > 0xFFFF || !isSupportedType(uint16(t)) {
		return "UNKNOWN"
	}
	return dns.TypeToString[uint16(t)]
}

func isSupportedType(t uint16) bool {
	for _, s := range supportedRecordTypes {
		if s == t {
			return true
		}
	}
	return false
}

type dohAnswer struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	TTL  int    `json:"TTL"`
	Data string `json:"data"`
}

type dohResponse struct {
	Status int         `json:"Status"`
	Answer []dohAnswer `json:"Answer"`
}

// LookupDNS resolves domain through the DNS-over-HTTPS JSON API.
func (c *Checker) LookupDNS(ctx context.Context, domain, recordType string) (*analysis.DNSResult, error) {
	typeNum, ok := RecordTypeNumber(recordType)
	if !ok {
		return nil, &ParamError{
			Param:   "type",
			Message: "Invalid record type: " + recordType,
			Err:     sharederrors.ErrUnsupportedType,
		}
	}

	endpoint := c.cfg.DoHURL + "?name=" + url.QueryEscape(domain) + "&type=" + strconv.Itoa(int(typeNum))
	resp, err := c.send(ctx, http.MethodGet, endpoint, http.Header{"Accept": {"application/dns-json"}})
	if err != nil {
		return nil, err
	}
	if !isOK(resp.StatusCode) {
		discardBody(resp)
		return nil, &UpstreamError{
			Message: MsgDNSFailed,
			Err:     fmt.Errorf("%w: %d", sharederrors.ErrUpstreamStatus, resp.StatusCode),
		}
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	var parsed dohResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &UpstreamError{
			Message: MsgDNSFailed,
			Err:     fmt.Errorf("%w: %v", sharederrors.ErrUpstreamDecoding, err),
		}
	}

	records := make([]analysis.DNSRecord, 0, len(parsed.Answer))
	for _, a := range parsed.Answer {
		records = append(records, analysis.DNSRecord{
			Name: a.Name,
			Type: RecordTypeName(a.Type),
			TTL:  a.TTL,
			Data: a.Data,
		})
	}

	c.logger.Debug("dns lookup complete",
		zap.String("domain", domain),
		zap.String("type", recordType),
		zap.Int("answers", len(records)),
		zap.Int("rcode", parsed.Status))

	return &analysis.DNSResult{
		Domain:     domain,
		RecordType: recordType,
		Records:    records,
		Timestamp:  c.timestamp(),
	}, nil
}
