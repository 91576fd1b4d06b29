package checker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
	sharederrors "github.com/khanhnv2901/siteprobe/internal/shared/errors"
	"go.uber.org/zap"
)

var redactedValues = map[string]bool{
	"redacted": true, "data protected": true,
	"not disclosed": true, "withheld": true,
}

// LookupWhois fetches registration data over RDAP, trying each configured
// server in order. The first 2xx JSON response wins.
func (c *Checker) LookupWhois(ctx context.Context, domain string) (*analysis.WhoisResult, error) {
	var body []byte
	for _, server := range c.cfg.RDAPServers {
		endpoint := strings.Replace(server, "%s", url.PathEscape(domain), 1)
		b, err := c.fetchRDAP(ctx, endpoint)
		if err != nil {
			c.logger.Debug("rdap server failed", zap.String("url", endpoint), zap.Error(err))
			continue
		}
		body = b
		break
	}
	if body == nil {
		return nil, &UpstreamError{
			Message: sharederrors.ErrWhoisUnavailable.Error(),
			Err:     sharederrors.ErrWhoisUnavailable,
		}
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		// Valid JSON that is not an object; nothing to extract.
		data = map[string]any{}
	}

	var raw bytes.Buffer
	if err := json.Indent(&raw, bytes.TrimSpace(body), "", "  "); err != nil {
		return nil, &UpstreamError{Message: "WHOIS lookup failed", Err: err}
	}

	result := &analysis.WhoisResult{
		Domain:                 domain,
		Registrar:              findRegistrar(data["entities"]),
		RegistrantOrganization: findRegistrant(data["entities"]),
		RegistrationDate:       findEventDate(data["events"], "registration"),
		ExpirationDate:         findEventDate(data["events"], "expiration"),
		UpdatedDate:            findEventDate(data["events"], "last changed"),
		NameServers:            nameServers(data["nameservers"]),
		Status:                 stringSlice(data["status"]),
		RawData:                raw.String(),
		Timestamp:              c.timestamp(),
	}
	if name, ok := data["ldhName"].(string); ok && name != "" {
		result.Domain = name
	}
	return result, nil
}

func (c *Checker) fetchRDAP(ctx context.Context, endpoint string) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, endpoint, http.Header{"Accept": {"application/json"}})
	if err != nil {
		return nil, err
	}
	if !isOK(resp.StatusCode) {
		discardBody(resp)
		return nil, fmt.Errorf("%w: %d", sharederrors.ErrUpstreamStatus, resp.StatusCode)
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) || string(bytes.TrimSpace(body)) == "null" {
		return nil, sharederrors.ErrUpstreamDecoding
	}
	return body, nil
}

// findRegistrar returns the vCard fn of the first top-level registrar entity.
func findRegistrar(v any) string {
	entities, _ := v.([]any)
	for _, e := range entities {
		entity, ok := e.(map[string]any)
		if ok && entityHasRole(entity, "registrar") {
			return vcardField(entity, "fn")
		}
	}
	return ""
}

// findRegistrant prefers the registrant's organization over its name and
// skips redacted placeholders.
func findRegistrant(v any) string {
	entities, _ := v.([]any)
	for _, e := range entities {
		entity, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if entityHasRole(entity, "registrant") {
			for _, field := range []string{"org", "fn"} {
				if name := vcardField(entity, field); name != "" && !redactedValues[strings.ToLower(name)] {
					return name
				}
			}
		}
		if name := findRegistrant(entity["entities"]); name != "" {
			return name
		}
	}
	return ""
}

func entityHasRole(entity map[string]any, role string) bool {
	roles, _ := entity["roles"].([]any)
	for _, r := range roles {
		if s, ok := r.(string); ok && strings.EqualFold(s, role) {
			return true
		}
	}
	return false
}

// vcardField reads a property value from a jCard: ["vcard", [[name, params, type, value], ...]].
// Structured values such as org return their first component.
func vcardField(entity map[string]any, field string) string {
	vcard, ok := entity["vcardArray"].([]any)
	if !ok || len(vcard) < 2 {
		return ""
	}
	items, ok := vcard[1].([]any)
	if !ok {
		return ""
	}
	for _, item := range items {
		arr, ok := item.([]any)
		if !ok || len(arr) < 4 || arr[0] != field {
			continue
		}
		switch value := arr[3].(type) {
		case string:
			return value
		case []any:
			if len(value) > 0 {
				if s, ok := value[0].(string); ok {
					return s
				}
			}
		}
		return ""
	}
	return ""
}

func findEventDate(v any, action string) string {
	events, _ := v.([]any)
	for _, e := range events {
		event, ok := e.(map[string]any)
		if !ok || event["eventAction"] != action {
			continue
		}
		date, _ := event["eventDate"].(string)
		return date
	}
	return ""
}

func nameServers(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	servers := make([]string, 0, len(list))
	for _, ns := range list {
		entry, ok := ns.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := entry["ldhName"].(string); ok {
			servers = append(servers, name)
		}
	}
	return servers
}

func stringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
