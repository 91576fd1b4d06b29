package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/khanhnv2901/siteprobe/internal/checker"
	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
)

// expiryWarningDays marks certificates close enough to expiry to flag.
const expiryWarningDays = 30

func renderTitle(w io.Writer, title string, cached bool) {
	status := formatStatusWithColor("miss")
	if cached {
		status = formatStatusWithColor("hit")
	}
	fmt.Fprintf(w, "%s %s (cache %s)\n", colorInfo("→"), colorLabel(title), status)
}

func renderField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "  %-18s %s\n", label+":", value)
}

func renderDNS(w io.Writer, r *analysis.DNSResult, cached bool) {
	renderTitle(w, fmt.Sprintf("DNS %s records for %s", r.RecordType, r.Domain), cached)
	if len(r.Records) == 0 {
		fmt.Fprintf(w, "  %s\n", colorWarn("no records found"))
		return
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tTYPE\tTTL\tDATA")
	for _, rec := range r.Records {
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%s\n", rec.Name, rec.Type, rec.TTL, rec.Data)
	}
	tw.Flush()
}

func renderWhois(w io.Writer, r *analysis.WhoisResult, cached bool) {
	renderTitle(w, "WHOIS for "+r.Domain, cached)
	renderField(w, "Registrar", r.Registrar)
	renderField(w, "Registrant", r.RegistrantOrganization)
	renderField(w, "Registered", r.RegistrationDate)
	renderField(w, "Expires", r.ExpirationDate)
	renderField(w, "Updated", r.UpdatedDate)
	renderField(w, "Name servers", strings.Join(r.NameServers, ", "))
	renderField(w, "Status", strings.Join(r.Status, ", "))
}

func renderSSL(w io.Writer, r *analysis.SSLResult, cached bool) {
	renderTitle(w, "SSL certificate for "+r.Domain, cached)
	renderField(w, "Reachable (HTTPS)", yesNo(r.Valid))
	renderField(w, "Issuer", r.Issuer)
	renderField(w, "Subject", r.Subject)
	renderField(w, "Valid from", r.ValidFrom)
	renderField(w, "Valid to", r.ValidTo)
	if r.DaysRemaining != nil {
		renderField(w, "Days remaining", formatDaysRemaining(*r.DaysRemaining))
	}
	renderField(w, "Protocol", r.Protocol)
	renderField(w, "Cipher", r.Cipher)
	for i, cert := range r.CertificateChain {
		renderField(w, fmt.Sprintf("Chain[%d]", i), cert)
	}
}

func formatDaysRemaining(days int) string {
	text := fmt.Sprintf("%d", days)
	switch {
	case days < 0:
		return colorError(text + " (expired)")
	case days < expiryWarningDays:
		return colorWarn(text)
	default:
		return colorSuccess(text)
	}
}

func renderHeaders(w io.Writer, r *analysis.HeadersResult, cached bool) {
	renderTitle(w, "Headers for "+r.URL, cached)
	grade := checker.Grade(r.SecurityScore)
	fmt.Fprintf(w, "  Security score: %d/100 (grade %s)\n", r.SecurityScore, gradeColor(grade))

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, h := range r.SecurityHeaders {
		if h.Present {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", colorSuccess("✓"), h.Name, h.Value)
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", colorError("✗"), h.Name, h.Recommendation)
	}
	tw.Flush()

	var findings []string
	for _, h := range r.SecurityHeaders {
		if h.Present {
			findings = append(findings, checker.ReviewHeaderValue(h.Name, h.Value)...)
		}
	}
	findings = append(findings, checker.HeaderWarnings(r.Headers)...)
	for _, f := range findings {
		fmt.Fprintf(w, "  %s %s\n", colorWarn("!"), f)
	}

	if len(r.Headers) == 0 {
		return
	}
	fmt.Fprintln(w, "  All headers:")
	names := make([]string, 0, len(r.Headers))
	for name := range r.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "    %s: %s\n", name, r.Headers[name])
	}
}

func renderSecurity(w io.Writer, r *analysis.SecurityResult, cached bool) {
	renderTitle(w, "Security scan for "+r.URL, cached)
	grade := checker.Grade(r.SecurityScore)
	fmt.Fprintf(w, "  Security score: %d/100 (grade %s)\n", r.SecurityScore, gradeColor(grade))
	renderField(w, "HTTPS", yesNo(r.HTTPS))
	mixed := colorSuccess("none")
	if r.MixedContent {
		mixed = colorError("detected")
	}
	renderField(w, "Mixed content", mixed)
	safe := yesNo(r.SafeBrowsing.Safe)
	if len(r.SafeBrowsing.Threats) > 0 {
		safe += " " + colorError(strings.Join(r.SafeBrowsing.Threats, ", "))
	}
	renderField(w, "Safe browsing", safe)
}

func renderPerformance(w io.Writer, r *analysis.PerformanceResult, cached bool) {
	renderTitle(w, "Performance of "+r.URL, cached)
	renderField(w, "Status", formatHTTPStatus(r.StatusCode))
	renderField(w, "Load time", fmt.Sprintf("%d ms", r.LoadTime))
	renderField(w, "Response time", fmt.Sprintf("%d ms", r.ResponseTime))
	renderField(w, "TTFB", fmt.Sprintf("%d ms", r.Metrics.TTFB))
	renderField(w, "Content size", formatBytes(r.ContentSize))
	renderField(w, "Redirects", fmt.Sprintf("%d", r.Redirects))
}

func formatHTTPStatus(code int) string {
	text := fmt.Sprintf("%d", code)
	if code >= 200 && code < 400 {
		return colorSuccess(text)
	}
	return colorError(text)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
