// Package checker implements the six website checks behind the analysis API.
//
// Each check is a method on Checker that talks to one or more upstreams and
// returns a typed payload from the analysis package:
//
//   - LookupDNS queries a DNS-over-HTTPS JSON resolver.
//   - LookupWhois walks a list of RDAP servers until one answers.
//   - CheckSSL probes the site over HTTPS and reads a cached grading report.
//   - AnalyzeHeaders reports the response headers and six tracked security headers.
//   - ScanSecurity scores scheme, mixed content and three security headers.
//   - MeasurePerformance times a single GET.
//
// Registry wraps every check in a Descriptor (route, parameters, cache TTL,
// fallback error text) so the API layer can serve all six with one handler.
package checker
