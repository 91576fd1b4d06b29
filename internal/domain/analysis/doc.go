// Package analysis holds the wire shapes shared by the API server, the checks
// and the API client: the response Envelope and the six per-check results.
package analysis
