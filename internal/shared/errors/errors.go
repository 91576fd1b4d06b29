package errors

import "errors"

// Input errors
var (
	ErrMissingParam    = errors.New("missing required parameter")
	ErrInvalidParam    = errors.New("invalid parameter")
	ErrInvalidURL      = errors.New("Invalid URL")
	ErrUnsupportedType = errors.New("unsupported record type")
)

// Upstream errors
var (
	ErrUpstreamStatus   = errors.New("upstream returned non-OK status")
	ErrUpstreamDecoding = errors.New("upstream response could not be decoded")
	ErrWhoisUnavailable = errors.New("Unable to fetch WHOIS data")
)

// Cache errors
var (
	ErrCacheUnavailable = errors.New("cache store unavailable")
	ErrUnknownBackend   = errors.New("unknown cache backend")
)
