package analysis

import (
	"time"

	consts "github.com/khanhnv2901/siteprobe/internal/shared/constants"
)

// APIError is the failure half of an Envelope.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Meta describes when an envelope was produced and whether it came from cache.
type Meta struct {
	Timestamp string `json:"timestamp"`
	Cached    bool   `json:"cached"`
}

// Envelope is the uniform wrapper returned by every analysis endpoint.
// Success implies Data is set and Error is nil; failure implies Error.Message is set.
type Envelope[T any] struct {
	Success bool      `json:"success"`
	Data    *T        `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *Meta     `json:"meta,omitempty"`
}

// OK wraps data in a successful envelope stamped with now.
func OK[T any](data T, now time.Time) Envelope[T] {
	return Envelope[T]{
		Success: true,
		Data:    &data,
		Meta: &Meta{
			Timestamp: consts.FormatTimestamp(now),
			Cached:    false,
		},
	}
}

// Fail builds a failed envelope carrying message.
func Fail[T any](message string) Envelope[T] {
	return Envelope[T]{Success: false, Error: &APIError{Message: message}}
}

// FailWithCode is Fail with an error code attached.
func FailWithCode[T any](message, code string) Envelope[T] {
	env := Fail[T](message)
	env.Error.Code = code
	return env
}

// Message returns the error message of a failed envelope, or "" on success.
func (e Envelope[T]) Message() string {
	if e.Error == nil {
		return ""
	}
	return e.Error.Message
}
