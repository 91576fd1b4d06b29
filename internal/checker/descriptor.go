package checker

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/khanhnv2901/siteprobe/internal/cache"
	sharederrors "github.com/khanhnv2901/siteprobe/internal/shared/errors"
)

// Param describes one query parameter of a check.
type Param struct {
	Name    string
	Label   string
	Default string
	Allowed []string
}

// Query holds the resolved parameter values of one request.
type Query struct {
	values map[string]string
}

// NewQuery builds a Query from name/value pairs.
func NewQuery(values map[string]string) Query {
	return Query{values: values}
}

func (q Query) Get(name string) string {
	return q.values[name]
}

// RunFunc performs the upstream work of a check and returns its result payload.
type RunFunc func(ctx context.Context, q Query) (any, error)

// Descriptor is the per-check row the shared analysis handler is parameterized by.
type Descriptor struct {
	Name         string
	TTL          time.Duration
	Required     Param
	Optional     []Param
	DefaultError string
	Run          RunFunc
}

// Path is the route the check is served on.
func (d Descriptor) Path() string {
	return "/api/" + d.Name
}

// Resolve validates raw query values and derives the cache key from the
// values exactly as received. It never touches the cache or the network.
func (d Descriptor) Resolve(values url.Values) (Query, string, error) {
	primary := values.Get(d.Required.Name)
	if primary == "" {
		return Query{}, "", &ParamError{
			Param:   d.Required.Name,
			Message: d.Required.Label + " parameter is required",
			Err:     sharederrors.ErrMissingParam,
		}
	}

	resolved := map[string]string{d.Required.Name: primary}
	parts := []string{primary}
	for _, p := range d.Optional {
		v := values.Get(p.Name)
		if v == "" {
			v = p.Default
		}
		if len(p.Allowed) > 0 && !slices.Contains(p.Allowed, v) {
			return Query{}, "", &ParamError{
				Param:   p.Name,
				Message: fmt.Sprintf("Invalid %s: %s", lowerFirst(p.Label), v),
				Err:     sharederrors.ErrInvalidParam,
			}
		}
		resolved[p.Name] = v
		parts = append(parts, v)
	}

	return NewQuery(resolved), cache.Key(d.Name, parts...), nil
}

// ErrorMessage picks the text surfaced for a failed run.
func (d Descriptor) ErrorMessage(err error) string {
	if err != nil {
		if msg := err.Error(); msg != "" {
			return msg
		}
	}
	return d.DefaultError
}

// ParamError is a client input error; it maps to HTTP 400.
type ParamError struct {
	Param   string
	Message string
	Err     error
}

func (e *ParamError) Error() string { return e.Message }
func (e *ParamError) Unwrap() error { return e.Err }

// IsParamError reports whether err is (or wraps) a ParamError.
func IsParamError(err error) bool {
	var pe *ParamError
	return errors.As(err, &pe)
}

// UpstreamError carries the message surfaced when an upstream call fails.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
