// Package client calls the analysis API and normalizes every outcome into an
// envelope, so callers branch on Success and never on transport details.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
	consts "github.com/khanhnv2901/siteprobe/internal/shared/constants"
)

const defaultFailure = "Request failed"

// Raw is an envelope whose data has not been decoded yet.
type Raw = analysis.Envelope[json.RawMessage]

type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New returns a client for the API rooted at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: consts.DefaultClientTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string) Raw {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) Raw {
	payload, err := json.Marshal(body)
	if err != nil {
		return analysis.Fail[json.RawMessage](err.Error())
	}
	return c.request(ctx, http.MethodPost, path, bytes.NewReader(payload))
}

// wireBody is the loosely-typed view of any JSON the API may answer with.
type wireBody struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Meta    *struct {
		Cached bool `json:"cached"`
	} `json:"meta"`
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader) Raw {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return analysis.Fail[json.RawMessage](err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return analysis.Fail[json.RawMessage](err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, consts.MaxBodyBytes))
	if err != nil {
		return analysis.Fail[json.RawMessage](err.Error())
	}

	var parsed wireBody
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return analysis.Fail[json.RawMessage](fmt.Sprintf("invalid response from %s: %v", path, err))
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok {
		return analysis.FailWithCode[json.RawMessage](errorMessage(parsed.Error), strconv.Itoa(resp.StatusCode))
	}
	if parsed.Success != nil && !*parsed.Success {
		return analysis.Fail[json.RawMessage](errorMessage(parsed.Error))
	}

	data := parsed.Data
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage(raw)
	}
	cached := resp.Header.Get("X-Cache") == "HIT" || (parsed.Meta != nil && parsed.Meta.Cached)

	return analysis.Envelope[json.RawMessage]{
		Success: true,
		Data:    &data,
		Meta: &analysis.Meta{
			Timestamp: consts.FormatTimestamp(c.now()),
			Cached:    cached,
		},
	}
}

// errorMessage accepts both {"message": "..."} and a bare string.
func errorMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return defaultFailure
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	return defaultFailure
}

// Decode converts a raw envelope into a typed one. Data that does not fit T
// turns the envelope into a failure.
func Decode[T any](raw Raw) analysis.Envelope[T] {
	out := analysis.Envelope[T]{Success: raw.Success, Error: raw.Error, Meta: raw.Meta}
	if !raw.Success || raw.Data == nil {
		return out
	}
	var data T
	if err := json.Unmarshal(*raw.Data, &data); err != nil {
		return analysis.Fail[T](fmt.Sprintf("decode response: %v", err))
	}
	out.Data = &data
	return out
}

// RequestError is a failed envelope turned into an error.
type RequestError struct {
	Message string
	Code    string
}

func (e *RequestError) Error() string {
	if e.Code != "" {
		return e.Message + " (HTTP " + e.Code + ")"
	}
	return e.Message
}

// Result unwraps a typed envelope. A failure without a message reports fallback.
func Result[T any](env analysis.Envelope[T], fallback string) (*T, error) {
	if env.Success && env.Data != nil {
		return env.Data, nil
	}
	msg := env.Message()
	if msg == "" {
		msg = fallback
	}
	code := ""
	if env.Error != nil {
		code = env.Error.Code
	}
	return nil, &RequestError{Message: msg, Code: code}
}
