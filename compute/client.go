package compute

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/r3labs/sse/v2"
	"gopkg.in/cenkalti/backoff.v1"

	"github.com/gogpu/algoviz/internal/logging"
)

// HeaderRequestID carries the request ID on every call.
const HeaderRequestID = "X-Request-ID"

// DefaultBaseURL is the address of a locally started service.
const DefaultBaseURL = "http://localhost:8000"

// IDFunc returns a fresh request ID.
type IDFunc func() (string, error)

// Client talks to the algorithm-execution service.
type Client struct {
	baseURL string
	http    *http.Client
	newID   IDFunc
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every call except the log stream. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithIDFunc sets the request ID generator.
func WithIDFunc(fn IDFunc) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
		newID:   counterIDs(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string { return c.baseURL }

// Response is a successful reply.
type Response struct {
	RequestID string
	Status    int
	Body      []byte
}

// RunRequest is the body of POST /api/run.
type RunRequest struct {
	Algorithm string          `json:"algorithm"`
	Data      json.RawMessage `json:"data"`
}

// BenchmarkRequest is the body of POST /api/benchmark.
type BenchmarkRequest struct {
	Algorithms []string        `json:"algorithms"`
	Data       json.RawMessage `json:"data"`
}

// Algorithms returns the algorithm names the service advertises.
func (c *Client) Algorithms(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/algorithms", nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		Algorithms []string `json:"algorithms"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("compute: decode algorithms: %w", err)
	}
	return body.Algorithms, nil
}

// Run executes one algorithm over data and returns the raw result.
func (c *Client) Run(ctx context.Context, algorithm string, data json.RawMessage) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/api/run", RunRequest{Algorithm: algorithm, Data: data})
}

// Benchmark executes every algorithm over data and returns the raw
// {"results": {...}} document.
func (c *Client) Benchmark(ctx context.Context, algorithms []string, data json.RawMessage) (*Response, error) {
	if algorithms == nil {
		algorithms = []string{}
	}
	return c.do(ctx, http.MethodPost, "/api/benchmark", BenchmarkRequest{Algorithms: algorithms, Data: data})
}

// Search queries the service's document index and returns its "results"
// array. k <= 0 leaves the service default.
func (c *Client) Search(ctx context.Context, q string, k int) (json.RawMessage, error) {
	v := url.Values{"q": {q}}
	if k > 0 {
		v.Set("k", strconv.Itoa(k))
	}
	resp, err := c.do(ctx, http.MethodGet, "/api/search?"+v.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return resultsField(resp.Body)
}

// History lists past runs recorded by the service.
func (c *Client) History(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/results", nil)
	if err != nil {
		return nil, err
	}
	return resultsField(resp.Body)
}

// HistoryEntry returns one recorded run with its dataset and result.
func (c *Client) HistoryEntry(ctx context.Context, id int64) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/results/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// StreamLogs subscribes to the service log stream and passes the data of
// every event to fn until ctx is done. It reconnects with exponential
// backoff and returns nil once ctx ends.
func (c *Client) StreamLogs(ctx context.Context, fn func(data []byte)) error {
	id, err := c.newID()
	if err != nil {
		return fmt.Errorf("compute: request id: %w", err)
	}
	hc := *c.http
	hc.Timeout = 0

	sc := sse.NewClient(c.baseURL + "/api/logs")
	sc.Connection = &hc
	sc.Headers[HeaderRequestID] = id
	sc.ReconnectStrategy = backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	sc.ReconnectNotify = func(err error, next time.Duration) {
		logging.Logger().Warn("compute: log stream reconnect", "err", err, "in", next)
	}

	logging.Logger().Debug("compute: log stream", "request_id", id, "url", sc.URL)
	err = sc.SubscribeRawWithContext(ctx, func(ev *sse.Event) {
		fn(ev.Data)
	})
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("compute: log stream: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in any) (*Response, error) {
	var body io.Reader
	if in != nil {
		data, err := encode(in)
		if err != nil {
			return nil, fmt.Errorf("compute: encode %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	id, err := c.newID()
	if err != nil {
		return nil, fmt.Errorf("compute: request id: %w", err)
	}
	req.Header.Set(HeaderRequestID, id)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("compute: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("compute: read %s: %w", path, err)
	}
	logging.Logger().Debug("compute: request",
		"method", method,
		"path", path,
		"request_id", id,
		"status", resp.StatusCode,
		"bytes", len(data),
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newServiceError(method, path, resp.StatusCode, data)
	}
	return &Response{RequestID: id, Status: resp.StatusCode, Body: data}, nil
}

// encode marshals in without HTML escaping so datasets travel unchanged.
func encode(in any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(in); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func resultsField(body []byte) (json.RawMessage, error) {
	var v struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("compute: decode results: %w", err)
	}
	return v.Results, nil
}

func counterIDs() IDFunc {
	var n atomic.Uint64
	return func() (string, error) {
		return strconv.FormatUint(n.Add(1), 10), nil
	}
}
