package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// APIError is the typed error for failed calls to the external voting API.
// Status 0 with StatusText "Network Error" means the request never produced
// an HTTP response (connection failure, timeout, undecodable body).
type APIError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.StatusText, e.Message)
}

// NetworkError wraps a transport-level failure as an APIError.
func NetworkError(cause error) *APIError {
	return &APIError{Status: 0, StatusText: "Network Error", Message: cause.Error()}
}

// Response is a raw reply from the external API, before any classification
// or decoding. Body is an owned copy and stays valid after the call.
type Response struct {
	Status      int
	StatusText  string
	ContentType string
	Body        []byte
}

// OK reports whether the upstream status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// IsJSON classifies the response by content type. The upstream service is
// known to return HTML error pages on internal failures; those must never be
// relayed to clients, so this check is an explicit step at the proxy
// boundary.
func (r *Response) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "application/json")
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// ObserveFunc records one outbound request for metrics.
type ObserveFunc func(method, path string, status int, duration time.Duration)

// Client is the HTTP client for the external voting API. Every request is
// issued fresh: results are dynamic and never cached locally.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
	observe ObserveFunc
}

// New creates a Client for the given base URL. timeout bounds each outbound
// request; there are no retries.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		timeout: timeout,
	}
}

// SetObserver installs a metrics hook for outbound requests.
func (c *Client) SetObserver(fn ObserveFunc) {
	c.observe = fn
}

// Get issues a GET to the given API path.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, fasthttp.MethodGet, path, nil)
}

// PostJSON marshals payload and POSTs it to the given API path.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NetworkError(err)
	}
	return c.do(ctx, fasthttp.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*Response, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if body != nil {
		req.SetBody(body)
	}

	// fasthttp has no context plumbing; honor an earlier ctx deadline by
	// shrinking the per-request timeout.
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	start := time.Now()
	err := c.http.DoTimeout(req, resp, timeout)
	duration := time.Since(start)

	if err != nil {
		if c.observe != nil {
			c.observe(method, path, 0, duration)
		}
		return nil, NetworkError(err)
	}

	status := resp.StatusCode()
	if c.observe != nil {
		c.observe(method, path, status, duration)
	}

	return &Response{
		Status:      status,
		StatusText:  http.StatusText(status),
		ContentType: string(resp.Header.ContentType()),
		Body:        append([]byte(nil), resp.Body()...),
	}, nil
}
