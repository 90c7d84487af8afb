// Package apiclient talks to the storefront REST backend on behalf of a
// signed-in staff member.
//
// Every call forwards the caller's Cookie header untouched; the backend is
// the only party that interprets the session. Failed calls are never retried
// unless Options.RetryMax says otherwise, and nothing is cached.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/coreybb/bookpot-admin/metrics"
)

const (
	contentTypeJSON        = "application/json"
	contentTypeOctetStream = "application/octet-stream"

	headerAccept      = "Accept"
	headerContentType = "Content-Type"
	headerCookie      = "Cookie"
	headerRequestID   = "X-Request-Id"
)

// Credentials identify the staff session a call is made for.
type Credentials struct {
	// Cookie is the raw Cookie header of the inbound browser request.
	Cookie string
}

type Options struct {
	// Timeout bounds a single HTTP exchange. Zero means no client-side limit.
	Timeout time.Duration
	// RetryMax is the number of retries after a failed attempt. Zero disables retries.
	RetryMax int
	// HTTPClient replaces the pooled default transport client, mainly for tests.
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

type Client struct {
	baseURL string
	http    *retryablehttp.Client
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New creates a Client for the backend rooted at baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend URL %q must be absolute", baseURL)
	}
	if opts.RetryMax < 0 {
		return nil, errors.New("retry max cannot be negative")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.Logger = logger
	// Hand the final response back instead of a generic "giving up" error so
	// the status and body reach RequestError.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if opts.HTTPClient != nil {
		rc.HTTPClient = opts.HTTPClient
	} else if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    rc,
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// Call describes one backend request.
type Call struct {
	// Endpoint is a stable name for metrics and logs, e.g. "create_ebook".
	Endpoint    string
	Method      string
	Path        string
	Payload     Payload
	Credentials Credentials
	Header      http.Header
	// Out receives the decoded JSON body of a 2xx response. May be nil.
	Out any
}

// Response holds what callers may need beyond the decoded body.
type Response struct {
	Status  int
	Header  http.Header
	Cookies []*http.Cookie
}

// Do performs the call. Any non-2xx status or transport failure is returned
// as a *RequestError.
func (c *Client) Do(ctx context.Context, call Call) (*Response, error) {
	var (
		raw         interface{}
		contentType string
	)
	if call.Payload != nil {
		body, ct, err := call.Payload.Encode()
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", call.Endpoint, err)
		}
		raw, contentType = body, ct
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, call.Method, c.baseURL+call.Path, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", call.Endpoint, err)
	}
	for key, values := range call.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set(headerAccept, contentTypeJSON)
	if contentType != "" {
		req.Header.Set(headerContentType, contentType)
	}
	if call.Credentials.Cookie != "" {
		req.Header.Set(headerCookie, call.Credentials.Cookie)
	}
	req.Header.Set(headerRequestID, requestID(ctx))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(call.Endpoint, 0, time.Since(start))
		return nil, &RequestError{Method: call.Method, Path: call.Path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.metrics.ObserveRequest(call.Endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &RequestError{Method: call.Method, Path: call.Path, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Method: call.Method, Path: call.Path, Status: resp.StatusCode, Body: data}
	}

	if call.Out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, call.Out); err != nil {
			return nil, fmt.Errorf("failed to decode %s response: %w", call.Endpoint, err)
		}
	}

	c.logger.DebugContext(ctx, "Backend call succeeded",
		"endpoint", call.Endpoint,
		"method", call.Method,
		"path", call.Path,
		"status", resp.StatusCode,
	)

	return &Response{Status: resp.StatusCode, Header: resp.Header, Cookies: resp.Cookies()}, nil
}

// requestID reuses the inbound chi request id so backend logs can be
// correlated with ours.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
