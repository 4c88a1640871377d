// Package apiclient executes single File API requests: it encodes query
// parameters and multipart bodies, tags the call with a request ID, reports it
// to hooks and returns the raw response. It never retries.
package apiclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"smartling/core"
)

const requestIDHeader = "X-Request-ID"

// Config holds configuration for the API client
type Config struct {
	// BaseURL is the API base URL, e.g. https://api.smartling.com/v1
	BaseURL string

	// UserAgent is sent with every request when set
	UserAgent string

	Hooks  core.Hooks
	Logger *slog.Logger
}

// Client is the base HTTP client for File API calls
type Client struct {
	rc     *resty.Client
	config Config
	logger *slog.Logger
}

// New creates a client that sends requests through a copy of httpClient; the
// caller's value is not modified. If httpClient is nil, a plain http.Client
// is used.
func New(httpClient *http.Client, config Config) *Client {
	hc := &http.Client{}
	if httpClient != nil {
		cp := *httpClient
		hc = &cp
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	rc := resty.NewWithClient(hc).
		SetLogger(restyLogger{logger: logger}).
		SetRetryCount(0)
	if config.UserAgent != "" {
		rc.SetHeader("User-Agent", config.UserAgent)
	}

	return &Client{rc: rc, config: config, logger: logger}
}

// BaseURL returns the current base URL
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// FilePart is a multipart file attached to a request.
type FilePart struct {
	Param       string
	FileName    string
	ContentType string
	Reader      io.Reader
}

// Request represents an HTTP request to be made
type Request struct {
	// Operation names the call for logs and hooks
	Operation string
	Method    string
	Endpoint  string
	Query     url.Values
	File      *FilePart
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	RequestID  string
}

// Success reports a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Do executes one request and returns the fully read response. The body is
// always closed before Do returns. Transport failures are returned wrapped with
// the method and endpoint; non-2xx statuses are not errors here.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	requestID := core.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	info := core.RequestInfo{
		Operation: req.Operation,
		Method:    req.Method,
		Endpoint:  req.Endpoint,
		RequestID: requestID,
	}
	if c.config.Hooks != nil {
		ctx = c.config.Hooks.OnRequestStart(ctx, info)
	}

	start := time.Now()
	resp, err := c.execute(ctx, req, requestID)
	duration := time.Since(start)

	end := core.ResponseInfo{RequestInfo: info, Duration: duration, Err: err}
	if resp != nil {
		end.StatusCode = resp.StatusCode
		end.Code, _ = core.SniffCode(resp.Body)
	}
	if c.config.Hooks != nil {
		c.config.Hooks.OnRequestEnd(ctx, end)
	}

	if err != nil {
		c.logger.Debug("file api request failed",
			"operation", req.Operation,
			"request_id", requestID,
			"duration", duration,
			"error", err,
		)
		return nil, err
	}

	c.logger.Debug("file api request",
		"operation", req.Operation,
		"request_id", requestID,
		"status", resp.StatusCode,
		"code", end.Code,
		"duration", duration,
	)
	return resp, nil
}

func (c *Client) execute(ctx context.Context, req Request, requestID string) (*Response, error) {
	r := c.rc.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID).
		SetHeader("Accept", "application/json")

	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.File != nil {
		r.SetMultipartField(req.File.Param, req.File.FileName, req.File.ContentType, req.File.Reader)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	resp, err := r.Execute(method, c.config.BaseURL+req.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.Endpoint, err)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
		RequestID:  requestID,
	}, nil
}

// restyLogger routes resty's internal warnings into slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}
