// Package fileapi is a client for the translation-management File API.
//
// Every call issues exactly one HTTP request, carries the API key and project
// ID as query parameters and decodes the {"response":{code,data,messages}}
// envelope. A SUCCESS envelope is returned to the caller; VALIDATION_ERROR
// becomes a *core.ValidationError and any other code a *core.APIError. Network
// failures and bodies that are not an envelope are returned as-is.
package fileapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"smartling/core"
	"smartling/httpclient"
	"smartling/internal/apiclient"
)

const (
	// ProductionBaseURL is the production API root.
	ProductionBaseURL = "https://api.smartling.com/v1"
	// SandboxBaseURL is the sandbox API root.
	SandboxBaseURL = "https://sandbox-api.smartling.com/v1"

	defaultUserAgent = "smartling-go-sdk"
)

// Endpoints relative to the base URL.
const (
	endpointGet          = "/file/get"
	endpointList         = "/file/list"
	endpointStatus       = "/file/status"
	endpointRename       = "/file/rename"
	endpointDelete       = "/file/delete"
	endpointLastModified = "/file/last_modified"
	endpointUpload       = "/file/upload"
)

// Client talks to the File API on behalf of one project.
// It is safe for concurrent use.
type Client struct {
	api       *apiclient.Client
	http      *http.Client
	ownsHTTP  bool
	apiKey    string
	projectID string
}

type options struct {
	proxy      *httpclient.ProxyConfig
	httpClient *http.Client
	timeout    time.Duration
	hooks      core.Hooks
	logger     *slog.Logger
	userAgent  string
}

// Option configures a Client.
type Option func(*options)

// WithProxy routes requests through proxy when it is active.
// Ignored when WithHTTPClient is also given.
func WithProxy(proxy *httpclient.ProxyConfig) Option {
	return func(o *options) { o.proxy = proxy }
}

// WithHTTPClient sends requests through a copy of a caller-owned client.
// The caller's value is not modified.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTimeout overrides the overall request timeout of the built-in client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHooks reports every call to hooks.
func WithHooks(h core.Hooks) Option {
	return func(o *options) { o.hooks = h }
}

// WithLogger sets the logger used for per-call debug logs.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// New creates a client. baseURL, apiKey and projectID are required; a blank
// value yields a *core.NilArgumentError before any network activity.
func New(baseURL, apiKey, projectID string, opts ...Option) (*Client, error) {
	if err := core.RequireArgs("baseURL", baseURL, "apiKey", apiKey, "projectId", projectID); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	o := options{userAgent: defaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{apiKey: apiKey, projectID: projectID}
	if o.httpClient != nil {
		c.http = o.httpClient
	} else {
		cfg := httpclient.DefaultConfig()
		cfg.Proxy = o.proxy
		if o.timeout > 0 {
			cfg.Timeout = o.timeout
		}
		c.http = httpclient.NewHTTPClient(&cfg)
		c.ownsHTTP = true
	}

	c.api = apiclient.New(c.http, apiclient.Config{
		BaseURL:   baseURL,
		UserAgent: o.userAgent,
		Hooks:     o.hooks,
		Logger:    o.logger,
	})
	return c, nil
}

// Close releases idle connections held by a client built by New.
// A caller-provided http.Client is left untouched.
func (c *Client) Close() {
	if c.ownsHTTP {
		c.http.CloseIdleConnections()
	}
}

// GetFile returns the file contents for locale. An empty locale returns the
// original file; an empty retrievalType lets the server choose.
func (c *Client) GetFile(ctx context.Context, fileURI, locale string, retrievalType core.RetrievalType) ([]byte, error) {
	if err := core.RequireArgs("fileUri", fileURI); err != nil {
		return nil, err
	}
	if retrievalType != "" && !retrievalType.Valid() {
		return nil, fmt.Errorf("%w: retrievalType %q", core.ErrInvalidArgument, retrievalType)
	}

	q := c.identity()
	q.Set(ParamFileURI, fileURI)
	setIfNotEmpty(q, ParamLocale, locale)
	setIfNotEmpty(q, ParamRetrievalType, string(retrievalType))

	resp, err := c.api.Do(ctx, apiclient.Request{
		Operation: "get_file",
		Method:    http.MethodGet,
		Endpoint:  endpointGet,
		Query:     q,
	})
	if err != nil {
		return nil, err
	}
	if resp.Success() {
		return resp.Body, nil
	}
	_, err = core.Unwrap[core.EmptyResponse](resp.Body, resp.StatusCode)
	if err == nil {
		err = &core.APIError{Code: core.CodeGeneralError, StatusCode: resp.StatusCode,
			Messages: []string{fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode)}}
	}
	return nil, err
}

// GetFilesList lists the project's files. params may be nil.
func (c *Client) GetFilesList(ctx context.Context, params *FileListSearchParams) (*core.Envelope[core.FileList], error) {
	q := c.identity()
	params.apply(q)

	return call[core.FileList](ctx, c, apiclient.Request{
		Operation: "list_files",
		Method:    http.MethodGet,
		Endpoint:  endpointList,
		Query:     q,
	})
}

// GetFileStatus returns the status of one file for locale.
func (c *Client) GetFileStatus(ctx context.Context, fileURI, locale string) (*core.Envelope[core.FileStatus], error) {
	if err := core.RequireArgs("fileUri", fileURI); err != nil {
		return nil, err
	}

	q := c.identity()
	q.Set(ParamFileURI, fileURI)
	setIfNotEmpty(q, ParamLocale, locale)

	return call[core.FileStatus](ctx, c, apiclient.Request{
		Operation: "file_status",
		Method:    http.MethodGet,
		Endpoint:  endpointStatus,
		Query:     q,
	})
}

// RenameFile changes a file's URI.
func (c *Client) RenameFile(ctx context.Context, fileURI, newFileURI string) (*core.Envelope[core.EmptyResponse], error) {
	if err := core.RequireArgs("fileUri", fileURI, "newFileUri", newFileURI); err != nil {
		return nil, err
	}

	q := c.identity()
	q.Set(ParamFileURI, fileURI)
	q.Set(ParamNewFileURI, newFileURI)

	return call[core.EmptyResponse](ctx, c, apiclient.Request{
		Operation: "rename_file",
		Method:    http.MethodPost,
		Endpoint:  endpointRename,
		Query:     q,
	})
}

// DeleteFile removes a file and its translations.
func (c *Client) DeleteFile(ctx context.Context, fileURI string) (*core.Envelope[core.EmptyResponse], error) {
	if err := core.RequireArgs("fileUri", fileURI); err != nil {
		return nil, err
	}

	q := c.identity()
	q.Set(ParamFileURI, fileURI)

	return call[core.EmptyResponse](ctx, c, apiclient.Request{
		Operation: "delete_file",
		Method:    http.MethodPost,
		Endpoint:  endpointDelete,
		Query:     q,
	})
}

// GetLastModified returns per-locale modification dates of a file. A zero
// after and an empty locale are omitted.
func (c *Client) GetLastModified(ctx context.Context, fileURI string, after time.Time, locale string) (*core.Envelope[core.FileLastModified], error) {
	if err := core.RequireArgs("fileUri", fileURI); err != nil {
		return nil, err
	}

	q := c.identity()
	q.Set(ParamFileURI, fileURI)
	if !after.IsZero() {
		q.Set(ParamLastModifiedAfter, core.FormatDate(after))
	}
	setIfNotEmpty(q, ParamLocale, locale)

	return call[core.FileLastModified](ctx, c, apiclient.Request{
		Operation: "last_modified",
		Method:    http.MethodGet,
		Endpoint:  endpointLastModified,
		Query:     q,
	})
}

// UploadFile uploads the file at path. params.FileURI defaults to the base name
// of path. charset applies to text formats only.
func (c *Client) UploadFile(ctx context.Context, path, charset string, params FileUploadParams) (*core.Envelope[core.UploadFileData], error) {
	if err := core.RequireArgs("path", path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return c.UploadContent(ctx, filepath.Base(path), f, charset, params)
}

// UploadContent uploads content read from r under fileName.
func (c *Client) UploadContent(ctx context.Context, fileName string, r io.Reader, charset string, params FileUploadParams) (*core.Envelope[core.UploadFileData], error) {
	if err := core.RequireArgs("fileName", fileName, "fileType", string(params.FileType)); err != nil {
		return nil, err
	}
	if !params.FileType.Valid() {
		return nil, fmt.Errorf("%w: fileType %q", core.ErrInvalidArgument, params.FileType)
	}
	if r == nil {
		return nil, core.NewNilArgumentError("content")
	}
	if strings.TrimSpace(params.FileURI) == "" {
		params.FileURI = fileName
	}

	q := c.identity()
	params.apply(q)

	return call[core.UploadFileData](ctx, c, apiclient.Request{
		Operation: "upload_file",
		Method:    http.MethodPost,
		Endpoint:  endpointUpload,
		Query:     q,
		File: &apiclient.FilePart{
			Param:       ParamFile,
			FileName:    fileName,
			ContentType: params.FileType.ContentType(charset),
			Reader:      r,
		},
	})
}

func (c *Client) identity() url.Values {
	q := url.Values{}
	q.Set(ParamAPIKey, c.apiKey)
	q.Set(ParamProjectID, c.projectID)
	return q
}

// call executes req and decodes the envelope regardless of the HTTP status.
func call[T any](ctx context.Context, c *Client, req apiclient.Request) (*core.Envelope[T], error) {
	resp, err := c.api.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return core.Unwrap[T](resp.Body, resp.StatusCode)
}
