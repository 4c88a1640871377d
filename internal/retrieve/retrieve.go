// Package retrieve implements the file retrieval command: it downloads the
// published translation of one file and writes it under an output directory.
package retrieve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"smartling/config"
	"smartling/core"
	"smartling/fileapi"
)

// Usage describes the positional arguments.
const Usage = "retrievefile <sandbox:true|false> <apiKey> <projectId> <filePath> <locale> <outputDir>"

const argCount = 6

// ErrUsage is returned when the argument list does not match Usage.
var ErrUsage = errors.New("usage: " + Usage)

// Args are the parsed positional arguments.
type Args struct {
	Sandbox   bool
	APIKey    string
	ProjectID string
	FilePath  string
	Locale    string
	OutputDir string
}

// ParseArgs validates the argument count and the mode value.
func ParseArgs(args []string) (Args, error) {
	if len(args) != argCount {
		return Args{}, fmt.Errorf("%w: expected %d arguments, got %d", ErrUsage, argCount, len(args))
	}
	sandbox, err := parseMode(args[0])
	if err != nil {
		return Args{}, err
	}
	return Args{
		Sandbox:   sandbox,
		APIKey:    args[1],
		ProjectID: args[2],
		FilePath:  args[3],
		Locale:    args[4],
		OutputDir: args[5],
	}, nil
}

func parseMode(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "sandbox", "test":
		return true, nil
	case "false", "production", "prod":
		return false, nil
	}
	return false, fmt.Errorf("%w: unknown mode %q", ErrUsage, s)
}

// Options carries the environment the command runs in.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	// HTTPClient replaces the proxy-aware client built from Config.
	HTTPClient *http.Client
}

// Run parses args, downloads the file and returns the path it was written to.
func Run(ctx context.Context, rawArgs []string, opts Options) (string, error) {
	args, err := ParseArgs(rawArgs)
	if err != nil {
		return "", err
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := cfg.API.BaseURL
	if baseURL == "" {
		baseURL = fileapi.ProductionBaseURL
		if args.Sandbox {
			baseURL = fileapi.SandboxBaseURL
		}
	}

	clientOpts := []fileapi.Option{
		fileapi.WithLogger(logger),
		fileapi.WithProxy(&cfg.Proxy),
		fileapi.WithTimeout(cfg.HTTP.Timeout),
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, fileapi.WithHTTPClient(opts.HTTPClient))
	}

	client, err := fileapi.New(baseURL, args.APIKey, args.ProjectID, clientOpts...)
	if err != nil {
		return "", err
	}
	defer client.Close()

	fileURI := filepath.Base(args.FilePath)
	logger.Info("retrieving file",
		"file_uri", fileURI,
		"locale", args.Locale,
		"sandbox", args.Sandbox,
		"proxy", cfg.Proxy.Active(),
	)

	data, err := client.GetFile(ctx, fileURI, args.Locale, core.RetrievalPublished)
	if err != nil {
		return "", fmt.Errorf("retrieve %s (%s): %w", fileURI, args.Locale, err)
	}

	dir := filepath.Join(args.OutputDir, args.Locale)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	out := filepath.Join(dir, fileURI)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", out, err)
	}

	logger.Info("file retrieved", "path", out, "bytes", len(data))
	return out, nil
}
