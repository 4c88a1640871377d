package retrieve

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartling/config"
	"smartling/core"
	"smartling/fileapi"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs([]string{"true", "key", "proj", "/src/messages.properties", "fr-FR", "bin/"})
	require.NoError(t, err)
	assert.Equal(t, Args{
		Sandbox:   true,
		APIKey:    "key",
		ProjectID: "proj",
		FilePath:  "/src/messages.properties",
		Locale:    "fr-FR",
		OutputDir: "bin/",
	}, args)

	args, err = ParseArgs([]string{"production", "key", "proj", "a.yml", "de-DE", "out"})
	require.NoError(t, err)
	assert.False(t, args.Sandbox)
}

func TestParseArgs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: []string{}},
		{name: "too few", args: []string{"true", "key", "proj"}},
		{name: "too many", args: []string{"true", "key", "proj", "f", "l", "o", "extra"}},
		{name: "unknown mode", args: []string{"maybe", "key", "proj", "f", "l", "o"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			assert.ErrorIs(t, err, ErrUsage)
		})
	}
}

func TestRun_WritesFile(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte("hello=Bonjour\n"))
	}))
	defer server.Close()

	cfg := config.Defaults()
	cfg.API.BaseURL = server.URL + "/v1"
	outDir := t.TempDir()

	path, err := Run(context.Background(),
		[]string{"true", "key", "proj", "/src/messages.properties", "fr-FR", outDir},
		Options{Config: cfg, Logger: quietLogger(), HTTPClient: server.Client()},
	)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "fr-FR", "messages.properties"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello=Bonjour\n", string(data))

	assert.Equal(t, []string{"messages.properties"}, gotQuery["fileUri"])
	assert.Equal(t, []string{"fr-FR"}, gotQuery["locale"])
	assert.Equal(t, []string{"published"}, gotQuery["retrievalType"])
	assert.Equal(t, []string{"key"}, gotQuery["apiKey"])
	assert.Equal(t, []string{"proj"}, gotQuery["projectId"])
}

type recordingTransport struct {
	urls []*url.URL
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.urls = append(rt.urls, req.URL)
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/plain"}},
		Body:       io.NopCloser(strings.NewReader("key=value\n")),
		Request:    req,
	}, nil
}

func TestRun_ModeSelectsBaseURL(t *testing.T) {
	sandbox, err := url.Parse(fileapi.SandboxBaseURL)
	require.NoError(t, err)
	production, err := url.Parse(fileapi.ProductionBaseURL)
	require.NoError(t, err)

	tests := []struct {
		mode string
		want *url.URL
	}{
		{mode: "true", want: sandbox},
		{mode: "sandbox", want: sandbox},
		{mode: "test", want: sandbox},
		{mode: "false", want: production},
		{mode: "production", want: production},
		{mode: "prod", want: production},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			rt := &recordingTransport{}
			cfg := config.Defaults()

			_, err := Run(context.Background(),
				[]string{tt.mode, "key", "proj", "messages.properties", "fr-FR", t.TempDir()},
				Options{Config: cfg, Logger: quietLogger(), HTTPClient: &http.Client{Transport: rt}},
			)
			require.NoError(t, err)

			require.Len(t, rt.urls, 1)
			assert.Equal(t, tt.want.Scheme, rt.urls[0].Scheme)
			assert.Equal(t, tt.want.Host, rt.urls[0].Host)
			assert.Equal(t, tt.want.Path+"/file/get", rt.urls[0].Path)
		})
	}
}

func TestRun_APIErrorWritesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"response":{"code":"VALIDATION_ERROR","data":null,"messages":["locale is invalid"]}}`))
	}))
	defer server.Close()

	cfg := config.Defaults()
	cfg.API.BaseURL = server.URL
	outDir := t.TempDir()

	_, err := Run(context.Background(),
		[]string{"false", "key", "proj", "messages.properties", "xx-XX", outDir},
		Options{Config: cfg, Logger: quietLogger(), HTTPClient: server.Client()},
	)
	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_WrongArgumentCount(t *testing.T) {
	_, err := Run(context.Background(), nil, Options{Logger: quietLogger()})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestRun_BlankIdentity(t *testing.T) {
	_, err := Run(context.Background(),
		[]string{"true", "", "proj", "messages.properties", "fr-FR", t.TempDir()},
		Options{Logger: quietLogger()},
	)
	assert.ErrorIs(t, err, core.ErrNilArgument)
}
