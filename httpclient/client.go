// Package httpclient builds the HTTP clients used by the File API client,
// optionally routed through an authenticated forward proxy.
package httpclient

import (
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// ProxyConfig holds optional forward proxy settings.
type ProxyConfig struct {
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123|ip"`
	Port     int    `yaml:"port" validate:"gte=0,lte=65535"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Active reports whether requests should go through the proxy.
// A nil config, an empty host or a zero port means direct connections.
func (p *ProxyConfig) Active() bool {
	return p != nil && p.Host != "" && p.Port != 0
}

// HasCredentials reports whether basic credentials are attached to the proxy hop.
func (p *ProxyConfig) HasCredentials() bool {
	return p.Active() && p.Username != ""
}

// Address returns host:port of the proxy.
func (p *ProxyConfig) Address() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// ProxyURL returns the proxy URL for an active config and nil otherwise.
// Credentials are carried in the URL user info, so net/http sends them only
// to this host:port as Proxy-Authorization.
func ProxyURL(p *ProxyConfig) *url.URL {
	if !p.Active() {
		return nil
	}
	u := &url.URL{Scheme: "http", Host: p.Address()}
	if p.Username != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u
}

// ClientConfig holds configuration options for creating HTTP clients
type ClientConfig struct {
	// Timeout specifies a time limit for requests made by the client
	Timeout time.Duration

	// DialTimeout is the maximum amount of time a dial will wait for a connect to complete
	DialTimeout time.Duration

	// TLSHandshakeTimeout specifies the maximum amount of time to wait for a TLS handshake
	TLSHandshakeTimeout time.Duration

	// ResponseHeaderTimeout specifies the amount of time to wait for a server's response headers
	ResponseHeaderTimeout time.Duration

	// Proxy routes every request through a forward proxy when active
	Proxy *ProxyConfig
}

// getEnvDuration reads a duration from an environment variable, returning the default if not set or invalid.
// Accepts either plain integers (interpreted as seconds) or Go duration strings (e.g., "10m", "1h30m").
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	return defaultVal
}

// DefaultConfig returns a ClientConfig with defaults suited to the File API.
// HTTP_TIMEOUT overrides the overall request timeout (seconds or Go duration).
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Timeout:               getEnvDuration("HTTP_TIMEOUT", 60*time.Second),
		DialTimeout:           30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: getEnvDuration("HTTP_RESPONSE_HEADER_TIMEOUT", 60*time.Second),
	}
}

// NewHTTPClient creates a new HTTP client with the provided configuration.
// If config is nil, DefaultConfig() is used. Without an active proxy the
// client connects directly and ignores proxy environment variables.
func NewHTTPClient(config *ClientConfig) *http.Client {
	if config == nil {
		cfg := DefaultConfig()
		config = &cfg
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: config.DialTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ResponseHeaderTimeout: config.ResponseHeaderTimeout,
		ForceAttemptHTTP2:     true,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if proxyURL := ProxyURL(config.Proxy); proxyURL != nil {
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}
}

// NewProxiedHTTPClient creates a client with default timeouts routed through proxy.
// A nil or incomplete proxy yields a direct client.
func NewProxiedHTTPClient(proxy *ProxyConfig) *http.Client {
	cfg := DefaultConfig()
	cfg.Proxy = proxy
	return NewHTTPClient(&cfg)
}
