// Package config loads settings for the File API command-line tools.
//
// Sources, lowest to highest precedence: built-in defaults, an optional YAML
// file (with ${VAR} and ${VAR:-default} expansion), a .env file in the working
// directory, and SMARTLING_* / LOG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"smartling/httpclient"
)

// DefaultPath is read when Load is given an empty path and the file exists.
const DefaultPath = "config.yaml"

// Config holds the application configuration
type Config struct {
	API     APIConfig              `yaml:"api"`
	Proxy   httpclient.ProxyConfig `yaml:"proxy"`
	HTTP    HTTPConfig             `yaml:"http"`
	Logging LogConfig              `yaml:"logging"`
}

// APIConfig selects the API endpoint. The API key and project ID are always
// given on the command line.
type APIConfig struct {
	// BaseURL overrides the production/sandbox URL chosen by the caller
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
}

// HTTPConfig holds client timeouts.
type HTTPConfig struct {
	// Timeout of zero keeps the HTTP client default (HTTP_TIMEOUT, else 60s)
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// LogConfig selects log level and output format.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=auto pretty json"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		Logging: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load reads configuration from path, .env and the environment.
// An empty path reads DefaultPath if present; a non-empty path must exist.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeYAML expands ${VAR} references and rejects keys Config does not define.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(strings.NewReader(expandString(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", e.Namespace(), e.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL", e.Namespace()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed on the '%s' rule", e.Namespace(), e.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// expandString replaces ${VAR} and ${VAR:-default}. A variable that is unset
// or empty and has no default is left as written.
func expandString(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envPattern.FindStringSubmatch(match)
		if v := os.Getenv(parts[1]); v != "" {
			return v
		}
		if parts[2] != "" {
			return parts[3]
		}
		return match
	})
}

func applyEnvOverrides(cfg *Config) error {
	setString(&cfg.API.BaseURL, "SMARTLING_BASE_URL")
	setString(&cfg.Proxy.Host, "SMARTLING_PROXY_HOST")
	setString(&cfg.Proxy.Username, "SMARTLING_PROXY_USERNAME")
	setString(&cfg.Proxy.Password, "SMARTLING_PROXY_PASSWORD")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")

	if v := os.Getenv("SMARTLING_PROXY_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SMARTLING_PROXY_PORT: %w", err)
		}
		cfg.Proxy.Port = port
	}
	if v := os.Getenv("SMARTLING_HTTP_TIMEOUT"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("SMARTLING_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTP.Timeout = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// parseDuration accepts plain seconds or a Go duration string.
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
