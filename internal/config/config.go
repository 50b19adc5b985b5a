package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/declarative/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "declarative.json"

	// DefaultPort is the default playground port.
	DefaultPort = 3000

	// DefaultHost is the default playground host.
	DefaultHost = "localhost"

	// DefaultNamespace prefixes every metric name.
	DefaultNamespace = "declarative"

	// DefaultMetricsPath is where the playground serves Prometheus metrics.
	DefaultMetricsPath = "/metrics"

	// DefaultTracerName names the OpenTelemetry tracer.
	DefaultTracerName = "github.com/vango-dev/declarative"

	// DefaultSnapshotPrefix is prepended to every snapshot key.
	DefaultSnapshotPrefix = "snapshots/"

	// DefaultLogLevel is used when logLevel is empty.
	DefaultLogLevel = "info"
)

// Config represents the complete declarative.json configuration.
type Config struct {
	// Server configures the playground server.
	Server ServerConfig `json:"server,omitempty"`

	// Render controls HTML output.
	Render RenderConfig `json:"render,omitempty"`

	// Metrics configures the Prometheus collector.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing configures OpenTelemetry spans.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Snapshot configures publishing rendered pages to S3.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains playground server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// RenderConfig controls the HTML renderer.
type RenderConfig struct {
	// Pretty enables indented output.
	Pretty bool `json:"pretty,omitempty"`

	// Indent is the indentation unit used when Pretty is set.
	Indent string `json:"indent,omitempty"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled installs the collector and mounts the metrics endpoint.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace prefixes metric names.
	Namespace string `json:"namespace,omitempty"`

	// Path is the HTTP path of the metrics endpoint.
	Path string `json:"path,omitempty"`
}

// TracingConfig configures OpenTelemetry.
type TracingConfig struct {
	// TracerName names the tracer obtained from the global provider.
	TracerName string `json:"tracerName,omitempty"`
}

// SnapshotConfig configures the S3 snapshot target.
type SnapshotConfig struct {
	// Bucket is the destination bucket.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to object keys (default "snapshots/").
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region of the bucket.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, e.g. for MinIO or LocalStack.
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle forces path-style addressing, needed by most S3 emulators.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory.
// It looks for declarative.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.Code(err) == "E124" {
		cfg = New()
		cfg.configPath = filepath.Join(dir, ConfigFileName)
		return cfg, nil
	}
	return cfg, err
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E124").
				WithDetail("No declarative.json found in " + filepath.Dir(path)).
				WithSuggestion("Create declarative.json or pass --config")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse declarative.json: " + err.Error()).
			WithSuggestion("Check that declarative.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Render.Indent == "" {
		c.Render.Indent = "  "
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
	if c.Snapshot.Prefix == "" {
		c.Snapshot.Prefix = DefaultSnapshotPrefix
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E121").
			WithDetail("server.port is " + strconv.Itoa(c.Server.Port) + "; it must be between 1 and 65535")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E120").
			WithDetail("metrics.path must start with '/', got " + strconv.Quote(c.Metrics.Path))
	}
	return nil
}

// ValidateSnapshot reports whether the snapshot target is usable.
func (c *Config) ValidateSnapshot() error {
	if c.Snapshot.Bucket == "" || c.Snapshot.Region == "" {
		return errors.New("E123").
			WithSuggestion("Set snapshot.bucket and snapshot.region in declarative.json")
	}
	return nil
}

// Address returns the host:port the playground listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the playground's base URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// Level returns the configured slog level, falling back to info.
func (c *Config) Level() slog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.New("E122").
		WithDetail("logLevel " + strconv.Quote(name) + " is not one of debug, info, warn, error")
}

// Exists checks if a declarative.json exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
