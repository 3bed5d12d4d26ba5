package config

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/pkg/drag"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "dragkit.json"

	// DefaultAddr is the default websocket server address.
	DefaultAddr = "localhost:8080"

	// DefaultMetricsAddr is the default Prometheus endpoint address.
	DefaultMetricsAddr = "localhost:9090"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultReadTimeout is the default websocket read deadline.
	DefaultReadTimeout = "60s"
)

// Environment variables that override file values.
const (
	EnvAddr        = "DRAGKIT_ADDR"
	EnvMetricsAddr = "DRAGKIT_METRICS_ADDR"
	EnvLogLevel    = "DRAGKIT_LOG_LEVEL"
)

// Config represents the complete dragkit.json configuration.
type Config struct {
	// Addr is the address the websocket server listens on.
	Addr string `json:"addr,omitempty"`

	// MetricsAddr is the address of the Prometheus endpoint. Empty disables it.
	MetricsAddr string `json:"metricsAddr,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// Autoscroll tunes the edge autoscroller.
	Autoscroll AutoscrollConfig `json:"autoscroll,omitempty"`

	// Clone tunes drag image clones.
	Clone CloneConfig `json:"clone,omitempty"`

	// Server contains websocket settings.
	Server ServerConfig `json:"server,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// AutoscrollConfig contains autoscroll settings.
type AutoscrollConfig struct {
	// Interval is the throttle window in milliseconds.
	Interval int `json:"interval,omitempty"`

	// TriggerRange is the distance from a viewport edge, in pixels, that
	// starts scrolling.
	TriggerRange float64 `json:"triggerRange,omitempty"`
}

// CloneConfig contains clone settings.
type CloneConfig struct {
	// MaxRotation is the upper bound of the random clone rotation in degrees.
	MaxRotation float64 `json:"maxRotation,omitempty"`
}

// ServerConfig contains websocket settings.
type ServerConfig struct {
	// ReadTimeout is the read deadline per message (e.g., "60s").
	ReadTimeout string `json:"readTimeout,omitempty"`

	// ReadBufferSize is the websocket read buffer size in bytes.
	ReadBufferSize int `json:"readBufferSize,omitempty"`

	// WriteBufferSize is the websocket write buffer size in bytes.
	WriteBufferSize int `json:"writeBufferSize,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Addr:        DefaultAddr,
		MetricsAddr: DefaultMetricsAddr,
		LogLevel:    DefaultLogLevel,
		Autoscroll: AutoscrollConfig{
			Interval:     int(drag.DefaultScrollInterval / time.Millisecond),
			TriggerRange: drag.DefaultTriggerRange,
		},
		Clone: CloneConfig{
			MaxRotation: drag.DefaultMaxRotation,
		},
		Server: ServerConfig{
			ReadTimeout:     DefaultReadTimeout,
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Load reads configuration from dragkit.json in the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Fields missing
// from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigRead).
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				Wrap(err)
		}
		return nil, errors.New(errors.CodeConfigRead).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		e := errors.New(errors.CodeConfigParse).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON").
			Wrap(err)
		var syntax *json.SyntaxError
		if stderrors.As(err, &syntax) {
			line, col := position(data, syntax.Offset)
			e.WithLocation(path, line, col)
		}
		return nil, e
	}

	cfg.configPath = path
	return cfg, nil
}

// LoadOptional loads dragkit.json from dir, falling back to defaults when the
// file does not exist.
func LoadOptional(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// ApplyEnv overrides fields from DRAGKIT_* variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v, ok := lookup(getenv, EnvMetricsAddr); ok {
		c.MetricsAddr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// lookup treats the literal value "off" as an explicit empty setting.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	switch v {
	case "":
		return "", false
	case "off":
		return "", true
	default:
		return v, true
	}
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New(errors.CodeConfigInvalid).WithDetail("addr must not be empty")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("unknown logLevel " + strconv.Quote(c.LogLevel)).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	if c.Autoscroll.Interval < 0 {
		return errors.New(errors.CodeConfigInvalid).WithDetail("autoscroll.interval must not be negative")
	}
	if c.Autoscroll.TriggerRange < 0 {
		return errors.New(errors.CodeConfigInvalid).WithDetail("autoscroll.triggerRange must not be negative")
	}
	if c.Clone.MaxRotation < 0 {
		return errors.New(errors.CodeConfigInvalid).WithDetail("clone.maxRotation must not be negative")
	}
	if _, err := time.ParseDuration(c.Server.ReadTimeout); err != nil {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("server.readTimeout is not a duration").
			Wrap(err)
	}
	return nil
}

// ScrollInterval returns the autoscroll throttle window.
func (c *Config) ScrollInterval() time.Duration {
	return time.Duration(c.Autoscroll.Interval) * time.Millisecond
}

// ReadTimeout returns the websocket read deadline. Invalid values yield the
// default.
func (c *Config) ReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ReadTimeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultReadTimeout)
	}
	return d
}

// Level returns the slog level for LogLevel. Unknown values map to info.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

// DragOptions returns the controller options derived from the config.
func (c *Config) DragOptions() []drag.Option {
	return []drag.Option{
		drag.WithAutoscroll(c.ScrollInterval(), c.Autoscroll.TriggerRange),
		drag.WithMaxRotation(c.Clone.MaxRotation),
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	line, col = 1, 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
