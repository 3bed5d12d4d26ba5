package dragserver

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/dragkit/pkg/drag"
)

const tracerName = "dragkit"

// Config configures a Server.
type Config struct {
	// ReadTimeout is how long a connection may stay silent before it is
	// closed. Default: 60s.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single frame write. Default: 10s.
	WriteTimeout time.Duration

	// ReadBufferSize and WriteBufferSize size the websocket buffers.
	// Default: 4096.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the Origin header of upgrade requests.
	// Default: same-origin check of the websocket package.
	CheckOrigin func(r *http.Request) bool

	// Logger is the base logger. Each session adds its id.
	// Default: slog.Default().
	Logger *slog.Logger

	// Metrics records connection errors. Nil disables them.
	Metrics *Metrics

	// Tracer creates one span per dispatched client event.
	// Default: the global provider's "dragkit" tracer.
	Tracer trace.Tracer

	// DragOptions are applied to every session controller. The registry,
	// visual port and scroller are always set by the session.
	DragOptions []drag.Option
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = def.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = def.WriteBufferSize
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Tracer == nil {
		c.Tracer = otel.Tracer(tracerName)
	}
	return c
}
