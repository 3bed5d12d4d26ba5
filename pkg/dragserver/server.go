package dragserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

// BuildFunc populates the document of a new session and attaches drag
// behavior to it. Nodes must be mounted with Document.Append so that they
// receive hydration ids. Drop targets go into Session.Targets.
type BuildFunc func(s *Session)

// Server accepts websocket connections and runs one Session per connection.
type Server struct {
	cfg      Config
	build    BuildFunc
	router   chi.Router
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
	wg       sync.WaitGroup
}

// New creates a Server. build runs once per connection before the first
// frame is read.
func New(cfg Config, build BuildFunc) *Server {
	cfg = cfg.withDefaults()
	s := &Server{
		cfg:   cfg,
		build: build,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     cfg.CheckOrigin,
		},
		logger:   cfg.Logger,
		sessions: make(map[string]*Session),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealth)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close closes every open connection and waits for the read loops to
// return. New connections are refused afterwards.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	for _, sess := range s.sessions {
		sess.close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	sess := newSession(conn, s.cfg)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.sessions[sess.id] = sess
	s.wg.Add(1)
	s.mu.Unlock()

	s.cfg.Metrics.connectionOpened()
	sess.logger.Info("session started",
		"remote", r.RemoteAddr,
		"request_id", middleware.GetReqID(r.Context()))

	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
		sess.close()
		s.cfg.Metrics.connectionClosed()
		sess.logger.Info("session closed")
		s.wg.Done()
	}()

	sess.mount(s.build)
	sess.readLoop()
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(healthResponse{Status: "ok", Sessions: s.SessionCount()})
}
