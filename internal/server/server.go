// Package server exposes blackjack sessions over WebSocket. Every connection
// owns one engine; sessions share nothing but the server's seed sequence.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/protocol"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/rs/zerolog"
)

// Config holds the runtime settings of a server
type Config struct {
	Rules       game.Rules
	Seed        int64
	IdleTimeout time.Duration
}

// DefaultConfig returns house rules with a five minute idle timeout
func DefaultConfig() Config {
	return Config{
		Rules:       game.DefaultRules(),
		IdleTimeout: 5 * time.Minute,
	}
}

// Server accepts WebSocket connections and runs one session per connection
type Server struct {
	config    Config
	logger    zerolog.Logger
	clock     quartz.Clock
	validator *protocol.Validator
	upgrader  websocket.Upgrader
	mux       *http.ServeMux

	mu       sync.RWMutex
	sessions map[string]*Session
	engines  int

	httpServer *http.Server
	reaper     quartz.Waiter
	stopOnce   sync.Once
	cancel     context.CancelFunc
}

// NewServer creates a server. The clock drives idle reaping so tests can
// substitute a quartz mock.
func NewServer(logger zerolog.Logger, cfg Config, clock quartz.Clock) (*Server, error) {
	validator, err := protocol.NewValidator()
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = quartz.NewReal()
	}

	s := &Server{
		config:    cfg,
		logger:    logger.With().Str("component", "server").Logger(),
		clock:     clock,
		validator: validator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		mux:      http.NewServeMux(),
		sessions: make(map[string]*Session),
	}
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s, nil
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins idle reaping. Serve calls it; tests that mount Handler on an
// httptest server call it directly.
func (s *Server) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	if s.config.IdleTimeout <= 0 {
		return
	}
	interval := max(s.config.IdleTimeout/4, time.Second)
	s.reaper = s.clock.TickerFunc(ctx, interval, func() error {
		s.reapIdle()
		return nil
	}, "reaper")
}

// Serve listens on addr until the server is shut down
func (s *Server) Serve(ctx context.Context, addr string) error {
	s.Start(ctx)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info().
		Str("addr", addr).
		Int64("seed", s.config.Seed).
		Dur("idle_timeout", s.config.IdleTimeout).
		Msg("Starting blackjack server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown closes every session and stops the HTTP listener
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}

		s.mu.Lock()
		sessions := make([]*Session, 0, len(s.sessions))
		for _, sess := range s.sessions {
			sessions = append(sessions, sess)
		}
		s.mu.Unlock()
		for _, sess := range sessions {
			sess.Close()
		}

		if s.httpServer != nil {
			err = s.httpServer.Shutdown(ctx)
		}
		s.logger.Info().Int("sessions", len(sessions)).Msg("Server stopped")
	})
	return err
}

// SessionCount returns the number of connected sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	sess := newSession(s, conn)
	s.mu.Lock()
	s.sessions[sess.id] = sess
	total := len(s.sessions)
	s.mu.Unlock()

	sess.logger.Info().Int("total", total).Msg("Session opened")
	sess.start()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK sessions=%d\n", s.SessionCount())
}

// newEngine builds an engine with the next derived seed
func (s *Server) newEngine(logger zerolog.Logger) (*game.Engine, int64) {
	s.mu.Lock()
	n := s.engines
	s.engines++
	s.mu.Unlock()

	seed := randutil.Derive(s.config.Seed, n)
	e := game.New(randutil.New(seed),
		game.WithRules(s.config.Rules),
		game.WithLogger(logger),
	)
	return e, seed
}

func (s *Server) remove(sess *Session) {
	s.mu.Lock()
	_, ok := s.sessions[sess.id]
	delete(s.sessions, sess.id)
	total := len(s.sessions)
	s.mu.Unlock()

	if ok {
		sess.logger.Info().Int("total", total).Msg("Session closed")
	}
}

// reapIdle closes sessions that have not sent a command within IdleTimeout
func (s *Server) reapIdle() {
	now := s.clock.Now()

	s.mu.RLock()
	var idle []*Session
	for _, sess := range s.sessions {
		if now.Sub(sess.lastActive()) >= s.config.IdleTimeout {
			idle = append(idle, sess)
		}
	}
	s.mu.RUnlock()

	for _, sess := range idle {
		sess.logger.Info().Dur("idle", now.Sub(sess.lastActive())).Msg("Reaping idle session")
		sess.Close()
	}
}
