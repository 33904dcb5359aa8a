package relay

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// ServerConfig holds the relay server's listen address and the optional
// directory of web UI assets to serve at the root.
type ServerConfig struct {
	Addr      string
	StaticDir string
}

// Server bundles the two registries (chat/file relay and signaling
// pass-through) behind one HTTP listener.
type Server struct {
	httpServer *http.Server
	rooms      *Registry
	signals    *Registry
	logger     *slog.Logger
}

// NewServer wires the routes and returns a server ready to start. The
// room and signal endpoints get independent registries: they share
// fan-out semantics but a room id on one names a different broadcast
// domain than the same id on the other.
func NewServer(cfg ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	rooms := NewRegistry(logger.With("relay", "room"))
	signals := NewRegistry(logger.With("relay", "signal"))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthHandler)
	mux.HandleFunc("/room/{roomID}", ServeRoom(rooms, logger))
	mux.HandleFunc("/signal/{roomID}", ServeRoom(signals, logger))
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return &Server{
		httpServer: &http.Server{
			Addr:        cfg.Addr,
			Handler:     mux,
			IdleTimeout: 60 * time.Second,
		},
		rooms:   rooms,
		signals: signals,
		logger:  logger,
	}
}

// Rooms returns the chat/file relay registry.
func (s *Server) Rooms() *Registry { return s.rooms }

// Signals returns the signaling pass-through registry.
func (s *Server) Signals() *Registry { return s.signals }

// Start begins listening and blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("relay server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits for active ones to
// close, up to the given timeout. All room state is memory-resident and
// simply discarded.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "err", err)
		return err
	}
	s.logger.Info("relay server stopped")
	return nil
}
