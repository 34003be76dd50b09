// Package web serves the studio over HTTP: a JSON API for generation and the
// library, sandboxed document pages, and live scene play over websockets.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/studio"
)

// Config configures the HTTP server.
type Config struct {
	Addr string

	// Mode is the default interaction variant for live play.
	Mode engine.Mode

	// FrameScale scales frames streamed to live players.
	FrameScale float64

	// GenerateTimeout bounds a single generation request.
	GenerateTimeout time.Duration
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		Mode:            engine.ModeClick,
		FrameScale:      0.75,
		GenerateTimeout: 2 * time.Minute,
	}
}

// Server is the studio's HTTP front end.
type Server struct {
	config   Config
	svc      *studio.Service
	sessions *studio.Sessions
	logger   *log.Logger
	upgrader websocket.Upgrader

	httpServer *http.Server
	listener   net.Listener
}

// New creates a server. A nil logger discards output.
func New(cfg Config, svc *studio.Service, logger *log.Logger) *Server {
	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.Mode == "" {
		cfg.Mode = def.Mode
	}
	if cfg.FrameScale <= 0 {
		cfg.FrameScale = def.FrameScale
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = def.GenerateTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		config:   cfg,
		svc:      svc,
		sessions: studio.NewSessions(),
		logger:   logger.WithPrefix("web"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Sessions returns the live play sessions.
func (s *Server) Sessions() *studio.Sessions {
	return s.sessions
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": s.sessions.Count(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Get("/schema", s.handleSchema)
		r.Route("/games", func(r chi.Router) {
			r.Get("/", s.handleListGames)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetGame)
				r.Delete("/", s.handleDeleteGame)
				r.Get("/scores", s.handleScores)
				r.Get("/frame.png", s.handleFrame)
			})
		})
	})

	r.Get("/games/{id}/document", s.handleDocument)
	r.Get("/play/{id}", s.handlePlayPage)
	r.Get("/ws/play/{id}", s.handlePlaySocket)

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("web: listen on %s: %w", s.config.Addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops live sessions and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.StopAll()
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

// Addr returns the bound address, or the configured one before listening.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
