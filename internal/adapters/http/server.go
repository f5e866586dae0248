package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/observability"
	"github.com/tracery-dev/tracery/pkg/ports"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// Server serves the mutation-path catalogue over REST.
type Server struct {
	engine  ports.Cataloguer
	watcher ports.Watchable
	metrics *observability.Metrics
	version string
	log     *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithWatcher enables the /api/events stream, signaling clients when the
// underlying registry changes.
func WithWatcher(w ports.Watchable) Option {
	return func(s *Server) {
		s.watcher = w
	}
}

// WithMetrics mounts the instrument set on /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithVersion sets the version string reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine ports.Cataloguer, opts ...Option) http.Handler {
	server := &Server{
		engine:  engine,
		version: "dev",
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/api/types", server.handleTypes)
	r.Get("/api/paths/{type}", server.handlePaths)
	r.Get("/api/paths/{type}/entry", server.handleEntry)
	r.Get("/api/events", server.handleEvents)
	r.Get("/healthz", server.handleHealth)
	r.Get("/info", server.handleInfo)
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// handleTypes handles the GET /api/types request.
func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"fingerprint": s.engine.Fingerprint(),
		"types":       s.engine.Types(),
	})
}

// handlePaths handles the GET /api/paths/{type} request.
func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	root := schema.TypeID(chi.URLParam(r, "type"))

	cat, err := s.engine.Catalogue(r.Context(), root)
	if err != nil {
		if errors.Is(err, domain.ErrTypeNotFound) {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("type not found: %s", root))
			return
		}
		s.log.Error("catalogue build failed", "type", root, "error", err)
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("catalogue error: %v", err))
		return
	}

	s.writeJSON(w, http.StatusOK, cat)
}

// handleEntry handles the GET /api/paths/{type}/entry?path= request.
func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	root := schema.TypeID(chi.URLParam(r, "type"))
	path := r.URL.Query().Get("path")

	cat, err := s.engine.Catalogue(r.Context(), root)
	if err != nil {
		if errors.Is(err, domain.ErrTypeNotFound) {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("type not found: %s", root))
			return
		}
		s.log.Error("catalogue build failed", "type", root, "error", err)
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("catalogue error: %v", err))
		return
	}

	entry, ok := cat.Entry(path)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("no path %q on %s", path, root))
		return
	}

	s.writeJSON(w, http.StatusOK, entry)
}

// handleEvents handles the GET /api/events request (SSE).
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.watcher == nil {
		s.writeError(w, http.StatusNotFound, "change events not available for this source")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	events, err := s.watcher.Watch(r.Context())
	if err != nil {
		s.log.Error("watch failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("watch error: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.log.Info("SSE client disconnected")
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: registry\ndata: changed\n\n")
			flusher.Flush()
		}
	}
}

// handleHealth handles the GET /healthz request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleInfo handles the GET /info request.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "tracery-http",
		"version":     s.version,
		"fingerprint": s.engine.Fingerprint(),
	})
}
