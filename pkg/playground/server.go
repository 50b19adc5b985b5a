package playground

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/declarative/internal/config"
	"github.com/vango-dev/declarative/internal/demo"
	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/metrics"
	"github.com/vango-dev/declarative/pkg/middleware"
	"github.com/vango-dev/declarative/pkg/render"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Config supplies address, render, metrics and tracing settings.
	// Defaults to config.New().
	Config *config.Config

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Registry receives metrics when Config.Metrics.Enabled is set.
	// Defaults to a fresh registry.
	Registry *prometheus.Registry
}

// Server serves the demo dashboard and streams every re-render to
// connected browsers.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer *render.Renderer
	registry *prometheus.Registry

	session *Session
	hub     *Hub
	router  chi.Router
}

// New builds the server and starts its session.
func New(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		renderer: render.New(render.Config{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent}),
	}

	if cfg.Metrics.Enabled {
		s.registry = opts.Registry
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
		}
		metrics.Install(metrics.New(
			metrics.WithRegistry(s.registry),
			metrics.WithNamespace(cfg.Metrics.Namespace),
		))
	}

	s.hub = NewHub(logger.With("component", "hub"))
	s.session = NewSession(SessionOptions{
		Logger:   logger.With("component", "session"),
		Renderer: s.renderer,
		OnRender: s.hub.Broadcast,
		OnError:  s.hub.NotifyError,
	})
	s.hub.current = s.session.Frame
	s.router = s.routes()

	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.OpenTelemetry(
		middleware.WithTracerName(s.cfg.Tracing.TracerName),
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != s.cfg.Metrics.Path
		}),
	))
	if s.registry != nil {
		mw, _ := middleware.Prometheus(
			middleware.WithRegistry(s.registry),
			middleware.WithNamespace(s.cfg.Metrics.Namespace),
		)
		r.Use(mw)
	}

	r.Get("/", s.handlePage)
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Get("/signals", s.handleSignals)
	r.Post("/signals/{name}", s.handleSetSignal)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	if s.registry != nil {
		r.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Session returns the server's session.
func (s *Server) Session() *Session {
	return s.session
}

// Hub returns the live connection hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("playground listening", "url", s.cfg.URL())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.hub.Close()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	s.logger.Info("playground stopped")
	return err
}

// Close stops the session and disconnects live clients.
func (s *Server) Close() {
	s.hub.Close()
	s.session.Close()
	if s.registry != nil {
		metrics.Install(nil)
	}
}

type signalsResponse struct {
	Signals  map[string]bool `json:"signals"`
	Selected string          `json:"selected"`
	Version  uint64          `json:"version"`
}

type setSignalResponse struct {
	Name    string `json:"name"`
	Value   bool   `json:"value"`
	Version uint64 `json:"version"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var (
		names []string
		state map[string]bool
	)
	err := s.session.Do(r.Context(), func(d *demo.Dashboard) error {
		names, state = d.Names(), d.State()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	html, err := renderPage(s.renderer, s.session.Frame(), names, state)
	if err != nil {
		s.writeError(w, r, errors.New("E130").Wrap(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	var resp signalsResponse
	err := s.session.Do(r.Context(), func(d *demo.Dashboard) error {
		resp.Signals = d.State()
		resp.Selected = d.Selected()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp.Version = s.session.Frame().Version
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetSignal(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	value := strings.TrimSpace(r.FormValue("value"))
	if value == "" {
		value = "toggle"
	}
	middleware.SpanFromRequest(r).SetAttributes(
		attribute.String("signal.name", name),
		attribute.String("signal.value", value),
	)

	resp := setSignalResponse{Name: name}
	err := s.session.Do(r.Context(), func(d *demo.Dashboard) error {
		if err := d.ApplyValue(name, value); err != nil {
			return err
		}
		v, err := d.Get(name)
		resp.Value = v
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp.Version = s.session.Frame().Version
	s.logger.Info("signal set", "name", name, "value", resp.Value, "version", resp.Version,
		"request_id", chimw.GetReqID(r.Context()))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.Code(err) {
	case "E150":
		status = http.StatusNotFound
	case "E151":
		status = http.StatusBadRequest
	}
	if stderrors.Is(err, ErrSessionClosed) {
		status = http.StatusServiceUnavailable
	}

	resp := errorResponse{Code: errors.Code(err), Message: err.Error()}
	var e *errors.Error
	if stderrors.As(err, &e) {
		resp.Detail = e.Detail
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
