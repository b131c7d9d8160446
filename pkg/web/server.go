// Package web serves the dashboard UI and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/google/uuid"
	"github.com/raykavin/fluid/pkg/dashboard"
	"github.com/raykavin/fluid/pkg/logger"
)

// Static assets embedded in the binary
var (
	//go:embed assets
	staticFiles embed.FS
)

const DefaultAppName = "Fluid Investing"

// Server handles the page and the API of the dashboard
type Server struct {
	service       *dashboard.Service
	port          int
	debug         bool
	appName       string
	scriptContent string
	indexHTML     *template.Template
	started       time.Time
	log           logger.Logger
}

// Option defines a function type for configuring a Server instance
type Option func(*Server)

// WithPort sets the HTTP server port
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithDebug enables debug mode (disables minification)
func WithDebug() Option {
	return func(s *Server) {
		s.debug = true
	}
}

// WithAppName sets the page title
func WithAppName(name string) Option {
	return func(s *Server) {
		s.appName = name
	}
}

// NewServer creates a new server instance with the provided options
func NewServer(service *dashboard.Service, log logger.Logger, options ...Option) (*Server, error) {
	server := &Server{
		service: service,
		port:    8080,
		appName: DefaultAppName,
		log:     log,
	}

	for _, option := range options {
		option(server)
	}

	var err error
	server.indexHTML, err = template.ParseFS(staticFiles, "assets/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	script, err := staticFiles.ReadFile("assets/dashboard.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard.js: %w", err)
	}

	transpiled := api.Transform(string(script), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2015,
		MinifySyntax:      !server.debug,
		MinifyIdentifiers: !server.debug,
		MinifyWhitespace:  !server.debug,
	})
	if len(transpiled.Errors) > 0 {
		return nil, fmt.Errorf("dashboard script failed with: %v", transpiled.Errors)
	}

	server.scriptContent = string(transpiled.Code)
	return server, nil
}

// Handler returns the routes of the dashboard.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /assets/dashboard.js", s.handleScript)
	mux.HandleFunc("GET /api/tabs", s.handleTabs)
	mux.HandleFunc("GET /api/tickers", s.handleTickers)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/economic", s.handleEconomic)
	mux.HandleFunc("GET /api/forecasting", s.handleForecasting)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return s.logRequests(mux)
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.started = time.Now()
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("%s available at http://localhost:%d", s.appName, s.port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

const requestIDHeader = "X-Request-ID"

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r)
		s.log.WithFields(map[string]any{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"elapsed":    time.Since(begin).String(),
		}).Debug("request served")
	})
}
