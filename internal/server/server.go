package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/internal/render"
	"github.com/toyz/routedoc/internal/utils"
)

// LoadFunc builds the document the server publishes
type LoadFunc func(ctx context.Context) (render.Document, error)

// Config holds configuration for the preview server
type Config struct {
	// Addr is the address to listen on (default: 127.0.0.1:8080)
	Addr string

	// EnableRequestLog logs every request at verbose level (default: true)
	EnableRequestLog bool

	// EnableRecover enables panic recovery middleware (default: true)
	EnableRecover bool

	// EnableCORS lets other origins fetch routes.json (default: true)
	EnableCORS bool

	// ShutdownTimeout is the timeout for graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a server configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Addr:             "127.0.0.1:8080",
		EnableRequestLog: true,
		EnableRecover:    true,
		EnableCORS:       true,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Server publishes the rendered documents over HTTP. Every format is
// rendered once per load and served from memory.
type Server struct {
	echo        *echo.Echo
	config      *Config
	load        LoadFunc
	diagnostics *utils.DiagnosticSystem

	mu       sync.RWMutex
	routes   int
	rendered map[render.Format][]byte
}

// New creates a server; call Refresh or Start before serving requests
func New(config *Config, load LoadFunc, diagnostics *utils.DiagnosticSystem) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:        e,
		config:      config,
		load:        load,
		diagnostics: diagnostics,
		rendered:    make(map[render.Format][]byte),
	}

	if config.EnableRecover {
		e.Use(middleware.Recover())
	}
	if config.EnableRequestLog {
		e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:  true,
			LogURI:     true,
			LogStatus:  true,
			LogLatency: true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				s.diagnostics.Verbose("%s %s %d (%s)", v.Method, v.URI, v.Status, v.Latency)
				return nil
			},
		}))
	}
	if config.EnableCORS {
		e.Use(middleware.CORS())
	}

	s.registerRoutes()
	return s
}

// Echo returns the underlying Echo instance
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.serveFormat(render.FormatHTML))
	s.echo.GET("/"+render.HTMLFile, s.serveFormat(render.FormatHTML))
	s.echo.GET("/"+render.MarkdownFile, s.serveFormat(render.FormatMarkdown))
	s.echo.GET("/"+render.JSONFile, s.serveFormat(render.FormatJSON))
	s.echo.GET("/"+render.YAMLFile, s.serveFormat(render.FormatYAML))
	s.echo.POST("/refresh", s.handleRefresh)
}

func (s *Server) serveFormat(format render.Format) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.RLock()
		content, ok := s.rendered[format]
		s.mu.RUnlock()

		if !ok {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "documentation has not been generated yet")
		}
		return c.Blob(http.StatusOK, format.ContentType(), content)
	}
}

func (s *Server) handleRefresh(c echo.Context) error {
	if err := s.Refresh(c.Request().Context()); err != nil {
		s.diagnostics.Error("Refresh failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	s.mu.RLock()
	routes := s.routes
	s.mu.RUnlock()
	return c.JSON(http.StatusOK, map[string]int{"routes": routes})
}

// Refresh reloads the document and re-renders every format. The previous
// documents keep being served if loading or rendering fails.
func (s *Server) Refresh(ctx context.Context) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	rendered := make(map[render.Format][]byte)
	for _, format := range []render.Format{render.FormatHTML, render.FormatMarkdown, render.FormatJSON, render.FormatYAML} {
		content, err := render.Render(format, doc)
		if err != nil {
			return err
		}
		rendered[format] = content
	}

	s.mu.Lock()
	s.rendered = rendered
	s.routes = len(doc.Routes)
	s.mu.Unlock()

	s.diagnostics.Verbose("Serving %d route(s)", len(doc.Routes))
	return nil
}

// Start loads the document, serves it and blocks until ctx is cancelled,
// then shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		s.diagnostics.Info("Serving documentation on http://%s", s.config.Addr)
		if err := s.echo.Start(s.config.Addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.WrapServerError("start", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.diagnostics.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return errors.WrapServerError("shutdown", err)
	}

	s.diagnostics.Success("Server shutdown complete")
	return nil
}
