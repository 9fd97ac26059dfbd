// Package server hosts the single-page tutor over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/tutor/internal/credential"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/submission"
	"github.com/abhisek/tutor/internal/tutor"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Tutor answers submissions.
type Tutor interface {
	Ask(ctx context.Context, credential string, sub submission.Submission) (*tutor.Answer, error)
	Discover(ctx context.Context, credential string) ([]llm.ModelDescriptor, string, error)
}

// Config configures a Server.
type Config struct {
	// Provider names the backend whose credential is resolved.
	Provider string
	// Credentials are consulted when the request carries no key.
	Credentials credential.Chain
	// Subtitle is shown under the page title, e.g. "Grade 9".
	Subtitle string
}

// Server is the HTTP front end.
type Server struct {
	tutor  Tutor
	cfg    Config
	router *gin.Engine
}

// New creates a Server and its router.
func New(t Tutor, cfg Config) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{tutor: t, cfg: cfg}
	s.router = s.generateRouter(tmpl)
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) generateRouter(tmpl *template.Template) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.handleIndex)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/ask", s.handleAsk)
	api.GET("/models", s.handleModels)

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
			return err
		}
		slog.Info("server stopped")
		return nil
	})

	return g.Wait()
}

// resolveCredential prefers the key supplied with the request.
func (s *Server) resolveCredential(input string) (string, error) {
	key, _, err := credential.WithInput(input, s.cfg.Credentials).Resolve(s.cfg.Provider)
	return key, err
}

// hasPreconfiguredKey reports whether the page can hide the key field.
func (s *Server) hasPreconfiguredKey() bool {
	key, _, err := s.cfg.Credentials.Resolve(s.cfg.Provider)
	return err == nil && key != ""
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
