// Package web serves the form-based frontend: a single page to add and
// remove drivetrain configurations, an SVG range plot per configuration,
// a CSV download, and a small JSON API for programmatic callers.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/velotools/gearrange-cli/internal/logging"
	"github.com/velotools/gearrange-cli/internal/session"
)

// Server owns the HTTP side of one gear calculator session. All handlers
// operate on the shared registry; the drivetrains themselves are
// immutable, so the registry's own locking is all the synchronization
// the server needs.
type Server struct {
	registry *session.Registry
	log      *logging.Logger
	tmpl     *template.Template
}

// New creates a Server over the given registry.
func New(registry *session.Registry, log *logging.Logger) (*Server, error) {
	tmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return &Server{registry: registry, log: log, tmpl: tmpl}, nil
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/configurations", s.handleAddForm)
	r.Post("/configurations/{name}/delete", s.handleRemoveForm)
	r.Get("/download.csv", s.handleDownloadCSV)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/configurations", s.handleListJSON)
		r.Post("/configurations", s.handleAddJSON)
		r.Delete("/configurations/{name}", s.handleRemoveJSON)
		r.Get("/configurations/{name}/speed", s.handleSpeedJSON)
	})

	return r
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
