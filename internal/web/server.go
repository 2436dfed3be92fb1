// Package web serves the rendered page and its placeholder actions over HTTP.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"poketimes/internal/config"
	"poketimes/internal/logger"
	"poketimes/internal/render"
	"poketimes/internal/store"
)

//go:embed assets
var assetFS embed.FS

// Server wires the store and renderer to HTTP handlers.
type Server struct {
	store    *store.Store
	logger   *logger.Logger
	cfg      *config.ServerConfig
	renderer render.Renderer
	title    string
}

// NewServer creates a server reading state from st.
func NewServer(cfg *config.Config, st *store.Store, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}

	return &Server{
		store:    st,
		logger:   log.With("component", "web"),
		cfg:      &cfg.Server,
		renderer: render.Renderer{Brand: cfg.Render.Title},
		title:    cfg.Render.Title,
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.notFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.clientError(w, http.StatusMethodNotAllowed)
	})

	r.Get("/", s.home)
	r.Get("/health", s.health)

	assets, err := fs.Sub(assetFS, "assets")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assets))))

	r.Route("/actions", func(r chi.Router) {
		r.Post("/view/{id}", s.action(func(id int) store.Event { return store.ViewPost{ID: id} }))
		r.Post("/delete/{id}", s.action(func(id int) store.Event { return store.DeletePost{ID: id} }))
	})

	return r
}

// HTTPServer returns an http.Server configured from the server settings.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Routes(),
		ErrorLog:     slog.NewLogLogger(s.logger.Slog().Handler(), slog.LevelError),
		ReadTimeout:  s.cfg.ReadTimeout(),
		WriteTimeout: s.cfg.WriteTimeout(),
		IdleTimeout:  s.cfg.IdleTimeout(),
	}
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := s.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancel()

	s.logger.Info("shutting down")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}

	return s.Serve(ctx, ln)
}
