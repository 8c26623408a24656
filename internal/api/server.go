// Package api implements the REST server the frontend talks to.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/inkwellhq/lorcana-companion/internal/api/websocket"
	"github.com/inkwellhq/lorcana-companion/internal/collection"
	"github.com/inkwellhq/lorcana-companion/internal/events"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/catalog"
	"github.com/inkwellhq/lorcana-companion/internal/session"
	"github.com/inkwellhq/lorcana-companion/internal/storage/repository"
)

// Server is the REST API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	addr       string

	wsHub *websocket.Hub
	deps  Deps
}

// Deps holds the collaborators the server routes requests to.
type Deps struct {
	Catalog    *catalog.Service
	Ledger     *collection.Ledger
	Decks      repository.DeckRepository
	Sessions   session.Provider
	Dispatcher *events.Dispatcher
}

// NewServer creates a server listening on addr. The event dispatcher, when
// present, is bridged onto the WebSocket hub.
func NewServer(addr string, deps Deps) *Server {
	s := &Server{
		router: chi.NewRouter(),
		addr:   addr,
		wsHub:  websocket.NewHub(),
		deps:   deps,
	}

	if deps.Dispatcher != nil {
		deps.Dispatcher.Register(websocket.NewEventObserver(s.wsHub))
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*", "https://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(s.jsonContentTypeMiddleware)
}

// jsonContentTypeMiddleware enforces application/json on requests with
// JSON bodies. Text uploads (deck lists, CSV) are routed under paths this
// middleware exempts.
func (s *Server) jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			if r.ContentLength == 0 || isTextUpload(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			contentType := r.Header.Get("Content-Type")
			if contentType != "application/json" && !strings.HasPrefix(contentType, "application/json;") {
				http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isTextUpload(path string) bool {
	return strings.HasSuffix(path, "/import/csv") || strings.HasSuffix(path, "/decks/import")
}

// Start starts the WebSocket hub and the HTTP server in goroutines.
func (s *Server) Start() {
	go s.wsHub.Run()

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("API server starting on %s", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("API server error: %v", err)
		}
	}()
}

// Stop gracefully shuts down the HTTP server and the WebSocket hub.
func (s *Server) Stop(ctx context.Context) error {
	s.wsHub.Stop()
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// Router exposes the chi mux, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Hub exposes the WebSocket hub.
func (s *Server) Hub() *websocket.Hub {
	return s.wsHub
}
