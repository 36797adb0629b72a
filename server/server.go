// Package server hosts games over HTTP. Every game lives in memory, moves
// arrive as JSON requests and each change is pushed to websocket watchers.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and stream logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRequestTimeout bounds every JSON request. Streams are not bounded.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// Server routes requests to the games in a Store.
type Server struct {
	store    *Store
	log      *zap.Logger
	timeout  time.Duration
	upgrader websocket.Upgrader
}

// New creates a server for store.
func New(store *Store, opts ...Option) *Server {
	s := &Server{
		store:   store,
		log:     zap.NewNop(),
		timeout: 15 * time.Second,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router with its middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the game API on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.With(middleware.Timeout(s.timeout)).Post("/", s.createGame)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.loadRoom)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(s.timeout))
				r.Get("/", s.getGame)
				r.Delete("/", s.deleteGame)
				r.Get("/analysis", s.analyze)
				r.Post("/preview", s.preview)
				r.Post("/place", s.place)
				r.Post("/restart", s.restart)
				r.Post("/revive", s.revive)
			})
			r.Get("/ws", s.stream)
		})
	})
}

type roomKey struct{}

func (s *Server) loadRoom(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, errGameNotFound)
			return
		}
		room, ok := s.store.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, errGameNotFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), roomKey{}, room)))
	})
}

func roomFrom(r *http.Request) *Room {
	return r.Context().Value(roomKey{}).(*Room)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
