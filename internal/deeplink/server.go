// Package deeplink accepts URL commands over HTTP and forwards them to the
// running program.
package deeplink

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/idursun/cypherui/internal/logging"
	"github.com/idursun/cypherui/internal/ui/intents"
	"github.com/idursun/cypherui/internal/urlcommand"
)

// Sender delivers messages into the program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

type Server struct {
	addr     string
	sender   Sender
	router   chi.Router
	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	done     chan struct{}
}

func New(addr string, sender Sender) *Server {
	s := &Server{addr: addr, sender: sender}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Get("/open", s.open)
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) open(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := urlcommand.ParseArgs(r.URL.RequestURI()); !ok {
		http.Error(w, "missing cmd", http.StatusBadRequest)
		return
	}
	url := "http://" + r.Host + r.URL.RequestURI()
	s.sender.Send(intents.URLArgumentsChange{URL: url})
	w.WriteHeader(http.StatusAccepted)
}

// Start binds the listen address and serves in the background until ctx is
// cancelled or Shutdown is called. An empty address disables the server.
func (s *Server) Start(ctx context.Context) error {
	if s.addr == "" {
		return nil
	}
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.addr)
	}

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	done := make(chan struct{})

	s.mu.Lock()
	s.srv = srv
	s.listener = listener
	s.done = done
	s.mu.Unlock()

	logging.Logger.Infow("deep link listener started", "addr", listener.Addr().String())
	go func() {
		defer close(done)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Errorw("deep link listener failed", "error", err)
		}
	}()
	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		case <-done:
		}
	}()
	return nil
}

// Addr is the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv, done := s.srv, s.done
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutting down deep link listener")
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.Logger.Infow("deep link request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}
