// Package server is a small HTTP front end over pbe.Synthesize: submit a
// synthesis job and poll it until it's done, structured the way
// tunaq/server structures its own route table, auth middleware, and DAO
// layer, but scoped to synthesis jobs instead of game sessions.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dekarrin/pbe/server/dao"
	"github.com/dekarrin/pbe/server/dao/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config configures a Server before New is called.
type Config struct {
	// APIKeyHash is the bcrypt hash POST /login checks submitted API keys
	// against; build it with HashAPIKey.
	APIKeyHash []byte

	// Secret is mixed into the JWT signing key. Rotate it to invalidate
	// every outstanding token.
	Secret []byte

	// StorageDir holds the sqlite jobs database.
	StorageDir string

	// InlineTimeout bounds how long a single POST /jobs or GET /jobs/{id}
	// call is allowed to run synthesis before returning the job's current
	// status, per SPEC_FULL.md §3.3. Zero defaults to 5 seconds.
	InlineTimeout time.Duration
}

// Server is the synthesis job service.
type Server struct {
	router         chi.Router
	store          dao.Store
	secret         []byte
	apiKeyHash     []byte
	inlineTimeoutS float64
}

// New builds a Server from cfg, opening (or creating) its sqlite job
// store.
func New(cfg Config) (*Server, error) {
	store, err := sqlite.NewDatastore(cfg.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("opening job store: %w", err)
	}

	timeout := cfg.InlineTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	s := &Server{
		store:          store,
		secret:         cfg.Secret,
		apiKeyHash:     cfg.APIKeyHash,
		inlineTimeoutS: timeout.Seconds(),
	}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/login", s.handleLogin)

	r.Route("/jobs", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return s.requireAuth(next.ServeHTTP)
		})
		r.Post("/", s.handleCreateJob)
		r.Get("/{id}", s.handleGetJob)
	})

	return r
}

// ServeHTTP lets a Server be used directly as an http.Handler, e.g. in
// tests with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ServeForever listens on addr (host:port, or :port for all interfaces)
// until the process is killed, following tunaq/cmd/tqserver's
// tqs.ServeForever(addr, port) call shape.
func (s *Server) ServeForever(addr string) error {
	return http.ListenAndServe(addr, s.router)
}
