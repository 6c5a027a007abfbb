// Package httpapi is the thin HTTP adapter over the credential lifecycle
// engine: request decoding, input-shape validation, and mapping of failure
// kinds to wire statuses. No lifecycle logic lives here.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iKaueMatos/twitter-microservices/internal/logging"
	"github.com/iKaueMatos/twitter-microservices/internal/server/services"
)

// Server hosts the authentication REST API.
type Server struct {
	address string
	auth    *services.AuthenticationService
	tokens  *services.TokenService
	logger  logging.Logger
}

// NewServer constructs the HTTP server for the given services.
func NewServer(address string, auth *services.AuthenticationService, tokens *services.TokenService, l logging.Logger) *Server {
	return &Server{
		address: address,
		auth:    auth,
		tokens:  tokens,
		logger:  l.With("module", "http_server"),
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1/auth").Subrouter()
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/authenticate", s.handleAuthenticate).Methods(http.MethodPost)
	api.HandleFunc("/activate", s.handleActivate).Methods(http.MethodGet)
	api.HandleFunc("/validate/{jwt}", s.handleValidate).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
