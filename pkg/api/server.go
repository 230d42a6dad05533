package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/isozombie/pkg/api/handlers"
	"github.com/cbodonnell/isozombie/pkg/api/middleware"
	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/cbodonnell/isozombie/pkg/repositories"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port        int
	TLS         *TLSConfig
	AllowOrigin string
	Repository  repositories.Repository
}

// NewRouter returns the scoreboard routes.
func NewRouter(repository repositories.Repository, allowOrigin string) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware())
	r.Use(middleware.NewCORSMiddleware(allowOrigin))

	r.HandleFunc("/scores", handlers.HandleTopScores(repository)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/scores", handlers.HandleSubmitScore(repository)).Methods(http.MethodPost)
	r.HandleFunc("/scores/{name}/best", handlers.HandleBestScore(repository)).Methods(http.MethodGet, http.MethodOptions)

	return r
}

// NewAPIServer creates a new http.Server for the scoreboard API
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts.Repository, opts.AllowOrigin),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the APIServer and blocks until it is stopped
func (s *APIServer) Start() error {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return nil
		}
		return fmt.Errorf("api server error: %v", err)
	}
	return nil
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
