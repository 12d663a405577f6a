// Package server exposes the simulated backend over HTTP so the dashboard
// views can speak a plain REST contract during development.
package server

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/findash/findash/internal/config"
	"github.com/findash/findash/mockapi"
)

// Server routes the dashboard API onto the mock backend.
type Server struct {
	env    string
	mux    *http.ServeMux
	routes []string
	config config.Config
	api    *mockapi.API
	log    zerolog.Logger
}

// New builds a Server over the given backend.
func New(cfg config.Config, api *mockapi.API, log zerolog.Logger) (*Server, error) {
	if api == nil {
		return nil, errors.New("[server.New] mock api is required")
	}

	s := &Server{
		env:    cfg.Env,
		mux:    http.NewServeMux(),
		config: cfg,
		api:    api,
		log:    log,
	}
	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// RegisterRouteFunc adds a handler and records the pattern for route logging.
func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		s.log.Debug().Str("route", route).Msg("registered")
	}
}
