package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/config"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/api"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/api/apiv1"
)

// Server is the worker's operational HTTP surface: liveness, metrics and
// the small v1 management API.
type Server struct {
	cfg    *config.Config
	api    *apiv1.Server
	log    *zerolog.Logger
	server *http.Server
}

func NewServer(cfg *config.Config, apiSrv *apiv1.Server, logger *zerolog.Logger) *Server {
	return &Server{cfg: cfg, api: apiSrv, log: logger}
}

func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(api.TraceID())
	r.Use(api.Recover(s.log))
	r.Use(api.RequestLog(s.log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Management routes are key-guarded and time-bounded.
	r.Group(func(r chi.Router) {
		r.Use(api.RequireKey(s.cfg.API.AdminKey))
		r.Use(api.Timeout(15 * time.Second))
		apiv1.RegisterAPIV1(r, s.api)
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.API.Port),
		Handler: r,
	}
	s.log.Info().Int("port", s.cfg.API.Port).Msg("HTTP server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
