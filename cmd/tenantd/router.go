package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/tenantkit/pkg/httpserver"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

type routerDeps struct {
	log          *slog.Logger
	resolver     *tenant.Resolver
	middleware   []tenant.MiddlewareOption
	checks       []httpserver.Check
	readyTimeout time.Duration
	metrics      http.Handler
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(d.log, d.readyTimeout, d.checks...))
	if d.metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(tenant.Middleware(d.resolver, d.middleware...))
		r.With(tenant.RequireTenant(nil)).Get("/whoami", whoami(d.log))
	})

	return r
}

func whoami(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := tenant.MustFromContext(r.Context())
		log.InfoContext(r.Context(), "tenant identified", logger.Component("whoami"))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(t); err != nil {
			log.ErrorContext(r.Context(), "failed to encode tenant", logger.Error(err))
		}
	}
}
