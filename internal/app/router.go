package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/domainshare-backend/internal/config"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/transport/middleware"
	"github.com/heartmarshall/domainshare-backend/internal/transport/rest"
)

type tokenValidator interface {
	Validate(token string) (domain.Principal, error)
}

type routerDeps struct {
	log       *slog.Logger
	cors      config.CORSConfig
	rateLimit config.RateLimitConfig
	limiter   *middleware.RateLimiter
	tokens    tokenValidator
	health    *rest.HealthHandler
	shares    *rest.ShareHandler
	approvals *rest.ApprovalHandler
	metrics   http.Handler
}

func newRouter(d routerDeps) http.Handler {
	apiLimit, decisionLimit := 0, 0
	if d.rateLimit.Enabled {
		apiLimit, decisionLimit = d.rateLimit.PerMinute, d.rateLimit.DecisionsPerMin
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recovery(d.log),
		middleware.RequestID,
		middleware.Metrics,
		middleware.CORS(d.cors),
	)
	r.NotFound(rest.NotFound)
	r.MethodNotAllowed(rest.MethodNotAllowed)

	r.Get("/live", d.health.Live)
	r.Get("/ready", d.health.Ready)
	r.Get("/health", d.health.Health)
	r.Method(http.MethodGet, "/metrics", d.metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Logger(d.log), middleware.Auth(d.tokens))
		r.Use(d.limiter.Limit("api", apiLimit))

		r.Post("/share-requests", d.shares.Create)
		r.Get("/share-requests/{instanceId}", d.shares.Get)
		r.Get("/shares", d.shares.List)

		r.Get("/approvals/pending", d.approvals.Pending)
		r.Get("/approvals/pending-count", d.approvals.PendingCount)
		r.With(d.limiter.Limit("decisions", decisionLimit)).
			Post("/approvals/decision", d.approvals.Decide)
	})

	return r
}
