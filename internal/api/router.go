package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Togather-Foundation/topicdir/internal/api/handlers"
	"github.com/Togather-Foundation/topicdir/internal/api/middleware"
	"github.com/Togather-Foundation/topicdir/internal/auth"
	"github.com/Togather-Foundation/topicdir/internal/config"
	"github.com/Togather-Foundation/topicdir/internal/domain/topics"
	"github.com/Togather-Foundation/topicdir/internal/metrics"
)

// NewRouter wires the HTTP surface. The directory behind svc is read-only and
// shared by every request.
//
// Protected routes check required fields first (422), then the API key (401).
func NewRouter(cfg config.Config, logger zerolog.Logger, svc *topics.Service, key *auth.StaticKey, build BuildInfo) http.Handler {
	build = build.WithDefaults()
	env := cfg.Environment

	topicsHandler := handlers.NewTopicsHandler(svc)
	health := handlers.NewHealthChecker(svc.Directory(), build.Version, build.GitCommit)

	apiKeyHeader := middleware.HeaderParam(key.Header())
	protect := func(h http.HandlerFunc, query ...string) http.Handler {
		fields := []middleware.Field{apiKeyHeader}
		for _, name := range query {
			fields = append(fields, middleware.QueryParam(name))
		}
		return middleware.RequireFields(env, fields...)(middleware.APIKeyAuth(key, env)(h))
	}

	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, middleware.RouteSpan(h))
	}

	handle("GET /{$}", http.HandlerFunc(topicsHandler.Root))
	handle("GET /search", protect(topicsHandler.Search, "q"))
	handle("GET /summarize", protect(topicsHandler.Summarize, "topic"))
	handle("GET /all", protect(topicsHandler.All))

	handle("GET /healthz", http.HandlerFunc(health.Healthz))
	handle("GET /readyz", http.HandlerFunc(health.Readyz))
	handle("GET /version", VersionHandler(build))
	handle("GET /openapi.json", OpenAPIHandler(env))
	handle("GET /metrics", metrics.Handler())

	var h http.Handler = metrics.HTTPMiddleware(mux)
	h = middleware.RequestSize(middleware.DefaultMaxBodySize, env)(h)
	h = middleware.CORS(cfg.CORS, logger)(h)
	h = middleware.SecurityHeaders(env == "production")(h)
	h = middleware.RequestLogging(logger)(h)
	h = middleware.CorrelationID(logger)(h)
	h = middleware.Tracing(h)
	return h
}
