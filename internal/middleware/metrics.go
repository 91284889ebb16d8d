package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devlink_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheResults counts cache-aside lookups by key prefix and outcome (hit/miss).
	CacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devlink_cache_results_total",
		Help: "Cache-aside lookup results by key prefix and outcome",
	}, []string{"prefix", "outcome"})

	// GithubLookups counts outbound GitHub repository lookups by outcome.
	GithubLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devlink_github_lookups_total",
		Help: "Outbound GitHub repository lookups by outcome",
	}, []string{"outcome"})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The middleware registers into the default registry, so repeated
// calls (one server per test) reuse the first instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware returns the request-level Prometheus middleware handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
