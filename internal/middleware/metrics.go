package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command errors by operation name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pethealth_redis_errors_total",
	Help: "Total number of Redis errors by operation",
}, []string{"operation"})

// PhotoJobsProcessed counts photo worker outcomes.
var PhotoJobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pethealth_photo_jobs_total",
	Help: "Total number of photo processing jobs by outcome",
}, []string{"outcome"})

// InitMetrics creates the Prometheus request-metrics middleware for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
