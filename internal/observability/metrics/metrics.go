package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joblynk_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "joblynk_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	jobsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "joblynk_jobs_created_total",
		Help: "Jobs created by recruiters",
	})

	jobsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "joblynk_jobs_expired_total",
		Help: "Active jobs moved to expired by the expiry worker",
	})

	applicationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "joblynk_applications_created_total",
		Help: "Applications submitted by seekers",
	})

	applicationStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joblynk_application_status_changes_total",
		Help: "Application status updates by target status",
	}, []string{"status"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joblynk_cache_lookups_total",
		Help: "Job detail cache lookups by result",
	}, []string{"result"})
)

func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func IncJobsCreated() { jobsCreated.Inc() }

func AddJobsExpired(n int) {
	if n > 0 {
		jobsExpired.Add(float64(n))
	}
}

func IncApplicationsCreated() { applicationsCreated.Inc() }

func IncApplicationStatusChange(status string) {
	applicationStatusChanges.WithLabelValues(status).Inc()
}

// ApplicationStatusChanges exposes the counter for one target status.
func ApplicationStatusChanges(status string) prometheus.Counter {
	return applicationStatusChanges.WithLabelValues(status)
}

// ObserveCache records a lookup with result hit, miss or error.
func ObserveCache(result string) { cacheLookups.WithLabelValues(result).Inc() }

func Handler() http.Handler { return promhttp.Handler() }
