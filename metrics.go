package hopsworks

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusObserver exports SDK operation metrics to a Prometheus
// registerer. It tracks request counts and latencies per method, the number
// of 401 re-authentication retries and Secrets Manager fetch outcomes.
//
// Example:
//
//	obs := hopsworks.NewPrometheusObserver(prometheus.DefaultRegisterer)
//	config = config.WithObserver(obs)
type PrometheusObserver struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	authRetries   prometheus.Counter
	secretFetches *prometheus.CounterVec
}

// NewPrometheusObserver creates and registers the SDK metrics on reg.
// Passing nil registers on the default registerer.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusObserver{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hopsworks",
			Subsystem: "sdk",
			Name:      "requests_total",
			Help:      "REST requests issued, by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hopsworks",
			Subsystem: "sdk",
			Name:      "request_duration_seconds",
			Help:      "REST request latency, including the auth retry when taken.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		authRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hopsworks",
			Subsystem: "sdk",
			Name:      "auth_retries_total",
			Help:      "Requests retried once after a 401 response.",
		}),
		secretFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hopsworks",
			Subsystem: "sdk",
			Name:      "secret_fetches_total",
			Help:      "Secrets Manager lookups, by outcome.",
		}, []string{"outcome"}),
	}
}

// OnRequestStart implements Observer.
func (p *PrometheusObserver) OnRequestStart(method, resource string) {}

// OnRequestEnd implements Observer.
func (p *PrometheusObserver) OnRequestEnd(method, resource string, status int, duration time.Duration, err error) {
	p.requests.WithLabelValues(method, outcome(err)).Inc()
	p.duration.WithLabelValues(method).Observe(duration.Seconds())
}

// OnAuthRetry implements Observer.
func (p *PrometheusObserver) OnAuthRetry(method, resource string) {
	p.authRetries.Inc()
}

// OnSecretFetch implements Observer.
func (p *PrometheusObserver) OnSecretFetch(secretName string, duration time.Duration, err error) {
	p.secretFetches.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
