package hopsworks

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusObserver(t *testing.T) {
	registry := prometheus.NewRegistry()
	obs := NewPrometheusObserver(registry)

	obs.OnRequestEnd("GET", "/res", 200, 25*time.Millisecond, nil)
	obs.OnRequestEnd("GET", "/res", 0, 5*time.Millisecond, errors.New("dial failed"))
	obs.OnAuthRetry("GET", "/res")
	obs.OnAuthRetry("GET", "/res")
	obs.OnSecretFetch("hopsworks/project/demo/role/r", time.Millisecond, nil)
	obs.OnSecretFetch("hopsworks/project/demo/role/r", time.Millisecond, errors.New("throttled"))

	assert.Equal(t, float64(1), testutil.ToFloat64(obs.requests.WithLabelValues("GET", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(obs.requests.WithLabelValues("GET", "error")))
	assert.Equal(t, float64(2), testutil.ToFloat64(obs.authRetries))
	assert.Equal(t, float64(1), testutil.ToFloat64(obs.secretFetches.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(obs.secretFetches.WithLabelValues("error")))
}

func TestPrometheusObserver_IntegratesWithClient(t *testing.T) {
	registry := prometheus.NewRegistry()
	obs := NewPrometheusObserver(registry)

	// Drive through the Observer interface to make sure the wiring holds.
	var observer Observer = obs
	observer.OnRequestStart("POST", "/featurestores")
	observer.OnRequestEnd("POST", "/featurestores", 201, time.Millisecond, nil)

	families, err := registry.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}
