package hopsworks

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Observer provides hooks for monitoring SDK operations. Implement this
// interface to track request rates, auth retries or secret fetches, or use
// one of the bundled implementations (NewLogObserver, NewPrometheusObserver).
//
// Observer methods should be fast and non-blocking; they are called inline
// on the request path.
type Observer interface {
	// OnRequestStart is called when a REST request starts.
	OnRequestStart(method, resource string)

	// OnRequestEnd is called when a REST request completes, after any auth
	// retry. status is 0 when the exchange failed before a response was
	// read; err is nil on success.
	OnRequestEnd(method, resource string, status int, duration time.Duration, err error)

	// OnAuthRetry is called when a 401 response triggers the single
	// re-authentication retry.
	OnAuthRetry(method, resource string)

	// OnSecretFetch is called after each Secrets Manager lookup, successful
	// or not.
	OnSecretFetch(secretName string, duration time.Duration, err error)
}

// NoopObserver is a no-op implementation of Observer. It is the default
// observer used when none is configured.
type NoopObserver struct{}

// OnRequestStart does nothing.
func (n *NoopObserver) OnRequestStart(method, resource string) {}

// OnRequestEnd does nothing.
func (n *NoopObserver) OnRequestEnd(method, resource string, status int, duration time.Duration, err error) {
}

// OnAuthRetry does nothing.
func (n *NoopObserver) OnAuthRetry(method, resource string) {}

// OnSecretFetch does nothing.
func (n *NoopObserver) OnSecretFetch(secretName string, duration time.Duration, err error) {}

// LogObserver logs SDK operations through a logrus logger. Request
// completions log at debug level, failures and auth retries at warn.
//
// Example:
//
//	logger := logrus.New()
//	logger.SetLevel(logrus.DebugLevel)
//	config = config.WithObserver(hopsworks.NewLogObserver(logger))
type LogObserver struct {
	logger logrus.FieldLogger
}

// NewLogObserver creates an observer that logs through the given logger.
// Passing nil uses the logrus standard logger.
func NewLogObserver(logger logrus.FieldLogger) *LogObserver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogObserver{logger: logger}
}

// OnRequestStart logs the start of a request at debug level.
func (o *LogObserver) OnRequestStart(method, resource string) {
	o.logger.WithFields(logrus.Fields{
		"method":   method,
		"resource": resource,
	}).Debug("hopsworks request start")
}

// OnRequestEnd logs the completed request.
func (o *LogObserver) OnRequestEnd(method, resource string, status int, duration time.Duration, err error) {
	entry := o.logger.WithFields(logrus.Fields{
		"method":   method,
		"resource": resource,
		"status":   status,
		"duration": duration,
	})
	if err != nil {
		entry.WithError(err).Warn("hopsworks request failed")
		return
	}
	entry.Debug("hopsworks request done")
}

// OnAuthRetry logs the 401 retry at warn level.
func (o *LogObserver) OnAuthRetry(method, resource string) {
	o.logger.WithFields(logrus.Fields{
		"method":   method,
		"resource": resource,
	}).Warn("hopsworks request unauthorized, retrying with fresh API key")
}

// OnSecretFetch logs the Secrets Manager lookup.
func (o *LogObserver) OnSecretFetch(secretName string, duration time.Duration, err error) {
	entry := o.logger.WithFields(logrus.Fields{
		"secret":   secretName,
		"duration": duration,
	})
	if err != nil {
		entry.WithError(err).Warn("secret fetch failed")
		return
	}
	entry.Debug("secret fetched")
}

// CompositeObserver fans out to multiple observers, calling each in order.
//
// Example:
//
//	config = config.WithObserver(hopsworks.NewCompositeObserver(
//	    hopsworks.NewLogObserver(logger),
//	    promObserver,
//	))
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an observer that delegates to the given
// observers.
func NewCompositeObserver(observers ...Observer) Observer {
	return &CompositeObserver{observers: observers}
}

// OnRequestStart notifies all observers.
func (c *CompositeObserver) OnRequestStart(method, resource string) {
	for _, obs := range c.observers {
		obs.OnRequestStart(method, resource)
	}
}

// OnRequestEnd notifies all observers.
func (c *CompositeObserver) OnRequestEnd(method, resource string, status int, duration time.Duration, err error) {
	for _, obs := range c.observers {
		obs.OnRequestEnd(method, resource, status, duration, err)
	}
}

// OnAuthRetry notifies all observers.
func (c *CompositeObserver) OnAuthRetry(method, resource string) {
	for _, obs := range c.observers {
		obs.OnAuthRetry(method, resource)
	}
}

// OnSecretFetch notifies all observers.
func (c *CompositeObserver) OnSecretFetch(secretName string, duration time.Duration, err error) {
	for _, obs := range c.observers {
		obs.OnSecretFetch(secretName, duration, err)
	}
}
