package hopsworks

import (
	"os"
	"time"
)

// Config holds the configuration for the Hopsworks client. It replaces the
// ambient environment lookups of older client libraries with an explicit
// value constructed once at process start and threaded through every
// operation, which keeps the SDK free of hidden global state and makes it
// trivial to test against mock configurations.
//
// Configuration can be built from the platform environment and then adjusted
// with the fluent builder pattern:
//
//	config, err := hopsworks.ConfigFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	config = config.
//	    WithTimeout(10 * time.Second).
//	    WithObserver(hopsworks.NewLogObserver(logrus.StandardLogger()))
//
//	client, err := hopsworks.NewClient(config)
type Config struct {
	// ProjectID is the numeric id of the current project. Required.
	ProjectID string

	// ProjectName is the name of the current project. Required; it is part
	// of the secret name the API key is resolved from.
	ProjectName string

	// Endpoint is the REST API endpoint as host:port, optionally prefixed
	// with a scheme. Optional at load time: operations that need it return
	// an error when it is empty.
	Endpoint string

	// Region is the AWS region the platform secrets live in. The sentinel
	// value "default" (or an empty string) defers to the ambient session
	// region.
	Region string

	// CertKey is the password protecting the certificate key material used
	// for query-engine authentication. Only required by QueryConnection.
	CertKey string

	// APIKeySecret is the key looked up inside the project secret.
	// Default: "api-key"
	APIKeySecret string

	// Timeout is the HTTP request timeout, covering connection time,
	// redirects and reading the response body.
	// Default: 30s
	Timeout time.Duration

	// TransportConfig holds HTTP transport settings.
	TransportConfig TransportConfig

	// QueryPoolConfig holds query-engine connection pool settings.
	QueryPoolConfig QueryPoolConfig

	// Resolver resolves the API key attached to outgoing requests.
	// If nil, a SecretResolver backed by STS and Secrets Manager is used.
	Resolver APIKeyResolver

	// Observer for monitoring operations. If nil, NoopObserver is used.
	Observer Observer
}

// TransportConfig holds HTTP transport configuration for connection pooling.
type TransportConfig struct {
	// MaxIdleConns controls the maximum number of idle connections across
	// all hosts. Zero means no limit.
	// Default: 100
	MaxIdleConns int

	// MaxConnsPerHost controls the maximum connections per host.
	// Default: 10
	MaxConnsPerHost int

	// IdleConnTimeout is the maximum time an idle connection will remain
	// idle before closing itself.
	// Default: 90s
	IdleConnTimeout time.Duration
}

// QueryPoolConfig holds connection pool settings for the query engine.
type QueryPoolConfig struct {
	// MaxConns is the maximum pool size. Default: 10
	MaxConns int32

	// MaxConnLifetime bounds the age of a pooled connection. Default: 1h
	MaxConnLifetime time.Duration

	// MaxConnIdleTime bounds how long a connection may sit idle.
	// Default: 30m
	MaxConnIdleTime time.Duration
}

// ConfigFromEnv builds a Config from the environment variables the platform
// sets on managed workloads. HOPSWORKS_PROJECT_ID and HOPSWORKS_PROJECT_NAME
// are required; the remaining variables are optional and checked by the
// operations that need them.
//
// Example:
//
//	config, err := hopsworks.ConfigFromEnv()
//	if errors.Is(err, hopsworks.ErrMissingEnvVar) {
//	    log.Fatal("not running inside a Hopsworks-managed environment")
//	}
func ConfigFromEnv() (*Config, error) {
	projectID := os.Getenv(EnvProjectID)
	if projectID == "" {
		return nil, &EnvVarError{Name: EnvProjectID}
	}
	projectName := os.Getenv(EnvProjectName)
	if projectName == "" {
		return nil, &EnvVarError{Name: EnvProjectName}
	}

	cfg := defaults()
	cfg.ProjectID = projectID
	cfg.ProjectName = projectName
	cfg.Endpoint = os.Getenv(EnvRESTEndpoint)
	cfg.Region = os.Getenv(EnvRegionName)
	cfg.CertKey = os.Getenv(EnvCertKey)
	return cfg, nil
}

// NewConfig returns a Config with default settings for the given project.
// Use this instead of ConfigFromEnv when running outside a platform-managed
// environment.
func NewConfig(projectID, projectName string) *Config {
	cfg := defaults()
	cfg.ProjectID = projectID
	cfg.ProjectName = projectName
	return cfg
}

func defaults() *Config {
	return &Config{
		APIKeySecret: DefaultAPIKeySecret,
		Timeout:      30 * time.Second,
		TransportConfig: TransportConfig{
			MaxIdleConns:    100,
			MaxConnsPerHost: 10,
			IdleConnTimeout: 90 * time.Second,
		},
		QueryPoolConfig: QueryPoolConfig{
			MaxConns:        10,
			MaxConnLifetime: 1 * time.Hour,
			MaxConnIdleTime: 30 * time.Minute,
		},
		Observer: &NoopObserver{},
	}
}

// WithEndpoint sets the REST API endpoint.
func (c *Config) WithEndpoint(endpoint string) *Config {
	c.Endpoint = endpoint
	return c
}

// WithRegion sets the AWS region the platform secrets live in.
func (c *Config) WithRegion(region string) *Config {
	c.Region = region
	return c
}

// WithCertKey sets the certificate key password used by QueryConnection.
func (c *Config) WithCertKey(certKey string) *Config {
	c.CertKey = certKey
	return c
}

// WithAPIKeySecret sets the key looked up inside the project secret, e.g.
// "api-key" or "cert-key".
func (c *Config) WithAPIKeySecret(key string) *Config {
	c.APIKeySecret = key
	return c
}

// WithTimeout sets the request timeout for all REST operations.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithResolver sets a custom API key resolver. Useful for tests and for
// deployments that keep the API key outside Secrets Manager.
func (c *Config) WithResolver(resolver APIKeyResolver) *Config {
	c.Resolver = resolver
	return c
}

// WithObserver sets a custom observer for monitoring SDK operations.
func (c *Config) WithObserver(observer Observer) *Config {
	c.Observer = observer
	return c
}

// Validate validates the configuration and sets defaults for missing values.
// This is called automatically by NewClient.
func (c *Config) Validate() error {
	if c.ProjectName == "" {
		return ErrInvalidConfig
	}
	if c.APIKeySecret == "" {
		c.APIKeySecret = DefaultAPIKeySecret
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.TransportConfig.MaxIdleConns <= 0 {
		c.TransportConfig.MaxIdleConns = 100
	}
	if c.TransportConfig.MaxConnsPerHost <= 0 {
		c.TransportConfig.MaxConnsPerHost = 10
	}
	if c.TransportConfig.IdleConnTimeout <= 0 {
		c.TransportConfig.IdleConnTimeout = 90 * time.Second
	}
	if c.QueryPoolConfig.MaxConns <= 0 {
		c.QueryPoolConfig.MaxConns = 10
	}
	if c.QueryPoolConfig.MaxConnLifetime <= 0 {
		c.QueryPoolConfig.MaxConnLifetime = 1 * time.Hour
	}
	if c.QueryPoolConfig.MaxConnIdleTime <= 0 {
		c.QueryPoolConfig.MaxConnIdleTime = 30 * time.Minute
	}
	if c.Observer == nil {
		c.Observer = &NoopObserver{}
	}
	return nil
}

// HostPort parses the configured endpoint into a host and port pair.
// It returns an error wrapping ErrMissingEnvVar when no endpoint is
// configured, and ErrInvalidEndpoint when the endpoint cannot be parsed.
func (c *Config) HostPort() (string, int, error) {
	if c.Endpoint == "" {
		return "", 0, &EnvVarError{Name: EnvRESTEndpoint}
	}
	return ParseHostPort(c.Endpoint)
}
