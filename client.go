package hopsworks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the entry point of the SDK. It carries the explicit
// configuration, the API key resolver and the observer, and dispatches
// authenticated requests over caller-owned Connections.
//
// All methods are safe for concurrent use.
//
// Example:
//
//	config, err := hopsworks.ConfigFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := hopsworks.NewClient(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conn, err := client.NewConnection(true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	resp, err := client.SendRequest(ctx, conn, http.MethodGet,
//	    "/hopsworks-api/api/project", nil, nil)
type Client struct {
	config   *Config
	resolver APIKeyResolver
	observer Observer
}

// Response is the materialized result of a REST exchange. The HTTP body has
// been fully read and closed, so a Response can be inspected after the
// underlying connection moved on to other requests.
type Response struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// Body is the raw response body.
	Body []byte
}

// RESTError decodes the platform error envelope carried in the response
// body. It is total: a body that is not a JSON object yields the default
// envelope (code -1, empty messages).
func (r *Response) RESTError() RESTError {
	return DecodeRESTError(r.Body)
}

// NewClient creates a new Hopsworks client with the provided configuration.
//
// When no custom resolver is configured, a SecretResolver backed by STS and
// Secrets Manager is constructed; this reads ambient AWS configuration but
// performs no network calls until the first request is sent.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, ErrInvalidConfig
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	resolver := config.Resolver
	if resolver == nil {
		var err error
		resolver, err = NewSecretResolver(config)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		config:   config,
		resolver: resolver,
		observer: config.Observer,
	}, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() *Config { return c.config }

// SendRequest sends an authenticated request to the platform over conn.
//
// A fresh API key is resolved and injected as "Authorization: ApiKey <key>"
// on every send, overwriting any Authorization value in headers. If the
// platform answers 401 Unauthorized the key is resolved again and the
// request repeated exactly once, covering the window where a freshly issued
// key has not yet propagated; the second response is returned whatever its
// status. A persistently invalid key therefore costs two round trips per
// call site. No other status and no transport failure is retried; those
// propagate to the caller unmodified.
//
// A nil headers map is treated as empty. body may be nil for bodyless
// methods.
func (c *Client) SendRequest(ctx context.Context, conn *Connection, method, resource string, body []byte, headers map[string]string) (*Response, error) {
	if headers == nil {
		headers = make(map[string]string)
	}

	c.observer.OnRequestStart(method, resource)
	start := time.Now()

	resp, err := c.exchange(ctx, conn, method, resource, body, headers)
	if err == nil && resp.StatusCode == http.StatusUnauthorized {
		c.observer.OnAuthRetry(method, resource)
		resp, err = c.exchange(ctx, conn, method, resource, body, headers)
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.observer.OnRequestEnd(method, resource, status, time.Since(start), err)
	return resp, err
}

// exchange resolves the API key, issues a single request and reads the
// response to completion.
func (c *Client) exchange(ctx context.Context, conn *Connection, method, resource string, body []byte, headers map[string]string) (*Response, error) {
	if err := c.setAuthHeader(ctx, headers); err != nil {
		return nil, err
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, conn.url(resource), reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	httpResp, err := conn.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, nil
}

// setAuthHeader resolves the current API key and writes the Authorization
// header, replacing any existing value.
func (c *Client) setAuthHeader(ctx context.Context, headers map[string]string) error {
	key, err := c.resolver.APIKey(ctx, c.config.ProjectName, c.config.APIKeySecret)
	if err != nil {
		return err
	}
	headers[headerAuthorization] = apiKeyPrefix + key
	return nil
}
