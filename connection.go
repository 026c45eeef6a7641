package hopsworks

import (
	"crypto/tls"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Connection is a handle to the platform's REST endpoint. It wraps a pooled
// HTTP client bound to a single host:port pair; the underlying sockets are
// dialed lazily on first use, so constructing a Connection never touches the
// network and only fails on malformed endpoint input.
//
// A Connection is owned by the caller: the SDK neither opens nor closes it
// on your behalf. It is safe for concurrent use.
//
// Example:
//
//	conn, err := client.NewConnection(true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
type Connection struct {
	scheme string
	host   string
	port   int
	client *http.Client
}

// NewConnection builds a plain or TLS connection to the configured REST
// endpoint. When secure is true the connection negotiates TLS 1.2 or newer.
//
// Returns an error wrapping ErrMissingEnvVar when no endpoint is configured
// and ErrInvalidEndpoint when the endpoint does not parse as host:port.
func (c *Client) NewConnection(secure bool) (*Connection, error) {
	host, port, err := c.config.HostPort()
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		MaxIdleConns:        c.config.TransportConfig.MaxIdleConns,
		MaxConnsPerHost:     c.config.TransportConfig.MaxConnsPerHost,
		IdleConnTimeout:     c.config.TransportConfig.IdleConnTimeout,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	scheme := "http"
	if secure {
		scheme = "https"
		transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return &Connection{
		scheme: scheme,
		host:   host,
		port:   port,
		client: &http.Client{
			Transport: transport,
			Timeout:   c.config.Timeout,
		},
	}, nil
}

// Host returns the host the connection is bound to.
func (conn *Connection) Host() string { return conn.host }

// Port returns the port the connection is bound to.
func (conn *Connection) Port() int { return conn.port }

// Secure reports whether the connection uses TLS.
func (conn *Connection) Secure() bool { return conn.scheme == "https" }

// url builds the absolute URL for a resource path.
func (conn *Connection) url(resource string) string {
	if !strings.HasPrefix(resource, "/") {
		resource = "/" + resource
	}
	return conn.scheme + "://" + conn.host + ":" + strconv.Itoa(conn.port) + resource
}

// Close releases idle connections held by the pool. The Connection must not
// be used afterwards.
func (conn *Connection) Close() error {
	conn.client.CloseIdleConnections()
	return nil
}
