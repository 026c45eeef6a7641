package hopsworks

import (
	"strconv"
	"strings"
)

// ParseHostPort splits a REST endpoint string into its host and port.
//
// Endpoints may carry a scheme prefix ("https://hopsworks.ai:443") or not
// ("hopsworks.ai:443"); both spellings parse identically. The scheme is
// detected by substring match on "http" and stripped by keeping everything
// after the last slash, matching how the platform's other client libraries
// treat the REST_ENDPOINT value.
//
// A string that does not split into exactly host and port, or whose port is
// not a positive integer, yields an error wrapping ErrInvalidEndpoint.
//
// Example:
//
//	host, port, err := hopsworks.ParseHostPort("https://hopsworks.ai:443")
//	// host == "hopsworks.ai", port == 443
func ParseHostPort(endpoint string) (string, int, error) {
	trimmed := endpoint
	if strings.Contains(trimmed, "http") {
		if i := strings.LastIndex(trimmed, "/"); i >= 0 {
			trimmed = trimmed[i+1:]
		}
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 {
		return "", 0, &EndpointError{Endpoint: endpoint, Reason: "expected host:port"}
	}
	if parts[0] == "" {
		return "", 0, &EndpointError{Endpoint: endpoint, Reason: "empty host"}
	}

	port, err := strconv.Atoi(parts[1])
	if err != nil || port <= 0 {
		return "", 0, &EndpointError{Endpoint: endpoint, Reason: "invalid port " + strconv.Quote(parts[1])}
	}
	return parts[0], port, nil
}
