// Package hopsworks provides a Go client helper library for the Hopsworks
// feature-store platform. It covers the boundary glue a managed workload
// needs to talk to the platform: authenticated REST dispatch, API key
// resolution from AWS Secrets Manager via the caller's assumed role, query
// engine connections with certificate authentication, and certificate
// materialization.
//
// # Features
//
//   - Explicit configuration loaded once from the platform environment,
//     no hidden globals
//   - Plain or TLS 1.2 REST connections with lazy dialing and pooling
//   - ApiKey authorization injected per request, with a single automatic
//     retry on 401 to cover key-propagation races
//   - Assumed-role based secret resolution, fetched fresh on every call so
//     key rotation is picked up immediately
//   - Query-engine connection pools (pgx) with mutual TLS
//   - Observer hooks with logrus and Prometheus implementations
//
// # Basic Usage
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//	    "net/http"
//
//	    hopsworks "github.com/logicalclocks/hopsworks-go-sdk"
//	)
//
//	func main() {
//	    config, err := hopsworks.ConfigFromEnv()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    client, err := hopsworks.NewClient(config)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    conn, err := client.NewConnection(true)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer conn.Close()
//
//	    resp, err := client.SendRequest(context.Background(), conn,
//	        http.MethodGet, "/hopsworks-api/api/project", nil, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if resp.StatusCode != http.StatusOK {
//	        restErr := resp.RESTError()
//	        log.Fatalf("request failed: %v", restErr)
//	    }
//	}
//
// # Error Handling
//
// Failures surface as sentinel errors checkable with errors.Is
// (ErrMissingEnvVar, ErrInvalidEndpoint, ErrAssumedRole, ErrSecretNotFound,
// ErrSecretKeyNotFound, ErrMalformedCert) carried by typed errors that hold
// the offending input (errors.As with *EnvVarError, *EndpointError,
// *AssumedRoleError, *SecretError, *CertDecodeError). Nothing is recovered
// internally except the single 401 retry in SendRequest; every other
// failure propagates to the caller unmodified.
//
// # Concurrency
//
// The Client, Connection and all bundled observers are safe for concurrent
// use. Connections are owned by the caller: the SDK only sends requests
// through them and never closes them.
package hopsworks
