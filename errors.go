package hopsworks

import (
	"errors"
	"fmt"
)

// Common errors returned by the SDK. These can be used with errors.Is()
// to check for specific error conditions.
//
// Example:
//
//	key, err := resolver.APIKey(ctx, "demo", "api-key")
//	if errors.Is(err, hopsworks.ErrSecretNotFound) {
//	    // No secret provisioned for this project/role pair
//	}
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingEnvVar is returned when a required environment variable is
	// not set in the execution environment.
	ErrMissingEnvVar = errors.New("missing environment variable")

	// ErrInvalidEndpoint is returned when the REST endpoint cannot be split
	// into a host:port pair.
	ErrInvalidEndpoint = errors.New("invalid endpoint format")

	// ErrAssumedRole is returned when the caller identity ARN does not have
	// the assumed-role shape the platform expects.
	ErrAssumedRole = errors.New("failed to extract assumed role")

	// ErrSecretNotFound is returned when no secret exists under the derived
	// project/role name.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrSecretKeyNotFound is returned when the secret exists but does not
	// contain the requested key.
	ErrSecretKeyNotFound = errors.New("key not found in secret")

	// ErrMalformedCert is returned when certificate material is not valid
	// base64.
	ErrMalformedCert = errors.New("malformed certificate material")
)

// EnvVarError reports a required environment variable that was absent when
// the configuration was loaded, or an optional one that turned out to be
// needed by the operation being performed.
type EnvVarError struct {
	// Name is the environment variable that was not set.
	Name string
}

// Error implements the error interface.
func (e *EnvVarError) Error() string {
	return fmt.Sprintf("environment variable %s is not set", e.Name)
}

// Unwrap allows errors.Is(err, ErrMissingEnvVar).
func (e *EnvVarError) Unwrap() error {
	return ErrMissingEnvVar
}

// EndpointError reports a REST endpoint string that could not be parsed
// into a host:port pair.
type EndpointError struct {
	// Endpoint is the offending endpoint string.
	Endpoint string
	// Reason describes what was wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *EndpointError) Error() string {
	return fmt.Sprintf("invalid endpoint %q: %s", e.Endpoint, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidEndpoint).
func (e *EndpointError) Unwrap() error {
	return ErrInvalidEndpoint
}

// AssumedRoleError reports a caller identity ARN that does not match the
// arn:...:assumed-role/<role>/<session> shape.
type AssumedRoleError struct {
	// ARN is the identity ARN returned by STS.
	ARN string
}

// Error implements the error interface.
func (e *AssumedRoleError) Error() string {
	return fmt.Sprintf("failed to extract assumed role from arn: %s", e.ARN)
}

// Unwrap allows errors.Is(err, ErrAssumedRole).
func (e *AssumedRoleError) Unwrap() error {
	return ErrAssumedRole
}

// SecretError reports a failed secret lookup: either the secret itself is
// missing or a key inside its JSON value is.
type SecretError struct {
	// Name is the secret name that was looked up.
	Name string
	// Key is the JSON key inside the secret value, empty when the whole
	// secret was missing.
	Key string

	sentinel error
}

func newSecretNotFound(name string) *SecretError {
	return &SecretError{Name: name, sentinel: ErrSecretNotFound}
}

func newSecretKeyNotFound(name, key string) *SecretError {
	return &SecretError{Name: name, Key: key, sentinel: ErrSecretKeyNotFound}
}

// Error implements the error interface.
func (e *SecretError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("key %q not found in secret %q", e.Key, e.Name)
	}
	return fmt.Sprintf("secret %q not found", e.Name)
}

// Unwrap allows errors.Is against ErrSecretNotFound / ErrSecretKeyNotFound.
func (e *SecretError) Unwrap() error {
	return e.sentinel
}

// CertDecodeError reports certificate material that was not valid base64.
type CertDecodeError struct {
	// Err is the underlying decoding error.
	Err error
}

// Error implements the error interface.
func (e *CertDecodeError) Error() string {
	return fmt.Sprintf("decoding certificate material: %v", e.Err)
}

// Unwrap returns the underlying decode error.
func (e *CertDecodeError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is(err, ErrMalformedCert).
func (e *CertDecodeError) Is(target error) bool {
	return target == ErrMalformedCert
}
