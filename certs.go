package hopsworks

import (
	"encoding/base64"
	"fmt"
	"os"
)

// WriteBase64Cert decodes base64-encoded certificate material and writes
// the raw bytes to path, creating or truncating the file. The file is
// created with mode 0600 since it holds key material.
//
// Malformed base64 input returns an error wrapping ErrMalformedCert and
// leaves the target file untouched. Write failures return the wrapped
// filesystem error.
//
// Example:
//
//	err := hopsworks.WriteBase64Cert(keyStoreB64, hopsworks.KeyStoreFile)
func WriteBase64Cert(encoded, path string) error {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return &CertDecodeError{Err: err}
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("writing certificate to %s: %w", path, err)
	}
	return nil
}
