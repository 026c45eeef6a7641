package hopsworks

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBase64Cert_RoundTrip(t *testing.T) {
	raw := []byte{0x30, 0x82, 0x01, 0x0a, 0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	encoded := base64.StdEncoding.EncodeToString(raw)
	path := filepath.Join(t.TempDir(), "keyStore.pem")

	require.NoError(t, WriteBase64Cert(encoded, path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, written)
	// Re-encoding the file contents reproduces the original input.
	assert.Equal(t, encoded, base64.StdEncoding.EncodeToString(written))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteBase64Cert_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trustStore.pem")
	require.NoError(t, os.WriteFile(path, []byte("previous material that is longer"), 0o600))

	encoded := base64.StdEncoding.EncodeToString([]byte("new"))
	require.NoError(t, WriteBase64Cert(encoded, path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), written)
}

func TestWriteBase64Cert_MalformedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyStore.pem")

	err := WriteBase64Cert("not!!valid%%base64", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedCert)

	var decodeErr *CertDecodeError
	assert.ErrorAs(t, err, &decodeErr)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file must be created on malformed input")
}

func TestWriteBase64Cert_WriteFailure(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("material"))
	err := WriteBase64Cert(encoded, filepath.Join(t.TempDir(), "missing", "dir", "keyStore.pem"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedCert)
}
