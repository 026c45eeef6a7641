package hopsworks

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// QueryConnection builds a connection pool to the platform's SQL query
// engine for the given database (typically a feature store).
//
// The pool targets the REST endpoint host on the fixed query-engine port
// and authenticates with client certificates: the CA bundle is read from
// trustStore.pem and the client certificate plus private key from
// keyStore.pem in the working directory, with the configured CERT_KEY
// password applied when the key is PEM-encrypted. Certificate material is
// usually placed there beforehand via WriteBase64Cert.
//
// Construction is pure: no connection is dialed and no query runs until the
// pool is first used. The caller owns the returned pool and must Close it.
//
// Example:
//
//	pool, err := client.QueryConnection(ctx, "demo_featurestore")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//	rows, err := pool.Query(ctx, "SELECT * FROM games_features")
func (c *Client) QueryConnection(ctx context.Context, database string) (*pgxpool.Pool, error) {
	if c.config.CertKey == "" {
		return nil, &EnvVarError{Name: EnvCertKey}
	}
	host, _, err := c.config.HostPort()
	if err != nil {
		return nil, err
	}

	tlsConfig, err := queryTLSConfig(TrustStoreFile, KeyStoreFile, c.config.CertKey, host)
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("postgres://%s@%s:%d/%s",
		url.PathEscape(c.config.ProjectName), host, QueryEnginePort, url.PathEscape(database))
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("building query engine config: %w", err)
	}

	poolConfig.ConnConfig.TLSConfig = tlsConfig
	poolConfig.MaxConns = c.config.QueryPoolConfig.MaxConns
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = c.config.QueryPoolConfig.MaxConnLifetime
	poolConfig.MaxConnIdleTime = c.config.QueryPoolConfig.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating query engine pool: %w", err)
	}
	return pool, nil
}

// queryTLSConfig assembles the mutual-TLS configuration for the query
// engine from the truststore and keystore files.
func queryTLSConfig(trustStore, keyStore, password, serverName string) (*tls.Config, error) {
	caPEM, err := os.ReadFile(trustStore)
	if err != nil {
		return nil, fmt.Errorf("reading truststore %s: %w", trustStore, err)
	}
	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("truststore %s contains no certificates", trustStore)
	}

	cert, err := loadKeyStore(keyStore, password)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		RootCAs:      roots,
		Certificates: []tls.Certificate{cert},
		ServerName:   serverName,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// loadKeyStore reads the client certificate and private key from a single
// PEM bundle. The private key block may be PEM-encrypted with the cert key
// password; that legacy encryption scheme matches the material the platform
// ships alongside JVM keystores.
func loadKeyStore(path, password string) (tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("reading keystore %s: %w", path, err)
	}

	var certPEM, keyPEM []byte
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		switch {
		case block.Type == "CERTIFICATE":
			certPEM = append(certPEM, pem.EncodeToMemory(block)...)
		case strings.HasSuffix(block.Type, "PRIVATE KEY"):
			if x509.IsEncryptedPEMBlock(block) {
				der, err := x509.DecryptPEMBlock(block, []byte(password))
				if err != nil {
					return tls.Certificate{}, fmt.Errorf("decrypting keystore key: %w", err)
				}
				block = &pem.Block{Type: block.Type, Bytes: der}
			}
			keyPEM = append(keyPEM, pem.EncodeToMemory(block)...)
		}
	}

	if len(certPEM) == 0 || len(keyPEM) == 0 {
		return tls.Certificate{}, fmt.Errorf("keystore %s is missing certificate or key", path)
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("loading keystore %s: %w", path, err)
	}
	return cert, nil
}
