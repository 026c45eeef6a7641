package hopsworks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/aws/aws-sdk-go/service/sts/stsiface"
)

// APIKeyResolver resolves the platform API key attached to outgoing REST
// requests. The default implementation is SecretResolver; tests and
// non-AWS deployments can plug in their own via Config.WithResolver.
type APIKeyResolver interface {
	// APIKey returns the API key for the project, looked up under secretKey
	// inside the project's secret value.
	APIKey(ctx context.Context, projectName, secretKey string) (string, error)
}

// SecretResolver resolves API keys from AWS Secrets Manager using the
// caller's assumed execution role.
//
// Every call re-derives the role from the caller identity and re-fetches
// the secret; nothing is cached, so a rotated key is picked up on the next
// call at the cost of two AWS round trips per resolution. This is a
// low-frequency control-plane path, so correctness wins over efficiency.
type SecretResolver struct {
	sts      stsiface.STSAPI
	secrets  secretsmanageriface.SecretsManagerAPI
	observer Observer
}

// NewSecretResolver builds a resolver from the ambient AWS credential chain.
//
// The Secrets Manager region is the configured one unless it is empty or the
// "default" sentinel, in which case the ambient session's region applies —
// mirroring how the platform provisions managed workloads.
func NewSecretResolver(cfg *Config) (*SecretResolver, error) {
	sess, err := session.NewSession()
	if err != nil {
		return nil, fmt.Errorf("creating AWS session: %w", err)
	}

	region := resolveRegion(cfg.Region, aws.StringValue(sess.Config.Region))

	observer := cfg.Observer
	if observer == nil {
		observer = &NoopObserver{}
	}

	return &SecretResolver{
		sts:      sts.New(sess),
		secrets:  secretsmanager.New(sess, aws.NewConfig().WithRegion(region)),
		observer: observer,
	}, nil
}

// resolveRegion picks the explicit region unless it is unset or the
// deployment sentinel, falling back to the ambient session region.
func resolveRegion(configured, ambient string) string {
	if configured != "" && configured != defaultRegionSentinel {
		return configured
	}
	return ambient
}

// APIKey implements APIKeyResolver.
//
// The secret name is derived from the project and the caller's assumed
// role: hopsworks/project/<project>/role/<role>. The secret value must be a
// JSON object; the value under secretKey (default "api-key" when empty) is
// returned.
func (r *SecretResolver) APIKey(ctx context.Context, projectName, secretKey string) (string, error) {
	if secretKey == "" {
		secretKey = DefaultAPIKeySecret
	}

	identity, err := r.sts.GetCallerIdentityWithContext(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("resolving caller identity: %w", err)
	}

	role, err := parseAssumedRole(aws.StringValue(identity.Arn))
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf(secretNameFormat, projectName, role)

	start := time.Now()
	value, err := r.secrets.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	r.observer.OnSecretFetch(name, time.Since(start), err)
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == secretsmanager.ErrCodeResourceNotFoundException {
			return "", newSecretNotFound(name)
		}
		return "", fmt.Errorf("fetching secret %q: %w", name, err)
	}

	var kv map[string]string
	if err := json.Unmarshal([]byte(aws.StringValue(value.SecretString)), &kv); err != nil {
		return "", fmt.Errorf("secret %q is not a JSON object: %w", name, err)
	}

	key, ok := kv[secretKey]
	if !ok {
		return "", newSecretKeyNotFound(name, secretKey)
	}
	return key, nil
}

// parseAssumedRole extracts the role name from a caller identity ARN.
//
// ARNs for assumed roles follow the schema
// arn:aws:sts::123456789012:assumed-role/my-role-name/my-session-name;
// the segment after the last colon must split into exactly three parts with
// "assumed-role" first.
func parseAssumedRole(arn string) (string, error) {
	local := arn
	if i := strings.LastIndex(local, ":"); i >= 0 {
		local = local[i+1:]
	}
	parts := strings.Split(local, "/")
	if len(parts) != 3 || parts[0] != "assumed-role" {
		return "", &AssumedRoleError{ARN: arn}
	}
	return parts[1], nil
}
