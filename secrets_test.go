package hopsworks

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/aws/aws-sdk-go/service/sts/stsiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSTS struct {
	stsiface.STSAPI
	arn string
	err error
}

func (f *fakeSTS) GetCallerIdentityWithContext(ctx aws.Context, in *sts.GetCallerIdentityInput, opts ...request.Option) (*sts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{Arn: aws.String(f.arn)}, nil
}

type fakeSecretsManager struct {
	secretsmanageriface.SecretsManagerAPI
	secretString string
	err          error
	gotSecretID  string
}

func (f *fakeSecretsManager) GetSecretValueWithContext(ctx aws.Context, in *secretsmanager.GetSecretValueInput, opts ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	f.gotSecretID = aws.StringValue(in.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.secretString)}, nil
}

const sagemakerARN = "arn:aws:sts::123456789012:assumed-role/hopsworks-demo-role/SageMaker"

func TestSecretResolver_APIKey(t *testing.T) {
	secrets := &fakeSecretsManager{secretString: `{"api-key": "s3cr3t", "cert-key": "other"}`}
	resolver := &SecretResolver{
		sts:      &fakeSTS{arn: sagemakerARN},
		secrets:  secrets,
		observer: &NoopObserver{},
	}

	key, err := resolver.APIKey(context.Background(), "demo", "api-key")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", key)
	assert.Equal(t, "hopsworks/project/demo/role/hopsworks-demo-role", secrets.gotSecretID)
}

func TestSecretResolver_APIKey_DefaultSecretKey(t *testing.T) {
	resolver := &SecretResolver{
		sts:      &fakeSTS{arn: sagemakerARN},
		secrets:  &fakeSecretsManager{secretString: `{"api-key": "s3cr3t"}`},
		observer: &NoopObserver{},
	}

	key, err := resolver.APIKey(context.Background(), "demo", "")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", key)
}

func TestSecretResolver_APIKey_SecretNotFound(t *testing.T) {
	resolver := &SecretResolver{
		sts: &fakeSTS{arn: sagemakerARN},
		secrets: &fakeSecretsManager{
			err: awserr.New(secretsmanager.ErrCodeResourceNotFoundException, "Secrets Manager can't find the specified secret.", nil),
		},
		observer: &NoopObserver{},
	}

	_, err := resolver.APIKey(context.Background(), "demo", "api-key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSecretNotFound)

	var secretErr *SecretError
	require.ErrorAs(t, err, &secretErr)
	assert.Equal(t, "hopsworks/project/demo/role/hopsworks-demo-role", secretErr.Name)
}

func TestSecretResolver_APIKey_KeyNotFound(t *testing.T) {
	resolver := &SecretResolver{
		sts:      &fakeSTS{arn: sagemakerARN},
		secrets:  &fakeSecretsManager{secretString: `{"cert-key": "other"}`},
		observer: &NoopObserver{},
	}

	_, err := resolver.APIKey(context.Background(), "demo", "api-key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSecretKeyNotFound)

	var secretErr *SecretError
	require.ErrorAs(t, err, &secretErr)
	assert.Equal(t, "api-key", secretErr.Key)
}

func TestSecretResolver_APIKey_SecretNotJSON(t *testing.T) {
	resolver := &SecretResolver{
		sts:      &fakeSTS{arn: sagemakerARN},
		secrets:  &fakeSecretsManager{secretString: "not json"},
		observer: &NoopObserver{},
	}

	_, err := resolver.APIKey(context.Background(), "demo", "api-key")
	assert.Error(t, err)
}

func TestSecretResolver_APIKey_BadARN(t *testing.T) {
	resolver := &SecretResolver{
		sts:      &fakeSTS{arn: "arn:aws:iam::123456789012:user/alice"},
		secrets:  &fakeSecretsManager{},
		observer: &NoopObserver{},
	}

	_, err := resolver.APIKey(context.Background(), "demo", "api-key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssumedRole)
}

func TestParseAssumedRole(t *testing.T) {
	tests := []struct {
		name string
		arn  string
		role string
	}{
		{"sagemaker", sagemakerARN, "hopsworks-demo-role"},
		{"generic", "arn:x:y:z:w:assumed-role/R/S", "R"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := parseAssumedRole(tt.arn)
			require.NoError(t, err)
			assert.Equal(t, tt.role, role)
		})
	}
}

func TestParseAssumedRole_Invalid(t *testing.T) {
	tests := []struct {
		name string
		arn  string
	}{
		{"iam user", "arn:aws:iam::123456789012:user/alice"},
		{"missing session", "arn:aws:sts::123456789012:assumed-role/my-role"},
		{"extra segment", "arn:aws:sts::123456789012:assumed-role/my-role/sess/extra"},
		{"wrong kind", "arn:aws:sts::123456789012:federated-user/my-role/sess"},
		{"empty", ""},
		{"no colons", "assumed-role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAssumedRole(tt.arn)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAssumedRole)

			var roleErr *AssumedRoleError
			require.ErrorAs(t, err, &roleErr)
			assert.Equal(t, tt.arn, roleErr.ARN)
		})
	}
}

func TestResolveRegion(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		ambient    string
		want       string
	}{
		{"explicit region wins", "eu-north-1", "us-east-1", "eu-north-1"},
		{"sentinel falls back to ambient", "default", "us-east-1", "us-east-1"},
		{"empty falls back to ambient", "", "us-east-1", "us-east-1"},
		{"sentinel with empty ambient", "default", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveRegion(tt.configured, tt.ambient))
		})
	}
}
