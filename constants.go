package hopsworks

// Environment variables set by the Hopsworks-managed execution environment
// (SageMaker notebooks, managed jobs). ConfigFromEnv reads these once;
// nothing in the SDK touches the process environment afterwards.
const (
	// EnvProjectID holds the numeric id of the current project.
	EnvProjectID = "HOPSWORKS_PROJECT_ID"

	// EnvProjectName holds the name of the current project.
	EnvProjectName = "HOPSWORKS_PROJECT_NAME"

	// EnvRESTEndpoint holds the REST API endpoint as host:port, optionally
	// prefixed with a scheme.
	EnvRESTEndpoint = "REST_ENDPOINT"

	// EnvRegionName holds the AWS region the platform secrets live in.
	// The value "default" means "use the ambient session region".
	EnvRegionName = "REGION_NAME"

	// EnvCertKey holds the password protecting the certificate key material
	// used for query-engine authentication.
	EnvCertKey = "CERT_KEY"
)

// DefaultAPIKeySecret is the key looked up inside the project secret when no
// explicit secret key is configured. Other keys stored alongside it include
// "cert-key", "trust-store" and "key-store".
const DefaultAPIKeySecret = "api-key"

// Query-engine connection parameters. The certificate material is written
// into the working directory by the platform (see WriteBase64Cert).
const (
	// QueryEnginePort is the fixed port the SQL query engine listens on.
	QueryEnginePort = 9085

	// TrustStoreFile is the CA bundle used to verify the query engine.
	TrustStoreFile = "trustStore.pem"

	// KeyStoreFile is the client certificate + private key bundle.
	KeyStoreFile = "keyStore.pem"
)

const (
	headerAuthorization = "Authorization"
	apiKeyPrefix        = "ApiKey "

	// Region sentinel the deployment writes when no explicit region applies.
	defaultRegionSentinel = "default"

	secretNameFormat = "hopsworks/project/%s/role/%s"

	// Keys of the REST error envelope returned by the platform.
	jsonErrorCode = "errorCode"
	jsonErrorMsg  = "errorMsg"
	jsonUserMsg   = "usrMsg"
)
