package db

import (
	"fmt"

	"github.com/vvka-141/qload/pkg/qload"
)

// EnvVars represents the PostgreSQL and cloud environment variables that
// fill gaps left by a connection string.
// See: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	PGPASSWORD string // used when the connection string carries no password
	PGSSLMODE  string // used when the connection string sets no sslmode

	// Azure Entra ID environment variables (Azure SDK standard names)
	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string

	AWS_REGION string
}

// EnvFrom reads EnvVars through getenv.
func EnvFrom(getenv func(string) string) *EnvVars {
	return &EnvVars{
		PGPASSWORD:          getenv("PGPASSWORD"),
		PGSSLMODE:           getenv("PGSSLMODE"),
		AZURE_TENANT_ID:     getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: getenv("AZURE_CLIENT_SECRET"),
		AWS_REGION:          getenv("AWS_REGION"),
	}
}

// CloudAuth carries the profile-level authentication settings.
type CloudAuth struct {
	Method         qload.AuthMethod
	AWSRegion      string
	GoogleInstance string
	AzureTenantID  string
	AzureClientID  string
}

// ResolveConnection parses connStr and completes it from auth and env.
//
// Precedence for each parameter:
//  1. Connection string
//  2. Profile (auth)
//  3. Environment variable
//  4. Default (sslmode "prefer")
func ResolveConnection(connStr string, auth CloudAuth, env *EnvVars) (*qload.ConnectionConfig, error) {
	if env == nil {
		env = &EnvVars{}
	}

	config, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w: %w", err, qload.ErrInvalidConfig)
	}

	if config.Password == "" {
		config.Password = env.PGPASSWORD
	}
	if config.SSLMode == "" {
		config.SSLMode = env.PGSSLMODE
	}
	if config.SSLMode == "" {
		config.SSLMode = "prefer"
	}

	config.AuthMethod = auth.Method
	switch auth.Method {
	case qload.AuthMethodAWSIAM:
		config.AWSRegion = firstNonEmpty(auth.AWSRegion, env.AWS_REGION)
	case qload.AuthMethodGoogleIAM:
		config.GoogleInstance = auth.GoogleInstance
	case qload.AuthMethodAzureEntraID:
		applyAzureAuth(config, auth, env)
	}

	return config, nil
}

// applyAzureAuth attaches Entra ID credentials. Profile values take
// precedence over environment variables; the client secret only ever comes
// from the environment.
func applyAzureAuth(config *qload.ConnectionConfig, auth CloudAuth, env *EnvVars) {
	config.AzureTenantID = firstNonEmpty(auth.AzureTenantID, env.AZURE_TENANT_ID)
	config.AzureClientID = firstNonEmpty(auth.AzureClientID, env.AZURE_CLIENT_ID)
	config.AzureClientSecret = env.AZURE_CLIENT_SECRET
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
