package config

// EnvPrefix scopes all envconfig lookups.
const EnvPrefix = "PETSHOP"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "PETSHOP_APP_ENV"
	EnvAppPort  = "PETSHOP_APP_PORT"
	EnvDBDSN    = "PETSHOP_DB_DSN"
	EnvDBHost   = "PETSHOP_DB_HOST"
	EnvDBUser   = "PETSHOP_DB_USER"
	EnvDBName   = "PETSHOP_DB_NAME"
	EnvRedisURL = "PETSHOP_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
