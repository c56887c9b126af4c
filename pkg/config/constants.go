package config

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "DELEGANCE_APP_ENV"
	EnvPort     = "DELEGANCE_APP_PORT"
	EnvDBDSN    = "DELEGANCE_DB_DSN"
	EnvDBHost   = "DELEGANCE_DB_HOST"
	EnvDBUser   = "DELEGANCE_DB_USER"
	EnvDBName   = "DELEGANCE_DB_NAME"
	EnvRedisURL = "DELEGANCE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
