package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// SHOPORA_* names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "SHOPORA_APP_ENV"
	EnvPort      = "SHOPORA_APP_PORT"
	EnvDBDSN     = "SHOPORA_DB_DSN"
	EnvDBHost    = "SHOPORA_DB_HOST"
	EnvDBUser    = "SHOPORA_DB_USER"
	EnvDBName    = "SHOPORA_DB_NAME"
	EnvRedisURL  = "SHOPORA_REDIS_URL"
	EnvJWTSecret = "SHOPORA_JWT_SECRET"
	EnvJWTIssuer = "SHOPORA_JWT_ISSUER"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
