package config

const (
	EnvPrefix = "COILBILL"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:coilbill.db?_foreign_keys=on"
)

const (
	EnvAppEnv      = "COILBILL_APP_ENV"
	EnvPort        = "COILBILL_APP_PORT"
	EnvFrontendURL = "COILBILL_FRONTEND_URL"
	EnvDBDSN       = "COILBILL_DB_DSN"
	EnvDBHost      = "COILBILL_DB_HOST"
	EnvDBUser      = "COILBILL_DB_USER"
	EnvDBName      = "COILBILL_DB_NAME"
	EnvRedisURL    = "COILBILL_REDIS_URL"
	EnvJWTSecret   = "COILBILL_JWT_SECRET"
	EnvJWTIssuer   = "COILBILL_JWT_ISSUER"
	EnvJWTExpMins  = "COILBILL_JWT_EXPIRATION_MINUTES"
	EnvUseSQLite   = "COILBILL_USE_SQLITE"
	EnvUploadDir   = "COILBILL_UPLOAD_DIR"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
