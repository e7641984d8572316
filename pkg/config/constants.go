package config

const (
	EnvPrefix = "WELLPORT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "WELLPORT_DB_DSN"
	EnvDBHost = "WELLPORT_DB_HOST"
	EnvDBUser = "WELLPORT_DB_USER"
	EnvDBName = "WELLPORT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
