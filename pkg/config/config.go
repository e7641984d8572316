package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Pharmacy     PharmacyConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WELLPORT_APP_ENV" required:"true"`
	Port         string `envconfig:"WELLPORT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WELLPORT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WELLPORT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WELLPORT_DB_DSN"`
	Driver string `envconfig:"WELLPORT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WELLPORT_DB_HOST"`
	LegacyPort     int    `envconfig:"WELLPORT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WELLPORT_DB_USER"`
	LegacyPassword string `envconfig:"WELLPORT_DB_PASSWORD"`
	LegacyName     string `envconfig:"WELLPORT_DB_NAME"`
	LegacySSLMode  string `envconfig:"WELLPORT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WELLPORT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WELLPORT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WELLPORT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WELLPORT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WELLPORT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WELLPORT_REDIS_ADDR"`
	Password     string        `envconfig:"WELLPORT_REDIS_PASSWORD"`
	DB           int           `envconfig:"WELLPORT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WELLPORT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WELLPORT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WELLPORT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WELLPORT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WELLPORT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"WELLPORT_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"WELLPORT_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"WELLPORT_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"WELLPORT_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WELLPORT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WELLPORT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WELLPORT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WELLPORT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WELLPORT_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"WELLPORT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"WELLPORT_AUTO_MIGRATE" default:"false"`
}

// PharmacyConfig wires the two vendor gateways and the fee/coupon defaults used
// by the cart breakdown.
type PharmacyConfig struct {
	VendorABaseURL string        `envconfig:"WELLPORT_PHARMACY_VENDORA_BASE_URL" required:"true"`
	VendorBBaseURL string        `envconfig:"WELLPORT_PHARMACY_VENDORB_BASE_URL" required:"true"`
	VendorAEnabled bool          `envconfig:"WELLPORT_PHARMACY_VENDORA_ENABLED" default:"true"`
	VendorBEnabled bool          `envconfig:"WELLPORT_PHARMACY_VENDORB_ENABLED" default:"true"`
	GatewayTimeout time.Duration `envconfig:"WELLPORT_PHARMACY_GATEWAY_TIMEOUT" default:"10s"`

	HandlingFee    int `envconfig:"WELLPORT_PHARMACY_HANDLING_FEE" default:"12"`
	PlatformFee    int `envconfig:"WELLPORT_PHARMACY_PLATFORM_FEE" default:"0"`
	DeliveryCharge int `envconfig:"WELLPORT_PHARMACY_DELIVERY_CHARGE" default:"79"`

	// Coupons maps code -> flat discount amount. The portal ships one demo code.
	Coupons map[string]int `envconfig:"WELLPORT_PHARMACY_COUPONS" default:"SAVE10:10"`

	CartTTL time.Duration `envconfig:"WELLPORT_PHARMACY_CART_TTL" default:"720h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
