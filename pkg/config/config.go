package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Media         MediaConfig
	Quotation     QuotationConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = defaultSQLiteDSN
		}
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"COILBILL_APP_ENV" required:"true"`
	Port            string        `envconfig:"COILBILL_APP_PORT" default:"5000"`
	LogLevel        string        `envconfig:"COILBILL_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"COILBILL_LOG_WARN_STACK" default:"false"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	FrontendURL     string        `envconfig:"COILBILL_FRONTEND_URL" default:"*"`
	ReadTimeout     time.Duration `envconfig:"COILBILL_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"COILBILL_HTTP_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"COILBILL_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// ConsoleLogs reports whether LOG_FORMAT asks for console output.
func (a AppConfig) ConsoleLogs() bool {
	return strings.EqualFold(strings.TrimSpace(a.LogFormat), "console")
}

// AllowedOrigins splits the configured frontend origin list.
func (a AppConfig) AllowedOrigins() []string {
	parts := strings.Split(a.FrontendURL, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

type DBConfig struct {
	DSN    string `envconfig:"COILBILL_DB_DSN"`
	Driver string `envconfig:"COILBILL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"COILBILL_DB_HOST"`
	LegacyPort     int    `envconfig:"COILBILL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"COILBILL_DB_USER"`
	LegacyPassword string `envconfig:"COILBILL_DB_PASSWORD"`
	LegacyName     string `envconfig:"COILBILL_DB_NAME"`
	LegacySSLMode  string `envconfig:"COILBILL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COILBILL_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"COILBILL_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"COILBILL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COILBILL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	// URL is optional; login rate limiting is disabled without it.
	URL          string        `envconfig:"COILBILL_REDIS_URL"`
	Address      string        `envconfig:"COILBILL_REDIS_ADDR"`
	Password     string        `envconfig:"COILBILL_REDIS_PASSWORD"`
	DB           int           `envconfig:"COILBILL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COILBILL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COILBILL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COILBILL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COILBILL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COILBILL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"COILBILL_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"COILBILL_JWT_ISSUER" default:"coilbill"`
	ExpirationMinutes int    `envconfig:"COILBILL_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"COILBILL_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"COILBILL_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"COILBILL_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"COILBILL_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"COILBILL_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"COILBILL_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"COILBILL_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"COILBILL_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"COILBILL_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"COILBILL_AUTO_MIGRATE" default:"false"`
}

type MediaConfig struct {
	UploadDir    string `envconfig:"COILBILL_UPLOAD_DIR" default:"uploads"`
	MaxUploadMB  int    `envconfig:"COILBILL_MAX_UPLOAD_MB" default:"5"`
	LogoMaxWidth int    `envconfig:"COILBILL_LOGO_MAX_WIDTH" default:"600"`
}

// MaxUploadBytes converts the multipart limit to bytes.
func (m MediaConfig) MaxUploadBytes() int64 {
	if m.MaxUploadMB <= 0 {
		return 5 << 20
	}
	return int64(m.MaxUploadMB) << 20
}

// QuotationConfig holds the sub-document text used when a quotation omits terms or contact info.
type QuotationConfig struct {
	DefaultTaxes        string `envconfig:"COILBILL_QUOTATION_TERMS_TAXES" default:"Including taxes @18%"`
	DefaultValidity     string `envconfig:"COILBILL_QUOTATION_TERMS_VALIDITY" default:"Validity only 3 days"`
	DefaultSupply       string `envconfig:"COILBILL_QUOTATION_TERMS_SUPPLY" default:"Material Supply 7 working Days"`
	DefaultContactName  string `envconfig:"COILBILL_QUOTATION_CONTACT_NAME" default:"T THRINATH REDDY (Deputy Manager)"`
	DefaultContactPhone string `envconfig:"COILBILL_QUOTATION_CONTACT_PHONE" default:"8125237316"`
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
