package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Token    TokenConfig
	Lookup   LookupConfig
	Autofill AutofillConfig
	Archive  ArchiveConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// TokenConfig holds signing settings for the save round-trip token and the
// caller access tokens. A zero Expiry issues round-trip tokens without an
// expiry claim.
type TokenConfig struct {
	Secret       string        `mapstructure:"secret"`
	Issuer       string        `mapstructure:"issuer"`
	Expiry       time.Duration `mapstructure:"expiry"`
	AccessExpiry time.Duration `mapstructure:"access_expiry"`
}

// LookupConfig holds credential lookup settings.
type LookupConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheSize int           `mapstructure:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// AutofillConfig holds field classification and response settings.
type AutofillConfig struct {
	SelfPackage        string   `mapstructure:"self_package"`
	SentinelTitle      string   `mapstructure:"sentinel_title"`
	Browsers           []string `mapstructure:"browsers"`
	BrowsersFile       string   `mapstructure:"browsers_file"`
	UsernameTerms      []string `mapstructure:"username_terms"`
	PasswordVariations []string `mapstructure:"password_variations"`
	InlineMinWidth     int      `mapstructure:"inline_min_width"`
	InlineMinHeight    int      `mapstructure:"inline_min_height"`
	InlineMaxWidth     int      `mapstructure:"inline_max_width"`
	InlineMaxHeight    int      `mapstructure:"inline_max_height"`
}

// ArchiveConfig holds diagnostic snapshot archive settings.
type ArchiveConfig struct {
	Provider  string `mapstructure:"provider"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the MPASS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MPASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "mpass")
	v.SetDefault("db.password", "mpass_secret")
	v.SetDefault("db.name", "mpass_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Token defaults
	v.SetDefault("token.secret", "change-me-in-production")
	v.SetDefault("token.issuer", "mpass")
	v.SetDefault("token.expiry", "0s")
	v.SetDefault("token.access_expiry", "720h")

	// Lookup defaults
	v.SetDefault("lookup.timeout", "3s")
	v.SetDefault("lookup.cache_size", 256)
	v.SetDefault("lookup.cache_ttl", "30s")

	// Autofill defaults
	v.SetDefault("autofill.self_package", "com.mpass.app")
	v.SetDefault("autofill.sentinel_title", "Choose from mPass")
	v.SetDefault("autofill.browsers", "")
	v.SetDefault("autofill.browsers_file", "")
	v.SetDefault("autofill.username_terms", "")
	v.SetDefault("autofill.password_variations", "")
	v.SetDefault("autofill.inline_min_width", 300)
	v.SetDefault("autofill.inline_min_height", 50)
	v.SetDefault("autofill.inline_max_width", 600)
	v.SetDefault("autofill.inline_max_height", 100)

	// Archive defaults
	v.SetDefault("archive.provider", "noop")
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "mpass-snapshots")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.prefix", "snapshots")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "MPASS_SERVER_PORT",
		"server.read_timeout":          "MPASS_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "MPASS_SERVER_WRITE_TIMEOUT",
		"server.environment":           "MPASS_SERVER_ENVIRONMENT",
		"db.host":                      "MPASS_DB_HOST",
		"db.port":                      "MPASS_DB_PORT",
		"db.user":                      "MPASS_DB_USER",
		"db.password":                  "MPASS_DB_PASSWORD",
		"db.name":                      "MPASS_DB_NAME",
		"db.sslmode":                   "MPASS_DB_SSLMODE",
		"db.max_open":                  "MPASS_DB_MAX_OPEN",
		"db.max_idle":                  "MPASS_DB_MAX_IDLE",
		"token.secret":                 "MPASS_TOKEN_SECRET",
		"token.issuer":                 "MPASS_TOKEN_ISSUER",
		"token.expiry":                 "MPASS_TOKEN_EXPIRY",
		"token.access_expiry":          "MPASS_TOKEN_ACCESS_EXPIRY",
		"lookup.timeout":               "MPASS_LOOKUP_TIMEOUT",
		"lookup.cache_size":            "MPASS_LOOKUP_CACHE_SIZE",
		"lookup.cache_ttl":             "MPASS_LOOKUP_CACHE_TTL",
		"autofill.self_package":        "MPASS_AUTOFILL_SELF_PACKAGE",
		"autofill.sentinel_title":      "MPASS_AUTOFILL_SENTINEL_TITLE",
		"autofill.browsers":            "MPASS_AUTOFILL_BROWSERS",
		"autofill.browsers_file":       "MPASS_AUTOFILL_BROWSERS_FILE",
		"autofill.username_terms":      "MPASS_AUTOFILL_USERNAME_TERMS",
		"autofill.password_variations": "MPASS_AUTOFILL_PASSWORD_VARIATIONS",
		"autofill.inline_min_width":    "MPASS_AUTOFILL_INLINE_MIN_WIDTH",
		"autofill.inline_min_height":   "MPASS_AUTOFILL_INLINE_MIN_HEIGHT",
		"autofill.inline_max_width":    "MPASS_AUTOFILL_INLINE_MAX_WIDTH",
		"autofill.inline_max_height":   "MPASS_AUTOFILL_INLINE_MAX_HEIGHT",
		"archive.provider":             "MPASS_ARCHIVE_PROVIDER",
		"archive.region":               "MPASS_ARCHIVE_REGION",
		"archive.bucket":               "MPASS_ARCHIVE_BUCKET",
		"archive.endpoint":             "MPASS_ARCHIVE_ENDPOINT",
		"archive.access_key":           "MPASS_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":           "MPASS_ARCHIVE_SECRET_KEY",
		"archive.prefix":               "MPASS_ARCHIVE_PREFIX",
		"log.level":                    "MPASS_LOG_LEVEL",
		"log.format":                   "MPASS_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if MPASS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MPASS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Token = TokenConfig{
		Secret:       v.GetString("token.secret"),
		Issuer:       v.GetString("token.issuer"),
		Expiry:       v.GetDuration("token.expiry"),
		AccessExpiry: v.GetDuration("token.access_expiry"),
	}
	cfg.Lookup = LookupConfig{
		Timeout:   v.GetDuration("lookup.timeout"),
		CacheSize: v.GetInt("lookup.cache_size"),
		CacheTTL:  v.GetDuration("lookup.cache_ttl"),
	}
	cfg.Autofill = AutofillConfig{
		SelfPackage:        v.GetString("autofill.self_package"),
		SentinelTitle:      v.GetString("autofill.sentinel_title"),
		Browsers:           splitList(v.GetString("autofill.browsers")),
		BrowsersFile:       v.GetString("autofill.browsers_file"),
		UsernameTerms:      splitList(v.GetString("autofill.username_terms")),
		PasswordVariations: splitList(v.GetString("autofill.password_variations")),
		InlineMinWidth:     v.GetInt("autofill.inline_min_width"),
		InlineMinHeight:    v.GetInt("autofill.inline_min_height"),
		InlineMaxWidth:     v.GetInt("autofill.inline_max_width"),
		InlineMaxHeight:    v.GetInt("autofill.inline_max_height"),
	}
	cfg.Archive = ArchiveConfig{
		Provider:  v.GetString("archive.provider"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
		Prefix:    v.GetString("archive.prefix"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	if cfg.Lookup.Timeout <= 0 {
		return nil, fmt.Errorf("config: lookup.timeout must be positive, got %s", cfg.Lookup.Timeout)
	}

	return cfg, nil
}

// splitList parses a comma-separated value, dropping blank entries.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
