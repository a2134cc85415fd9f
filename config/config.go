package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultMongoURI  = "mongodb://localhost:27017"
	defaultJWTSecret = "aulaquiz-dev-secret"
)

// ErrDefaultJWTSecret is returned by Validate outside development when
// JWT_SECRET was left at its built-in value
var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set outside development")

type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	MongoURI        string
	MongoURIDefault bool // true when MONGO_URI was not provided
	MongoDB         string
	RedisURI        string

	JWTSecret     string
	JWTExpiration time.Duration

	UploadDir      string
	UploadMaxBytes int64

	StatsCacheTTL time.Duration
	CORSOrigins   string
}

// Load reads an optional .env file and then the environment.
// Real environment variables win over .env entries.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("MONGO_DB", "aulaquiz")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRATION_MINUTES", 480)
	v.SetDefault("UPLOAD_DIR", "uploads/perfiles")
	v.SetDefault("UPLOAD_MAX_BYTES", 2*1024*1024)
	v.SetDefault("STATS_CACHE_TTL", "30s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	mongoURI := v.GetString("MONGO_URI")
	cfg := &Config{
		AppEnv:          v.GetString("APP_ENV"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		Port:            v.GetString("PORT"),
		MongoURI:        mongoURI,
		MongoURIDefault: mongoURI == "",
		MongoDB:         v.GetString("MONGO_DB"),
		RedisURI:        v.GetString("REDIS_URI"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTExpiration:   time.Duration(v.GetInt("JWT_EXPIRATION_MINUTES")) * time.Minute,
		UploadDir:       v.GetString("UPLOAD_DIR"),
		UploadMaxBytes:  v.GetInt64("UPLOAD_MAX_BYTES"),
		StatsCacheTTL:   v.GetDuration("STATS_CACHE_TTL"),
		CORSOrigins:     v.GetString("CORS_ALLOWED_ORIGINS"),
	}
	if cfg.MongoURIDefault {
		cfg.MongoURI = defaultMongoURI
	}
	return cfg
}

// IsDevelopment reports whether human readable logs should be used
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Validate rejects settings that are only safe on a developer machine
func (c *Config) Validate() error {
	if !c.IsDevelopment() && c.JWTSecret == defaultJWTSecret {
		return ErrDefaultJWTSecret
	}
	return nil
}
