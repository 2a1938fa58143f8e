package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Mail     MailConfig
	Storage  StorageConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	BaseURL               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret               string
	AccessTokenTTLMinutes   int
	RefreshTokenTTLHours    int
	VerificationTTLHours    int
	PasswordResetTTLMinutes int
	ResendCooldownSeconds   int
	BcryptCost              int
}

// MailConfig holds SMTP parameters for the primary and fallback channels.
type MailConfig struct {
	From             string
	PrimaryHost      string
	PrimaryPort      int
	PrimaryUsername  string
	PrimaryPassword  string
	FallbackHost     string
	FallbackPort     int
	FallbackUsername string
	FallbackPassword string
	TimeoutSeconds   int
}

// StorageConfig holds S3-compatible object storage parameters for gallery uploads.
type StorageConfig struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	PresignTTLMinutes int
}

// minSecretLength is the minimum acceptable signing secret length in bytes.
const minSecretLength = 32

// weakSecrets are placeholder values that must never reach production.
var weakSecrets = []string{
	"changeme",
	"secret",
	"password",
	"dev-secret",
	"jwt-secret",
	"secret-key",
	"your-secret-key",
	"supersecret",
}

// Load reads configuration from environment variables, applying defaults where
// possible. It fails when the JWT signing secret is absent, too short, or a
// known-weak value; the process must not start with an insecure secret.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	jwtSecret := os.Getenv("AUTH_JWT_SECRET")
	if err := ValidateJWTSecret(jwtSecret); err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "campus-hub"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			BaseURL:               getEnv("APP_BASE_URL", "http://localhost:8080"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:               jwtSecret,
			AccessTokenTTLMinutes:   getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 30),
			RefreshTokenTTLHours:    getEnvAsInt("AUTH_REFRESH_TOKEN_TTL_HOURS", 168),
			VerificationTTLHours:    getEnvAsInt("AUTH_VERIFICATION_TTL_HOURS", 24),
			PasswordResetTTLMinutes: getEnvAsInt("AUTH_PASSWORD_RESET_TTL_MINUTES", 30),
			ResendCooldownSeconds:   getEnvAsInt("AUTH_RESEND_COOLDOWN_SECONDS", 300),
			BcryptCost:              getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Mail: MailConfig{
			From:             getEnv("MAIL_FROM", "noreply@example.com"),
			PrimaryHost:      getEnv("MAIL_PRIMARY_HOST", "127.0.0.1"),
			PrimaryPort:      getEnvAsInt("MAIL_PRIMARY_PORT", 587),
			PrimaryUsername:  os.Getenv("MAIL_PRIMARY_USERNAME"),
			PrimaryPassword:  os.Getenv("MAIL_PRIMARY_PASSWORD"),
			FallbackHost:     os.Getenv("MAIL_FALLBACK_HOST"),
			FallbackPort:     getEnvAsInt("MAIL_FALLBACK_PORT", 587),
			FallbackUsername: os.Getenv("MAIL_FALLBACK_USERNAME"),
			FallbackPassword: os.Getenv("MAIL_FALLBACK_PASSWORD"),
			TimeoutSeconds:   getEnvAsInt("MAIL_TIMEOUT_SECONDS", 10),
		},
		Storage: StorageConfig{
			Endpoint:          os.Getenv("STORAGE_ENDPOINT"),
			Region:            getEnv("STORAGE_REGION", "us-east-1"),
			Bucket:            getEnv("STORAGE_BUCKET", "campus-hub-gallery"),
			AccessKey:         os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:         os.Getenv("STORAGE_SECRET_KEY"),
			PresignTTLMinutes: getEnvAsInt("STORAGE_PRESIGN_TTL_MINUTES", 15),
		},
	}

	return cfg, nil
}

// ValidateJWTSecret enforces the startup gate on the signing secret.
func ValidateJWTSecret(secret string) error {
	if secret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}
	for _, weak := range weakSecrets {
		if strings.EqualFold(secret, weak) {
			return errors.New("AUTH_JWT_SECRET is a known-weak placeholder value")
		}
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least %d characters", minSecretLength)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the access token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime.
func (a AuthConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(a.RefreshTokenTTLHours) * time.Hour
}

// VerificationTTL returns the email verification token lifetime.
func (a AuthConfig) VerificationTTL() time.Duration {
	return time.Duration(a.VerificationTTLHours) * time.Hour
}

// PasswordResetTTL returns the password reset token lifetime.
func (a AuthConfig) PasswordResetTTL() time.Duration {
	return time.Duration(a.PasswordResetTTLMinutes) * time.Minute
}

// ResendCooldown returns the minimum gap between token issuances.
func (a AuthConfig) ResendCooldown() time.Duration {
	return time.Duration(a.ResendCooldownSeconds) * time.Second
}

// Timeout returns the SMTP dial/send timeout.
func (m MailConfig) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// PresignTTL returns the lifetime of presigned object storage URLs.
func (s StorageConfig) PresignTTL() time.Duration {
	if s.PresignTTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(s.PresignTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
