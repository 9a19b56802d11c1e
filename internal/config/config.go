package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key"

// Config holds all configuration for the service.
type Config struct {
	ServiceName           string `mapstructure:"SERVICE_NAME"`
	HTTPPort              string `mapstructure:"HTTP_PORT"`
	GRPCPort              string `mapstructure:"GRPC_PORT"`
	PrometheusMetricsPort string `mapstructure:"PROMETHEUS_METRICS_PORT"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	RedisAddress  string `mapstructure:"REDIS_ADDRESS"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	NATSURL string `mapstructure:"NATS_URL"`

	MinIOEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket    string `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	ListingFetchLimit int           `mapstructure:"LISTING_FETCH_LIMIT"`
	ListingPageSize   int           `mapstructure:"LISTING_PAGE_SIZE"`
	ListingCacheTTL   time.Duration `mapstructure:"LISTING_CACHE_TTL"`
	UploadMaxBytes    int64         `mapstructure:"UPLOAD_MAX_BYTES"`
	UploadParallelism int           `mapstructure:"UPLOAD_PARALLELISM"`

	WhatsAppCountryCode string `mapstructure:"WHATSAPP_COUNTRY_CODE"`

	MagicLinkVerifyURL string        `mapstructure:"MAGIC_LINK_VERIFY_URL"`
	MagicLinkTTL       time.Duration `mapstructure:"MAGIC_LINK_TTL"`

	OAuthProvider     string `mapstructure:"OAUTH_PROVIDER"`
	OAuthAuthURL      string `mapstructure:"OAUTH_AUTH_URL"`
	OAuthTokenURL     string `mapstructure:"OAUTH_TOKEN_URL"`
	OAuthUserInfoURL  string `mapstructure:"OAUTH_USERINFO_URL"`
	OAuthClientID     string `mapstructure:"OAUTH_CLIENT_ID"`
	OAuthClientSecret string `mapstructure:"OAUTH_CLIENT_SECRET"`
	OAuthCallbackURL  string `mapstructure:"OAUTH_CALLBACK_URL"`

	// AuthRedirectOrigins are the client origins sign-in flows may redirect to.
	AuthRedirectOrigins []string `mapstructure:"AUTH_REDIRECT_ORIGINS"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPSender   string `mapstructure:"SMTP_SENDER"`

	TipRotateInterval time.Duration `mapstructure:"TIP_ROTATE_INTERVAL"`

	LogLevel               string `mapstructure:"LOG_LEVEL"`
	LogFormat              string `mapstructure:"LOG_FORMAT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads configuration from environment variables and an optional config.env file.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UsesDefaultSecret reports whether JWT_SECRET was left at its insecure default.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.MongoURI == "" {
		return errors.New("MONGO_URI is not set")
	}
	if c.MongoDatabase == "" {
		return errors.New("MONGO_DATABASE is not set")
	}
	if c.ListingFetchLimit <= 0 {
		return errors.New("LISTING_FETCH_LIMIT must be positive")
	}
	if c.ListingPageSize <= 0 {
		return errors.New("LISTING_PAGE_SIZE must be positive")
	}
	if c.UploadParallelism <= 0 {
		c.UploadParallelism = 1
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "hostlecart")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("GRPC_PORT", "50052")
	v.SetDefault("PROMETHEUS_METRICS_PORT", "9092")

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "hostlecart")

	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("NATS_URL", "nats://localhost:4222")

	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET", "product-images")
	v.SetDefault("MINIO_USE_SSL", false)

	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", time.Hour)

	v.SetDefault("LISTING_FETCH_LIMIT", 100)
	v.SetDefault("LISTING_PAGE_SIZE", 12)
	v.SetDefault("LISTING_CACHE_TTL", time.Minute)
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("UPLOAD_PARALLELISM", 1)

	v.SetDefault("WHATSAPP_COUNTRY_CODE", "91")

	v.SetDefault("MAGIC_LINK_VERIFY_URL", "http://localhost:5173/verify")
	v.SetDefault("MAGIC_LINK_TTL", 15*time.Minute)

	v.SetDefault("OAUTH_PROVIDER", "google")
	v.SetDefault("OAUTH_AUTH_URL", "https://accounts.google.com/o/oauth2/v2/auth")
	v.SetDefault("OAUTH_TOKEN_URL", "https://oauth2.googleapis.com/token")
	v.SetDefault("OAUTH_USERINFO_URL", "https://openidconnect.googleapis.com/v1/userinfo")
	v.SetDefault("OAUTH_CLIENT_ID", "")
	v.SetDefault("OAUTH_CLIENT_SECRET", "")
	v.SetDefault("OAUTH_CALLBACK_URL", "")

	v.SetDefault("AUTH_REDIRECT_ORIGINS", []string{"http://localhost:5173"})

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_SENDER", "")

	v.SetDefault("TIP_ROTATE_INTERVAL", 4*time.Second)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
}
