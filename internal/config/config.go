package config

import (
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// AppName is reported to Postgres as application_name; PingTimeout also bounds the
// driver's connect_timeout. ConnectRetries extra pings are attempted at startup.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	AppName         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	ConnectRetries  int
}

// StorageConfig selects the object storage backend ("minio" or "s3").
type StorageConfig struct {
	Driver string
	MinIO  MinIOConfig
	S3     S3Config
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Config holds settings for an AWS S3 (or S3-compatible) bucket.
// Endpoint is optional; when set, path-style addressing is used.
type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

// ImageConfig tunes the listing image pipeline.
// Pool size and batch cap are fixed constants in the pipeline package and are not configurable.
type ImageConfig struct {
	Executor       string
	TaskTimeout    time.Duration
	MaxUploadBytes int
}

// TelemetryConfig mirrors the standard OTEL_* environment variables.
type TelemetryConfig struct {
	Disabled       bool
	ServiceName    string
	Protocol       string
	Endpoint       string
	Sampler        string
	SamplerArg     string
	MetricsEnabled bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	TimeZone  string
	LogLevel  string
	Database  DatabaseConfig
	Storage   StorageConfig
	Image     ImageConfig
	Telemetry TelemetryConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return &AppConfig{
		AppHost:  v.GetString("APP_HOST"),
		Port:     v.GetString("PORT"),
		TimeZone: v.GetString("APP_TIMEZONE"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			AppName:         v.GetString("DB_APP_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
			PingTimeout:     v.GetDuration("DB_PING_TIMEOUT"),
			ConnectRetries:  v.GetInt("DB_CONNECT_RETRIES"),
		},
		Storage: StorageConfig{
			Driver: v.GetString("STORAGE_DRIVER"),
			MinIO: MinIOConfig{
				Endpoint:  v.GetString("MINIO_ENDPOINT"),
				AccessKey: v.GetString("MINIO_ACCESS_KEY"),
				SecretKey: v.GetString("MINIO_SECRET_KEY"),
				Bucket:    v.GetString("MINIO_BUCKET"),
				UseSSL:    v.GetBool("MINIO_USE_SSL"),
			},
			S3: S3Config{
				Endpoint:        v.GetString("S3_ENDPOINT"),
				Region:          v.GetString("S3_REGION"),
				AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
				SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
				Bucket:          v.GetString("S3_BUCKET"),
			},
		},
		Image: ImageConfig{
			Executor:       v.GetString("IMAGE_EXECUTOR"),
			TaskTimeout:    v.GetDuration("IMAGE_TASK_TIMEOUT"),
			MaxUploadBytes: v.GetInt("IMAGE_MAX_UPLOAD_BYTES"),
		},
		Telemetry: TelemetryConfig{
			Disabled:       v.GetBool("OTEL_SDK_DISABLED"),
			ServiceName:    v.GetString("OTEL_SERVICE_NAME"),
			Protocol:       v.GetString("OTEL_EXPORTER_OTLP_PROTOCOL"),
			Endpoint:       firstNonEmpty(v.GetString("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"), v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")),
			Sampler:        v.GetString("OTEL_TRACES_SAMPLER"),
			SamplerArg:     v.GetString("OTEL_TRACES_SAMPLER_ARG"),
			MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_HOST", "localhost:8080")
	v.SetDefault("PORT", "8080") // default only for non-sensitive value
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_APP_NAME", "realtyapi")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", time.Minute)
	v.SetDefault("DB_PING_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_CONNECT_RETRIES", 3)

	v.SetDefault("STORAGE_DRIVER", "minio")
	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ACCESS_KEY_ID", "")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_BUCKET", "")

	v.SetDefault("IMAGE_EXECUTOR", "map")
	v.SetDefault("IMAGE_TASK_TIMEOUT", 5*time.Second)
	v.SetDefault("IMAGE_MAX_UPLOAD_BYTES", 20*1024*1024)

	v.SetDefault("OTEL_SDK_DISABLED", false)
	v.SetDefault("OTEL_SERVICE_NAME", "realtyapi")
	v.SetDefault("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	v.SetDefault("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_TRACES_SAMPLER", "parentbased_traceidratio")
	v.SetDefault("OTEL_TRACES_SAMPLER_ARG", "1.0")
	v.SetDefault("METRICS_ENABLED", true)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Location resolves TimeZone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
