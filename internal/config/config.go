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
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	OCR    OCRConfig
	Queue  QueueConfig
	Email  EmailConfig
	CORS   CORSConfig
	Log    LogConfig
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

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for uploaded document storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// OCRConfig holds recognition pipeline settings.
type OCRConfig struct {
	Language     string `mapstructure:"language"`
	PDFRenderDPI int    `mapstructure:"pdf_render_dpi"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// QueueConfig holds recovery worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	StalledAfterSecs int `mapstructure:"stalled_after_secs"`
	Concurrency      int `mapstructure:"concurrency"`
}

// EmailConfig holds notification email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from environment variables with the LOANDOCS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LOANDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "loandocs")
	v.SetDefault("db.password", "loandocs_secret")
	v.SetDefault("db.name", "loandocs_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 5)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "24h")
	v.SetDefault("jwt.issuer", "loandocs")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "loandocs-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 900)

	// OCR defaults. 216 DPI is a 3x upscale over the 72 DPI PDF point grid,
	// enough to recover legible glyphs from low-resolution source PDFs.
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.pdf_render_dpi", 216)
	v.SetDefault("ocr.timeout_secs", 120)

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 30)
	v.SetDefault("queue.stalled_after_secs", 600)
	v.SetDefault("queue.concurrency", 2)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "no-reply@loandocs.local")
	v.SetDefault("email.from_name", "LoanDocs")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "info")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "LOANDOCS_SERVER_PORT",
		"server.read_timeout":      "LOANDOCS_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "LOANDOCS_SERVER_WRITE_TIMEOUT",
		"server.environment":       "LOANDOCS_SERVER_ENVIRONMENT",
		"db.host":                  "LOANDOCS_DB_HOST",
		"db.port":                  "LOANDOCS_DB_PORT",
		"db.user":                  "LOANDOCS_DB_USER",
		"db.password":              "LOANDOCS_DB_PASSWORD",
		"db.name":                  "LOANDOCS_DB_NAME",
		"db.sslmode":               "LOANDOCS_DB_SSLMODE",
		"db.max_open":              "LOANDOCS_DB_MAX_OPEN",
		"db.max_idle":              "LOANDOCS_DB_MAX_IDLE",
		"jwt.secret":               "LOANDOCS_JWT_SECRET",
		"jwt.access_expiry":        "LOANDOCS_JWT_ACCESS_EXPIRY",
		"jwt.issuer":               "LOANDOCS_JWT_ISSUER",
		"s3.region":                "LOANDOCS_S3_REGION",
		"s3.bucket":                "LOANDOCS_S3_BUCKET",
		"s3.endpoint":              "LOANDOCS_S3_ENDPOINT",
		"s3.access_key":            "LOANDOCS_S3_ACCESS_KEY",
		"s3.secret_key":            "LOANDOCS_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "LOANDOCS_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":        "LOANDOCS_S3_PRESIGN_EXPIRY",
		"ocr.language":             "LOANDOCS_OCR_LANGUAGE",
		"ocr.pdf_render_dpi":       "LOANDOCS_OCR_PDF_RENDER_DPI",
		"ocr.timeout_secs":         "LOANDOCS_OCR_TIMEOUT_SECS",
		"queue.poll_interval_secs": "LOANDOCS_QUEUE_POLL_INTERVAL_SECS",
		"queue.stalled_after_secs": "LOANDOCS_QUEUE_STALLED_AFTER_SECS",
		"queue.concurrency":        "LOANDOCS_QUEUE_CONCURRENCY",
		"email.provider":           "LOANDOCS_EMAIL_PROVIDER",
		"email.region":             "LOANDOCS_EMAIL_REGION",
		"email.from_address":       "LOANDOCS_EMAIL_FROM_ADDRESS",
		"email.from_name":          "LOANDOCS_EMAIL_FROM_NAME",
		"cors.allowed_origins":     "LOANDOCS_CORS_ALLOWED_ORIGINS",
		"log.level":                "LOANDOCS_LOG_LEVEL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if LOANDOCS_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LOANDOCS_SERVER_PORT") == "" {
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
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.OCR = OCRConfig{
		Language:     v.GetString("ocr.language"),
		PDFRenderDPI: v.GetInt("ocr.pdf_render_dpi"),
		TimeoutSecs:  v.GetInt("ocr.timeout_secs"),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		StalledAfterSecs: v.GetInt("queue.stalled_after_secs"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Log = LogConfig{Level: v.GetString("log.level")}

	if cfg.OCR.PDFRenderDPI < 216 {
		return nil, fmt.Errorf("ocr.pdf_render_dpi must be at least 216 (3x upscale), got %d", cfg.OCR.PDFRenderDPI)
	}

	return cfg, nil
}
