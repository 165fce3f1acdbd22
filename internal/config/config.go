package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"mobilityapi/internal/model"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `env:"DB_HOST"`
	Port               string `env:"DB_PORT" envDefault:"5432"`
	User               string `env:"DB_USER"`
	Password           string `env:"DB_PASSWORD"`
	Name               string `env:"DB_NAME"`
	SSLMode            string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetimeSec int    `env:"DB_CONN_MAX_LIFETIME_SEC" envDefault:"300"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
}

// StorageConfig selects the file backend and the directory (or key prefix)
// of each entity category.
type StorageConfig struct {
	// Backend is "local" or "minio".
	Backend       string `env:"STORAGE_BACKEND" envDefault:"local"`
	Root          string `env:"STORAGE_ROOT" envDefault:"./uploads"`
	ObligatoryDir string `env:"STORAGE_OBLIGATORY_DIR" envDefault:"obligatory-mobilities"`
	OptionalDir   string `env:"STORAGE_OPTIONAL_DIR" envDefault:"optional-mobilities"`
	AttachmentDir string `env:"STORAGE_ATTACHMENT_DIR" envDefault:"attachments"`
	TemplateDir   string `env:"STORAGE_TEMPLATE_DIR" envDefault:"templates"`
}

// Dirs maps every category to its directory relative to Root.
func (s StorageConfig) Dirs() map[model.Category]string {
	return map[model.Category]string{
		model.CategoryObligatory: s.ObligatoryDir,
		model.CategoryOptional:   s.OptionalDir,
		model.CategoryAttachment: s.AttachmentDir,
		model.CategoryTemplate:   s.TemplateDir,
	}
}

// Path returns the local root of category c.
func (s StorageConfig) Path(c model.Category) string {
	return filepath.Join(s.Root, s.Dirs()[c])
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string `env:"APP_HOST" envDefault:"localhost:8080"`
	Port        string `env:"PORT" envDefault:"8080"`
	Timezone    string `env:"APP_TIMEZONE" envDefault:"UTC"`
	Locale      string `env:"APP_LOCALE" envDefault:"es"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	ArchiveName string `env:"BATCH_ARCHIVE_NAME" envDefault:"documentos.zip"`
	BodyLimitMB int    `env:"HTTP_BODY_LIMIT_MB" envDefault:"20"`
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Storage     StorageConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Storage.Backend != "local" && cfg.Storage.Backend != "minio" {
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	return &cfg, nil
}

// Location is the configured timezone. Load has already validated it.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
