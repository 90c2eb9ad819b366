package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	Env           string `env:"ENV" envDefault:"development"`
	DBDriver      string `env:"DB_DRIVER" envDefault:"sqlite"` // sqlite | postgres
	DBDSN         string `env:"DB_DSN" envDefault:"bdc.db"`
	MediaDir      string `env:"MEDIA_DIR" envDefault:"./web/media"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
	LogFile       string `env:"LOG_FILE"`
	TemplatesDir  string `env:"TEMPLATES_DIR" envDefault:"./web/templates"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"./web/static"`
	SeedDemo      bool   `env:"SEED_DEMO" envDefault:"true"`

	Storage StorageConfig
	Redis   RedisConfig
	Session SessionConfig
	Admin   AdminConfig
	Site    SiteConfig
}

// StorageConfig selects where uploaded images live.
type StorageConfig struct {
	Driver         string `env:"STORAGE_DRIVER" envDefault:"local"` // local | s3
	MaxUploadBytes int64  `env:"UPLOAD_MAX_BYTES" envDefault:"5242880"`
	S3             S3Config
}

// S3Config works for AWS as well as S3-compatible endpoints (Supabase storage, MinIO).
type S3Config struct {
	Bucket          string `env:"S3_BUCKET"`
	Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	Endpoint        string `env:"S3_ENDPOINT"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	PublicURL       string `env:"S3_PUBLIC_URL"`
	PathStyle       bool   `env:"S3_PATH_STYLE"`
}

// RedisConfig is optional; an empty Addr keeps sessions in the database.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieSecure bool          `env:"COOKIE_SECURE"`
}

// AdminConfig bootstraps the first dashboard account on startup.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Name     string `env:"ADMIN_NAME" envDefault:"Administrador"`
	Password string `env:"ADMIN_PASSWORD"`
}

type SiteConfig struct {
	WhatsAppNumber  string        `env:"WHATSAPP_NUMBER" envDefault:"573137732492"`
	WhatsAppMessage string        `env:"WHATSAPP_MESSAGE" envDefault:"Hola, me interesa información sobre sus motocargueros y repuestos"`
	BannerInterval  time.Duration `env:"BANNER_INTERVAL" envDefault:"5s"`
}

// Load reads a .env file when present and then the process environment.
func Load() (Config, error) {
	// Missing .env is normal in production.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return Config{}, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver)
	}
	if cfg.Storage.Driver == "s3" && cfg.Storage.S3.Bucket == "" {
		return Config{}, fmt.Errorf("STORAGE_DRIVER=s3 requires S3_BUCKET")
	}
	return cfg, nil
}

func (c Config) IsProduction() bool { return c.Env == "production" }

// Summary is safe to log: it never includes secrets.
func (c Config) Summary() map[string]any {
	return map[string]any{
		"port":      c.Port,
		"env":       c.Env,
		"db_driver": c.DBDriver,
		"storage":   c.Storage.Driver,
		"media_dir": c.MediaDir,
		"redis":     c.Redis.Addr != "",
		"log_file":  c.LogFile,
	}
}
