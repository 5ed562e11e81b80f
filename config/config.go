package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/cashflowx/cashflowx_backend/security"
)

// DevJWTSecret is only accepted when ENV is development.
const DevJWTSecret = "cashflowx-development-secret"

// Config holds every setting read from the environment.
type Config struct {
	Port           string
	Env            string
	MongoURI       string
	DBName         string
	StorageDriver  string
	JWTSecret      string
	JWTExpiresIn   time.Duration
	AllowedOrigins []string
	BaseURL        string
	UploadDir      string
	SMTP           SMTPConfig
	Redis          RedisConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled reports whether enough SMTP settings exist to send mail.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.User != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Load reads a .env file if one exists and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "3000"),
		Env:           getEnv("ENV", "development"),
		DBName:        getEnv("DB_NAME", "cashflowx"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "mongo")),
		BaseURL:       strings.TrimRight(os.Getenv("BASE_URL"), "/"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}

	cfg.MongoURI = os.Getenv("MONGO_URI")
	if cfg.MongoURI == "" {
		cfg.MongoURI = os.Getenv("MONGODB_URI")
	}
	if cfg.MongoURI == "" && cfg.StorageDriver == "mongo" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("MONGO_URI or MONGODB_URI environment variable is required for production")
		}
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.StorageDriver != "mongo" && cfg.StorageDriver != "memory" {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required")
		}
		log.Println("Warning: JWT_SECRET not set, using development secret")
		cfg.JWTSecret = DevJWTSecret
	}

	ttl, err := security.ParseTTL(os.Getenv("JWT_EXPIRES_IN"))
	if err != nil {
		return nil, err
	}
	cfg.JWTExpiresIn = ttl

	cfg.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if clientURL := strings.TrimSpace(os.Getenv("CLIENT_URL")); clientURL != "" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, clientURL)
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}

	cfg.SMTP = SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     getEnvInt("SMTP_PORT", 587),
		User:     os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     getEnv("FROM_EMAIL", os.Getenv("SMTP_USER")),
	}
	cfg.Redis = RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Warning: ignoring non-numeric %s=%q", key, v)
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
