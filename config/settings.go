package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	AppEnv string `mapstructure:"APP_ENV"`
	Port   string `mapstructure:"PORT"`

	CmsDBURL   string `mapstructure:"CMS_DB_URL"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	RedisURL string `mapstructure:"REDIS_URL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTExpiry time.Duration `mapstructure:"JWT_EXPIRY"`

	StoreDomain string `mapstructure:"STORE_DOMAIN"`
	StoreName   string `mapstructure:"STORE_NAME"`

	// --- Catalog cache ---
	CatalogChunkSize int           `mapstructure:"CATALOG_CHUNK_SIZE"`
	CatalogL1TTL     time.Duration `mapstructure:"CATALOG_L1_TTL"`
	CatalogLockTTL   time.Duration `mapstructure:"CATALOG_LOCK_TTL"`
	FilterDelay      int           `mapstructure:"FILTER_DELAY"`

	CorsOrigins string `mapstructure:"CORS_ORIGINS"`
}

// App holds the settings loaded at startup
var App = Defaults()

// Defaults returns the development settings used when a key is unset
func Defaults() *Settings {
	return &Settings{
		AppEnv:           "development",
		Port:             "8080",
		DBHost:           "localhost",
		DBPort:           5432,
		DBUser:           "postgres",
		DBName:           "joyfer",
		RedisURL:         "redis://localhost:6379",
		JWTExpiry:        24 * time.Hour,
		StoreDomain:      "https://joyfer.com.ua",
		StoreName:        "FO Scandinavia",
		CatalogChunkSize: 512 * 1024,
		CatalogL1TTL:     30 * time.Second,
		CatalogLockTTL:   60 * time.Second,
		FilterDelay:      250,
		CorsOrigins:      "http://localhost:3000",
	}
}

// Load reads .env (when present) and the process environment into App
func Load() (*Settings, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	defaults := Defaults()
	v.SetDefault("APP_ENV", defaults.AppEnv)
	v.SetDefault("PORT", defaults.Port)
	v.SetDefault("DB_HOST", defaults.DBHost)
	v.SetDefault("DB_PORT", defaults.DBPort)
	v.SetDefault("DB_USER", defaults.DBUser)
	v.SetDefault("DB_NAME", defaults.DBName)
	v.SetDefault("REDIS_URL", defaults.RedisURL)
	v.SetDefault("JWT_EXPIRY", defaults.JWTExpiry)
	v.SetDefault("STORE_DOMAIN", defaults.StoreDomain)
	v.SetDefault("STORE_NAME", defaults.StoreName)
	v.SetDefault("CATALOG_CHUNK_SIZE", defaults.CatalogChunkSize)
	v.SetDefault("CATALOG_L1_TTL", defaults.CatalogL1TTL)
	v.SetDefault("CATALOG_LOCK_TTL", defaults.CatalogLockTTL)
	v.SetDefault("FILTER_DELAY", defaults.FilterDelay)
	v.SetDefault("CORS_ORIGINS", defaults.CorsOrigins)

	keys := []string{
		"APP_ENV", "PORT",
		"CMS_DB_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"REDIS_URL", "JWT_SECRET", "JWT_EXPIRY",
		"STORE_DOMAIN", "STORE_NAME",
		"CATALOG_CHUNK_SIZE", "CATALOG_L1_TTL", "CATALOG_LOCK_TTL", "FILTER_DELAY",
		"CORS_ORIGINS",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if s.CatalogChunkSize <= 0 {
		return nil, fmt.Errorf("CATALOG_CHUNK_SIZE must be positive, got %d", s.CatalogChunkSize)
	}
	s.StoreDomain = strings.TrimRight(s.StoreDomain, "/")

	App = &s
	return &s, nil
}

func (s *Settings) IsProduction() bool {
	return s.AppEnv == "production"
}

// DSN prefers CMS_DB_URL and falls back to the discrete DB_* keys
func (s *Settings) DSN() string {
	if s.CmsDBURL != "" {
		return s.CmsDBURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		s.DBHost, s.DBUser, s.DBPassword, s.DBName, s.DBPort,
	)
}

// AllowedOrigins splits CORS_ORIGINS on commas
func (s *Settings) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(s.CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// String masks secrets so the settings can be logged at startup
func (s *Settings) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppEnv: %s\n", s.AppEnv))
	sb.WriteString(fmt.Sprintf("  Port: %s\n", s.Port))
	if s.CmsDBURL != "" {
		sb.WriteString("  CmsDBURL: ********\n")
	} else {
		sb.WriteString(fmt.Sprintf("  DB: %s@%s:%d/%s\n", s.DBUser, s.DBHost, s.DBPort, s.DBName))
	}
	if s.JWTSecret != "" {
		sb.WriteString("  JWTSecret: ********\n")
	} else {
		sb.WriteString("  JWTSecret: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  JWTExpiry: %s\n", s.JWTExpiry))
	sb.WriteString(fmt.Sprintf("  Store: %s (%s)\n", s.StoreName, s.StoreDomain))
	sb.WriteString(fmt.Sprintf("  CatalogChunkSize: %d\n", s.CatalogChunkSize))
	sb.WriteString(fmt.Sprintf("  CatalogL1TTL: %s\n", s.CatalogL1TTL))
	sb.WriteString(fmt.Sprintf("  CatalogLockTTL: %s\n", s.CatalogLockTTL))
	sb.WriteString(fmt.Sprintf("  FilterDelay: %dms\n", s.FilterDelay))
	sb.WriteString(fmt.Sprintf("  CorsOrigins: %s\n", s.CorsOrigins))
	return sb.String()
}
