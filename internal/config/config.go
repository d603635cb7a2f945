package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"gstcore/internal/tax"
)

const envPrefix = "GSTCORE"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Log       LogConfig
	CORS      CORSConfig
	Company   CompanyConfig
	Numbering NumberingConfig
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

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CompanyConfig describes the seller. State is parsed with
// tax.ParseJurisdiction, so "29", "Karnataka", "29-Karnataka" and a GSTIN
// are all accepted.
type CompanyConfig struct {
	Name  string `mapstructure:"name"`
	GSTIN string `mapstructure:"gstin"`
	State string `mapstructure:"state"`
}

// Jurisdiction returns the seller jurisdiction, preferring the explicit
// state over the GSTIN prefix.
func (c *CompanyConfig) Jurisdiction() tax.Jurisdiction {
	if j := tax.ParseJurisdiction(c.State); !j.IsZero() {
		return j
	}
	return tax.ParseJurisdiction(c.GSTIN)
}

// NumberingConfig holds invoice numbering settings.
type NumberingConfig struct {
	Series   string `mapstructure:"series"`
	Prefix   string `mapstructure:"prefix"`
	Template string `mapstructure:"template"`
}

// Load reads configuration from environment variables with the GSTCORE_
// prefix. A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
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
	v.SetDefault("db.user", "gstcore")
	v.SetDefault("db.password", "gstcore_secret")
	v.SetDefault("db.name", "gstcore_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Company defaults
	v.SetDefault("company.name", "")
	v.SetDefault("company.gstin", "")
	v.SetDefault("company.state", "")

	// Numbering defaults
	v.SetDefault("numbering.series", "default")
	v.SetDefault("numbering.prefix", "INV")
	v.SetDefault("numbering.template", "{PREFIX}-{YYYY}-{SEQ6}")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "GSTCORE_SERVER_PORT",
		"server.read_timeout":  "GSTCORE_SERVER_READ_TIMEOUT",
		"server.write_timeout": "GSTCORE_SERVER_WRITE_TIMEOUT",
		"server.environment":   "GSTCORE_SERVER_ENVIRONMENT",
		"db.host":              "GSTCORE_DB_HOST",
		"db.port":              "GSTCORE_DB_PORT",
		"db.user":              "GSTCORE_DB_USER",
		"db.password":          "GSTCORE_DB_PASSWORD",
		"db.name":              "GSTCORE_DB_NAME",
		"db.sslmode":           "GSTCORE_DB_SSLMODE",
		"db.max_open":          "GSTCORE_DB_MAX_OPEN",
		"db.max_idle":          "GSTCORE_DB_MAX_IDLE",
		"log.level":            "GSTCORE_LOG_LEVEL",
		"log.format":           "GSTCORE_LOG_FORMAT",
		"cors.allowed_origins": "GSTCORE_CORS_ALLOWED_ORIGINS",
		"company.name":         "GSTCORE_COMPANY_NAME",
		"company.gstin":        "GSTCORE_COMPANY_GSTIN",
		"company.state":        "GSTCORE_COMPANY_STATE",
		"numbering.series":     "GSTCORE_NUMBERING_SERIES",
		"numbering.prefix":     "GSTCORE_NUMBERING_PREFIX",
		"numbering.template":   "GSTCORE_NUMBERING_TEMPLATE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTCORE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTCORE_SERVER_PORT") == "" {
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
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Company = CompanyConfig{
		Name:  strings.TrimSpace(v.GetString("company.name")),
		GSTIN: strings.ToUpper(strings.TrimSpace(v.GetString("company.gstin"))),
		State: strings.TrimSpace(v.GetString("company.state")),
	}
	cfg.Numbering = NumberingConfig{
		Series:   strings.TrimSpace(v.GetString("numbering.series")),
		Prefix:   v.GetString("numbering.prefix"),
		Template: v.GetString("numbering.template"),
	}

	if cfg.Numbering.Series == "" {
		return nil, fmt.Errorf("numbering.series must not be empty")
	}
	return cfg, nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
