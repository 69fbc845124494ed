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
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	Log      LogConfig
	CORS     CORSConfig
	Email    EmailConfig
	Workflow WorkflowConfig
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
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
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

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// WorkflowConfig holds approval workflow settings.
type WorkflowConfig struct {
	// DirectorateAreaName is the business area whose members hold stage-3
	// approval authority.
	DirectorateAreaName string `mapstructure:"directorate_area_name"`
}

// Load reads configuration from environment variables with the DOCFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCFLOW")
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
	v.SetDefault("db.user", "docflow")
	v.SetDefault("db.password", "docflow_secret")
	v.SetDefault("db.name", "docflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "docflow")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-1")
	v.SetDefault("email.from_address", "noreply@docflow.local")
	v.SetDefault("email.from_name", "DocFlow")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Workflow defaults
	v.SetDefault("workflow.directorate_area_name", "Directorate")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "DOCFLOW_SERVER_PORT",
		"server.read_timeout":            "DOCFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "DOCFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":             "DOCFLOW_SERVER_ENVIRONMENT",
		"db.host":                        "DOCFLOW_DB_HOST",
		"db.port":                        "DOCFLOW_DB_PORT",
		"db.user":                        "DOCFLOW_DB_USER",
		"db.password":                    "DOCFLOW_DB_PASSWORD",
		"db.name":                        "DOCFLOW_DB_NAME",
		"db.sslmode":                     "DOCFLOW_DB_SSLMODE",
		"db.max_open":                    "DOCFLOW_DB_MAX_OPEN",
		"db.max_idle":                    "DOCFLOW_DB_MAX_IDLE",
		"jwt.secret":                     "DOCFLOW_JWT_SECRET",
		"jwt.access_expiry":              "DOCFLOW_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "DOCFLOW_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "DOCFLOW_JWT_ISSUER",
		"log.level":                      "DOCFLOW_LOG_LEVEL",
		"log.format":                     "DOCFLOW_LOG_FORMAT",
		"cors.allowed_origins":           "DOCFLOW_CORS_ALLOWED_ORIGINS",
		"email.provider":                 "DOCFLOW_EMAIL_PROVIDER",
		"email.region":                   "DOCFLOW_EMAIL_REGION",
		"email.from_address":             "DOCFLOW_EMAIL_FROM_ADDRESS",
		"email.from_name":                "DOCFLOW_EMAIL_FROM_NAME",
		"email.frontend_url":             "DOCFLOW_EMAIL_FRONTEND_URL",
		"workflow.directorate_area_name": "DOCFLOW_WORKFLOW_DIRECTORATE_AREA_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCFLOW_SERVER_PORT") == "" {
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
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Workflow = WorkflowConfig{
		DirectorateAreaName: v.GetString("workflow.directorate_area_name"),
	}

	return cfg, nil
}
