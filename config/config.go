package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env         string `env:"APP_ENV" envDefault:"development"`
		Port        string `env:"PORT"    envDefault:"8090"`
		FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"elitefire_db"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	}
	JWT struct {
		Secret        string `env:"JWT_SECRET" envDefault:"supersecret"`
		ExpiryMinutes int    `env:"JWT_EXPIRY_MINUTES" envDefault:"720"`
	}
	Admin struct {
		Username string `env:"ADMIN_USERNAME" envDefault:"ADMIN"`
		Email    string `env:"ADMIN_EMAIL"    envDefault:"admin@gmail.com"`
		Pin      string `env:"ADMIN_PIN"      envDefault:"444488"`
	}
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
var DB *gorm.DB

// Global appConfig instance, accessible after LoadConfig() is called via Initialize.
var appConfig *Config
var once sync.Once // Used for singleton pattern to load config only once

// LoadConfig loads configuration from environment variables into the Config struct.
// It's designed to be called once.
func LoadConfig() (*Config, error) {
	// Load .env file. It's okay if it doesn't exist, especially in production
	// where env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	cfg := &Config{}

	// --- App Configuration ---
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8090")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// --- Database Configuration ---
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "elitefire_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// --- JWT Configuration ---
	cfg.JWT.Secret = getEnv("JWT_SECRET", "your-very-strong-session-secret")
	var err error
	cfg.JWT.ExpiryMinutes, err = getEnvAsInt("JWT_EXPIRY_MINUTES", 720)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_MINUTES: %w", err)
	}

	// --- Admin seed account ---
	cfg.Admin.Username = getEnv("ADMIN_USERNAME", "ADMIN")
	cfg.Admin.Email = getEnv("ADMIN_EMAIL", "admin@gmail.com")
	cfg.Admin.Pin = getEnv("ADMIN_PIN", "444488")

	if cfg.JWT.Secret == "your-very-strong-session-secret" {
		log.Println("WARNING: Using default JWT secret. Please set JWT_SECRET environment variable for production.")
	}
	if cfg.Admin.Pin == "444488" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default admin PIN in production. Please set ADMIN_PIN environment variable.")
	}

	appConfig = cfg // Set the global instance
	return cfg, nil
}

// ConnectDB establishes a connection to the database using the provided configuration.
// It sets the global DB variable.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbCfg.DB.Host,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.Port,
		dbCfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{}
	if dbCfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info) // Log SQL queries in development
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent) // Less verbose in production
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB // Set the global DB instance
	log.Println("Successfully connected to database!")
	return gormDB, nil
}

// Initialize loads all configurations and connects to the database.
// This should be called once at the start of your application (e.g., in main.go).
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		_, err = ConnectDB(*appConfig)
		if err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
// It panics if the configuration has not been loaded yet,
// ensuring that configuration is always available when requested after Initialize().
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
