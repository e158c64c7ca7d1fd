package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings the service needs at startup:
// server address, database connection, upstream monitoring endpoints and
// the reports output directory.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// Base URLs of the three monitoring services the report pipeline reads from.
	AlertServiceURL        string `env:"ALERT_SERVICE_URL,required"`
	InterventionServiceURL string `env:"INTERVENTION_SERVICE_URL,required"`
	MaintenanceServiceURL  string `env:"MAINTENANCE_SERVICE_URL,required"`

	// ReportsDir is where generated PDF artifacts are written. Created on
	// startup if absent.
	ReportsDir string `env:"REPORTS_DIR" envDefault:"./reports"`

	// ExtraImages lists optional supplementary image filenames appended to
	// the summary page when present under ReportsDir (comma separated).
	ExtraImages string `env:"REPORT_EXTRA_IMAGES" envDefault:""`
}

// getEnvPath returns the env file path for the current GO_ENV, searching
// upward from the working directory for a config/env folder.
func getEnvPath() string {
	environment := os.Getenv("GO_ENV")
	if environment == "" {
		environment = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Logger is not initialized yet at this point.
		fmt.Printf("cannot determine working directory: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", environment))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads the env file for the current environment and parses it
// into a Configuration. Returns nil when the file is missing or invalid.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("cannot load env file at %s: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("cannot parse configuration: %+v\n", err)
		return nil
	}

	return &cfg
}
