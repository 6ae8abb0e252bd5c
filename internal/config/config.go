package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Dashboard HTTP server
	Port     string
	LogLevel string

	// Supervised KMS server process
	KMSBin       string
	KMSScript    string
	KMSDir       string
	KMSBindIP    string
	KMSPort      string
	KMSVerbosity string

	// On-disk collaborators
	DatabasePath string
	LogPath      string

	// Behaviour toggles
	OpenBrowser bool
}

// New creates a new Config instance by loading environment variables
// from .env file (if present) and OS environment.
// OS environment variables take precedence over .env file values.
// Every value has a working default; nothing is required.
func New() *Config {
	// Load .env file from project root (silently ignore if not found)
	// We use the directory where the binary is run from as the base
	envPath := filepath.Join(".", ".env")
	_ = godotenv.Load(envPath)

	return &Config{
		// Dashboard HTTP server
		Port:     getEnvOrDefault("PORT", "5000"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),

		// Supervised KMS server process
		KMSBin:       getEnvOrDefault("KMS_SERVER_BIN", "python3"),
		KMSScript:    getEnvOrDefault("KMS_SERVER_SCRIPT", "pykms_Server.py"),
		KMSDir:       getEnvOrDefault("KMS_SERVER_DIR", "py-kms"),
		KMSBindIP:    getEnvOrDefault("KMS_BIND_IP", "0.0.0.0"),
		KMSPort:      getEnvOrDefault("KMS_PORT", "1688"),
		KMSVerbosity: getEnvOrDefault("KMS_VERBOSITY", "INFO"),

		// On-disk collaborators
		DatabasePath: getEnvOrDefault("KMS_DB_PATH", "kms_database.json"),
		LogPath:      getEnvOrDefault("KMS_LOG_PATH", "kms_logs.txt"),

		// Behaviour toggles
		OpenBrowser: getEnvBool("OPEN_BROWSER", true),
	}
}

// ServerArgs returns the argument vector handed to the KMS server binary.
// The bind address and port double as the initial dashboard configuration.
func (c *Config) ServerArgs() []string {
	return []string{c.KMSScript, c.KMSBindIP, c.KMSPort, "-V", c.KMSVerbosity}
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default value when
// the variable is unset or unparseable
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Helper methods for accessing configuration values

// GetPort returns the dashboard HTTP port
func (c *Config) GetPort() string {
	return c.Port
}

// GetLogLevel returns the logging level
func (c *Config) GetLogLevel() string {
	return c.LogLevel
}

// GetKMSBin returns the KMS server binary
func (c *Config) GetKMSBin() string {
	return c.KMSBin
}

// GetKMSDir returns the working directory the KMS server runs in
func (c *Config) GetKMSDir() string {
	return c.KMSDir
}

// GetKMSBindIP returns the address the KMS server binds to
func (c *Config) GetKMSBindIP() string {
	return c.KMSBindIP
}

// GetKMSPort returns the port the KMS server listens on
func (c *Config) GetKMSPort() string {
	return c.KMSPort
}

// GetDatabasePath returns the product database file path
func (c *Config) GetDatabasePath() string {
	return c.DatabasePath
}

// GetLogPath returns the shared log sink file path
func (c *Config) GetLogPath() string {
	return c.LogPath
}
