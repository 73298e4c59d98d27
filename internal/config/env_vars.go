package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	baseURLEnvVar     = "API_BASE_URL"
	appNameEnvVar     = "APP_NAME"
	credentialsEnvVar = "ADMIN_CREDENTIALS_FILE"
	httpTimeoutEnvVar = "HTTP_TIMEOUT"
)

type EnvConfig interface {
	GetAPIBaseURL() string
	GetAppName() string
	GetCredentialsFile() string
	GetHTTPTimeout() time.Duration
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(baseURLEnvVar, "http://localhost:3000/api")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameEnvVar, "Vendaro Admin")
}

// GetCredentialsFile returns the path of the persisted session file.
// Defaults to ~/.vendaro/credentials.json.
func (EnvVars) GetCredentialsFile() string {
	if path := os.Getenv(credentialsEnvVar); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".vendaro", "credentials.json")
	}
	return filepath.Join(home, ".vendaro", "credentials.json")
}

func (EnvVars) GetHTTPTimeout() time.Duration {
	timeout, err := time.ParseDuration(GetEnv(httpTimeoutEnvVar, "30s"))
	if err != nil {
		return 30 * time.Second
	}
	return timeout
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
