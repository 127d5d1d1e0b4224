package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	apiURLEnvVar          = "RENTDESK_API_URL"
	credentialsFileEnvVar = "RENTDESK_CREDENTIALS_FILE"
	loginTimeoutEnvVar    = "RENTDESK_LOGIN_TIMEOUT"
	requestTimeoutEnvVar  = "RENTDESK_REQUEST_TIMEOUT"
	logLevelEnvVar        = "RENTDESK_LOG_LEVEL"
	appNameEnvVar         = "APP_NAME"

	defaultAPIBaseURL     = "http://localhost:8000/api"
	defaultLoginTimeout   = 10 * time.Second
	defaultRequestTimeout = 30 * time.Second
)

// Load reads a .env file into the process environment. A missing file is
// not an error; explicit environment variables always win.
func Load(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ APIConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameEnvVar, "RentDesk")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
}

// GetAPIBaseURL returns the backend base URL, including the /api prefix
// (e.g. "https://rentals.example.com/api")
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiURLEnvVar, defaultAPIBaseURL)
}

// GetCredentialsFile returns the path of the durable session file. Defaults
// to the platform user config directory, falling back to the working
// directory when none is available.
func (EnvVars) GetCredentialsFile() string {
	if path := os.Getenv(credentialsFileEnvVar); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".rentdesk-session.json"
	}
	return filepath.Join(configDir, "rentdesk", "session.json")
}

func (EnvVars) GetLoginTimeout() time.Duration {
	return getDurationEnv(loginTimeoutEnvVar, defaultLoginTimeout)
}

func (EnvVars) GetRequestTimeout() time.Duration {
	return getDurationEnv(requestTimeoutEnvVar, defaultRequestTimeout)
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

// getDurationEnv accepts Go duration strings ("10s") or bare seconds ("10").
func getDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
