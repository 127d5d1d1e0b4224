package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
}

type EnvConfig interface {
	GetAppName() string
	GetLogLevel() string
	GetCredentialsFile() string
	GetEnv() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetLoginTimeout() time.Duration
	GetRequestTimeout() time.Duration
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
