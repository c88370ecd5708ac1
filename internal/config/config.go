package config

import "time"

// Defaults used when the config file omits a value.
const (
	DefaultBaseURL  = "http://localhost:3000"
	DefaultTimeout  = 10 * time.Second
	DefaultTokenEnv = "QUIZEDIT_TOKEN"
)

// Environment variables that override the config file.
const (
	EnvAPIURL  = "QUIZEDIT_API_URL"
	EnvTimeout = "QUIZEDIT_TIMEOUT"
)

// Config is the parsed .quizedit/config.yml.
type Config struct {
	Version int          `yaml:"version" validate:"required,eq=1"`
	API     APIConfig    `yaml:"api"`
	Editor  EditorConfig `yaml:"editor"`
}

// APIConfig describes how to reach the quiz persistence server.
type APIConfig struct {
	BaseURL  string        `yaml:"base_url" validate:"required,url"`
	Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
	TokenEnv string        `yaml:"token_env"`
}

// EditorConfig tunes the interactive editor.
type EditorConfig struct {
	NoColor bool `yaml:"no_color"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Version: 1,
		API: APIConfig{
			BaseURL:  DefaultBaseURL,
			Timeout:  DefaultTimeout,
			TokenEnv: DefaultTokenEnv,
		},
	}
}

// Normalize fills unset values with defaults.
func Normalize(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultTimeout
	}
	if cfg.API.TokenEnv == "" {
		cfg.API.TokenEnv = DefaultTokenEnv
	}
}
