package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads, parses, applies overrides to, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	if err := loadEnvFile(RootFromConfigPath(path)); err != nil {
		return Config{}, err
	}
	return finish(cfg)
}

// Resolve loads the config at path, or searches upward from the working directory
// when path is empty. With no file found the defaults are used.
func Resolve(path string) (Config, error) {
	if strings.TrimSpace(path) != "" {
		return Load(path)
	}
	found, err := FindConfigPath("")
	if err == nil {
		return Load(found)
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return Config{}, err
	}
	if err := loadEnvFile("."); err != nil {
		return Config{}, err
	}
	return finish(Default())
}

// Parse decodes a config document, rejecting unknown keys.
func Parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			return Config{}, fmt.Errorf("parse config: empty document")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Token returns the API token named by token_env, if set.
func (cfg Config) Token() string {
	if cfg.API.TokenEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(cfg.API.TokenEnv))
}

func finish(cfg Config) (Config, error) {
	Normalize(&cfg)
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadEnvFile loads root/.env into the process environment without replacing
// variables that are already set.
func loadEnvFile(root string) error {
	path := filepath.Join(root, EnvFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if value := strings.TrimSpace(os.Getenv(EnvAPIURL)); value != "" {
		cfg.API.BaseURL = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvTimeout)); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.API.Timeout = timeout
	}
	return nil
}
