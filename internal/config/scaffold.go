package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `version: 1
api:
  base_url: %q
  timeout: 10s
  # Environment variable holding the bearer token, if the server needs one.
  token_env: QUIZEDIT_TOKEN
editor:
  no_color: false
`

// Scaffold writes a starter config file at configPath pointing at baseURL. An
// empty baseURL uses DefaultBaseURL.
func Scaffold(configPath, baseURL string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(fmt.Sprintf(configTemplate, baseURL)), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
