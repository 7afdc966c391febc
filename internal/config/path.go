package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultConfigDir  = "/etc/opens3"
	DefaultConfigName = "config.yaml"
)

const EnvConfigPath = "OPENS3_CONFIG"

func DefaultConfigPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".config", "opens3", DefaultConfigName)
		if _, err := os.Stat(userPath); err == nil {
			return userPath
		}
	}
	return filepath.Join(DefaultConfigDir, DefaultConfigName)
}

func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath()
}
