// Package config provides configuration management for the sa015 CLI tool
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the main configuration structure
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	Security SecurityConfig  `json:"security"`
	UI       UIConfig        `json:"ui"`
}

// DefaultSettings contains default values for common operations
type DefaultSettings struct {
	RegistryPath string `json:"registry_path"` // Default registry JSON file
	SealedPath   string `json:"sealed_path"`   // Default encrypted registry file
}

// SecurityConfig contains security-related settings
type SecurityConfig struct {
	WipeMemory       bool `json:"wipe_memory"`       // Zero secrets after use
	RequireEncrypted bool `json:"require_encrypted"` // Refuse plaintext registry files
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor  bool   `json:"use_color"` // Enable colored output
	Verbosity string `json:"verbosity"` // quiet, normal, verbose
}

// Manager manages configuration loading and saving
type Manager struct {
	config     *Config
	configPath string
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}

	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	m.configPath = configPath

	// Load or create default config
	if err := m.Load(); err != nil {
		m.config = DefaultConfig()
		if err := m.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return m, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			RegistryPath: "",
			SealedPath:   "~/.config/sa015/registry.sealed",
		},
		Security: SecurityConfig{
			WipeMemory:       true,
			RequireEncrypted: false,
		},
		UI: UIConfig{
			UseColor:  true,
			Verbosity: "normal",
		},
	}
}

// Load loads the configuration from disk
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	m.config = config
	return nil
}

// Save saves the configuration to disk
func (m *Manager) Save() error {
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// Set updates the configuration
func (m *Manager) Set(config *Config) {
	m.config = config
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	if customPath := os.Getenv("SA015_CONFIG"); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "sa015", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "sa015", "config.json"), nil
}
