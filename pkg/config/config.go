/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fastobjectnotation/fon/pkg/dump"
	"github.com/fastobjectnotation/fon/pkg/fon"
)

// Config represents the FON tooling configuration
type Config struct {
	DataDir  string   `yaml:"data_dir"`
	Port     int      `yaml:"port"`
	Bind     string   `yaml:"bind"`
	Codec    Codec    `yaml:"codec"`
	Pipeline Pipeline `yaml:"pipeline"`
	Security Security `yaml:"security"`
	Logging  Logging  `yaml:"logging"`
}

// Codec contains parser and serializer settings
type Codec struct {
	EagerUnpackRaw bool `yaml:"eager_unpack_raw"`
	StrictEscapes  bool `yaml:"strict_escapes"`
}

// Pipeline contains file pipeline tuning
type Pipeline struct {
	Parallelism             int   `yaml:"parallelism"`
	WholeFileLimitBytes     int64 `yaml:"whole_file_limit_bytes"`
	ChunkLines              int   `yaml:"chunk_lines"`
	ParallelMethodThreshold int   `yaml:"parallel_method_threshold"`
}

// Security contains security-related configuration
type Security struct {
	ClientAPIKey string `yaml:"client_api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Codec: Codec{
			EagerUnpackRaw: false,
			StrictEscapes:  false,
		},
		Pipeline: Pipeline{
			Parallelism:             0, // 0 = one worker per hardware thread
			WholeFileLimitBytes:     dump.DefaultWholeFileLimit,
			ChunkLines:              dump.DefaultChunkLines,
			ParallelMethodThreshold: dump.DefaultParallelMethodThreshold,
		},
		Security: Security{
			ClientAPIKey: "auto",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Apply pushes the codec and pipeline settings into the package-wide
// defaults read by ParseLine and the file operations.
func (c *Config) Apply() {
	fon.SetEagerUnpackRaw(c.Codec.EagerUnpackRaw)
	fon.SetStrictEscapes(c.Codec.StrictEscapes)
	if c.Pipeline.WholeFileLimitBytes > 0 {
		dump.SetWholeFileLimit(c.Pipeline.WholeFileLimitBytes)
	}
	if c.Pipeline.ChunkLines > 0 {
		dump.SetChunkLines(c.Pipeline.ChunkLines)
	}
	if c.Pipeline.ParallelMethodThreshold > 0 {
		dump.SetParallelMethodThreshold(c.Pipeline.ParallelMethodThreshold)
	}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated API key if it
// doesn't exist
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	clientAPIKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate client API key: %w", err)
	}
	config.Security.ClientAPIKey = clientAPIKey

	// Save the configuration
	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	// Use OS-specific default locations
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./fon.yaml"
	}

	// For Linux/macOS, use ~/.config/fon/config.yaml
	configDir := filepath.Join(homeDir, ".config", "fon")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
