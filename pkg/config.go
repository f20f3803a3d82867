package hashmyfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the hashmyfiles configuration
type Config struct {
	configPath string
	ini        *ini.File
}

// HashConfig represents hash algorithm configuration
type HashConfig struct {
	Default string // Default hash algorithm
}

// ScannerConfig represents file scanning configuration
type ScannerConfig struct {
	Extensions []string // Extension allow-list (case-insensitive, with leading dot)
}

// StoreConfig represents hash store configuration
type StoreConfig struct {
	File string // Database filename, relative to the scanned directory
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	BlockSize string // Hash read block size as a human size (default: "64K")
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // Default verbose level (0=quiet, 1=basic, 2=detailed, 3=trace)
	Debug string // Default debug flags (comma-separated)
}

// AllConfig represents all configuration options
type AllConfig struct {
	Hash        *HashConfig
	Scanner     *ScannerConfig
	Store       *StoreConfig
	Performance *PerformanceConfig
	Verbose     *VerboseConfig
}

// LoadConfig loads configuration from the hashmyfiles.ini file in the given
// directory. A missing file is not an error; built-in defaults apply.
func LoadConfig(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFile)

	cfg := &Config{
		configPath: configPath,
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.ini = ini.Empty()
	} else {
		iniFile, err := ini.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg.ini = iniFile
	}

	return cfg, nil
}

// GetHashConfig returns the hash configuration
func (c *Config) GetHashConfig() *HashConfig {
	hashConfig := &HashConfig{
		Default: "sha256", // fallback default
	}

	if c.ini.HasSection("filehash") {
		section := c.ini.Section("filehash")
		if section.HasKey("default") {
			hashConfig.Default = section.Key("default").String()
		}
	}

	return hashConfig
}

// GetScannerConfig returns the scanner configuration
func (c *Config) GetScannerConfig() *ScannerConfig {
	scannerConfig := &ScannerConfig{
		Extensions: DefaultExtensions, // fallback default
	}

	if c.ini.HasSection("scanner") {
		section := c.ini.Section("scanner")
		if section.HasKey("extensions") {
			raw := section.Key("extensions").String()
			if exts := normaliseExtensions(strings.Split(raw, ",")); len(exts) > 0 {
				scannerConfig.Extensions = exts
			}
		}
	}

	return scannerConfig
}

// GetStoreConfig returns the store configuration
func (c *Config) GetStoreConfig() *StoreConfig {
	storeConfig := &StoreConfig{
		File: DatabaseFile, // fallback default
	}

	if c.ini.HasSection("store") {
		section := c.ini.Section("store")
		if section.HasKey("file") {
			if file := section.Key("file").String(); file != "" {
				storeConfig.File = file
			}
		}
	}

	return storeConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		BlockSize: "64K", // fallback default
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if section.HasKey("block_size") {
			if blockSize := section.Key("block_size").String(); blockSize != "" {
				performanceConfig.BlockSize = blockSize
			}
		}
	}

	return performanceConfig
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{
		Level: 0,  // fallback default
		Debug: "", // fallback default
	}

	if c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
		if section.HasKey("debug") {
			verboseConfig.Debug = section.Key("debug").String()
		}
	}

	return verboseConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Hash:        c.GetHashConfig(),
		Scanner:     c.GetScannerConfig(),
		Store:       c.GetStoreConfig(),
		Performance: c.GetPerformanceConfig(),
		Verbose:     c.GetVerboseConfig(),
	}
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	return c.ini.SaveTo(c.configPath)
}

// ApplyOverrides applies command-line overrides to the configuration.
// Accepts strings like "default:sha512", "extensions:.mp4,.avi", "level:2"
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "default":
			// filehash.default override
			section := c.ini.Section("filehash")
			section.Key("default").SetValue(value)
		case "extensions":
			// scanner.extensions override
			section := c.ini.Section("scanner")
			section.Key("extensions").SetValue(value)
		case "file":
			// store.file override
			section := c.ini.Section("store")
			section.Key("file").SetValue(value)
		case "block_size":
			// performance.block_size override
			section := c.ini.Section("performance")
			section.Key("block_size").SetValue(value)
		case "level":
			// verbose.level override
			section := c.ini.Section("verbose")
			section.Key("level").SetValue(value)
		case "debug":
			// verbose.debug override
			section := c.ini.Section("verbose")
			section.Key("debug").SetValue(value)
		default:
			return fmt.Errorf("unsupported override key '%s' (supported: default, extensions, file, block_size, level, debug)", key)
		}
	}

	return nil
}

// ValidateHashAlgorithm validates that a hash algorithm is supported
func ValidateHashAlgorithm(algorithm string) error {
	if _, ok := HashTypeFromName(algorithm); !ok {
		return fmt.Errorf("unsupported hash algorithm: %s (supported: sha1, sha256, sha512)", algorithm)
	}
	return nil
}

// ValidateVerboseLevel validates that a verbose level is valid
func ValidateVerboseLevel(level int) error {
	if level < 0 || level > 3 {
		return fmt.Errorf("invalid verbose level: %d (supported: 0-3)", level)
	}
	return nil
}

// ValidateExtensions validates that an extension list is usable
func ValidateExtensions(extensions []string) error {
	if len(normaliseExtensions(extensions)) == 0 {
		return fmt.Errorf("extension allow-list is empty")
	}
	return nil
}
