package hashmyfiles

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	// No config file present - built-in defaults apply
	tempDir := t.TempDir()

	config, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	allConfig := config.GetAllConfig()

	if allConfig.Hash.Default != "sha256" {
		t.Errorf("Expected default hash algorithm 'sha256', got '%s'", allConfig.Hash.Default)
	}
	if !reflect.DeepEqual(allConfig.Scanner.Extensions, DefaultExtensions) {
		t.Errorf("Expected default extensions %v, got %v", DefaultExtensions, allConfig.Scanner.Extensions)
	}
	if allConfig.Store.File != DatabaseFile {
		t.Errorf("Expected default store file '%s', got '%s'", DatabaseFile, allConfig.Store.File)
	}
	if allConfig.Performance.BlockSize != "64K" {
		t.Errorf("Expected default block size '64K', got '%s'", allConfig.Performance.BlockSize)
	}
	if allConfig.Verbose.Level != 0 {
		t.Errorf("Expected default verbose level 0, got %d", allConfig.Verbose.Level)
	}
}

func TestConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()

	content := `[filehash]
default = sha512

[scanner]
extensions = .mp4, .avi, MOV

[store]
file = integrity.db

[performance]
block_size = 1M

[verbose]
level = 2
debug = scan,hash
`
	if err := os.WriteFile(filepath.Join(tempDir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	allConfig := config.GetAllConfig()

	if allConfig.Hash.Default != "sha512" {
		t.Errorf("Expected hash algorithm 'sha512', got '%s'", allConfig.Hash.Default)
	}
	expectedExts := []string{".mp4", ".avi", ".mov"}
	if !reflect.DeepEqual(allConfig.Scanner.Extensions, expectedExts) {
		t.Errorf("Expected extensions %v, got %v", expectedExts, allConfig.Scanner.Extensions)
	}
	if allConfig.Store.File != "integrity.db" {
		t.Errorf("Expected store file 'integrity.db', got '%s'", allConfig.Store.File)
	}
	if allConfig.Performance.BlockSize != "1M" {
		t.Errorf("Expected block size '1M', got '%s'", allConfig.Performance.BlockSize)
	}
	if allConfig.Verbose.Level != 2 {
		t.Errorf("Expected verbose level 2, got %d", allConfig.Verbose.Level)
	}
	if allConfig.Verbose.Debug != "scan,hash" {
		t.Errorf("Expected debug flags 'scan,hash', got '%s'", allConfig.Verbose.Debug)
	}
}

func TestConfigOverrides(t *testing.T) {
	tempDir := t.TempDir()

	config, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	err = config.ApplyOverrides([]string{
		"default:sha1",
		"extensions:.mp4,.webm",
		"block_size:128K",
		"level:3",
	})
	if err != nil {
		t.Fatalf("Failed to apply overrides: %v", err)
	}

	allConfig := config.GetAllConfig()

	if allConfig.Hash.Default != "sha1" {
		t.Errorf("Expected hash algorithm 'sha1' after override, got '%s'", allConfig.Hash.Default)
	}
	expectedExts := []string{".mp4", ".webm"}
	if !reflect.DeepEqual(allConfig.Scanner.Extensions, expectedExts) {
		t.Errorf("Expected extensions %v after override, got %v", expectedExts, allConfig.Scanner.Extensions)
	}
	if allConfig.Performance.BlockSize != "128K" {
		t.Errorf("Expected block size '128K' after override, got '%s'", allConfig.Performance.BlockSize)
	}
	if allConfig.Verbose.Level != 3 {
		t.Errorf("Expected verbose level 3 after override, got %d", allConfig.Verbose.Level)
	}
}

func TestConfigOverrideErrors(t *testing.T) {
	tempDir := t.TempDir()

	config, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if err := config.ApplyOverrides([]string{"no-colon"}); err == nil {
		t.Error("ApplyOverrides with malformed override should fail")
	}
	if err := config.ApplyOverrides([]string{"bogus:value"}); err == nil {
		t.Error("ApplyOverrides with unknown key should fail")
	}
}

func TestConfigSave(t *testing.T) {
	tempDir := t.TempDir()

	config, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if err := config.ApplyOverrides([]string{"default:sha512"}); err != nil {
		t.Fatalf("Failed to apply override: %v", err)
	}
	if err := config.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	// Reload and check the override persisted
	reloaded, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if reloaded.GetHashConfig().Default != "sha512" {
		t.Errorf("Expected persisted hash algorithm 'sha512', got '%s'", reloaded.GetHashConfig().Default)
	}
}

func TestHashAlgorithmValidation(t *testing.T) {
	testCases := []struct {
		algorithm string
		valid     bool
	}{
		{"sha1", true},
		{"sha256", true},
		{"sha512", true},
		{"SHA256", true}, // case insensitive
		{"md5", false},   // unsupported
		{"invalid", false},
		{"", false},
	}

	for _, tc := range testCases {
		err := ValidateHashAlgorithm(tc.algorithm)
		if tc.valid && err != nil {
			t.Errorf("ValidateHashAlgorithm('%s') should succeed but got error: %v", tc.algorithm, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("ValidateHashAlgorithm('%s') should fail but succeeded", tc.algorithm)
		}
	}
}

func TestVerboseLevelValidation(t *testing.T) {
	for _, level := range []int{0, 1, 2, 3} {
		if err := ValidateVerboseLevel(level); err != nil {
			t.Errorf("ValidateVerboseLevel(%d) should succeed but got error: %v", level, err)
		}
	}
	for _, level := range []int{-1, 4, 100} {
		if err := ValidateVerboseLevel(level); err == nil {
			t.Errorf("ValidateVerboseLevel(%d) should fail but succeeded", level)
		}
	}
}
