package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				ServiceURL:  "http://chat.local",
				HTTPTimeout: "30s",
				TokenStore:  "redis",
				TokenFile:   "/tmp/creds.toml",
				RedisURL:    "redis://cache:6379/1",
				Output:      "yaml",
				Concurrency: 8,
				LogLevel:    "debug",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				ServiceURL:  "http://chat.local",
				HTTPTimeout: 30 * time.Second,
				TokenStore:  "redis",
				TokenFile:   "/tmp/creds.toml",
				RedisURL:    "redis://cache:6379/1",
				Output:      "yaml",
				Concurrency: 8,
				LogLevel:    "debug",
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				ServiceURL:  "http://from-file",
				Concurrency: 9,
			},
			changed: map[string]bool{"service-url": true},
			initial: Config{
				ServiceURL:  "http://from-flag",
				Concurrency: 1,
			},
			expected: Config{
				ServiceURL:  "http://from-flag", // unchanged because flag was set
				Concurrency: 9,
			},
		},
		{
			name:       "empty values keep defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{HTTPTimeout: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFileConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
service_url = "http://chat.local"
http_timeout = "5s"
token_store = "memory"
concurrency = 2
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.ServiceURL != "http://chat.local" {
		t.Errorf("ServiceURL = %v", fc.ServiceURL)
	}
	if fc.HTTPTimeout != "5s" {
		t.Errorf("HTTPTimeout = %v, want 5s", fc.HTTPTimeout)
	}
	if fc.TokenStore != "memory" {
		t.Errorf("TokenStore = %v, want memory", fc.TokenStore)
	}
	if fc.Concurrency != 2 {
		t.Errorf("Concurrency = %v, want 2", fc.Concurrency)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.toml")

	if err := os.WriteFile(configPath, []byte("service_url = \nthis is not valid toml\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	if _, err := LoadFileConfig(configPath); err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".chatship") {
		t.Errorf("DefaultConfigPath() = %v, should contain .chatship", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}
	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
