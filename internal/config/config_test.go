package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "wishlist-test"
redis:
  address: "localhost:6379"
storage:
  key: "test:items"
api:
  http:
    port: 9000
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "wishlist-test" {
		t.Errorf("expected app name wishlist-test, got %s", cfg.App.Name)
	}
	if cfg.Redis.Address != "localhost:6379" {
		t.Errorf("expected redis address localhost:6379, got %s", cfg.Redis.Address)
	}
	if cfg.Storage.Key != "test:items" {
		t.Errorf("expected storage key test:items, got %s", cfg.Storage.Key)
	}
	if cfg.API.HTTP.Port != 9000 {
		t.Errorf("expected http port 9000, got %d", cfg.API.HTTP.Port)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("app:\n  name: \"\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "wishlist" {
		t.Errorf("expected default app name, got %s", cfg.App.Name)
	}
	if cfg.API.HTTP.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.API.HTTP.Port)
	}
	if cfg.Storage.Key != "wishlist:items" {
		t.Errorf("expected default storage key, got %s", cfg.Storage.Key)
	}
	if cfg.Service.MaxWriteAttempts != 5 {
		t.Errorf("expected default max_write_attempts 5, got %d", cfg.Service.MaxWriteAttempts)
	}
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("TEST_REDIS_ADDR", "redis.internal:6379")

	yamlContent := `
redis:
  address: "${TEST_REDIS_ADDR}"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Redis.Address != "redis.internal:6379" {
		t.Errorf("expected expanded redis address, got %s", cfg.Redis.Address)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				API:     APIConfig{HTTP: APIHTTPConfig{Port: 8080}},
				Service: ServiceConfig{MaxWriteAttempts: 5},
			},
			wantErr: false,
		},
		{
			name: "bad port",
			cfg: Config{
				API:     APIConfig{HTTP: APIHTTPConfig{Port: 70000}},
				Service: ServiceConfig{MaxWriteAttempts: 5},
			},
			wantErr: true,
		},
		{
			name: "no write attempts",
			cfg: Config{
				API:     APIConfig{HTTP: APIHTTPConfig{Port: 8080}},
				Service: ServiceConfig{MaxWriteAttempts: 0},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
