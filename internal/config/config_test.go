package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  name: themesmith
  environment: production
  port: 9000
database:
  driver: sqlite
  filename: data/themes.db
generator:
  default_harmony: triadic
backup:
  enabled: true
  schedule: "*/30 * * * *"
  directory: backups
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Port != 9000 || cfg.Database.Driver != DriverSQLite {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Generator.DefaultHarmony != "triadic" {
		t.Fatalf("default harmony = %q", cfg.Generator.DefaultHarmony)
	}
	if cfg.Generator.DefaultIndustry != "Custom" {
		t.Fatalf("default industry = %q, want default Custom", cfg.Generator.DefaultIndustry)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("IsDevelopment() = true for production")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
  filename: data/themes.db
`)
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), ".env"), []byte("DATABASE_FILENAME=from-dotenv.db\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("THEMESMITH_PORT", "7070")
	t.Setenv("DATABASE_FILENAME", "")
	os.Unsetenv("DATABASE_FILENAME")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Port != 7070 {
		t.Fatalf("port = %d, want 7070", cfg.App.Port)
	}
	if cfg.Database.Filename != "from-dotenv.db" {
		t.Fatalf("filename = %q, want from-dotenv.db", cfg.Database.Filename)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Database.Driver != DriverMemory || cfg.App.Port != 8080 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "missing name", mutate: func(c *Config) { c.App.Name = "" }, wantErr: "app name"},
		{name: "bad port", mutate: func(c *Config) { c.App.Port = 0 }, wantErr: "port"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "postgres" }, wantErr: "unsupported database driver"},
		{name: "sqlite without file", mutate: func(c *Config) { c.Database.Driver = DriverSQLite }, wantErr: "filename"},
		{name: "unknown harmony", mutate: func(c *Config) { c.Generator.DefaultHarmony = "tetradic" }, wantErr: "harmony"},
		{name: "rate limit without quota", mutate: func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.RequestsPerHour = 0 }, wantErr: "requests_per_hour"},
		{
			name: "bad schedule",
			mutate: func(c *Config) {
				c.Database.Driver = DriverSQLite
				c.Database.Filename = "themes.db"
				c.Backup.Enabled = true
				c.Backup.Schedule = "every day"
			},
			wantErr: "backup schedule",
		},
		{
			name: "backup on memory",
			mutate: func(c *Config) {
				c.Backup.Enabled = true
			},
			wantErr: "persistent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
