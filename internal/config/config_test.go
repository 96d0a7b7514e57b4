package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("寫入設定檔失敗: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("PER_PAGE", "")

	cfg, rest, err := Load("dashboard", []string{"list", "cities"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Paging.PerPage != 10 {
		t.Errorf("PerPage = %d, want 10", cfg.Paging.PerPage)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if len(rest) != 2 || rest[0] != "list" || rest[1] != "cities" {
		t.Errorf("rest = %v, want [list cities]", rest)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, `
api:
  base_url: http://from-file:9000
  timeout: 5s
paging:
  per_page: 25
log:
  level: debug
`)

	tests := []struct {
		name        string
		env         map[string]string
		args        []string
		wantURL     string
		wantPerPage int
	}{
		{"FileOnly", nil, []string{"-config", path}, "http://from-file:9000", 25},
		{"EnvOverridesFile", map[string]string{"API_BASE_URL": "http://from-env"}, []string{"-config", path}, "http://from-env", 25},
		{"FlagOverridesEnv", map[string]string{"PER_PAGE": "50"}, []string{"-config=" + path, "-per_page", "7"}, "http://from-file:9000", 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("API_BASE_URL", "")
			t.Setenv("PER_PAGE", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, _, err := Load("dashboard", tc.args)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.API.BaseURL != tc.wantURL {
				t.Errorf("BaseURL = %v, want %v", cfg.API.BaseURL, tc.wantURL)
			}
			if cfg.Paging.PerPage != tc.wantPerPage {
				t.Errorf("PerPage = %v, want %v", cfg.Paging.PerPage, tc.wantPerPage)
			}
			if cfg.API.Timeout != 5*time.Second {
				t.Errorf("Timeout = %v, want 5s", cfg.API.Timeout)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("TOKEN_STORE", "")
	_, _, err := Load("dashboard", []string{"-token_store", "cookie"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load("dashboard", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatal("Load() expected error for missing config file")
	}
}

func TestConfigPathFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Empty", nil, ""},
		{"Separate", []string{"-config", "a.yaml"}, "a.yaml"},
		{"Equals", []string{"--config=b.yaml"}, "b.yaml"},
		{"AfterTerminator", []string{"--", "-config", "c.yaml"}, ""},
		{"AfterOtherFlag", []string{"-log_level", "debug", "-config", "d.yaml"}, "d.yaml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := configPathFromArgs(tc.args); got != tc.want {
				t.Errorf("configPathFromArgs() = %v, want %v", got, tc.want)
			}
		})
	}
}
