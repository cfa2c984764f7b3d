package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTimeoutConfigDefaults(t *testing.T) {
	config := DefaultConfig()

	if config.Server.Timeout != 120*time.Second {
		t.Errorf("Expected server timeout to be 120s, got %v", config.Server.Timeout)
	}

	if config.Article.FetchTimeout != 30*time.Second {
		t.Errorf("Expected fetch timeout to be 30s, got %v", config.Article.FetchTimeout)
	}
}

func TestTimeoutsFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "timeouts.yaml")
	content := `server:
  timeout: 2m30s
article:
  fetch_timeout: 5s
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Timeout != 150*time.Second {
		t.Errorf("Expected server timeout 2m30s, got %v", cfg.Server.Timeout)
	}
	if cfg.Article.FetchTimeout != 5*time.Second {
		t.Errorf("Expected fetch timeout 5s, got %v", cfg.Article.FetchTimeout)
	}
}

func TestTimeoutValidation(t *testing.T) {
	tests := []struct {
		name    string
		server  time.Duration
		fetch   time.Duration
		wantErr bool
		errMsg  string
	}{
		{name: "valid timeouts", server: 30 * time.Second, fetch: 10 * time.Second},
		{name: "zero fetch timeout uses the fetcher default", server: 30 * time.Second, fetch: 0},
		{
			name:    "zero server timeout",
			server:  0,
			fetch:   10 * time.Second,
			wantErr: true,
			errMsg:  "server timeout must be positive",
		},
		{
			name:    "negative server timeout",
			server:  -1 * time.Second,
			fetch:   10 * time.Second,
			wantErr: true,
			errMsg:  "server timeout must be positive",
		},
		{
			name:    "negative fetch timeout",
			server:  30 * time.Second,
			fetch:   -1 * time.Second,
			wantErr: true,
			errMsg:  "fetch_timeout must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Server.Timeout = tt.server
			cfg.Article.FetchTimeout = tt.fetch

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("Expected error message '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
