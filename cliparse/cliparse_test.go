// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("LEDGER_URL", "http://localhost:7050")
	os.Setenv("CODE_SALT", "test-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected default database type postgres, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{
		"-p", "8080",
		"-d", "file:test.db",
		"-t", "sqlite",
		"-ledger-url", "http://localhost:7050",
		"-code-salt", "s1",
	})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{
		"-d", "postgres://test",
		"-ledger-url", "http://localhost:7050",
		"-code-salt", "s1",
	})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 4000 {
		t.Errorf("expected default port 4000, got %d", cfg.Port)
	}
	if cfg.LedgerTimeout != 5*time.Second {
		t.Errorf("expected default ledger timeout 5s, got %v", cfg.LedgerTimeout)
	}
	if cfg.CredentialTTL != 30*time.Minute {
		t.Errorf("expected default credential TTL 30m, got %v", cfg.CredentialTTL)
	}
}

func TestParseFlags_Durations(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{
		"-d", "postgres://test",
		"-ledger-url", "http://localhost:7050",
		"-code-salt", "s1",
		"-ledger-timeout", "2s",
		"-credential-ttl", "10m",
	})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.LedgerTimeout != 2*time.Second {
		t.Errorf("expected ledger timeout 2s, got %v", cfg.LedgerTimeout)
	}
	if cfg.CredentialTTL != 10*time.Minute {
		t.Errorf("expected credential TTL 10m, got %v", cfg.CredentialTTL)
	}
}

func TestParseFlags_Required(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "missing database URL",
			args: []string{"-ledger-url", "http://localhost:7050", "-code-salt", "s1"},
		},
		{
			name: "missing ledger URL",
			args: []string{"-d", "postgres://test", "-code-salt", "s1"},
		},
		{
			name: "missing code salt",
			args: []string{"-d", "postgres://test", "-ledger-url", "http://localhost:7050"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "bad database type",
			args: []string{"-d", "x", "-t", "mysql", "-ledger-url", "http://l", "-code-salt", "s"},
		},
		{
			name: "bad ledger timeout",
			args: []string{"-d", "x", "-ledger-url", "http://l", "-code-salt", "s", "-ledger-timeout", "soon"},
		},
		{
			name: "negative credential TTL",
			args: []string{"-d", "x", "-ledger-url", "http://l", "-code-salt", "s", "-credential-ttl", "-5m"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
