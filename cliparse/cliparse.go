package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	CodeSalt      string
	LedgerURL     string
	LedgerTimeout time.Duration
	CredentialTTL time.Duration
}

// ParseFlags validates flags and fills in defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var ledgerTimeout, credentialTTL string

	fs := flag.NewFlagSet("evoting", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.LedgerURL, "ledger-url", "", "Ledger gateway base URL")
	fs.StringVar(&ledgerTimeout, "ledger-timeout", "", "Ledger submit timeout (e.g. 5s)")
	fs.StringVar(&credentialTTL, "credential-ttl", "", "Vote code time-to-live (e.g. 30m)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CodeSalt, "code-salt", "", "Vote code hashing salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.LedgerURL == "" {
		cfg.LedgerURL = os.Getenv("LEDGER_URL")
	}
	if cfg.LedgerURL == "" {
		return Config{}, errors.New("ledger gateway URL required (use -ledger-url or LEDGER_URL env)")
	}

	if ledgerTimeout == "" {
		ledgerTimeout = os.Getenv("LEDGER_TIMEOUT")
	}
	if ledgerTimeout == "" {
		cfg.LedgerTimeout = 5 * time.Second // default
	} else {
		d, err := time.ParseDuration(ledgerTimeout)
		if err != nil || d <= 0 {
			return Config{}, errors.New("invalid ledger timeout duration")
		}
		cfg.LedgerTimeout = d
	}

	if credentialTTL == "" {
		credentialTTL = os.Getenv("CREDENTIAL_TTL")
	}
	if credentialTTL == "" {
		cfg.CredentialTTL = 30 * time.Minute // default
	} else {
		d, err := time.ParseDuration(credentialTTL)
		if err != nil || d <= 0 {
			return Config{}, errors.New("invalid credential TTL duration")
		}
		cfg.CredentialTTL = d
	}

	// Secrets - MUST be provided
	if cfg.CodeSalt == "" {
		cfg.CodeSalt = os.Getenv("CODE_SALT")
	}
	if cfg.CodeSalt == "" {
		return Config{}, errors.New("CODE_SALT required")
	}

	return cfg, nil
}
