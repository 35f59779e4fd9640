// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/auth"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/cliparse"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/db"
)

// SetupTestDB creates an in-memory sqlite database with the full schema.
// Each test gets its own database, named after the test so parallel tests
// never share state. A single pooled connection keeps the shared-cache
// memory database alive for the duration of the test.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          4000,
		DatabaseURL:   "file:test?mode=memory",
		DatabaseType:  "sqlite",
		CodeSalt:      "test-code-salt",
		LedgerURL:     "http://ledger.test",
		LedgerTimeout: 5 * time.Second,
		CredentialTTL: 30 * time.Minute,
	}
}

// SeedVoter inserts a roster entry
func SeedVoter(t *testing.T, conn *sql.DB, voterID, surname string, active bool) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO voter (voter_id, surname, faculty, department, active)
		VALUES ($1, $2, 'Science', 'Computer Science', $3)
	`, voterID, surname, active)
	if err != nil {
		t.Fatalf("Failed to seed voter: %v", err)
	}
}

// SeedCandidate inserts a candidate roster entry. seq is the insertion
// order used as the tally tie-break.
func SeedCandidate(t *testing.T, conn *sql.DB, name, position string, seq int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO candidate (name, position, department, seq)
		VALUES ($1, $2, 'Computer Science', $3)
	`, name, position, seq)
	if err != nil {
		t.Fatalf("Failed to seed candidate: %v", err)
	}
}

// SeedCredential issues a credential directly and returns the plaintext
// code, mirroring what POST /register would produce.
func SeedCredential(t *testing.T, conn *sql.DB, cfg cliparse.Config, voterID string, issuedAt time.Time) string {
	t.Helper()

	code, err := auth.GenerateVoteCode()
	if err != nil {
		t.Fatalf("Failed to generate vote code: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO credential (voter_id, code_hash, issued_at, consumed)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (voter_id) DO UPDATE
		SET code_hash = EXCLUDED.code_hash, issued_at = EXCLUDED.issued_at, consumed = FALSE
	`, voterID, auth.HashVoteCode(code, cfg.CodeSalt), issuedAt)
	if err != nil {
		t.Fatalf("Failed to seed credential: %v", err)
	}

	return code
}

// SeedBallot inserts a ballot row directly
func SeedBallot(t *testing.T, conn *sql.DB, voterID, candidate, position string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO ballot (id, voter_id, candidate_name, position, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voterID+"-"+position, voterID, candidate, position, time.Now())
	if err != nil {
		t.Fatalf("Failed to seed ballot: %v", err)
	}
}

// FakeLedger is a ledger.Client double. Err makes every call fail; Delay
// simulates a slow ledger and respects context cancellation, so tests can
// exercise the submit timeout race.
type FakeLedger struct {
	Err   error
	Delay time.Duration

	mu      sync.Mutex
	submits [][]string
}

func (f *FakeLedger) Submit(ctx context.Context, txName string, args ...string) ([]byte, error) {
	if f.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.Delay):
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}

	f.mu.Lock()
	f.submits = append(f.submits, append([]string{txName}, args...))
	f.mu.Unlock()

	return []byte(`{"receipt":"fake"}`), nil
}

func (f *FakeLedger) Evaluate(ctx context.Context, txName string, args ...string) ([]byte, error) {
	if f.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.Delay):
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return []byte("pong"), nil
}

// Submits returns the successfully recorded submit calls.
func (f *FakeLedger) Submits() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.submits))
	copy(out, f.submits)
	return out
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}

	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
