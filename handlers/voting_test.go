package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/models"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/testutil"
)

func TestCastVote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	fake := &testutil.FakeLedger{}
	handler := NewVoteHandler(conn, fake, cfg)

	testutil.SeedVoter(t, conn, "V1", "Doe", true)
	testutil.SeedCandidate(t, conn, "Alice", "PRESIDENT", 1)
	testutil.SeedCandidate(t, conn, "Bob", "PRESIDENT", 2)
	code := testutil.SeedCredential(t, conn, cfg, "V1", time.Now())

	req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		VoterID: "V1", Code: code, Candidate: "Alice", Position: "PRESIDENT",
	})
	w := httptest.NewRecorder()
	handler.CastVote(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Exactly one ballot row
	var candidate string
	err := conn.QueryRow(`
		SELECT candidate_name FROM ballot WHERE voter_id = $1 AND position = $2
	`, "V1", "PRESIDENT").Scan(&candidate)
	if err != nil {
		t.Fatalf("Failed to read ballot: %v", err)
	}
	if candidate != "Alice" {
		t.Errorf("Expected ballot for Alice, got %s", candidate)
	}

	// The ledger saw exactly one castVote submit
	submits := fake.Submits()
	if len(submits) != 1 {
		t.Fatalf("Expected 1 ledger submit, got %d", len(submits))
	}
	if submits[0][0] != "castVote" || submits[0][1] != "V1" || submits[0][2] != "Alice" {
		t.Errorf("Unexpected ledger submit: %v", submits[0])
	}
}

func TestCastVote_Rejections(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(conn, &testutil.FakeLedger{}, cfg)

	testutil.SeedVoter(t, conn, "V1", "Doe", true)
	testutil.SeedCandidate(t, conn, "Alice", "PRESIDENT", 1)
	code := testutil.SeedCredential(t, conn, cfg, "V1", time.Now())

	tests := []struct {
		name           string
		requestBody    models.CastVoteRequest
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing fields",
			requestBody:    models.CastVoteRequest{VoterID: "V1", Code: code},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "no credential for voter",
			requestBody:    models.CastVoteRequest{VoterID: "V404", Code: code, Candidate: "Alice", Position: "PRESIDENT"},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_CREDENTIAL",
		},
		{
			name:           "wrong code",
			requestBody:    models.CastVoteRequest{VoterID: "V1", Code: "000000000000", Candidate: "Alice", Position: "PRESIDENT"},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_CREDENTIAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/vote", tt.requestBody)
			w := httptest.NewRecorder()
			handler.CastVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Error != tt.expectedError {
				t.Errorf("Expected error %s, got %s", tt.expectedError, resp.Error)
			}

			// No rejection may leave a ballot behind
			var count int
			if err := conn.QueryRow(`SELECT COUNT(*) FROM ballot`).Scan(&count); err != nil {
				t.Fatal(err)
			}
			if count != 0 {
				t.Errorf("Rejected cast left %d ballot rows", count)
			}
		})
	}
}

func TestCastVote_ExpiredCredential(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(conn, &testutil.FakeLedger{}, cfg)

	testutil.SeedVoter(t, conn, "V1", "Doe", true)
	testutil.SeedCandidate(t, conn, "Alice", "PRESIDENT", 1)

	// Issued beyond the TTL; the code itself is correct
	code := testutil.SeedCredential(t, conn, cfg, "V1", time.Now().Add(-cfg.CredentialTTL-time.Minute))

	req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		VoterID: "V1", Code: code, Candidate: "Alice", Position: "PRESIDENT",
	})
	w := httptest.NewRecorder()
	handler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "CREDENTIAL_EXPIRED" {
		t.Errorf("Expected CREDENTIAL_EXPIRED, got %s", resp.Error)
	}
}

func TestCastVote_DoubleVoteSamePosition(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(conn, &testutil.FakeLedger{}, cfg)

	testutil.SeedVoter(t, conn, "V1", "Doe", true)
	testutil.SeedCandidate(t, conn, "Alice", "PRESIDENT", 1)
	testutil.SeedCandidate(t, conn, "Bob", "PRESIDENT", 2)
	code := testutil.SeedCredential(t, conn, cfg, "V1", time.Now())

	cast := func(candidate string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
			VoterID: "V1", Code: code, Candidate: candidate, Position: "PRESIDENT",
		})
		w := httptest.NewRecorder()
		handler.CastVote(w, req)
		return w
	}

	testutil.AssertStatus(t, cast("Alice"), http.StatusOK)

	w := cast("Bob")
	testutil.AssertStatus(t, w, http.StatusForbidden)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "ALREADY_VOTED" {
		t.Errorf("Expected ALREADY_VOTED, got %s", resp.Error)
	}

	// First ballot is untouched
	var candidate string
	if err := conn.QueryRow(`
		SELECT candidate_name FROM ballot WHERE voter_id = $1 AND position = $2
	`, "V1", "PRESIDENT").Scan(&candidate); err != nil {
		t.Fatal(err)
	}
	if candidate != "Alice" {
		t.Errorf("Expected the first ballot (Alice) to stand, got %s", candidate)
	}
}

func TestCastVote_ReissuedCodeInvalidatesOld(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(conn, &testutil.FakeLedger{}, cfg)

	testutil.SeedVoter(t, conn, "V1", "Doe", true)
	testutil.SeedCandidate(t, conn, "Alice", "PRESIDENT", 1)

	oldCode := testutil.SeedCredential(t, conn, cfg, "V1", time.Now())
	newCode := testutil.SeedCredential(t, conn, cfg, "V1", time.Now())

	req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		VoterID: "V1", Code: oldCode, Candidate: "Alice", Position: "PRESIDENT",
	})
	w := httptest.NewRecorder()
	handler.CastVote(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// The replacement code works
	req = testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		VoterID: "V1", Code: newCode, Candidate: "Alice", Position: "PRESIDENT",
	})
	w = httptest.NewRecorder()
	handler.CastVote(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestCastVote_LedgerFailureWritesNothing(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	fake := &testutil.FakeLedger{Err: errors.New("gateway down")}
	handler := NewVoteHandler(conn, fake, cfg)

	testutil.SeedVoter(t, conn, "V1", "Doe", true)
	testutil.SeedCandidate(t, conn, "Alice", "PRESIDENT", 1)
	code := testutil.SeedCredential(t, conn, cfg, "V1", time.Now())

	req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		VoterID: "V1", Code: code, Candidate: "Alice", Position: "PRESIDENT",
	})
	w := httptest.NewRecorder()
	handler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "LEDGER_UNAVAILABLE" {
		t.Errorf("Expected LEDGER_UNAVAILABLE, got %s", resp.Error)
	}

	// No ballot may exist when the ledger write failed
	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ballot`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("Ledger failure left %d ballot rows", count)
	}

	// A retry after recovery succeeds with the same credential
	fake.Err = nil
	req = testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		VoterID: "V1", Code: code, Candidate: "Alice", Position: "PRESIDENT",
	})
	w = httptest.NewRecorder()
	handler.CastVote(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestCastVote_LedgerTimeoutWritesNothing(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	cfg.LedgerTimeout = 20 * time.Millisecond

	// Ledger hangs well past the timeout
	fake := &testutil.FakeLedger{Delay: 500 * time.Millisecond}
	handler := NewVoteHandler(conn, fake, cfg)

	testutil.SeedVoter(t, conn, "V1", "Doe", true)
	testutil.SeedCandidate(t, conn, "Alice", "PRESIDENT", 1)
	code := testutil.SeedCredential(t, conn, cfg, "V1", time.Now())

	start := time.Now()
	req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		VoterID: "V1", Code: code, Candidate: "Alice", Position: "PRESIDENT",
	})
	w := httptest.NewRecorder()
	handler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
	if elapsed := time.Since(start); elapsed >= 500*time.Millisecond {
		t.Errorf("Cast waited out the full ledger delay (%v) instead of timing out", elapsed)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ballot`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("Ledger timeout left %d ballot rows", count)
	}
}

func TestCastVote_MarksConsumedWhenComplete(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(conn, &testutil.FakeLedger{}, cfg)

	testutil.SeedVoter(t, conn, "V1", "Doe", true)
	testutil.SeedCandidate(t, conn, "Alice", "PRESIDENT", 1)
	testutil.SeedCandidate(t, conn, "Carol", "SECRETARY", 2)
	code := testutil.SeedCredential(t, conn, cfg, "V1", time.Now())

	cast := func(candidate, position string) {
		req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
			VoterID: "V1", Code: code, Candidate: candidate, Position: position,
		})
		w := httptest.NewRecorder()
		handler.CastVote(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	consumed := func() bool {
		var c bool
		if err := conn.QueryRow(`SELECT consumed FROM credential WHERE voter_id = $1`, "V1").Scan(&c); err != nil {
			t.Fatal(err)
		}
		return c
	}

	cast("Alice", "PRESIDENT")
	if consumed() {
		t.Error("Credential consumed after 1 of 2 positions")
	}

	cast("Carol", "SECRETARY")
	if !consumed() {
		t.Error("Credential not consumed after voting all positions")
	}
}

func TestViewVote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(conn, &testutil.FakeLedger{}, cfg)

	testutil.SeedVoter(t, conn, "V1", "Doe", true)
	code := testutil.SeedCredential(t, conn, cfg, "V1", time.Now())
	testutil.SeedBallot(t, conn, "V1", "Alice", "PRESIDENT")
	testutil.SeedBallot(t, conn, "V1", "Carol", "SECRETARY")

	t.Run("returns the voter's ballots", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/view-vote", models.ViewVoteRequest{Code: code})
		w := httptest.NewRecorder()
		handler.ViewVote(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ViewVoteResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Ballots) != 2 {
			t.Fatalf("Expected 2 ballots, got %d", len(resp.Ballots))
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/view-vote", models.ViewVoteRequest{Code: "000000000000"})
		w := httptest.NewRecorder()
		handler.ViewVote(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("missing code", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/view-vote", models.ViewVoteRequest{})
		w := httptest.NewRecorder()
		handler.ViewVote(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}
