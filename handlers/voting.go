// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/auth"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/cliparse"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/ledger"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/metrics"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/middleware"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/models"
)

type VoteHandler struct {
	db     *sql.DB
	ledger ledger.Client
	cfg    cliparse.Config
}

func NewVoteHandler(db *sql.DB, lc ledger.Client, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, ledger: lc, cfg: cfg}
}

// CastVote handles POST /vote
//
// One attempt walks Validating -> LedgerWrite -> StoreWrite -> Completed
// with a distinct failure exit at each stage and no internal retries. The
// ledger write strictly gates the store write: if the ledger call fails or
// times out, no ballot row is created, ever. The UNIQUE (voter_id,
// position) index is the authoritative double-vote breaker; the earlier
// existence check only short-circuits obvious duplicates.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.VoterID == "" || req.Code == "" || req.Candidate == "" || req.Position == "" {
		middleware.VoteErrorResponse(w, models.ErrValidation("voter_id, code, candidate and position are required"))
		return
	}

	// Stage 1: validate the credential
	var codeHash string
	var issuedAt time.Time
	err := h.db.QueryRow(`
		SELECT code_hash, issued_at FROM credential WHERE voter_id = $1
	`, req.VoterID).Scan(&codeHash, &issuedAt)

	if err == sql.ErrNoRows {
		// Folded with the mismatch case below
		metrics.VoteRejections.WithLabelValues(string(models.CodeInvalidCredential)).Inc()
		middleware.VoteErrorResponse(w, models.ErrInvalidCredential())
		return
	}
	if err != nil {
		slog.Error("failed to query credential", "error", err)
		middleware.VoteErrorResponse(w, models.ErrPersistenceFailure())
		return
	}

	if !auth.VerifyVoteCode(req.Code, h.cfg.CodeSalt, codeHash) {
		metrics.VoteRejections.WithLabelValues(string(models.CodeInvalidCredential)).Inc()
		middleware.VoteErrorResponse(w, models.ErrInvalidCredential())
		return
	}

	if time.Since(issuedAt) > h.cfg.CredentialTTL {
		metrics.VoteRejections.WithLabelValues(string(models.CodeCredentialExpired)).Inc()
		middleware.VoteErrorResponse(w, models.ErrCredentialExpired())
		return
	}

	// Stage 2: advisory duplicate check
	var voted bool
	err = h.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM ballot
			WHERE voter_id = $1 AND position = $2
		)
	`, req.VoterID, req.Position).Scan(&voted)

	if err != nil {
		slog.Error("failed to check existing ballot", "error", err)
		middleware.VoteErrorResponse(w, models.ErrPersistenceFailure())
		return
	}
	if voted {
		metrics.VoteRejections.WithLabelValues(string(models.CodeAlreadyVoted)).Inc()
		middleware.VoteErrorResponse(w, models.ErrAlreadyVoted(req.Position))
		return
	}

	// Stage 3: ledger write, bounded by the configured timeout. Failure
	// here aborts the whole cast; the vote is recorded nowhere.
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.LedgerTimeout)
	defer cancel()

	if _, err := h.ledger.Submit(ctx, "castVote", req.VoterID, req.Candidate); err != nil {
		metrics.LedgerFailures.Inc()
		slog.Error("ledger submit failed, vote aborted",
			"error", err, "voter_id", req.VoterID, "position", req.Position)
		middleware.VoteErrorResponse(w, models.ErrLedgerUnavailable())
		return
	}

	// Stage 4: store write. A unique violation means a concurrent attempt
	// for the same voter and position won between stages 2 and 4.
	ballotID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO ballot (id, voter_id, candidate_name, position, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, ballotID, req.VoterID, req.Candidate, req.Position, time.Now())

	if err != nil {
		if isUniqueViolation(err) {
			metrics.VoteRejections.WithLabelValues(string(models.CodeAlreadyVoted)).Inc()
			middleware.VoteErrorResponse(w, models.ErrAlreadyVoted(req.Position))
			return
		}
		slog.Error("failed to insert ballot", "error", err, "voter_id", req.VoterID)
		middleware.VoteErrorResponse(w, models.ErrPersistenceFailure())
		return
	}

	// Stage 5: advisory completion bookkeeping. Marks the credential
	// consumed once the voter holds a ballot for every position currently
	// contested. Correctness never depends on this flag.
	h.markConsumedIfComplete(req.VoterID)

	metrics.BallotsCast.Inc()
	slog.Info("ballot cast", "ballot_id", ballotID, "position", req.Position)

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{})
}

// markConsumedIfComplete compares the voter's ballot count against the live
// distinct-position count. The comparison can drift if candidates are added
// or removed mid-election; that is accepted, since per-position uniqueness
// already prevents double voting.
func (h *VoteHandler) markConsumedIfComplete(voterID string) {
	var cast, contested int

	err := h.db.QueryRow(`SELECT COUNT(*) FROM ballot WHERE voter_id = $1`, voterID).Scan(&cast)
	if err != nil {
		slog.Warn("failed to count ballots for completion check", "error", err)
		return
	}

	err = h.db.QueryRow(`SELECT COUNT(DISTINCT position) FROM candidate`).Scan(&contested)
	if err != nil {
		slog.Warn("failed to count contested positions", "error", err)
		return
	}

	if contested == 0 || cast < contested {
		return
	}

	if _, err := h.db.Exec(`UPDATE credential SET consumed = TRUE WHERE voter_id = $1`, voterID); err != nil {
		slog.Warn("failed to mark credential consumed", "error", err, "voter_id", voterID)
	}
}

// ViewVote handles POST /view-vote
//
// Resolves the voter by the code's hash and returns their recorded ballots.
// Unknown codes get a plain 404; no hint about whether the voter exists.
func (h *VoteHandler) ViewVote(w http.ResponseWriter, r *http.Request) {
	var req models.ViewVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Code == "" {
		middleware.VoteErrorResponse(w, models.ErrValidation("code is required"))
		return
	}

	codeHash := auth.HashVoteCode(req.Code, h.cfg.CodeSalt)

	var voterID string
	err := h.db.QueryRow(`
		SELECT voter_id FROM credential WHERE code_hash = $1
	`, codeHash).Scan(&voterID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "No vote found for this code")
		return
	}
	if err != nil {
		slog.Error("failed to look up credential by code", "error", err)
		middleware.VoteErrorResponse(w, models.ErrPersistenceFailure())
		return
	}

	rows, err := h.db.Query(`
		SELECT candidate_name, position, cast_at
		FROM ballot
		WHERE voter_id = $1
		ORDER BY cast_at
	`, voterID)
	if err != nil {
		slog.Error("failed to query ballots", "error", err)
		middleware.VoteErrorResponse(w, models.ErrPersistenceFailure())
		return
	}
	defer rows.Close()

	ballots := []models.BallotView{}
	for rows.Next() {
		var b models.BallotView
		if err := rows.Scan(&b.Candidate, &b.Position, &b.CastAt); err != nil {
			slog.Error("failed to scan ballot", "error", err)
			middleware.VoteErrorResponse(w, models.ErrPersistenceFailure())
			return
		}
		ballots = append(ballots, b)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ViewVoteResponse{Ballots: ballots})
}

// isUniqueViolation recognizes a unique-index breach from either supported
// driver: lib/pq reports "duplicate key value violates unique constraint",
// modernc sqlite reports "UNIQUE constraint failed".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
