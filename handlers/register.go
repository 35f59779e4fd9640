// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/auth"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/cliparse"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/metrics"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/middleware"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/models"
)

type RegisterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewRegisterHandler(db *sql.DB, cfg cliparse.Config) *RegisterHandler {
	return &RegisterHandler{db: db, cfg: cfg}
}

// Register handles POST /register
//
// Issues a one-time vote code for an eligible voter. Re-registering
// overwrites the previous credential: the old code becomes permanently
// unverifiable even if it was never used. The plaintext code appears only
// in this response; the database keeps a salted hash.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.VoterID == "" {
		middleware.VoteErrorResponse(w, models.ErrValidation("voter_id is required"))
		return
	}
	if req.Surname == "" {
		middleware.VoteErrorResponse(w, models.ErrValidation("surname is required"))
		return
	}

	// Look up the roster entry
	var entry models.RosterEntry
	err := h.db.QueryRow(`
		SELECT voter_id, surname, COALESCE(faculty, ''), COALESCE(department, ''), active
		FROM voter WHERE voter_id = $1
	`, req.VoterID).Scan(&entry.VoterID, &entry.Surname, &entry.Faculty, &entry.Department, &entry.Active)

	if err == sql.ErrNoRows {
		middleware.VoteErrorResponse(w, models.ErrNotEligible())
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.VoteErrorResponse(w, models.ErrPersistenceFailure())
		return
	}

	// Surname is compared case-insensitively; an inactive roster entry is
	// indistinguishable from an absent one.
	if !entry.Active || !strings.EqualFold(entry.Surname, req.Surname) {
		middleware.VoteErrorResponse(w, models.ErrNotEligible())
		return
	}

	code, err := auth.GenerateVoteCode()
	if err != nil {
		slog.Error("failed to generate vote code", "error", err)
		middleware.VoteErrorResponse(w, models.ErrPersistenceFailure())
		return
	}
	codeHash := auth.HashVoteCode(code, h.cfg.CodeSalt)

	// Upsert: one live credential per voter, last writer wins
	_, err = h.db.Exec(`
		INSERT INTO credential (voter_id, code_hash, issued_at, consumed)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (voter_id) DO UPDATE
		SET code_hash = EXCLUDED.code_hash, issued_at = EXCLUDED.issued_at, consumed = FALSE
	`, req.VoterID, codeHash, time.Now())

	if err != nil {
		slog.Error("failed to save credential", "error", err, "voter_id", req.VoterID)
		middleware.VoteErrorResponse(w, models.ErrPersistenceFailure())
		return
	}

	metrics.CredentialsIssued.Inc()
	slog.Info("vote code issued", "voter_id", req.VoterID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Code: code,
		Voter: models.VoterInfo{
			VoterID:    entry.VoterID,
			Surname:    entry.Surname,
			Faculty:    entry.Faculty,
			Department: entry.Department,
		},
	})
}
