// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/cliparse"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/middleware"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /results
//
// Live tallies, recomputed from the store on every request. The ledger is
// never consulted here, so results stay available while it is down.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := computeResults(h.db)
	if err != nil {
		slog.Error("failed to compute results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
