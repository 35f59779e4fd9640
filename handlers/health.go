// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/ledger"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/middleware"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/models"
)

const healthProbeTimeout = 2 * time.Second

type HealthHandler struct {
	ledger ledger.Client
}

func NewHealthHandler(lc ledger.Client) *HealthHandler {
	return &HealthHandler{ledger: lc}
}

// Health handles GET /health
//
// Always returns 200 so an unreachable ledger does not take the service out
// of rotation; the probe result is reported in the body instead.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
	defer cancel()

	ledgerStatus := "ok"
	if _, err := h.ledger.Evaluate(ctx, "ping"); err != nil {
		ledgerStatus = "unreachable"
	}

	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status: "ok",
		Ledger: ledgerStatus,
	})
}
