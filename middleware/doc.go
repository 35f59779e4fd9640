// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("POST /vote", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
	middleware.ParseJSONBody(r, &req)

# Domain Errors

VoteErrorResponse writes a models.VoteError with its mapped status, putting
the machine-readable code in the "error" field:

	middleware.VoteErrorResponse(w, models.ErrAlreadyVoted(position))

# CORS

Enable cross-origin requests for the frontend:

	server := http.Server{Handler: middleware.CORS(mux)}

# Client IP

GetClientIP checks X-Forwarded-For and X-Real-IP before RemoteAddr.
*/
package middleware
