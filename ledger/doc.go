// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the client for the external append-only ledger.

The ledger is the authoritative record of "this vote happened". It is
consumed as an opaque remote service; its consensus and execution internals
are not this client's concern.

# Contract

	type Client interface {
		Submit(ctx, txName, args...) ([]byte, error)   // durable write
		Evaluate(ctx, txName, args...) ([]byte, error) // read-only query
	}

Submit may hang or fail; callers bound it with a context deadline and treat
any error as "the vote was not recorded". Evaluate is used for connectivity
probes only — tallies read from the store.

# Gateway

Gateway implements Client over the ledger's HTTP gateway:

	lc := ledger.NewGateway("http://localhost:7050")
	receipt, err := lc.Submit(ctx, "castVote", voterID, candidate)

All failures wrap ErrUnavailable, so callers can errors.Is() without
inspecting transport details.
*/
package ledger
