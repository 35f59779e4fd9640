// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides vote-code generation and verification.

# Vote Codes

Vote codes are random 6-byte values rendered as 12 uppercase hex characters:

	code, err := auth.GenerateVoteCode()

The plaintext is shown to the voter exactly once at registration. The
database stores only a salted hash.

# Hashing

Hashes use HMAC-SHA256 keyed with the server salt:

	hash := auth.HashVoteCode(code, salt)

Because the hash is deterministic for a given salt, it doubles as a lookup
key for code-based queries (ballot review).

# Verification

	ok := auth.VerifyVoteCode(code, salt, storedHash)

The comparison is constant-time via hmac.Equal.
*/
package auth
