// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// voteCodeBytes is the entropy of a vote code: 6 bytes rendered as 12
// uppercase hex characters. 2^48 values; uniqueness is per-voter, not
// global, so collisions are irrelevant.
const voteCodeBytes = 6

// GenerateVoteCode creates a random one-time vote code.
// The plaintext is returned exactly once at registration and is never
// persisted or logged; only its salted hash is stored.
func GenerateVoteCode() (string, error) {
	b := make([]byte, voteCodeBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate vote code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// HashVoteCode computes the salted one-way hash stored for a credential.
// HMAC keyed with the server salt, so the hash is deterministic for a given
// salt and can also serve as a lookup key for code-based queries.
func HashVoteCode(code, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(code))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyVoteCode checks a presented code against a stored hash.
// The comparison is constant-time; mismatch and malformed input are
// indistinguishable to the caller.
func VerifyVoteCode(code, salt, storedHash string) bool {
	computed := HashVoteCode(code, salt)
	return hmac.Equal([]byte(computed), []byte(storedHash))
}
