// Package auth provides password digests and session token
// issuance/verification for the memo board.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the lowercase hex SHA-256 digest of plaintext.
// The digest is deterministic and unsalted: the stored credential format
// is a plain recomputable digest, and login verifies by recomputing and
// comparing. Changing this (e.g. to a salted KDF) changes the stored
// format for every existing account.
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
