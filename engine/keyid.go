package engine

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// KeyID returns the hex SHA-256 digest of a master key. It is the only
// piece of master-key-derived data ever written to disk: a profile stores
// KeyID so a later run can recognize whether the supplied master secret
// matches, without being able to recover the key from it.
func KeyID(masterKey MasterKey) string {
	sum := sha256.Sum256(masterKey)
	return hex.EncodeToString(sum[:])
}

// MatchesKeyID reports whether masterKey's KeyID equals want, using a
// constant-time comparison so the check leaks no timing information about
// a partially-correct master secret.
func MatchesKeyID(masterKey MasterKey, want string) bool {
	got := KeyID(masterKey)
	if len(got) != len(want) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
