package engine

import (
	"encoding/base64"
	"unicode/utf8"
)

// Secret wraps a byte slice that carries key material or other data that
// must never outlive the call that produced it. Callers must invoke Zero as
// soon as the buffer is no longer needed, on every exit path including
// error returns.
type Secret []byte

// Zero overwrites every byte of s with zero. It is safe to call on a nil or
// already-zeroed Secret.
func (s Secret) Zero() {
	for i := range s {
		s[i] = 0
	}
}

// MasterKey is the 64-byte scrypt output derived from a full name and
// master secret. It is never persisted; only its KeyID (the hex SHA-256 of
// its bytes) is suitable for storage.
type MasterKey Secret

// Zero overwrites the master key's bytes.
func (k MasterKey) Zero() { Secret(k).Zero() }

// SiteKey is the 32-byte HMAC-SHA256 output derived per site, counter, and
// purpose. Ephemeral: callers must Zero it once the rendered result has
// been produced.
type SiteKey Secret

// Zero overwrites the site key's bytes.
func (k SiteKey) Zero() { Secret(k).Zero() }

// pushU32BE appends the big-endian encoding of n to buf and returns the
// extended slice.
func pushU32BE(n uint32, buf []byte) []byte {
	return append(buf, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
}

// pushBytes appends b to buf and returns the extended slice.
func pushBytes(b []byte, buf []byte) []byte {
	return append(buf, b...)
}

// frameLength returns the length of s as required by v's framing rule:
// UTF-8 byte count for versions ≥2, Unicode code-point count for versions
// ≤1. Do not "fix" this split; it is load-bearing for backward
// compatibility with profiles written by earlier algorithm versions.
func frameLength(v AlgorithmVersion, s string) uint32 {
	if v.usesByteLength() {
		return uint32(len(s))
	}
	return uint32(utf8.RuneCountInString(s))
}

// encodeBase64 renders b as standard base64 (the standard alphabet, with
// padding, no line wrapping). Storage form for stateful
// result ciphertext.
func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// decodeBase64 reverses encodeBase64. The decoded length is computed from
// the input length by the standard library decoder.
func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
