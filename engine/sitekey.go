package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"github.com/mpwgo/mpw/mpwerr"
	"github.com/mpwgo/mpw/types"
)

// DeriveSiteKey computes the 32-byte HMAC-SHA256 site key for one
// (siteName, counter, purpose, context) tuple under masterKey. context may
// be empty, in which case it is omitted from the message entirely (not
// encoded as a zero-length field) — a site with and without an empty
// context produce different keys only if one passes a non-empty context.
func DeriveSiteKey(masterKey MasterKey, siteName string, counter uint32, purpose types.Purpose, context string, v AlgorithmVersion) (SiteKey, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("engine: %w: algorithm version %s", mpwerr.Usage, v)
	}
	if siteName == "" {
		return nil, fmt.Errorf("engine: %w: site name is required", mpwerr.MissingInput)
	}
	if len(masterKey) != masterKeyLen {
		return nil, fmt.Errorf("engine: %w: malformed master key", mpwerr.Crypto)
	}

	scope := purpose.Scope()
	msg := make([]byte, 0, len(scope)+4+len(siteName)+4+4+len(context))
	msg = pushBytes([]byte(scope), msg)
	msg = pushU32BE(frameLength(v, siteName), msg)
	msg = pushBytes([]byte(siteName), msg)
	msg = pushU32BE(counter, msg)
	if context != "" {
		msg = pushU32BE(frameLength(v, context), msg)
		msg = pushBytes([]byte(context), msg)
	}

	mac := hmac.New(sha256.New, masterKey)
	mac.Write(msg)
	return SiteKey(mac.Sum(nil)), nil
}
