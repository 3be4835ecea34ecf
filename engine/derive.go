package engine

import (
	"encoding/hex"
	"fmt"

	"github.com/mpwgo/mpw/mpwerr"
	"github.com/mpwgo/mpw/types"
)

// DeriveKey returns a raw keystream of the requested bit length, hex
// encoded. bits must be one of 128, 256, or 512. For 512 bits, a second
// site key is derived at counter+1 and appended, since a single HMAC-SHA256
// output (32 bytes, 256 bits) cannot supply that much keystream on its own.
func DeriveKey(masterKey MasterKey, siteName string, counter uint32, context string, v AlgorithmVersion, bits int) (string, error) {
	switch bits {
	case 128, 256, 512:
	default:
		return "", fmt.Errorf("engine: %w: key size must be 128, 256, or 512 bits", mpwerr.Usage)
	}

	key1, err := DeriveSiteKey(masterKey, siteName, counter, types.Authentication, context, v)
	if err != nil {
		return "", err
	}
	defer key1.Zero()

	if bits <= 256 {
		return hex.EncodeToString(key1[:bits/8]), nil
	}

	key2, err := DeriveSiteKey(masterKey, siteName, counter+1, types.Authentication, context, v)
	if err != nil {
		return "", err
	}
	defer key2.Zero()

	full := make([]byte, 0, len(key1)+len(key2))
	full = append(full, key1...)
	full = append(full, key2...)
	return hex.EncodeToString(full), nil
}
