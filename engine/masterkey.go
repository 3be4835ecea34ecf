package engine

import (
	"fmt"

	"github.com/mpwgo/mpw/mpwerr"
	"golang.org/x/crypto/scrypt"
)

// masterScope is the fixed scope label mixed into the master-key salt.
const masterScope = "com.lyndir.masterpassword"

// Fixed scrypt cost parameters. These are part of the compatibility
// surface and must never change: a profile derived under one cost would
// silently fail to reproduce under another.
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 2
	masterKeyLen = 64
)

// DeriveMasterKey stretches (fullName, masterSecret) into a 64-byte master
// key using scrypt. The caller owns the returned MasterKey and must Zero it
// once derivation of the required site keys is complete.
func DeriveMasterKey(fullName, masterSecret string, v AlgorithmVersion) (MasterKey, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("engine: %w: algorithm version %s", mpwerr.Usage, v)
	}
	if fullName == "" {
		return nil, fmt.Errorf("engine: %w: full name is required", mpwerr.MissingInput)
	}

	salt := make([]byte, 0, len(masterScope)+4+len(fullName))
	salt = pushBytes([]byte(masterScope), salt)
	salt = pushU32BE(frameLength(v, fullName), salt)
	salt = pushBytes([]byte(fullName), salt)

	key, err := scrypt.Key([]byte(masterSecret), salt, scryptN, scryptR, scryptP, masterKeyLen)
	if err != nil {
		return nil, fmt.Errorf("engine: %w: scrypt: %v", mpwerr.Crypto, err)
	}
	return MasterKey(key), nil
}
