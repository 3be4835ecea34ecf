package engine

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/mpwgo/mpw/mpwerr"
)

// zeroIV is the fixed all-zero initialization vector used for stateful
// content encryption. With a fixed IV, one site key always yields the same
// keystream: sealing a different plaintext for the same site, counter and
// algorithm reuses that keystream.
var zeroIV = make([]byte, aes.BlockSize)

// Seal encrypts plaintext under siteKey with AES-CTR and the zero IV,
// returning the ciphertext as padded standard base64. This is the
// storage form for Personal and Device result types.
func Seal(siteKey SiteKey, plaintext []byte) (string, error) {
	stream, err := newCTRStream(siteKey)
	if err != nil {
		return "", err
	}
	ciphertext := make([]byte, len(plaintext))
	stream.XORKeyStream(ciphertext, plaintext)
	return encodeBase64(ciphertext), nil
}

// Open reverses Seal: it base64-decodes stored and decrypts it under
// siteKey.
func Open(siteKey SiteKey, stored string) ([]byte, error) {
	ciphertext, err := decodeBase64(stored)
	if err != nil {
		return nil, fmt.Errorf("engine: %w: invalid base64 content: %v", mpwerr.Format, err)
	}
	stream, err := newCTRStream(siteKey)
	if err != nil {
		return nil, err
	}
	plaintext := make([]byte, len(ciphertext))
	stream.XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

func newCTRStream(siteKey SiteKey) (cipher.Stream, error) {
	// AES-256 needs a 32-byte key; the site key is exactly that size.
	block, err := aes.NewCipher(siteKey)
	if err != nil {
		return nil, fmt.Errorf("engine: %w: aes: %v", mpwerr.Crypto, err)
	}
	return cipher.NewCTR(block, zeroIV), nil
}
