package engine

import (
	"fmt"

	"github.com/mpwgo/mpw/mpwerr"
	"github.com/mpwgo/mpw/types"
)

// Request bundles the inputs needed to render one site credential. It has
// no "generated" fields; every value must be fully specified by the
// caller, with Counter and Algorithm already defaulted if needed.
type Request struct {
	FullName      string
	MasterSecret  string
	SiteName      string
	Counter       uint32
	Purpose       types.Purpose
	Context       string
	Type          types.ResultType
	Algorithm     AlgorithmVersion
	KeyBits       int    // only consulted when Type.Class() == types.ClassDerive
	StoredContent string // only consulted when Type.Class() == types.ClassStateful, for Open
}

// Generate derives the master key and site key for req and renders the
// requested result. For a Stateful type, StoredContent must hold the
// previously-sealed ciphertext (possibly empty, meaning "no secret saved
// yet"); Generate decrypts it rather than minting a new secret, since the
// engine itself never invents stateful content.
func Generate(req Request) (string, error) {
	masterKey, err := DeriveMasterKey(req.FullName, req.MasterSecret, req.Algorithm)
	if err != nil {
		return "", err
	}
	defer masterKey.Zero()

	siteKey, err := DeriveSiteKey(masterKey, req.SiteName, req.Counter, req.Purpose, req.Context, req.Algorithm)
	if err != nil {
		return "", err
	}
	defer siteKey.Zero()

	switch req.Type.Class() {
	case types.ClassTemplate:
		return RenderTemplate(siteKey, req.Type, req.Algorithm)
	case types.ClassDerive:
		return DeriveKey(masterKey, req.SiteName, req.Counter, req.Context, req.Algorithm, req.KeyBits)
	case types.ClassStateful:
		if req.StoredContent == "" {
			return "", nil
		}
		plaintext, err := Open(siteKey, req.StoredContent)
		if err != nil {
			return "", err
		}
		return string(plaintext), nil
	default:
		return "", fmt.Errorf("engine: %w: unhandled result class for %v", mpwerr.Usage, req.Type)
	}
}

// Reseal encrypts a new stateful secret under req's site key, for Personal
// and Device result types. It recomputes the master key and site key
// itself so the caller never has to thread zeroized buffers through.
func Reseal(req Request, secret string) (string, error) {
	if req.Type.Class() != types.ClassStateful {
		return "", fmt.Errorf("engine: %w: %v is not a stateful result type", mpwerr.Usage, req.Type)
	}
	masterKey, err := DeriveMasterKey(req.FullName, req.MasterSecret, req.Algorithm)
	if err != nil {
		return "", err
	}
	defer masterKey.Zero()

	siteKey, err := DeriveSiteKey(masterKey, req.SiteName, req.Counter, req.Purpose, req.Context, req.Algorithm)
	if err != nil {
		return "", err
	}
	defer siteKey.Zero()

	return Seal(siteKey, []byte(secret))
}
