// Package mpwerr defines the error taxonomy shared by the engine, profile,
// and cmd/mpw packages, and the exit-code mapping the adapter uses to
// report failures the way a Unix tool is expected to.
package mpwerr

import "errors"

// Sentinel kinds. Wrap one of these with fmt.Errorf("...: %w", Kind) so
// callers can classify a failure with errors.Is without string matching.
var (
	// Usage covers an unknown flag, an unknown enum name, or a counter
	// outside its valid range. Exit code 64.
	Usage = errors.New("usage error")

	// MissingInput covers an absent required field with no prompt
	// available to fill it. Exit code 65.
	MissingInput = errors.New("missing input")

	// MasterPassword covers a KeyID mismatch when loading a profile: the
	// supplied master secret does not match the one the profile was
	// written under. Recoverable by re-prompting. Exit code 65.
	MasterPassword = errors.New("wrong master password")

	// Format covers a malformed or unrecognized profile encoding. Exit
	// code 65 on read; a warning (profile left untouched) on write.
	Format = errors.New("format error")

	// Crypto covers a primitive failure (scrypt, HMAC) that has no
	// recovery path. Exit code 70.
	Crypto = errors.New("crypto error")

	// IO covers a failure to read or write the profile file. On write,
	// the existing profile is left untouched. Exit code 70.
	IO = errors.New("io error")
)

// Exit codes, per the standard BSD sysexits.h categories the CLI follows.
const (
	ExitOK      = 0
	ExitUsage   = 64
	ExitData    = 65
	ExitSoftErr = 70
)

// ExitCode maps err to the exit code the adapter should use, by walking its
// wrapped chain for one of the sentinels above. Unrecognized errors map to
// ExitSoftErr.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, Usage):
		return ExitUsage
	case errors.Is(err, MissingInput), errors.Is(err, MasterPassword), errors.Is(err, Format):
		return ExitData
	default:
		return ExitSoftErr
	}
}
