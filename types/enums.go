// Package types is the compatibility-surface registry: the static tables
// that map template, purpose, counter, algorithm, and format names to their
// wire representations. Nothing in this package is secret; everything in
// it is part of the format every implementation must agree on bit-for-bit.
package types

import "fmt"

// Purpose governs the scope label mixed into the site-key derivation
// message, and the default template for a site.
type Purpose uint8

const (
	Authentication Purpose = iota
	Identification
	Recovery
)

// purposeInfo holds the lookup data for a Purpose: its short (single
// letter) name, long name, and HMAC scope label.
type purposeInfo struct {
	short, long, scope string
}

var purposes = map[Purpose]purposeInfo{
	Authentication: {"a", "authentication", "com.lyndir.masterpassword"},
	Identification: {"i", "identification", "com.lyndir.masterpassword.login"},
	Recovery:       {"r", "recovery", "com.lyndir.masterpassword.answer"},
}

// Scope returns the HMAC scope label for p.
func (p Purpose) Scope() string { return purposes[p].scope }

// ShortName returns p's single-letter name (e.g. "a").
func (p Purpose) ShortName() string { return purposes[p].short }

func (p Purpose) String() string {
	if info, ok := purposes[p]; ok {
		return info.long
	}
	return fmt.Sprintf("purpose(%d)", uint8(p))
}

// ParsePurpose accepts either the short or long name of a Purpose.
func ParsePurpose(s string) (Purpose, error) {
	for p, info := range purposes {
		if s == info.short || s == info.long {
			return p, nil
		}
	}
	return 0, fmt.Errorf("types: unknown purpose %q", s)
}

// Format selects the on-disk encoding of a profile.
type Format uint8

const (
	// FormatNone lets the writer choose; profile.Write encodes it as
	// FormatJSON. The format a profile was read under is not consulted.
	FormatNone Format = iota
	FormatFlat
	FormatJSON
)

var formats = map[Format]struct{ short, long string }{
	FormatNone: {"n", "none"},
	FormatFlat: {"f", "flat"},
	FormatJSON: {"j", "json"},
}

func (f Format) String() string {
	if info, ok := formats[f]; ok {
		return info.long
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// ParseFormat accepts either the short or long name of a Format.
func ParseFormat(s string) (Format, error) {
	for f, info := range formats {
		if s == info.short || s == info.long {
			return f, nil
		}
	}
	return 0, fmt.Errorf("types: unknown format %q", s)
}

// MaxCounter is the largest valid Counter value.
const MaxCounter = ^uint32(0)

// ValidCounter reports whether n is a representable counter. Every uint32
// value is valid; this exists to give input validation a single name to
// call and a place to grow (e.g. if a future version reserves a range).
func ValidCounter(n uint32) bool { return true }
