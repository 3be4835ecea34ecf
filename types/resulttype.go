package types

import "fmt"

// ResultClass distinguishes the three families of result a ResultType can
// belong to.
type ResultClass uint8

const (
	// ClassTemplate results are stateless and deterministic: rendered
	// directly from the site key. An unredacted profile may keep the last
	// rendering in cleartext as a convenience copy.
	ClassTemplate ResultClass = iota
	// ClassStateful results are a user secret, encrypted under the site
	// key and stored in the profile as ciphertext.
	ClassStateful
	// ClassDerive results are a raw keystream of a requested bit length.
	ClassDerive
)

// ResultType names one of the credential shapes the engine can render.
type ResultType uint8

const (
	Maximum ResultType = iota
	Long
	Medium
	Basic
	Short
	PIN
	Name
	Phrase
	Personal
	Device
	Key
)

type resultTypeInfo struct {
	short, long, description string
	class                    ResultClass
}

var resultTypes = map[ResultType]resultTypeInfo{
	Maximum:  {"x", "maximum", "20 characters, contains symbols", ClassTemplate},
	Long:     {"l", "long", "14 characters, contains symbols", ClassTemplate},
	Medium:   {"m", "medium", "8 characters, contains symbols", ClassTemplate},
	Basic:    {"b", "basic", "8 characters, no symbols", ClassTemplate},
	Short:    {"s", "short", "4 characters, no symbols", ClassTemplate},
	PIN:      {"i", "pin", "4 digits", ClassTemplate},
	Name:     {"n", "name", "9 letter name", ClassTemplate},
	Phrase:   {"p", "phrase", "20 character phrase", ClassTemplate},
	Personal: {"P", "personal", "saved personal secret, encrypted", ClassStateful},
	Device:   {"D", "device", "saved per-device secret, encrypted", ClassStateful},
	Key:      {"k", "key", "derived raw encryption key", ClassDerive},
}

// ShortName returns t's single-letter (or, for Personal/Device, single
// uppercase-letter) name.
func (t ResultType) ShortName() string { return resultTypes[t].short }

// Class reports which of the three result families t belongs to.
func (t ResultType) Class() ResultClass { return resultTypes[t].class }

// Description returns a short human-readable description of t.
func (t ResultType) Description() string { return resultTypes[t].description }

func (t ResultType) String() string {
	if info, ok := resultTypes[t]; ok {
		return info.long
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseResultType accepts either the short or long name of a ResultType.
func ParseResultType(s string) (ResultType, error) {
	for t, info := range resultTypes {
		if s == info.short || s == info.long {
			return t, nil
		}
	}
	return 0, fmt.Errorf("types: unknown result type %q", s)
}

// DefaultResultType returns the template used when a purpose has no
// explicit type override.
func DefaultResultType(p Purpose) ResultType {
	switch p {
	case Identification:
		return Name
	case Recovery:
		return Phrase
	default:
		return Long
	}
}
