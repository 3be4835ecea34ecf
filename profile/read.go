package profile

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mpwgo/mpw/engine"
	"github.com/mpwgo/mpw/mpwerr"
	"github.com/mpwgo/mpw/types"
)

// Info is the summary ReadInfo returns: everything a caller can learn about
// a profile blob without supplying the master secret.
type Info struct {
	Format    types.Format
	Algorithm engine.AlgorithmVersion
	KeyID     string
	Date      time.Time
	Redacted  bool
}

// ReadInfo sniffs data's format and decodes just its envelope, without
// requiring (or being able to verify) the master secret.
func ReadInfo(data []byte) (Info, error) {
	switch detectFormat(data) {
	case types.FormatJSON:
		return readJSONInfo(data)
	case types.FormatFlat:
		return readFlatInfo(data)
	default:
		return Info{}, fmt.Errorf("profile: %w: unrecognized profile format", mpwerr.Format)
	}
}

// detectFormat looks at data's leading byte: '{' means json, '#' means
// flat. Leading whitespace is tolerated.
func detectFormat(data []byte) types.Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return types.FormatNone
	}
	switch trimmed[0] {
	case '{':
		return types.FormatJSON
	case '#':
		return types.FormatFlat
	default:
		return types.FormatNone
	}
}

// Read parses data, derives the master key from (fullName, masterPassword),
// and verifies it against the profile's stored KeyID before decrypting any
// stateful site content. A KeyID mismatch returns an error wrapping
// mpwerr.MasterPassword and no partial User.
func Read(data []byte, masterPassword string) (*User, error) {
	format := detectFormat(data)
	var u *User
	var err error
	switch format {
	case types.FormatJSON:
		u, err = decodeJSON(data)
	case types.FormatFlat:
		u, err = decodeFlat(data)
	default:
		return nil, fmt.Errorf("profile: %w: unrecognized profile format", mpwerr.Format)
	}
	if err != nil {
		return nil, err
	}

	masterKey, err := engine.DeriveMasterKey(u.FullName, masterPassword, u.Algorithm)
	if err != nil {
		return nil, err
	}
	defer masterKey.Zero()

	if !engine.MatchesKeyID(masterKey, u.KeyID) {
		return nil, fmt.Errorf("profile: %w", mpwerr.MasterPassword)
	}
	u.MasterPassword = masterPassword

	for i := range u.Sites {
		site := &u.Sites[i]
		if site.Type.Class() != types.ClassStateful || site.Content == "" {
			continue
		}
		siteKey, err := engine.DeriveSiteKey(masterKey, site.Name, site.Counter, types.Authentication, "", site.Algorithm)
		if err != nil {
			return nil, err
		}
		plaintext, err := engine.Open(siteKey, site.Content)
		siteKey.Zero()
		if err != nil {
			return nil, fmt.Errorf("profile: site %q: %w", site.Name, err)
		}
		site.Content = string(plaintext)
	}
	return u, nil
}

// Write re-serializes u in the requested format, honoring u.Redacted:
// stateful content is always sealed to ciphertext before writing, and
// template content is dropped entirely when Redacted is set (it is always
// recomputable from parameters, so keeping a stale rendering on disk would
// only invite trusting it instead of regenerating it).
func Write(u *User, format types.Format) ([]byte, error) {
	sealed, err := sealStatefulContent(u)
	if err != nil {
		return nil, err
	}
	switch format {
	case types.FormatFlat:
		return encodeFlat(sealed)
	case types.FormatJSON, types.FormatNone:
		return encodeJSON(sealed)
	default:
		return nil, fmt.Errorf("profile: %w: unrecognized output format", mpwerr.Format)
	}
}

// sealStatefulContent returns a copy of u in on-disk form: stateful site
// content replaced by its sealed ciphertext, and (when redacted) template
// content cleared.
func sealStatefulContent(u *User) (*User, error) {
	if u.MasterPassword == "" {
		return nil, fmt.Errorf("profile: %w: cannot write without a derivable master key", mpwerr.MissingInput)
	}
	masterKey, err := engine.DeriveMasterKey(u.FullName, u.MasterPassword, u.Algorithm)
	if err != nil {
		return nil, err
	}
	defer masterKey.Zero()

	out := *u
	out.Sites = make([]Site, len(u.Sites))
	copy(out.Sites, u.Sites)

	for i := range out.Sites {
		site := &out.Sites[i]
		switch site.Type.Class() {
		case types.ClassStateful:
			if site.Content == "" {
				continue
			}
			siteKey, err := engine.DeriveSiteKey(masterKey, site.Name, site.Counter, types.Authentication, "", site.Algorithm)
			if err != nil {
				return nil, err
			}
			sealed, err := engine.Seal(siteKey, []byte(site.Content))
			siteKey.Zero()
			if err != nil {
				return nil, fmt.Errorf("profile: site %q: %w", site.Name, err)
			}
			site.Content = sealed
		case types.ClassTemplate:
			if out.Redacted {
				site.Content = ""
			}
		}
	}
	return &out, nil
}
