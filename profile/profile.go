// Package profile marshals a user's site configuration to and from the two
// on-disk formats ("flat" and "json"), decrypting stateful site content on
// read and re-encrypting it on write. It never invents credentials; it only
// carries the parameters the engine package needs to regenerate them.
package profile

import (
	"time"

	"github.com/mpwgo/mpw/engine"
	"github.com/mpwgo/mpw/types"
)

// Question is a recovery security question attached to a Site. An empty
// Keyword means "the default question".
type Question struct {
	Keyword string
	Type    types.ResultType
	Content string
}

// Site is one site's saved configuration. Content holds cleartext while a
// User is in memory; the marshaller is responsible for sealing it to
// ciphertext on write and opening it again on read, for stateful Types.
type Site struct {
	Name           string
	Type           types.ResultType
	Counter        uint32
	Algorithm      engine.AlgorithmVersion
	LoginName      string
	LoginGenerated bool
	Content        string
	URL            string
	Uses           uint32
	LastUsed       time.Time
	Questions      []Question
}

// User is a full profile: the default parameters plus the ordered list of
// sites a prior run saved. MasterPassword is populated only for the
// duration of one run's Read/Write pair; it is never serialized.
type User struct {
	FullName       string
	MasterPassword string
	KeyID          string
	DefaultType    types.ResultType
	Algorithm      engine.AlgorithmVersion
	Redacted       bool
	LastUsed       time.Time
	Sites          []Site
}

// Site looks up a site by name, returning (site, true) if found. Lookup is
// linear: profiles are small (tens to low hundreds of sites), and keeping
// Sites as a plain ordered slice is what lets both on-disk formats
// preserve insertion order without a parallel index to keep in sync.
func (u *User) Site(name string) (Site, bool) {
	for _, s := range u.Sites {
		if s.Name == name {
			return s, true
		}
	}
	return Site{}, false
}

// Touch marks the user and the named site as just used, incrementing the
// site's use count. It is the caller's responsibility to call Touch before
// Write, since the marshaller itself does not track "now".
func (u *User) Touch(name string, now time.Time) {
	u.LastUsed = now
	for i := range u.Sites {
		if u.Sites[i].Name == name {
			u.Sites[i].LastUsed = now
			u.Sites[i].Uses++
			return
		}
	}
}

// UpsertSite adds site to the user's list, or replaces the existing entry
// with the same name in place (preserving its position).
func (u *User) UpsertSite(site Site) {
	for i := range u.Sites {
		if u.Sites[i].Name == site.Name {
			u.Sites[i] = site
			return
		}
	}
	u.Sites = append(u.Sites, site)
}
