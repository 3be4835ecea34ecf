// Package identicon renders a deterministic four-glyph fingerprint of a
// (full name, master secret) pair, so a user can visually confirm they
// typed their master secret correctly before it is used for a derivation.
package identicon

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
)

// Color names one of the seven fixed ANSI colors an Identicon is rendered
// in.
type Color uint8

const (
	Red Color = iota
	Green
	Yellow
	Blue
	Magenta
	Cyan
	Mono
)

var colorNames = [...]string{"red", "green", "yellow", "blue", "magenta", "cyan", "mono"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// ANSI returns the ANSI terminal escape sequence that selects c's
// foreground color.
func (c Color) ANSI() string {
	switch c {
	case Red:
		return "\x1b[31m"
	case Green:
		return "\x1b[32m"
	case Yellow:
		return "\x1b[33m"
	case Blue:
		return "\x1b[34m"
	case Magenta:
		return "\x1b[35m"
	case Cyan:
		return "\x1b[36m"
	default:
		return "\x1b[39m"
	}
}

// Tables are the compatibility surface and must be reproduced verbatim, in
// this exact order: a reimplementation that reorders them produces
// different identicons for the same inputs.
var (
	leftArms    = [...]string{"╔", "╚", "╰", "═", "╓", "╙", "┌", "└"}
	bodies      = [...]string{"█", "░", "▒", "▓", "☺", "☻", "★", "⚉"}
	rightArms   = [...]string{"╗", "╝", "╯", "═", "╖", "╜", "┐", "┘"}
	accessories = [...]string{"◈", "◊", "○", "◌", "◍", "◎", "●", "◐", "◑", "◒", "◓", "☼", "☀", "☁", "☂", "☻"}
)

// Identicon is a rendered fingerprint: four glyphs and a color.
type Identicon struct {
	LeftArm, Body, RightArm, Accessory string
	Color                              Color
}

// String renders the identicon as plain text, glyphs concatenated with no
// separator (the color is not representable outside a terminal).
func (id Identicon) String() string {
	return id.LeftArm + id.Body + id.RightArm + id.Accessory
}

// ANSIString renders the identicon wrapped in its color's ANSI escape
// sequence, with a trailing reset.
func (id Identicon) ANSIString() string {
	return fmt.Sprintf("%s%s\x1b[0m", id.Color.ANSI(), id.String())
}

// New computes the identicon for (fullName, masterSecret): HMAC-SHA256
// keyed by masterSecret over fullName, with the first four digest bytes
// indexing the four glyph tables and the fifth selecting the color.
func New(fullName, masterSecret string) Identicon {
	mac := hmac.New(sha256.New, []byte(masterSecret))
	mac.Write([]byte(fullName))
	digest := mac.Sum(nil)

	return Identicon{
		LeftArm:   leftArms[int(digest[0])%len(leftArms)],
		Body:      bodies[int(digest[1])%len(bodies)],
		RightArm:  rightArms[int(digest[2])%len(rightArms)],
		Accessory: accessories[int(digest[3])%len(accessories)],
		Color:     Color(int(digest[4]) % 7),
	}
}
