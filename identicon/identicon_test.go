package identicon_test

import (
	"testing"
	"unicode/utf8"

	"github.com/mpwgo/mpw/identicon"
)

func TestDeterministic(t *testing.T) {
	a := identicon.New("Robert Lee Mitchell", "banana colored duckling")
	b := identicon.New("Robert Lee Mitchell", "banana colored duckling")
	if a != b {
		t.Errorf("New is not deterministic: %v != %v", a, b)
	}
}

func TestDiffersByInput(t *testing.T) {
	a := identicon.New("Robert Lee Mitchell", "banana colored duckling")
	b := identicon.New("Robert Lee Mitchell", "different secret")
	if a == b {
		t.Errorf("differing master secrets produced identical identicons: %v", a)
	}
}

func TestStringHasFourGlyphs(t *testing.T) {
	id := identicon.New("Jane Doe", "hunter2")
	s := id.String()
	if s == "" {
		t.Fatal("String() is empty")
	}
	if n := utf8.RuneCountInString(s); n != 4 {
		t.Errorf("String() = %q has %d glyphs, want 4", s, n)
	}
	if id.ANSIString() == s {
		t.Error("ANSIString() did not add any escape sequence")
	}
}
