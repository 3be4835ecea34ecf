package types_test

import (
	"testing"

	"github.com/mpwgo/mpw/types"
)

func TestParseResultTypeRoundTrip(t *testing.T) {
	for _, rt := range []types.ResultType{types.Maximum, types.Long, types.Medium, types.Basic, types.Short, types.PIN, types.Name, types.Phrase, types.Personal, types.Device, types.Key} {
		short := rt.ShortName()
		got, err := types.ParseResultType(short)
		if err != nil {
			t.Fatalf("ParseResultType(%q): %v", short, err)
		}
		if got != rt {
			t.Errorf("ParseResultType(%q) = %v, want %v", short, got, rt)
		}

		long := rt.String()
		got, err = types.ParseResultType(long)
		if err != nil {
			t.Fatalf("ParseResultType(%q): %v", long, err)
		}
		if got != rt {
			t.Errorf("ParseResultType(%q) = %v, want %v", long, got, rt)
		}
	}
}

func TestParseResultTypeUnknown(t *testing.T) {
	if _, err := types.ParseResultType("bogus"); err == nil {
		t.Error("ParseResultType(bogus) = nil error, want error")
	}
}

func TestParsePurposeRoundTrip(t *testing.T) {
	for _, p := range []types.Purpose{types.Authentication, types.Identification, types.Recovery} {
		got, err := types.ParsePurpose(p.ShortName())
		if err != nil || got != p {
			t.Errorf("ParsePurpose(%q) = %v, %v; want %v, nil", p.ShortName(), got, err, p)
		}
	}
}

func TestTemplatePatternLengths(t *testing.T) {
	want := map[types.ResultType]int{
		types.Maximum: 20,
		types.Long:    14,
		types.Medium:  8,
		types.Basic:   8,
		types.Short:   4,
		types.PIN:     4,
		types.Name:    9,
		types.Phrase:  20,
	}
	for rt, n := range want {
		patterns, ok := types.TemplatePatterns(rt)
		if !ok {
			t.Fatalf("TemplatePatterns(%v) not found", rt)
		}
		for _, p := range patterns {
			if len(p) != n {
				t.Errorf("%v pattern %q has length %d, want %d", rt, p, len(p), n)
			}
		}
	}
}

func TestSelectPatternWraps(t *testing.T) {
	patterns, _ := types.TemplatePatterns(types.Long)
	p, err := types.SelectPattern(types.Long, byte(len(patterns)))
	if err != nil {
		t.Fatalf("SelectPattern: %v", err)
	}
	if p != patterns[0] {
		t.Errorf("SelectPattern wrapped to %q, want %q", p, patterns[0])
	}
}

func TestClassAlphabetKnownClasses(t *testing.T) {
	for _, c := range []byte{'V', 'C', 'v', 'c', 'A', 'a', 'n', 'o', 'x', ' '} {
		if _, ok := types.ClassAlphabet(c); !ok {
			t.Errorf("ClassAlphabet(%q) not found", string(c))
		}
	}
	if _, ok := types.ClassAlphabet('Q'); ok {
		t.Error("ClassAlphabet('Q') unexpectedly found")
	}
}
