package engine

import (
	"fmt"

	"github.com/mpwgo/mpw/mpwerr"
	"github.com/mpwgo/mpw/types"
)

// RenderTemplate renders siteKey into a template-class credential.
//
// The first byte of siteKey selects a candidate pattern from t's list; each
// subsequent byte selects one character from the alphabet named by the
// pattern character at that position. Algorithm V0 reduces each
// per-character selector byte as a signed 8-bit value before taking the
// (positive) modulus; V1 and later treat it as unsigned. This quirk must be
// preserved forever to keep V0 profiles reproducible.
func RenderTemplate(siteKey SiteKey, t types.ResultType, v AlgorithmVersion) (string, error) {
	if t.Class() != types.ClassTemplate {
		return "", fmt.Errorf("engine: %w: %v is not a template result type", mpwerr.Usage, t)
	}
	pattern, err := types.SelectPattern(t, siteKey[0])
	if err != nil {
		return "", fmt.Errorf("engine: %w", err)
	}
	if len(siteKey) < len(pattern)+1 {
		return "", fmt.Errorf("engine: %w: site key too short for pattern %q", mpwerr.Crypto, pattern)
	}

	out := make([]byte, len(pattern))
	for i := 0; i < len(pattern); i++ {
		class := pattern[i]
		alphabet, ok := types.ClassAlphabet(class)
		if !ok {
			return "", fmt.Errorf("engine: %w: unknown template class %q", mpwerr.Format, string(class))
		}
		out[i] = alphabet[selectIndex(siteKey[i+1], len(alphabet), v)]
	}
	return string(out), nil
}

// selectIndex reduces b modulo n, honoring the V0 signed-byte quirk.
func selectIndex(b byte, n int, v AlgorithmVersion) int {
	if !v.signedSelectorBytes() {
		return int(b) % n
	}
	signed := int(int8(b))
	r := signed % n
	if r < 0 {
		r += n
	}
	return r
}
