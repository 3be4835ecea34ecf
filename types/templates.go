package types

import "fmt"

// templatePatterns lists, for each template ResultType, the candidate
// pattern strings the first site-key byte selects between. Reproduced
// verbatim from the published specification; this is the single most
// important compatibility table in the package.
var templatePatterns = map[ResultType][]string{
	Maximum: {
		"anoxxxxxxxxxxxxxxxxx",
		"axxxxxxxxxxxxxxxxxno",
	},
	Long: {
		"CvcvnoCvcvCvcv",
		"CvcvCvcvnoCvcv",
		"CvcvCvcvCvcvno",
		"CvccnoCvcvCvcv",
		"CvccCvcvnoCvcv",
		"CvccCvcvCvcvno",
		"CvcvnoCvccCvcv",
		"CvcvCvccnoCvcv",
		"CvcvCvccCvcvno",
		"CvcvnoCvcvCvcc",
		"CvcvCvcvnoCvcc",
		"CvcvCvcvCvccno",
		"CvccnoCvccCvcv",
		"CvccCvccnoCvcv",
		"CvccCvccCvcvno",
		"CvcvnoCvccCvcc",
		"CvcvCvccnoCvcc",
		"CvcvCvccCvccno",
		"CvccnoCvcvCvcc",
		"CvccCvcvnoCvcc",
		"CvccCvcvCvccno",
	},
	Medium: {
		"CvcnoCvc",
		"CvcCvcno",
	},
	Short: {
		"Cvcn",
	},
	Basic: {
		"aaanaaan",
		"aannaaan",
		"aaannaaa",
	},
	PIN: {
		"nnnn",
	},
	Name: {
		"cvccvcvcv",
	},
	Phrase: {
		"cvcc cvc cvccvcv cvc",
		"cvc cvccvcvcv cvcv",
		"cv cvccv cvc cvcvccv",
	},
}

// TemplatePatterns returns the candidate patterns for t, and reports
// whether t is a template-class result type at all (stateful and derive
// types have none).
func TemplatePatterns(t ResultType) ([]string, bool) {
	p, ok := templatePatterns[t]
	return p, ok
}

// SelectPattern returns the pattern chosen from t's candidate list by
// seedByte, per the published selection rule: the byte reduces modulo the
// candidate count.
func SelectPattern(t ResultType, seedByte byte) (string, error) {
	patterns, ok := templatePatterns[t]
	if !ok || len(patterns) == 0 {
		return "", fmt.Errorf("types: %v has no template patterns", t)
	}
	return patterns[int(seedByte)%len(patterns)], nil
}
