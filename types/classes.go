package types

// classAlphabets maps a template pattern character to the ordered alphabet
// a site-key byte is reduced into. These tables are part of the wire
// compatibility surface and must be reproduced exactly — do not reorder,
// extend, or "clean up" any of these strings.
var classAlphabets = map[byte]string{
	'V': "AEIOU",
	'C': "BCDFGHJKLMNPQRSTVWXYZ",
	'v': "aeiou",
	'c': "bcdfghjklmnpqrstvwxyz",
	'A': "AEIOUBCDFGHJKLMNPQRSTVWXYZ",
	'a': "AEIOUaeiouBCDFGHJKLMNPQRSTVWXYZbcdfghjklmnpqrstvwxyz",
	'n': "0123456789",
	'o': "@&%?,=[]_:-+*$#!'^~;()/.",
	'x': "AEIOUaeiouBCDFGHJKLMNPQRSTVWXYZbcdfghjklmnpqrstvwxyz0123456789!@#$%^&*()",
	' ': " ",
}

// ClassAlphabet returns the alphabet for pattern character c and reports
// whether c is a recognized template class.
func ClassAlphabet(c byte) (string, bool) {
	a, ok := classAlphabets[c]
	return a, ok
}
