// Package engine implements the Master Password site-key derivation scheme.
//
// It derives reproducible per-site credentials from a user's full name and a
// master secret, without ever writing the secret to storage. The scheme is
// deterministic: the same (full name, master secret, site name, counter,
// purpose, context, algorithm version) always yields the same result, on any
// platform, forever.
//
// # Algorithm
//
// Derivation happens in two stretched stages.
//
// First, the master key is derived from the full name and master secret
// using scrypt, a memory-hard key-stretch:
//
//	masterKeySalt = "com.lyndir.masterpassword" || u32be(nameLen) || fullName
//	masterKey     = scrypt(masterSecret, masterKeySalt, N=32768, r=8, p=2, dkLen=64)
//
// nameLen is counted in UTF-8 bytes for algorithm versions 2 and 3, and in
// Unicode code points for versions 0 and 1 (see AlgorithmVersion).
//
// Second, the site key is derived per site, counter, and purpose using an
// HMAC keyed by the master key:
//
//	siteSalt = scope(purpose) || u32be(nameLen) || siteName || u32be(counter) [ || u32be(ctxLen) || context ]
//	siteKey  = HMAC-SHA256(masterKey, siteSalt)
//
// nameLen and ctxLen are counted by the same per-version rule as above.
//
// scope(purpose) is one of:
//
//	com.lyndir.masterpassword        Authentication
//	com.lyndir.masterpassword.login  Identification
//	com.lyndir.masterpassword.answer Recovery
//
// The site key is never written to disk; it is consumed immediately by one
// of the renderers in this package (Template, Derive, Stateful) and then
// zeroized.
//
// # Rendering
//
// A Template result maps the site key onto a fixed character pattern chosen
// from the registry in the sibling types package: the first site-key byte
// selects a pattern from the template's candidate list, and each subsequent
// byte selects one character from the pattern's character class. Version V0
// treats the per-character byte as signed before reducing modulo the class
// size (see RenderTemplate); all later versions treat it as unsigned. This quirk is part of the compatibility surface and must never
// be "fixed".
//
// A Derive result is a raw keystream of the requested bit length, built by
// concatenating one or more site keys (see DeriveKey).
//
// A Stateful result (Personal, Device) is a user secret encrypted with
// AES-CTR under the site key, the zero IV, stored as padded standard
// base64 (see Seal / Open).
package engine
