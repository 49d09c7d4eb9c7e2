// Package fpcode implements the Flower Password derivation algorithm:
// a deterministic mapping from a master password and a key (typically a
// domain name) to a short pseudo-password.
//
// The algorithm chains HMAC-MD5 digests and applies a fixed character
// transform. It is bit-compatible with the reference JavaScript
// implementation, which is the whole point: the same inputs produce the
// same password in every client. It is NOT a hardened KDF and must not
// be used to protect high-value secrets against offline attack.
package fpcode

import (
	"fmt"
	"strings"
)

const (
	// MinLength is the shortest password Code will produce.
	MinLength = 2

	// MaxLength is the longest password Code will produce, bounded by
	// the 32 hex characters of an MD5 digest.
	MaxLength = 32

	// digestHexLen is the width of a hex-encoded MD5 digest.
	digestHexLen = 32

	// magic is the transformation table from the reference
	// implementation: a source character is uppercased when the rule
	// character at the same position occurs in this string. Transcribed
	// verbatim; any change breaks cross-implementation compatibility.
	magic = "sunlovesnow1990090127xykab"

	// Fixed salts that split the base digest into the rule stream and
	// the source stream.
	ruleSalt   = "kise"
	sourceSalt = "snow"
)

// InvalidLengthError is returned when the requested password length is
// outside [MinLength, MaxLength]. It is the only error Code can return.
type InvalidLengthError struct {
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("length must be between %d and %d, got: %d", MinLength, MaxLength, e.Length)
}

// Code derives a deterministic password of the given length from a
// master password and a key. The output contains only ASCII letters and
// digits, and the first character is always a letter.
//
// Code is pure: it performs no I/O, keeps no state, and is safe to call
// concurrently. The length must be in [MinLength, MaxLength]; anything
// else fails with *InvalidLengthError before any hashing is done.
func Code(password, key string, length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", &InvalidLengthError{Length: length}
	}

	base := hmacMD5(password, key)
	rule := hmacMD5(base, ruleSalt)
	source := hmacMD5(base, sourceSalt)

	return transform(rule, source, length), nil
}

// transform applies the per-position uppercase rule, guarantees the
// first character is a letter, and truncates to length.
//
// Both inputs are lowercase hex digests, so every byte is either a
// digit or one of 'a'..'f'.
func transform(rule, source string, length int) string {
	buf := []byte(source)
	for i := 0; i < digestHexLen; i++ {
		c := buf[i]
		if c >= 'a' && strings.IndexByte(magic, rule[i]) >= 0 {
			buf[i] = c - 'a' + 'A'
		}
	}

	// The first character must be a letter. The reference maps every
	// digit to 'K'.
	if buf[0] <= '9' {
		buf[0] = 'K'
	}

	return string(buf[:length])
}
