// Package phone canonicalises user-entered phone numbers into an
// international-format string: leading "+", digits only otherwise.
//
// The leading-"1" and leading-"0" rules assume a default country and are a
// known simplification; numbers from other countries may normalise to a
// prefix that does not exist. Length and country-code validity are not
// checked here — the user directory rejects numbers it cannot hold.
package phone

import "strings"

// Normalize applies, in order:
//  1. strip all non-digit characters;
//  2. digits starting with "1" and no explicit "+" → prefix "+";
//  3. digits starting with "0" → drop the leading zero, prefix "+";
//  4. no explicit "+" → prefix "+";
//  5. otherwise the input already had a leading "+" → returned unchanged.
//
// Normalize is idempotent: a previously normalised number falls through to
// rule 5 (or rule 3 re-derives the same string).
func Normalize(raw string) string {
	hadPlus := strings.HasPrefix(strings.TrimSpace(raw), "+")

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case !hadPlus && strings.HasPrefix(digits, "1"):
		return "+" + digits
	case strings.HasPrefix(digits, "0"):
		return "+" + digits[1:]
	case !hadPlus:
		return "+" + digits
	default:
		return raw
	}
}
