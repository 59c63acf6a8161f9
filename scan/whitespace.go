package scan

import "unicode"

// isWhitespace follows ICU's u_isWhitespace: Unicode white space without the no-break spaces,
// plus the information separators U+001C..U+001F.
func isWhitespace(r rune) bool {
	switch r {
	case 0x00A0, 0x2007, 0x202F, 0x0085:
		return false
	case 0x001C, 0x001D, 0x001E, 0x001F:
		return true
	}
	return unicode.Is(unicode.White_Space, r)
}
