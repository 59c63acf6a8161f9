package locale

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

type Style int

const (
	StyleDecimal Style = iota
	StyleScientific
	StylePercent
	StyleSpellout
)

func (s Style) String() string {
	switch s {
	case StyleDecimal:
		return "decimal"
	case StyleScientific:
		return "scientific"
	case StylePercent:
		return "percent"
	case StyleSpellout:
		return "spellout"
	}
	return "unknown"
}

// NumberFormat parses numbers of one style in one locale.
type NumberFormat struct {
	Style   Style
	symbols Symbols
	words   *spellout
}

// NumberFormat returns the parser for style. Spelled-out numbers are only available for bundles
// that know the number words of their language.
func (b *Bundle) NumberFormat(style Style) (*NumberFormat, bool) {
	if style == StyleSpellout && b.words == nil {
		tracer().Debugf("no %s format for %s", style, b.Tag)
		return nil, false
	}
	return &NumberFormat{Style: style, symbols: b.Symbols, words: b.words}, true
}

// ParseDouble parses a number at the start of span.
func (f *NumberFormat) ParseDouble(span []uint16) (float64, int) {
	switch f.Style {
	case StyleSpellout:
		return f.words.parse(span)
	case StylePercent:
		return f.parsePercent(span)
	}
	return f.parseDecimal(span, f.Style == StyleScientific)
}

// ParseInt64 parses the integer part of a decimal number at the start of span. Values out of range
// wrap around.
func (f *NumberFormat) ParseInt64(span []uint16) (int64, int) {
	at := unitAt(span)
	neg, i := f.sign(at)
	var v uint64
	digits := 0
	for {
		c := at(i)
		if isDigit(c) {
			v = v*10 + uint64(c-'0')
			digits++
			i++
			continue
		}
		if digits > 0 && f.groupAt(at, i) {
			i++
			continue
		}
		break
	}
	if digits == 0 {
		return 0, 0
	}
	if neg {
		v = -v
	}
	return int64(v), i
}

// groupAt reports whether a group separator followed by exactly three digits starts at i.
func (f *NumberFormat) groupAt(at func(int) rune, i int) bool {
	return at(i) == f.symbols.Group && isDigit(at(i+1)) && isDigit(at(i+2)) && isDigit(at(i+3)) &&
		!isDigit(at(i+4))
}

func (f *NumberFormat) sign(at func(int) rune) (bool, int) {
	switch at(0) {
	case f.symbols.Minus, '−':
		return true, 1
	case f.symbols.Plus:
		return false, 1
	}
	return false, 0
}

func (f *NumberFormat) parseDecimal(span []uint16, exponent bool) (float64, int) {
	at := unitAt(span)
	neg, i := f.sign(at)
	var num strings.Builder
	intDigits := 0
	for {
		c := at(i)
		if isDigit(c) {
			num.WriteRune(c)
			intDigits++
			i++
			continue
		}
		if intDigits > 0 && f.groupAt(at, i) {
			i++
			continue
		}
		break
	}
	fracDigits := 0
	if at(i) == f.symbols.Decimal && isDigit(at(i+1)) {
		num.WriteByte('.')
		i++
		for isDigit(at(i)) {
			num.WriteRune(at(i))
			fracDigits++
			i++
		}
	}
	if intDigits+fracDigits == 0 {
		return 0, 0
	}
	if e := at(i); exponent && (e == f.symbols.Exponent || e == unicode.ToLower(f.symbols.Exponent)) {
		j := i + 1
		expSign := ""
		switch at(j) {
		case f.symbols.Minus, '−':
			expSign = "-"
			j++
		case f.symbols.Plus:
			j++
		}
		// the exponent only counts with at least one digit
		if isDigit(at(j)) {
			num.WriteString("e" + expSign)
			for isDigit(at(j)) {
				num.WriteRune(at(j))
				j++
			}
			i = j
		}
	}
	v, err := strconv.ParseFloat(num.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		tracer().Errorf("decimal %q: %v", num.String(), err)
		return 0, 0
	}
	if neg {
		v = -v
	}
	return v, i
}

// parsePercent accepts the percent sign before or after the number; the value is divided by 100
// either way.
func (f *NumberFormat) parsePercent(span []uint16) (float64, int) {
	lead := 0
	if len(span) > 0 && rune(span[0]) == f.symbols.Percent {
		lead = 1
	}
	v, n := f.parseDecimal(span[lead:], false)
	if n == 0 {
		return 0, 0
	}
	n += lead
	if lead == 0 && n < len(span) && rune(span[n]) == f.symbols.Percent {
		n++
	}
	return v / 100, n
}

// DigitsToUint64 parses the digits of radix at the start of span. Letters count as digits 10 to 35.
// Values out of range wrap around.
func DigitsToUint64(span []uint16, radix int) (uint64, int) {
	var v uint64
	i := 0
	for ; i < len(span); i++ {
		d := digitValue(rune(span[i]))
		if d < 0 || d >= radix {
			break
		}
		v = v*uint64(radix) + uint64(d)
	}
	return v, i
}

func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

func unitAt(span []uint16) func(int) rune {
	return func(i int) rune {
		if i < len(span) {
			return rune(span[i])
		}
		return -1
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
