package lex

import "fmt"

// Length is the length modifier of a directive.
type Length int

const (
	LengthDefault    Length = iota
	LengthShort             // h
	LengthLong              // l
	LengthLongLong          // ll
	LengthLongDouble        // L
)

func (l Length) String() string {
	switch l {
	case LengthShort:
		return "h"
	case LengthLong:
		return "l"
	case LengthLongLong:
		return "ll"
	case LengthLongDouble:
		return "L"
	}
	return ""
}

const (
	flagSkip   = '*'
	flagPad    = '('
	dollarSign = '$'
	DefaultPad = 0x0020
)

// Spec is one parsed directive.
type Spec struct {
	ArgPos  int // 1-based, -1 if the directive has no n$ prefix
	SkipArg bool
	Letter  rune
	Width   int // -1 means unbounded
	PadChar uint16
	Length  Length
}

func (s Spec) String() string {
	str := "%"
	if s.ArgPos != -1 {
		str += fmt.Sprintf("%d$", s.ArgPos)
	}
	if s.SkipArg {
		str += "*"
	}
	if s.PadChar != DefaultPad {
		str += fmt.Sprintf("(%04X)", s.PadChar)
	}
	if s.Width != -1 {
		str += fmt.Sprintf("%d", s.Width)
	}
	return str + s.Length.String() + string(s.Letter)
}

// ParseSpec parses the directive starting at template[start], which must be a '%'. It returns the
// directive and the number of template characters it spans, which is at least 2. Characters past
// the end of the template read as NUL, so the span may reach beyond it; callers clamp.
func ParseSpec(template []rune, start int) (Spec, int) {
	at := func(i int) rune {
		if i < len(template) {
			return template[i]
		}
		return 0
	}
	spec := Spec{ArgPos: -1, Width: -1, PadChar: DefaultPad}
	i := start + 1

	// n$ positional prefix; without the '$' the digits are left for the width
	if isDigit(at(i)) {
		backup := i
		pos := 0
		for isDigit(at(i)) {
			pos = pos*10 + int(at(i)-'0')
			i++
		}
		if at(i) == dollarSign {
			spec.ArgPos = pos
			i++
		} else {
			i = backup
		}
	}

	for at(i) == flagSkip || at(i) == flagPad {
		switch at(i) {
		case flagSkip:
			spec.SkipArg = true
			i++
		case flagPad:
			i++
			var pad uint16
			for k := 0; k < 4; k++ {
				pad = pad*16 + uint16(DigitValue(at(i)))
				i++
			}
			spec.PadChar = pad
			i++ // terminator, not checked
		}
	}

	if isDigit(at(i)) {
		spec.Width = 0
		for isDigit(at(i)) {
			spec.Width = spec.Width*10 + int(at(i)-'0')
			i++
		}
	}

	switch at(i) {
	case 'h':
		spec.Length = LengthShort
		i++
	case 'l':
		i++
		if at(i) == 'l' {
			spec.Length = LengthLongLong
			i++
		} else {
			spec.Length = LengthLong
		}
	case 'L':
		spec.Length = LengthLongDouble
		i++
	}

	spec.Letter = at(i)
	i++
	return spec, i - start
}

// DigitValue is the value of c as a digit in bases up to 36. Characters that are no digit in any
// base count as 0.
func DigitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 0
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
