/*
Package uset compiles the bracketed character-set patterns that follow a %[ directive into sets of
codepoints.

Patterns use the character-class syntax of regexp/syntax ([a-z], [^0-9], [\p{Greek}],
[[:alpha:]]) plus the ICU property forms [:Name:] and [:^Name:], which stand for \p{Name} and
\P{Name} wherever they occur.
*/
package uset

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'uscan.uset'
func tracer() tracing.Trace {
	return tracing.Select("uscan.uset")
}

var ErrPattern = errors.New("invalid set pattern")

// Set is an immutable set of codepoints, held as sorted inclusive ranges.
type Set struct {
	ranges  []rune // lo0, hi0, lo1, hi1, ...
	pattern string
}

// Compile compiles the pattern at the start of p, which must begin with '['. It returns the set and
// the number of characters of p the pattern spans.
func Compile(p []rune) (*Set, int, error) {
	n := Extent(p)
	if n < 0 {
		return nil, 0, fmt.Errorf("%w: unterminated %q", ErrPattern, string(p))
	}
	text := string(p[:n])
	re, err := syntax.Parse(translate(text), syntax.Perl)
	if err != nil {
		tracer().Errorf("set pattern %q: %v", text, err)
		return nil, n, fmt.Errorf("%w %q: %v", ErrPattern, text, err)
	}
	set := &Set{pattern: text}
	switch re.Op {
	case syntax.OpCharClass:
		set.ranges = append(set.ranges, re.Rune...)
	case syntax.OpLiteral:
		if len(re.Rune) != 1 {
			return nil, n, fmt.Errorf("%w %q: not a set", ErrPattern, text)
		}
		set.ranges = []rune{re.Rune[0], re.Rune[0]}
		if re.Flags&syntax.FoldCase != 0 {
			for f := unicode.SimpleFold(re.Rune[0]); f != re.Rune[0]; f = unicode.SimpleFold(f) {
				set.ranges = append(set.ranges, f, f)
			}
		}
	case syntax.OpAnyChar:
		set.ranges = []rune{0, utf8.MaxRune}
	case syntax.OpAnyCharNotNL:
		set.ranges = []rune{0, '\n' - 1, '\n' + 1, utf8.MaxRune}
	case syntax.OpNoMatch:
	default:
		return nil, n, fmt.Errorf("%w %q: not a set", ErrPattern, text)
	}
	set.normalize()
	tracer().Debugf("compiled set %s with %d ranges", text, len(set.ranges)/2)
	return set, n, nil
}

// Contains reports whether r is a member of the set.
func (s *Set) Contains(r rune) bool {
	pairs := len(s.ranges) / 2
	i := sort.Search(pairs, func(i int) bool { return s.ranges[2*i+1] >= r })
	return i < pairs && s.ranges[2*i] <= r
}

func (s *Set) String() string {
	return s.pattern
}

// Extent returns the length of the bracketed pattern at the start of p, or -1 if p does not start
// with '[' or the brackets never close.
func Extent(p []rune) int {
	if len(p) == 0 || p[0] != '[' {
		return -1
	}
	depth := 0
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '\\':
			i++
		case '[':
			if end := propertyEnd(p, i); end > 0 {
				i = end - 1
				if depth == 0 {
					return end
				}
				continue
			}
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// propertyEnd returns the index behind a "[:...:]" starting at p[i], or -1.
func propertyEnd(p []rune, i int) int {
	if i+1 >= len(p) || p[i+1] != ':' {
		return -1
	}
	for k := i + 2; k+1 < len(p); k++ {
		if p[k] == ':' && p[k+1] == ']' {
			return k + 2
		}
		if p[k] == '[' || p[k] == ']' {
			return -1
		}
	}
	return -1
}

var posixClasses = map[string]bool{
	"alnum": true, "alpha": true, "ascii": true, "blank": true, "cntrl": true, "digit": true,
	"graph": true, "lower": true, "print": true, "punct": true, "space": true, "upper": true,
	"word": true, "xdigit": true,
}

// translate rewrites ICU property forms into regexp/syntax escapes.
func translate(pattern string) string {
	var sb strings.Builder
	p := []rune(pattern)
	for i := 0; i < len(p); i++ {
		if p[i] == '\\' && i+1 < len(p) {
			sb.WriteRune(p[i])
			sb.WriteRune(p[i+1])
			i++
			continue
		}
		if p[i] == '[' {
			if end := propertyEnd(p, i); end > 0 {
				name := string(p[i+2 : end-2])
				negated := strings.HasPrefix(name, "^")
				bare := strings.TrimPrefix(name, "^")
				switch {
				case posixClasses[bare] && i > 0:
					sb.WriteString(string(p[i:end]))
				case posixClasses[bare]:
					sb.WriteString("[" + string(p[i:end]) + "]")
				case negated:
					sb.WriteString(`\P{` + bare + `}`)
				default:
					sb.WriteString(`\p{` + bare + `}`)
				}
				i = end - 1
				continue
			}
		}
		sb.WriteRune(p[i])
	}
	return sb.String()
}

// normalize sorts and merges the ranges.
func (s *Set) normalize() {
	pairs := len(s.ranges) / 2
	idx := make([]int, pairs)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return s.ranges[2*idx[a]] < s.ranges[2*idx[b]] })
	merged := make([]rune, 0, len(s.ranges))
	for _, i := range idx {
		lo, hi := s.ranges[2*i], s.ranges[2*i+1]
		if n := len(merged); n > 0 && lo <= merged[n-1]+1 {
			if hi > merged[n-1] {
				merged[n-1] = hi
			}
			continue
		}
		merged = append(merged, lo, hi)
	}
	s.ranges = merged
}
