package lex

import (
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uscan.lex")
	defer teardown()

	for _, tc := range []struct {
		name     string
		template string
		consumed int
		want     Spec
	}{
		{
			name:     "bare letter",
			template: "%d",
			consumed: 2,
			want:     Spec{ArgPos: -1, Width: -1, PadChar: ' ', Letter: 'd'},
		},
		{
			name:     "width and short",
			template: "%12hd",
			consumed: 5,
			want:     Spec{ArgPos: -1, Width: 12, PadChar: ' ', Length: LengthShort, Letter: 'd'},
		},
		{
			name:     "positional prefix",
			template: "%2$s",
			consumed: 4,
			want:     Spec{ArgPos: 2, Width: -1, PadChar: ' ', Letter: 's'},
		},
		{
			name:     "digits without dollar are the width",
			template: "%25x",
			consumed: 4,
			want:     Spec{ArgPos: -1, Width: 25, PadChar: ' ', Letter: 'x'},
		},
		{
			name:     "positional prefix and width",
			template: "%1$3d",
			consumed: 5,
			want:     Spec{ArgPos: 1, Width: 3, PadChar: ' ', Letter: 'd'},
		},
		{
			name:     "skip flag",
			template: "%*s",
			consumed: 3,
			want:     Spec{ArgPos: -1, SkipArg: true, Width: -1, PadChar: ' ', Letter: 's'},
		},
		{
			name:     "pad escape",
			template: "%(0041)s",
			consumed: 8,
			want:     Spec{ArgPos: -1, Width: -1, PadChar: 'A', Letter: 's'},
		},
		{
			name:     "pad escape with any terminator",
			template: "%(002d]5S",
			consumed: 9,
			want:     Spec{ArgPos: -1, Width: 5, PadChar: '-', Letter: 'S'},
		},
		{
			name:     "malformed hex digits count as zero",
			template: "%(0?4!xs",
			consumed: 8,
			want:     Spec{ArgPos: -1, Width: -1, PadChar: 0x0040, Letter: 's'},
		},
		{
			name:     "flags in any order",
			template: "%(0023)*d",
			consumed: 9,
			want:     Spec{ArgPos: -1, SkipArg: true, Width: -1, PadChar: '#', Letter: 'd'},
		},
		{
			name:     "long",
			template: "%ld",
			consumed: 3,
			want:     Spec{ArgPos: -1, Width: -1, PadChar: ' ', Length: LengthLong, Letter: 'd'},
		},
		{
			name:     "long long",
			template: "%3lld",
			consumed: 5,
			want:     Spec{ArgPos: -1, Width: 3, PadChar: ' ', Length: LengthLongLong, Letter: 'd'},
		},
		{
			name:     "long double",
			template: "%Lf",
			consumed: 3,
			want:     Spec{ArgPos: -1, Width: -1, PadChar: ' ', Length: LengthLongDouble, Letter: 'f'},
		},
		{
			name:     "unknown letter is taken as is",
			template: "%z",
			consumed: 2,
			want:     Spec{ArgPos: -1, Width: -1, PadChar: ' ', Letter: 'z'},
		},
		{
			name:     "letter missing at end",
			template: "%5",
			consumed: 3,
			want:     Spec{ArgPos: -1, Width: 5, PadChar: ' ', Letter: 0},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			spec, n := ParseSpec([]rune(tc.template), 0)
			req.Equal(tc.consumed, n, fmt.Sprintf("consumed of %q", tc.template))
			req.Equal(tc.want, spec)
		})
	}
}

func TestParseSpecIsPure(t *testing.T) {
	template := []rune("ab%3$*(0041)12llxcd")
	spec, n := ParseSpec(template, 2)
	req := require.New(t)
	req.Equal(15, n)

	again, m := ParseSpec(template[2:2+n], 0)
	req.Equal(n, m)
	req.Equal(spec, again)
	req.Equal(3, spec.ArgPos)
	req.True(spec.SkipArg)
	req.Equal(12, spec.Width)
	req.Equal(uint16('A'), spec.PadChar)
	req.Equal(LengthLongLong, spec.Length)
	req.Equal('x', spec.Letter)
}

func TestSpecString(t *testing.T) {
	for _, template := range []string{"%d", "%2$s", "%*5hx", "%(0041)s", "%1$*(002D)10lld", "%Lf"} {
		spec, _ := ParseSpec([]rune(template), 0)
		require.Equal(t, template, spec.String())
	}
}

func TestDigitValue(t *testing.T) {
	req := require.New(t)
	req.Equal(0, DigitValue('0'))
	req.Equal(9, DigitValue('9'))
	req.Equal(10, DigitValue('a'))
	req.Equal(15, DigitValue('F'))
	req.Equal(35, DigitValue('z'))
	req.Equal(0, DigitValue('?'))
	req.Equal(0, DigitValue('ä'))
}

func TestScannerTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uscan.lex")
	defer teardown()
	req := require.New(t)

	s := New("x=%d, y=%*5s%%")
	var types []TokenType
	var values []string
	for s.Token.Type != TokenEnd {
		tok := s.NextToken()
		types = append(types, tok.Type)
		values = append(values, tok.Value)
	}
	req.Equal([]TokenType{TokenLiteral, TokenDirective, TokenLiteral, TokenDirective, TokenDirective}, types)
	req.Equal([]string{"x=", "%d", ", y=", "%*5s", "%%"}, values)
	req.Equal(TokenEnd, s.NextToken().Type)
}

func TestScannerPositions(t *testing.T) {
	req := require.New(t)
	s := New("ab%[a-z]cd")
	tok := s.NextToken()
	req.Equal(TokenLiteral, tok.Type)
	req.Equal(0, tok.Pos)
	req.Equal(2, tok.End())

	tok = s.NextToken()
	req.Equal(TokenDirective, tok.Type)
	req.Equal('[', tok.Spec.Letter)
	req.Equal(4, tok.End())

	// the caller consumed the set pattern "a-z]" on its own
	s.Reset(tok.End() + 4)
	tok = s.NextToken()
	req.Equal(TokenLiteral, tok.Type)
	req.Equal("cd", tok.Value)
	req.Equal(TokenEnd, s.Token.Type)
}

func TestScannerTruncatedDirective(t *testing.T) {
	req := require.New(t)
	s := New("a%(00")
	s.NextToken()
	tok := s.NextToken()
	req.Equal(TokenDirective, tok.Type)
	req.Equal(5, tok.End(), "directive span is clamped to the template")
	req.Equal(TokenEnd, s.Token.Type)
}
