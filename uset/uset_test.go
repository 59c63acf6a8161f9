package uset

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uscan.uset")
	defer teardown()

	for _, tc := range []struct {
		pattern string
		span    int
		in      string
		out     string
	}{
		{"[a-z]", 5, "amz", "A0-"},
		{"[^0-9]rest", 6, "a -", "05"},
		{"[[:Greek:]]", 11, "αΩ", "a1"},
		{"[:Lu:]xyz", 6, "AÄ", "a1"},
		{"[:^Lu:]", 7, "a1", "AZ"},
		{"[[:digit:]x]", 12, "09x", "ay"},
		{"[:alpha:]", 9, "aZ", "1 "},
		{`[\]a]`, 5, "]a", "b["},
		{"[x]", 3, "x", "yX"},
		{`[\p{Nd}]`, 8, "5٣", "x"},
	} {
		t.Run(tc.pattern, func(t *testing.T) {
			req := require.New(t)
			set, n, err := Compile([]rune(tc.pattern))
			req.NoError(err)
			req.Equal(tc.span, n)
			for _, r := range tc.in {
				req.True(set.Contains(r), "%q should contain %q", tc.pattern, r)
			}
			for _, r := range tc.out {
				req.False(set.Contains(r), "%q should not contain %q", tc.pattern, r)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	req := require.New(t)
	_, _, err := Compile([]rune("[a-z"))
	req.True(errors.Is(err, ErrPattern))
	_, _, err = Compile([]rune("abc"))
	req.True(errors.Is(err, ErrPattern))
	_, n, err := Compile([]rune("[z-a]s"))
	req.True(errors.Is(err, ErrPattern))
	req.Equal(5, n)
}

func TestExtent(t *testing.T) {
	req := require.New(t)
	req.Equal(7, Extent([]rune("[a[bc]]d")))
	req.Equal(4, Extent([]rune(`[\]]]`)))
	req.Equal(-1, Extent([]rune("[[a]")))
	req.Equal(-1, Extent(nil))
}

func TestContainsMergedRanges(t *testing.T) {
	req := require.New(t)
	set, _, err := Compile([]rune("[d-fa-ce]"))
	req.NoError(err)
	req.Equal([]rune{'a', 'f'}, set.ranges)
	req.Equal("[d-fa-ce]", set.String())
}
