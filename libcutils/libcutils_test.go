package libcutils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rgolang/uscan/ast"
)

func translate(t *testing.T, template string) (string, error) {
	t.Helper()
	nodes, err := ast.Parse(template)
	require.NoError(t, err)
	format, _, err := ScanfFormat(nodes)
	return format, err
}

func TestScanfFormat(t *testing.T) {
	for _, tc := range []struct {
		template string
		want     string
	}{
		{"x=%d %5s %*f %[a-z]%n", "x=%d %5s %*lf %[a-z]%n"},
		{"%hd %lld %ld %hx %llo", "%hd %lld %d %hx %llo"},
		{"%3c%g%e%u%p%%", " %c%lg%le%u%p%%"},
		{"%2$d%z!", "%d!"},
		{"%[^,],%5[0-9]", "%[^,],%5[0-9]"},
		{"%i %hi %*lli", "%d %hd %*lld"},
	} {
		got, err := translate(t, tc.template)
		require.NoError(t, err, tc.template)
		require.Equal(t, tc.want, got, tc.template)
	}
}

func TestUnsupported(t *testing.T) {
	for _, template := range []string{"%S", "%C", "%P", "%V", "%(002D)d", `%[\p{L}]`, "%[:Lu:]"} {
		_, err := translate(t, template)
		require.True(t, errors.Is(err, ErrUnsupported), template)
	}
}

func TestParseScanfFmt(t *testing.T) {
	req := require.New(t)
	specs := ParseScanfFmt("%*3lf and %[^a-c] %%")
	req.Len(specs, 3)
	req.False(specs[0].Assign)
	req.Equal("3", specs[0].Width)
	req.Equal("l", specs[0].Length)
	req.Equal("f", specs[0].Specifier)
	req.Equal("[^a-c]", specs[1].Specifier)
	req.Equal("%", specs[2].Specifier)
	req.Empty(ParseScanfFmt("no directives"))
}
