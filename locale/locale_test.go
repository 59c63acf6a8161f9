package locale

import (
	"errors"
	"testing"
	"unicode/utf16"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

func TestLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uscan.locale")
	defer teardown()
	req := require.New(t)

	b, err := Lookup("")
	req.NoError(err)
	req.Equal("en", b.String())

	b, err = Lookup("de_CH")
	req.NoError(err)
	req.Equal("de-CH", b.String())
	req.Equal('’', b.Symbols.Group)

	b, err = Lookup("de-AT")
	req.NoError(err)
	req.Equal("de", b.String())

	b, err = Lookup("fr-FR")
	req.NoError(err)
	req.Equal(',', b.Symbols.Decimal)

	_, err = Lookup("zh")
	req.True(errors.Is(err, ErrUnknownLocale))
	_, err = Lookup("not a tag")
	req.True(errors.Is(err, ErrUnknownLocale))

	req.Contains(Locales(), "en")
}

func TestParseDecimal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uscan.locale")
	defer teardown()

	en, _ := Default().NumberFormat(StyleDecimal)
	de, _ := mustLookup(t, "de").NumberFormat(StyleDecimal)
	for _, tc := range []struct {
		format   *NumberFormat
		input    string
		value    float64
		consumed int
	}{
		{en, "3.25 rest", 3.25, 4},
		{en, "-12", -12, 3},
		{en, "+7x", 7, 2},
		{en, "1,234.5", 1234.5, 7},
		{en, ".5", 0.5, 2},
		{en, "5.", 5, 1},
		{en, "1,", 1, 1},
		{en, "1e5", 1, 1},
		{en, "-", 0, 0},
		{en, "abc", 0, 0},
		{de, "1.234,5", 1234.5, 7},
		{de, "3.250", 3250, 5},
		{de, "3.25", 3, 1},
		{en, "1,234,567", 1234567, 9},
		{en, "10,20", 10, 2},
		{en, "1,2345", 1, 1},
	} {
		v, n := tc.format.ParseDouble(units(tc.input))
		require.Equal(t, tc.consumed, n, "consumed of %q", tc.input)
		require.InDelta(t, tc.value, v, 1e-9, "value of %q", tc.input)
	}
}

func TestParseScientific(t *testing.T) {
	req := require.New(t)
	sci, ok := Default().NumberFormat(StyleScientific)
	req.True(ok)

	v, n := sci.ParseDouble(units("1.5E3"))
	req.Equal(5, n)
	req.InDelta(1500.0, v, 1e-9)

	v, n = sci.ParseDouble(units("2e-2"))
	req.Equal(4, n)
	req.InDelta(0.02, v, 1e-12)

	// an exponent marker without digits is not part of the number
	v, n = sci.ParseDouble(units("4E+x"))
	req.Equal(1, n)
	req.InDelta(4.0, v, 1e-9)
}

func TestParsePercent(t *testing.T) {
	req := require.New(t)
	pct, _ := Default().NumberFormat(StylePercent)

	v, n := pct.ParseDouble(units("50%"))
	req.Equal(3, n)
	req.InDelta(0.5, v, 1e-12)

	v, n = pct.ParseDouble(units("%25"))
	req.Equal(3, n)
	req.InDelta(0.25, v, 1e-12)

	v, n = pct.ParseDouble(units("12 %"))
	req.Equal(2, n)
	req.InDelta(0.12, v, 1e-12)

	_, n = pct.ParseDouble(units("%"))
	req.Equal(0, n)
}

func TestParseSpellout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uscan.locale")
	defer teardown()

	sp, ok := Default().NumberFormat(StyleSpellout)
	require.True(t, ok)
	for _, tc := range []struct {
		input    string
		value    float64
		consumed int
	}{
		{"forty-two", 42, 9},
		{"Seven apples", 7, 5},
		{"one hundred twenty three", 123, 24},
		{"two thousand five hundred", 2500, 25},
		{"minus three", -3, 11},
		{"three point one four", 3.14, 20},
		{"nine point", 9, 4},
		{"zero", 0, 4},
		{"minus", 0, 0},
		{"apples", 0, 0},
	} {
		v, n := sp.ParseDouble(units(tc.input))
		require.Equal(t, tc.consumed, n, "consumed of %q", tc.input)
		require.InDelta(t, tc.value, v, 1e-9, "value of %q", tc.input)
	}

	_, ok = mustLookup(t, "fr").NumberFormat(StyleSpellout)
	require.False(t, ok)
}

func TestParseInt64(t *testing.T) {
	req := require.New(t)
	f, _ := Default().NumberFormat(StyleDecimal)

	v, n := f.ParseInt64(units("12345"))
	req.Equal(int64(12345), v)
	req.Equal(5, n)

	v, n = f.ParseInt64(units("-1,000.75"))
	req.Equal(int64(-1000), v)
	req.Equal(6, n)

	v, n = f.ParseInt64(units("10,20"))
	req.Equal(int64(10), v)
	req.Equal(2, n)

	_, n = f.ParseInt64(units("x1"))
	req.Equal(0, n)

	// 2^64 + 5 wraps to 5
	v, _ = f.ParseInt64(units("18446744073709551621"))
	req.Equal(int64(5), v)
}

func TestDigitsToUint64(t *testing.T) {
	req := require.New(t)
	v, n := DigitsToUint64(units("ff zz"), 16)
	req.Equal(uint64(255), v)
	req.Equal(2, n)

	v, n = DigitsToUint64(units("778"), 8)
	req.Equal(uint64(63), v)
	req.Equal(2, n)

	v, n = DigitsToUint64(units("Zz"), 36)
	req.Equal(uint64(35*36+35), v)
	req.Equal(2, n)

	_, n = DigitsToUint64(units("g"), 16)
	req.Equal(0, n)
}

func TestStyleString(t *testing.T) {
	require.Equal(t, "scientific", StyleScientific.String())
	require.Equal(t, "unknown", Style(42).String())
}

func mustLookup(t *testing.T, name string) *Bundle {
	t.Helper()
	b, err := Lookup(name)
	require.NoError(t, err)
	return b
}
