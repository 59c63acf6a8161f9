package scan

import (
	"unicode/utf16"

	"golang.org/x/text/encoding"

	"github.com/rgolang/uscan/lex"
	"github.com/rgolang/uscan/locale"
	"github.com/rgolang/uscan/reader"
	"github.com/rgolang/uscan/uset"
)

const hardStop = -1

// state is what handlers share during one scan.
type state struct {
	in     *reader.Stream
	bundle *locale.Bundle
	narrow encoding.Encoding
}

// bound is what a handler returns after a successful read: one binding unless the directive skips
// its argument.
func bound(spec lex.Spec) int {
	if spec.SkipArg {
		return 0
	}
	return 1
}

// skipLeadingWS consumes pad and whitespace units and returns how many there were.
func (st *state) skipLeadingWS(pad uint16) int {
	count := 0
	for {
		u, ok := st.in.ReadUnit()
		if !ok {
			return count
		}
		if u != pad && !isWhitespace(rune(u)) {
			st.in.PushBack(rune(u))
			return count
		}
		count++
	}
}

// span fills the window and returns its unread units, cut to the directive's width.
func (st *state) span(spec lex.Spec) []uint16 {
	st.in.EnsureFilled()
	win := st.in.Window()
	if spec.Width != -1 && spec.Width < len(win) {
		win = win[:spec.Width]
	}
	return win
}

func handleLiteralPercent(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	if u, ok := st.in.ReadUnit(); !ok || u != '%' {
		return hardStop, 0
	}
	return 0, 0
}

// readToken reads units up to pad, whitespace or the width. The unit that ended the token is
// pushed back.
func (st *state) readToken(spec lex.Spec) []uint16 {
	st.skipLeadingWS(spec.PadChar)
	var token []uint16
	for {
		u, ok := st.in.ReadUnit()
		if !ok {
			break
		}
		if u == spec.PadChar || isWhitespace(rune(u)) || (spec.Width != -1 && len(token) >= spec.Width) {
			st.in.PushBack(rune(u))
			break
		}
		token = append(token, u)
	}
	return token
}

func handleString(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	token := st.readToken(spec)
	if spec.SkipArg {
		return 0, 0
	}
	narrow, err := st.narrow.NewEncoder().Bytes([]byte(string(utf16.Decode(token))))
	if err != nil {
		tracer().Errorf("%s: converting %q to narrow charset: %v", spec, string(utf16.Decode(token)), err)
		return hardStop, 0
	}
	switch p := arg.(type) {
	case *[]byte:
		*p = narrow
	case *string:
		*p = string(narrow)
	}
	return 1, 0
}

func handleUString(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	token := st.readToken(spec)
	if spec.SkipArg {
		return 0, 0
	}
	storeUnits(arg, token)
	return 1, 0
}

func storeUnits(arg any, units []uint16) {
	switch p := arg.(type) {
	case *[]uint16:
		*p = units
	case *string:
		*p = string(utf16.Decode(units))
	}
}

// handleChar reads one unit whatever the width says.
func handleChar(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	st.skipLeadingWS(spec.PadChar)
	u, ok := st.in.ReadUnit()
	if !ok {
		return hardStop, 0
	}
	if spec.SkipArg {
		return 0, 0
	}
	enc := encoding.ReplaceUnsupported(st.narrow.NewEncoder())
	narrow, err := enc.Bytes([]byte(string(rune(u))))
	if err != nil || len(narrow) == 0 {
		narrow = []byte{'?'}
	}
	if p, ok := arg.(*byte); ok {
		*p = narrow[0]
	}
	return 1, 0
}

func handleUChar(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	st.skipLeadingWS(spec.PadChar)
	u, ok := st.in.ReadUnit()
	if !ok {
		return hardStop, 0
	}
	if spec.SkipArg {
		return 0, 0
	}
	if p, ok := arg.(*uint16); ok {
		*p = u
	}
	return 1, 0
}

// handleCount stores the conversions so far, which the driver passes in the width.
func handleCount(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	if spec.SkipArg {
		return 0, 0
	}
	switch p := arg.(type) {
	case *int:
		*p = spec.Width
	case *int32:
		*p = int32(spec.Width)
	}
	return 0, 0
}

// parseFloat parses the bounded span with each style in turn and keeps the parse that consumed
// most, the earlier style winning ties. It reports false if a style has no format in the bundle.
func (st *state) parseFloat(spec lex.Spec, styles ...locale.Style) (float64, bool) {
	st.skipLeadingWS(spec.PadChar)
	win := st.span(spec)
	formats := make([]*locale.NumberFormat, 0, len(styles))
	for _, style := range styles {
		f, ok := st.bundle.NumberFormat(style)
		if !ok {
			tracer().Infof("%s: no %s format in locale %s", spec, style, st.bundle)
			return 0, false
		}
		formats = append(formats, f)
	}
	best, consumed := 0.0, -1
	for _, f := range formats {
		v, n := f.ParseDouble(win)
		if n > consumed {
			best, consumed = v, n
		}
	}
	st.in.Advance(consumed)
	return best, true
}

func (st *state) bindFloat(spec lex.Spec, arg any, styles ...locale.Style) int {
	v, ok := st.parseFloat(spec, styles...)
	if !ok {
		return 0
	}
	if spec.SkipArg {
		return 0
	}
	switch p := arg.(type) {
	case *float64:
		*p = v
	case *float32:
		*p = float32(v)
	}
	return 1
}

func handleDouble(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	return st.bindFloat(spec, arg, locale.StyleDecimal), 0
}

func handleScientific(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	return st.bindFloat(spec, arg, locale.StyleScientific), 0
}

func handleSciDbl(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	return st.bindFloat(spec, arg, locale.StyleDecimal, locale.StyleScientific), 0
}

func handlePercent(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	return st.bindFloat(spec, arg, locale.StylePercent), 0
}

func handleSpellout(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	return st.bindFloat(spec, arg, locale.StyleSpellout), 0
}

// handleUInt reads a decimal number and truncates it to 32 bits.
func handleUInt(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	var d float64
	n := st.bindFloat(spec, &d, locale.StyleDecimal)
	if n == 1 {
		if p, ok := arg.(*uint32); ok {
			*p = uint32(int64(d))
		}
	}
	return n, 0
}

func handleInt(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	st.skipLeadingWS(spec.PadChar)
	win := st.span(spec)
	f, _ := st.bundle.NumberFormat(locale.StyleDecimal)
	v, n := f.ParseInt64(win)
	st.in.Advance(n)
	if spec.SkipArg {
		return 0, 0
	}
	storeInt(arg, spec.Length, v)
	return 1, 0
}

func handleHex(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	st.skipLeadingWS(spec.PadChar)
	win := st.span(spec)
	if len(win) >= 2 && win[0] == '0' && (win[1] == 'x' || win[1] == 'X') {
		st.in.Advance(2)
		win = win[2:]
	}
	return bindRadix(st, spec, arg, win, 16), 0
}

func handleOctal(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	st.skipLeadingWS(spec.PadChar)
	return bindRadix(st, spec, arg, st.span(spec), 8), 0
}

func bindRadix(st *state, spec lex.Spec, arg any, win []uint16, radix int) int {
	v, n := locale.DigitsToUint64(win, radix)
	st.in.Advance(n)
	if spec.SkipArg {
		return 0
	}
	storeInt(arg, spec.Length, int64(v))
	return 1
}

func handlePointer(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	st.skipLeadingWS(spec.PadChar)
	v, n := locale.DigitsToUint64(st.span(spec), 16)
	st.in.Advance(n)
	if spec.SkipArg {
		return 0, 0
	}
	if p, ok := arg.(*uintptr); ok {
		*p = uintptr(v)
	}
	return 1, 0
}

// narrowInt masks v to the storage size of the length modifier and sign-extends the result.
func narrowInt(length lex.Length, v int64) int64 {
	switch length {
	case lex.LengthShort:
		return int64(int16(uint16(v & 0xFFFF)))
	case lex.LengthLongLong:
		return v
	}
	return int64(int32(uint32(v & 0xFFFFFFFF)))
}

func storeInt(arg any, length lex.Length, v int64) {
	v = narrowInt(length, v)
	switch p := arg.(type) {
	case *int16:
		*p = int16(v)
	case *int32:
		*p = int32(v)
	case *int64:
		*p = v
	case *int:
		*p = int(v)
	}
}

// handleScanSet reads codepoints of the set pattern that follows the letter in the template. The
// width bounds the number of units read.
func handleScanSet(st *state, spec lex.Spec, arg any, tail []rune) (int, int) {
	st.in.EnsureFilled()
	limit := st.in.Len()
	if spec.Width != -1 {
		limit = min(limit, spec.Width)
	}
	set, n, err := uset.Compile(tail)
	if err != nil {
		tracer().Errorf("%s: %v", spec, err)
		return hardStop, 0
	}
	var out []uint16
	for len(out) < limit {
		r, ok := st.in.ReadCodepoint()
		if !ok {
			break
		}
		if !set.Contains(r) || len(out)+utf16.RuneLen(r) > limit {
			st.in.PushBack(r)
			break
		}
		out = utf16.AppendRune(out, r)
	}
	if len(out) == 0 {
		tracer().Debugf("%s: nothing of %s at offset %d", spec, set, st.in.Info().Offset)
		return hardStop, n - 1
	}
	if spec.SkipArg {
		return 0, n - 1
	}
	storeUnits(arg, out)
	return 1, n - 1
}
