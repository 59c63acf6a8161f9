package libcutils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rgolang/uscan/ast"
	"github.com/rgolang/uscan/lex"
	"github.com/rgolang/uscan/scan"
)

var ErrUnsupported = errors.New("no libc scanf equivalent")

// ScanfSpecifier represents the components of a scanf format specifier
type ScanfSpecifier struct {
	Original  string // The original specifier string
	Assign    bool   // false for '*'
	Width     string // Maximum field width
	Length    string // Length modifier: 'hh', 'h', 'l', 'll', 'L', 'j', 'z', 't'
	Specifier string // Conversion specifier, or the bracketed set of '%['
}

var scanfRe = regexp.MustCompile(`%(\*)?(\d+)?(hh|h|ll|l|L|j|z|t)?([diouxXaAeEfFgGcspn%]|\[\^?\]?[^\]]*\])`)

// ParseScanfFmt parses a libc scanf format string.
func ParseScanfFmt(fmtStr string) []ScanfSpecifier {
	matches := scanfRe.FindAllStringSubmatch(fmtStr, -1)
	specifiers := make([]ScanfSpecifier, 0, len(matches))
	for _, match := range matches {
		specifiers = append(specifiers, ScanfSpecifier{
			Original:  match[0],
			Assign:    match[1] == "",
			Width:     match[2],
			Length:    match[3],
			Specifier: match[4],
		})
	}
	return specifiers
}

// Translate renders a directive as a libc scanf directive. Directives without a handler translate
// to nothing, as scanning skips them.
func Translate(d *ast.Directive) (string, error) {
	if !d.Known() {
		return "", nil
	}
	spec := d.Spec
	if spec.PadChar != lex.DefaultPad {
		return "", fmt.Errorf("%w: pad character in %s", ErrUnsupported, d.Value)
	}
	var b strings.Builder
	switch d.Family {
	case scan.FamilyLiteralPercent:
		return "%%", nil
	case scan.FamilyUChar, scan.FamilyUString, scan.FamilyPercent, scan.FamilySpellout:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, d.Value)
	case scan.FamilyChar:
		// libc %c does not skip white space
		b.WriteByte(' ')
	}
	b.WriteByte('%')
	if spec.SkipArg {
		b.WriteByte('*')
	}
	if spec.Width != -1 && d.Family != scan.FamilyChar && d.Family != scan.FamilyCount {
		b.WriteString(strconv.Itoa(spec.Width))
	}
	switch {
	case d.Category == scan.CategoryDouble:
		b.WriteByte('l')
	case d.Family == scan.FamilyInt || d.Family == scan.FamilyHex || d.Family == scan.FamilyOctal:
		switch spec.Length {
		case lex.LengthShort:
			b.WriteByte('h')
		case lex.LengthLongLong:
			b.WriteString("ll")
		}
	}
	if d.Family == scan.FamilyScanSet {
		body := d.Pattern[1 : len(d.Pattern)-1]
		if strings.ContainsAny(body, `\[:`) {
			return "", fmt.Errorf("%w: set pattern %s", ErrUnsupported, d.Pattern)
		}
		b.WriteString(d.Pattern)
		return b.String(), nil
	}
	letter := spec.Letter
	if letter == 'i' {
		// libc %i takes the base from a 0 or 0x prefix; the engine reads decimal
		letter = 'd'
	}
	b.WriteRune(letter)
	return b.String(), nil
}

// ScanfFormat translates compiled template nodes into a scanf format and returns it with the
// directives that take an argument, in argument order.
func ScanfFormat(nodes []ast.Node) (string, []*ast.Directive, error) {
	var b strings.Builder
	for _, n := range nodes {
		switch n := n.(type) {
		case *ast.Literal:
			b.WriteString(n.Text)
		case *ast.Directive:
			s, err := Translate(n)
			if err != nil {
				return "", nil, err
			}
			b.WriteString(s)
		}
	}
	format := b.String()
	bindings := ast.Bindings(nodes)
	assigned := 0
	for _, s := range ParseScanfFmt(format) {
		if s.Assign && s.Specifier != "%" {
			assigned++
		}
	}
	if assigned != len(bindings) {
		return "", nil, fmt.Errorf("scanf format %q assigns %d arguments, template binds %d", format, assigned, len(bindings))
	}
	return format, bindings, nil
}
