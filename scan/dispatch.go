package scan

import "github.com/rgolang/uscan/lex"

// Category tells what kind of argument a directive binds.
type Category int

const (
	CategoryNone Category = iota
	CategoryChar
	CategoryUChar
	CategoryInt
	CategoryString
	CategoryUString
	CategoryPointer
	CategoryDouble
	CategoryCount
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryChar:
		return "char"
	case CategoryUChar:
		return "uchar"
	case CategoryInt:
		return "int"
	case CategoryString:
		return "string"
	case CategoryUString:
		return "ustring"
	case CategoryPointer:
		return "pointer"
	case CategoryDouble:
		return "double"
	case CategoryCount:
		return "count"
	}
	return "unknown"
}

// Family names the handler a directive letter is served by.
type Family string

const (
	FamilyLiteralPercent Family = "literal-percent"
	FamilyString         Family = "string"
	FamilyUString        Family = "ustring"
	FamilyChar           Family = "char"
	FamilyUChar          Family = "uchar"
	FamilyCount          Family = "count"
	FamilyDouble         Family = "double"
	FamilyScientific     Family = "scientific"
	FamilySciDbl         Family = "scidbl"
	FamilyPercent        Family = "percent"
	FamilySpellout       Family = "spellout"
	FamilyInt            Family = "int"
	FamilyUInt           Family = "uint"
	FamilyHex            Family = "hex"
	FamilyOctal          Family = "octal"
	FamilyPointer        Family = "pointer"
	FamilyScanSet        Family = "scanset"
)

// handler reads one directive's input. tail is the template from the directive letter on. It
// returns -1 to stop the scan, otherwise the number of arguments bound, and the number of template
// characters it consumed behind the letter.
type handler func(st *state, spec lex.Spec, arg any, tail []rune) (int, int)

// Entry is one slot of the dispatch table.
type Entry struct {
	Category Category
	Family   Family
	handler  handler
}

const (
	tableBase = 0x20
	tableSize = 96
)

// table covers the letters 0x20..0x7F. Slots left zero have no handler.
var table = [tableSize]Entry{
	'%' - tableBase: {CategoryNone, FamilyLiteralPercent, handleLiteralPercent},
	'C' - tableBase: {CategoryUChar, FamilyUChar, handleUChar},
	'E' - tableBase: {CategoryDouble, FamilyScientific, handleScientific},
	'G' - tableBase: {CategoryDouble, FamilySciDbl, handleSciDbl},
	'P' - tableBase: {CategoryDouble, FamilyPercent, handlePercent},
	'S' - tableBase: {CategoryUString, FamilyUString, handleUString},
	'V' - tableBase: {CategoryDouble, FamilySpellout, handleSpellout},
	'X' - tableBase: {CategoryInt, FamilyHex, handleHex},
	'[' - tableBase: {CategoryString, FamilyScanSet, handleScanSet},
	'c' - tableBase: {CategoryChar, FamilyChar, handleChar},
	'd' - tableBase: {CategoryInt, FamilyInt, handleInt},
	'e' - tableBase: {CategoryDouble, FamilyScientific, handleScientific},
	'f' - tableBase: {CategoryDouble, FamilyDouble, handleDouble},
	'g' - tableBase: {CategoryDouble, FamilySciDbl, handleSciDbl},
	'i' - tableBase: {CategoryInt, FamilyInt, handleInt},
	'n' - tableBase: {CategoryCount, FamilyCount, handleCount},
	'o' - tableBase: {CategoryInt, FamilyOctal, handleOctal},
	'p' - tableBase: {CategoryPointer, FamilyPointer, handlePointer},
	's' - tableBase: {CategoryString, FamilyString, handleString},
	'u' - tableBase: {CategoryInt, FamilyUInt, handleUInt},
	'x' - tableBase: {CategoryInt, FamilyHex, handleHex},
}

// Lookup returns the table entry for a directive letter. It reports false for letters outside the
// table and for empty slots.
func Lookup(letter rune) (Entry, bool) {
	i := letter - tableBase
	if i < 0 || i >= tableSize {
		return Entry{}, false
	}
	e := table[i]
	return e, e.handler != nil
}

// Letters lists the letters that have a handler, in table order.
func Letters() []rune {
	var letters []rune
	for i, e := range table {
		if e.handler != nil {
			letters = append(letters, rune(i+tableBase))
		}
	}
	return letters
}

// accepts reports whether arg is a slot a directive of this entry can bind to.
func (e Entry) accepts(spec lex.Spec, arg any) bool {
	integer := e.Family == FamilyInt || e.Family == FamilyHex || e.Family == FamilyOctal
	switch p := arg.(type) {
	case *string:
		return p != nil && (e.Family == FamilyString || e.Family == FamilyUString || e.Family == FamilyScanSet)
	case *[]byte:
		return p != nil && e.Family == FamilyString
	case *[]uint16:
		return p != nil && (e.Family == FamilyUString || e.Family == FamilyScanSet)
	case *byte:
		return p != nil && e.Family == FamilyChar
	case *uint16:
		return p != nil && e.Family == FamilyUChar
	case *int16:
		return p != nil && integer && spec.Length == lex.LengthShort
	case *int32:
		return p != nil && (e.Family == FamilyCount ||
			integer && spec.Length != lex.LengthShort && spec.Length != lex.LengthLongLong)
	case *int64:
		return p != nil && integer && spec.Length == lex.LengthLongLong
	case *int:
		return p != nil && (integer || e.Family == FamilyCount)
	case *uint32:
		return p != nil && e.Family == FamilyUInt
	case *uintptr:
		return p != nil && e.Family == FamilyPointer
	case *float64:
		return p != nil && e.Category == CategoryDouble
	case *float32:
		return p != nil && e.Category == CategoryDouble
	}
	return false
}
