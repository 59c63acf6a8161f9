package locale

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/rgolang/uscan/omap"
)

var ErrUnknownLocale = errors.New("unknown locale")

// Symbols are the characters a locale writes numbers with.
type Symbols struct {
	Decimal  rune
	Group    rune
	Minus    rune
	Plus     rune
	Percent  rune
	Exponent rune
}

// Bundle holds what a locale needs for parsing numbers.
type Bundle struct {
	Tag     language.Tag
	Symbols Symbols
	words   *spellout
}

var (
	registry = omap.New[string, *Bundle]()
	matcher  language.Matcher
)

func init() {
	western := Symbols{Decimal: '.', Group: ',', Minus: '-', Plus: '+', Percent: '%', Exponent: 'E'}
	register(&Bundle{Tag: language.English, Symbols: western, words: englishWords})
	register(&Bundle{Tag: language.German, Symbols: Symbols{Decimal: ',', Group: '.', Minus: '-', Plus: '+', Percent: '%', Exponent: 'E'}})
	register(&Bundle{Tag: language.French, Symbols: Symbols{Decimal: ',', Group: '\u202f', Minus: '-', Plus: '+', Percent: '%', Exponent: 'E'}})
	register(&Bundle{Tag: language.MustParse("de-CH"), Symbols: Symbols{Decimal: '.', Group: '’', Minus: '-', Plus: '+', Percent: '%', Exponent: 'E'}})
	register(&Bundle{Tag: language.Italian, Symbols: Symbols{Decimal: ',', Group: '.', Minus: '-', Plus: '+', Percent: '%', Exponent: 'E'}})
	register(&Bundle{Tag: language.Japanese, Symbols: western})
}

func register(b *Bundle) {
	registry.Set(b.Tag.String(), b)
	tags := make([]language.Tag, 0, registry.Len())
	for _, rb := range registry.Values() {
		tags = append(tags, rb.Tag)
	}
	matcher = language.NewMatcher(tags)
}

// Default is the English bundle.
func Default() *Bundle {
	b, _ := registry.Get(language.English.String())
	return b
}

// Lookup finds the bundle that serves a locale name like "de", "de_CH" or "fr-FR". The empty name
// is the default bundle.
func Lookup(name string) (*Bundle, error) {
	if name == "" {
		return Default(), nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownLocale, name, err)
	}
	_, i, conf := matcher.Match(tag)
	if conf == language.No {
		return nil, fmt.Errorf("%w %q", ErrUnknownLocale, name)
	}
	_, b := registry.At(i)
	tracer().Debugf("locale %s served by bundle %s (%s)", tag, b.Tag, conf)
	return b, nil
}

// Locales lists the tags of all bundles.
func Locales() []string {
	return registry.Keys()
}

func (b *Bundle) String() string {
	return b.Tag.String()
}
