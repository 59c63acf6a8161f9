package ast

import (
	"fmt"

	"github.com/rgolang/uscan/lex"
	"github.com/rgolang/uscan/scan"
	"github.com/rgolang/uscan/uset"
)

// Parser compiles a template into nodes, following the same rules the scan driver applies while
// scanning.
type Parser struct {
	lex *lex.Scanner
}

type Node interface {
	Span() (int, int)
}

type Literal struct {
	*lex.Token
	Text string
}

type Directive struct {
	*lex.Token
	Spec     lex.Spec
	Family   scan.Family // empty if the letter has no handler
	Category scan.Category
	Pattern  string // scan-sets only
}

func (l *Literal) Span() (int, int) {
	return l.Pos, l.End()
}

// Span covers the directive and its scan-set pattern.
func (d *Directive) Span() (int, int) {
	return d.Pos, d.End() + max(len([]rune(d.Pattern))-1, 0)
}

// Known reports whether the directive has a handler. Scanning skips unknown directives.
func (d *Directive) Known() bool {
	return d.Family != ""
}

// Binds reports whether the directive takes an argument.
func (d *Directive) Binds() bool {
	return d.Known() && !d.Spec.SkipArg && d.Category != scan.CategoryNone
}

func New(scanner *lex.Scanner) *Parser {
	return &Parser{
		lex: scanner,
	}
}

// Parse compiles a template.
func Parse(template string) ([]Node, error) {
	return New(lex.New(template)).Parse()
}

func (p *Parser) Parse() ([]Node, error) {
	nodes := []Node{}
	for c := 0; ; c++ {
		tok := p.lex.NextToken()
		switch tok.Type {
		case lex.TokenEnd:
			return nodes, nil
		case lex.TokenLiteral:
			nodes = append(nodes, &Literal{Token: tok, Text: tok.Value})
		case lex.TokenDirective:
			d, err := p.handleDirective(tok)
			if err != nil {
				return nil, fmt.Errorf("[%v] failed to parse directive %q: %w", c, tok.Value, err)
			}
			nodes = append(nodes, d)
		default:
			return nil, fmt.Errorf("[%v] unexpected token %v", c, tok.Type)
		}
	}
}

func (p *Parser) handleDirective(tok *lex.Token) (*Directive, error) {
	d := &Directive{Token: tok, Spec: tok.Spec}
	entry, ok := scan.Lookup(tok.Spec.Letter)
	if !ok {
		return d, nil
	}
	d.Family, d.Category = entry.Family, entry.Category
	if entry.Family != scan.FamilyScanSet {
		return d, nil
	}
	// the pattern starts with the '[' letter itself
	start := tok.End() - 1
	tail := p.lex.Template()[start:]
	_, n, err := uset.Compile(tail)
	if err != nil {
		return nil, err
	}
	d.Pattern = string(tail[:n])
	p.lex.Reset(start + n)
	return d, nil
}

// Bindings returns the directives that take an argument, in argument order.
func Bindings(nodes []Node) []*Directive {
	var bindings []*Directive
	for _, n := range nodes {
		if d, ok := n.(*Directive); ok && d.Binds() {
			bindings = append(bindings, d)
		}
	}
	return bindings
}
