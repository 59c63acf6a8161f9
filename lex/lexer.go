package lex

type TokenType int

const (
	TokenEnd TokenType = iota
	TokenLiteral
	TokenDirective
)

func (t TokenType) String() string {
	switch t {
	case TokenEnd:
		return "END"
	case TokenLiteral:
		return "LITERAL"
	case TokenDirective:
		return "DIRECTIVE"
	}
	return "UNKNOWN"
}

// Token is a literal run or one directive of a template.
type Token struct {
	Type  TokenType
	Pos   int    // template index of the first character
	Len   int    // template characters covered
	Value string // the template text of the token
	Spec  Spec   // directives only
}

// End is the template index right behind the token.
func (t Token) End() int {
	return t.Pos + t.Len
}

// Scanner splits a template into literal runs and directives, one token ahead.
type Scanner struct {
	Index    int
	Token    *Token
	template []rune
}

func New(template string) *Scanner {
	s := &Scanner{template: []rune(template)}
	s.Token = s.lex()
	return s
}

// Template is the template the scanner works on, as characters.
func (s *Scanner) Template() []rune {
	return s.template
}

// NextToken returns the current token and lexes the one after it.
func (s *Scanner) NextToken() *Token {
	token := s.Token
	s.Token = s.lex()
	return token
}

// Reset moves the scanner to template index i, for callers that consumed template text on their own.
func (s *Scanner) Reset(i int) {
	s.Index = min(max(i, 0), len(s.template))
	s.Token = s.lex()
}

func (s *Scanner) lex() *Token {
	start := s.Index
	if start >= len(s.template) {
		return &Token{Type: TokenEnd, Pos: start}
	}
	if s.template[start] == '%' {
		spec, n := ParseSpec(s.template, start)
		end := min(start+n, len(s.template))
		s.Index = end
		tracer().Debugf("directive %s at %d", spec, start)
		return &Token{Type: TokenDirective, Pos: start, Len: end - start, Value: string(s.template[start:end]), Spec: spec}
	}
	i := start
	for i < len(s.template) && s.template[i] != '%' {
		i++
	}
	s.Index = i
	return &Token{Type: TokenLiteral, Pos: start, Len: i - start, Value: string(s.template[start:i])}
}
