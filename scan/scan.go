package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rgolang/uscan/lex"
	"github.com/rgolang/uscan/locale"
	"github.com/rgolang/uscan/reader"
)

var ErrMissingArgument = errors.New("scan: missing argument")

// ArgumentError reports an argument a directive cannot bind to.
type ArgumentError struct {
	Directive string
	Index     int
	Arg       any
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("scan: argument %d of type %T cannot receive %s", e.Index, e.Arg, e.Directive)
}

// StopReason tells why a scan ended.
type StopReason int

const (
	StopEndOfTemplate StopReason = iota
	StopLiteralMismatch
	StopHandlerFailed
	StopArgument
)

func (r StopReason) String() string {
	switch r {
	case StopEndOfTemplate:
		return "end of template"
	case StopLiteralMismatch:
		return "literal mismatch"
	case StopHandlerFailed:
		return "handler failed"
	case StopArgument:
		return "argument"
	}
	return "unknown"
}

type Result struct {
	Count     int        // arguments bound
	Stop      StopReason // why the scan ended
	Directive string     // template text of the directive that stopped the scan, if any
	Consumed  int        // units read from the stream
}

type options struct {
	locale  string
	charset string
}

type Option func(*options)

// WithLocale selects the locale numbers are parsed in. The default is "en".
func WithLocale(name string) Option {
	return func(o *options) { o.locale = name }
}

// WithCharset selects the charset %s and %c convert to. The default is UTF-8.
func WithCharset(name string) Option {
	return func(o *options) { o.charset = name }
}

// Scanner scans one stream. It is not safe for concurrent use.
type Scanner struct {
	st *state
}

func New(in *reader.Stream, opts ...Option) (*Scanner, error) {
	o := options{locale: "en", charset: "utf-8"}
	for _, opt := range opts {
		opt(&o)
	}
	bundle, err := locale.Lookup(o.locale)
	if err != nil {
		return nil, err
	}
	narrow, err := reader.Charset(o.charset)
	if err != nil {
		return nil, err
	}
	return &Scanner{st: &state{in: in, bundle: bundle, narrow: narrow}}, nil
}

// Sscan scans input.
func Sscan(input string, template string, args ...any) (int, error) {
	s, err := New(reader.NewString(input))
	if err != nil {
		return 0, err
	}
	return s.Scan(template, args...)
}

// Fscan scans r, decoded as UTF-8. Input read ahead into the stream's window is lost afterwards;
// use a Scanner over one reader.Stream for consecutive scans.
func Fscan(r io.Reader, template string, args ...any) (int, error) {
	in, err := reader.New(r)
	if err != nil {
		return 0, err
	}
	s, err := New(in)
	if err != nil {
		return 0, err
	}
	return s.Scan(template, args...)
}

// Scan scans the stream with template and returns the number of arguments bound. The error is
// only set for arguments that are missing or of the wrong type; short input is not an error.
func (s *Scanner) Scan(template string, args ...any) (int, error) {
	res, err := s.ScanContext(context.Background(), template, args...)
	return res.Count, err
}

// ScanContext is Scan with a detailed result. ctx is handed to the lifecycle events.
func (s *Scanner) ScanContext(ctx context.Context, template string, args ...any) (Result, error) {
	start := time.Now()
	emitScanStart(ctx, template)
	offset := s.st.in.Info().Offset
	res, err := s.run([]rune(template), args)
	res.Consumed = s.st.in.Info().Offset - offset
	tracer().Debugf("scan %q: %d bound, stopped at %s", template, res.Count, res.Stop)
	emitScanComplete(ctx, template, res, time.Since(start), err)
	return res, err
}

func (s *Scanner) run(tmpl []rune, args []any) (Result, error) {
	var res Result
	next := 0 // argument cursor; n$ positions do not move it
	i := 0
	for {
		for i < len(tmpl) && tmpl[i] != '%' {
			r, ok := s.st.in.ReadCodepoint()
			if !ok {
				res.Stop = StopLiteralMismatch
				return res, nil
			}
			if r != tmpl[i] {
				s.st.in.PushBack(r)
				res.Stop = StopLiteralMismatch
				return res, nil
			}
			i++
		}
		if i >= len(tmpl) {
			res.Stop = StopEndOfTemplate
			return res, nil
		}

		spec, n := lex.ParseSpec(tmpl, i)
		end := min(i+n, len(tmpl))
		directive := string(tmpl[i:end])
		entry, ok := Lookup(spec.Letter)
		if !ok {
			tracer().Debugf("no handler for %q, skipped", directive)
			i = end
			continue
		}

		var arg any
		if !spec.SkipArg && entry.Category != CategoryNone {
			if next >= len(args) {
				res.Stop, res.Directive = StopArgument, directive
				return res, fmt.Errorf("%w for %s", ErrMissingArgument, directive)
			}
			arg = args[next]
			if !entry.accepts(spec, arg) {
				res.Stop, res.Directive = StopArgument, directive
				return res, &ArgumentError{Directive: directive, Index: next, Arg: arg}
			}
			next++
			if entry.Category == CategoryCount {
				spec.Width = res.Count
			}
		}

		code, extra := entry.handler(s.st, spec, arg, tmpl[i+n-1:])
		if code == hardStop {
			tracer().Debugf("%s failed at offset %d", directive, s.st.in.Info().Offset)
			res.Stop, res.Directive = StopHandlerFailed, directive
			return res, nil
		}
		res.Count += code
		i = end + extra
	}
}
