// Package reader holds the code-unit window every scan handler reads through. A stream is backed either by a
// fixed span of UTF-16 units or by a byte source that is decoded on demand, and supports one codepoint
// of pushback in both cases.
package reader

import (
	"errors"
	"io"
	"unicode/utf16"
)

// EOF is what the sentinel-style calls (Getc, Getcx, Ungetc) return when nothing is available.
const EOF uint16 = 0xFFFF

// DefaultCapacity is the size of the unit window of a decoded stream.
const DefaultCapacity = 1024

var ErrClosed = errors.New("reader: stream closed")

type Info struct {
	Offset  int // units consumed since the stream was opened
	Refills int
}

// Stream is a pull-based source of UTF-16 code units. The unread units are buf[pos:limit]; pos only
// moves backwards through PushBack.
type Stream struct {
	buf     []uint16
	pos     int
	limit   int
	base    int // absolute offset of buf[0]
	refills int
	dec     *Decoder
	err     error
	closed  bool
}

// NewString opens a stream over the UTF-16 form of s.
func NewString(s string) *Stream {
	return NewUnits(utf16.Encode([]rune(s)))
}

// NewUnits opens a stream over a fixed span of code units. The span is not copied.
func NewUnits(units []uint16) *Stream {
	return &Stream{buf: units, limit: len(units)}
}

type options struct {
	charset  string
	capacity int
}

type Option func(*options)

// WithCharset selects the charset the byte source is decoded from. Names are resolved like HTML
// labels ("utf-8", "utf-16le", "latin1", "windows-1252", ...).
func WithCharset(name string) Option {
	return func(o *options) { o.charset = name }
}

// WithCapacity sets the size of the unit window. Values below 2 are raised to 2 so a surrogate pair
// always fits.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// New opens a stream that refills its window from r.
func New(r io.Reader, opts ...Option) (*Stream, error) {
	o := options{charset: "utf-8", capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity < 2 {
		o.capacity = 2
	}
	dec, err := NewDecoder(r, o.charset)
	if err != nil {
		return nil, err
	}
	return &Stream{buf: make([]uint16, o.capacity), dec: dec}, nil
}

func (s *Stream) Info() Info {
	return Info{Offset: s.base + s.pos, Refills: s.refills}
}

// Err returns the first decoding error seen by a refill, if any.
func (s *Stream) Err() error {
	return s.err
}

// Len is the number of unread units currently in the window.
func (s *Stream) Len() int {
	return s.limit - s.pos
}

// Window returns the unread units without consuming them. The slice is only valid until the next
// read, pushback or refill.
func (s *Stream) Window() []uint16 {
	return s.buf[s.pos:s.limit]
}

// Advance consumes n units of the window, as reported by a parser that was handed Window().
func (s *Stream) Advance(n int) {
	if n < 0 {
		return
	}
	s.pos += n
	if s.pos > s.limit {
		s.pos = s.limit
	}
}

// EnsureFilled slides the unread units to the start of the window and decodes more input behind
// them until the window is full or the source has nothing more. Fixed spans are left untouched.
func (s *Stream) EnsureFilled() {
	if s.dec == nil || s.closed {
		return
	}
	if remaining := s.limit - s.pos; remaining != 0 && s.pos != 0 {
		copy(s.buf, s.buf[s.pos:s.limit])
	}
	s.base += s.pos
	s.limit -= s.pos
	s.pos = 0
	if s.limit == len(s.buf) {
		return
	}
	n, err := s.dec.Refill(s.buf[s.limit:])
	s.limit += n
	s.refills++
	if err != nil && s.err == nil {
		tracer().Errorf("refill from %s source: %v", s.dec.Charset(), err)
		s.err = err
	}
	tracer().Debugf("refill: +%d units, window %d/%d", n, s.limit, len(s.buf))
}

// ReadUnit returns the next code unit.
func (s *Stream) ReadUnit() (uint16, bool) {
	if s.pos >= s.limit {
		s.EnsureFilled()
		if s.pos >= s.limit {
			return EOF, false
		}
	}
	u := s.buf[s.pos]
	s.pos++
	return u, true
}

// ReadCodepoint returns the next codepoint, combining a surrogate pair. A lead surrogate without a
// trail surrogate behind it is consumed and reported as end of stream.
func (s *Stream) ReadCodepoint() (rune, bool) {
	if s.pos+1 >= s.limit {
		s.EnsureFilled()
	}
	if s.pos >= s.limit {
		return rune(EOF), false
	}
	u := s.buf[s.pos]
	s.pos++
	if !isLead(u) {
		return rune(u), true
	}
	if s.pos < s.limit && isTrail(s.buf[s.pos]) {
		r := utf16.DecodeRune(rune(u), rune(s.buf[s.pos]))
		s.pos++
		return r, true
	}
	tracer().Debugf("lead surrogate %04X without trail at offset %d", u, s.base+s.pos-1)
	return rune(EOF), false
}

// PushBack un-reads cp. It only succeeds if the unit(s) right before the cursor are cp, and it never
// moves the cursor in front of the window.
func (s *Stream) PushBack(cp rune) bool {
	if cp < 0 || cp > 0x10FFFF {
		return false
	}
	if cp > 0xFFFF {
		lead, trail := utf16.EncodeRune(cp)
		if s.pos < 2 || s.buf[s.pos-1] != uint16(trail) || s.buf[s.pos-2] != uint16(lead) {
			tracer().Debugf("pushback of %U refused at window position %d", cp, s.pos)
			return false
		}
		s.pos -= 2
		return true
	}
	if s.pos < 1 || s.buf[s.pos-1] != uint16(cp) {
		tracer().Debugf("pushback of %U refused at window position %d", cp, s.pos)
		return false
	}
	s.pos--
	return true
}

// Getc is ReadUnit with the EOF sentinel in place of the flag.
func (s *Stream) Getc() uint16 {
	u, _ := s.ReadUnit()
	return u
}

// Getcx is ReadCodepoint with the EOF sentinel in place of the flag.
func (s *Stream) Getcx() rune {
	r, ok := s.ReadCodepoint()
	if !ok {
		return rune(EOF)
	}
	return r
}

// Ungetc pushes cp back and returns it, or EOF if the pushback was refused.
func (s *Stream) Ungetc(cp rune) rune {
	if !s.PushBack(cp) {
		return rune(EOF)
	}
	return cp
}

// Read copies up to len(p) units into p, refilling as often as needed.
func (s *Stream) Read(p []uint16) int {
	s.EnsureFilled()
	read := 0
	for read < len(p) {
		n := copy(p[read:], s.buf[s.pos:s.limit])
		s.pos += n
		read += n
		if read == len(p) {
			break
		}
		s.EnsureFilled()
		if s.pos >= s.limit {
			break
		}
	}
	return read
}

func (s *Stream) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.pos, s.limit = 0, 0
	if s.dec != nil {
		return s.dec.Close()
	}
	return nil
}

func isLead(u uint16) bool {
	return u >= 0xD800 && u <= 0xDBFF
}

func isTrail(u uint16) bool {
	return u >= 0xDC00 && u <= 0xDFFF
}
