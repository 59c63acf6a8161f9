package reader

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset resolves a charset label. The empty label is UTF-8.
func Charset(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	return enc, nil
}

// Decoder turns the bytes of a source into UTF-16 code units for a stream's window.
type Decoder struct {
	charset   string
	src       *bufio.Reader
	closer    io.Closer
	trail     uint16
	hasTrail  bool
	exhausted bool
}

func NewDecoder(r io.Reader, charset string) (*Decoder, error) {
	enc, err := Charset(charset)
	if err != nil {
		return nil, err
	}
	d := &Decoder{
		charset: charset,
		src:     bufio.NewReader(transform.NewReader(r, enc.NewDecoder())),
	}
	if c, ok := r.(io.Closer); ok {
		d.closer = c
	}
	return d, nil
}

func (d *Decoder) Charset() string {
	return d.charset
}

// Refill decodes into out and returns the number of units written. It stops when out is full or the
// source is exhausted, blocking on the source as long as it has to. A supplementary codepoint that
// does not fit is split; its trail unit is written first on the next call.
func (d *Decoder) Refill(out []uint16) (int, error) {
	n := 0
	if d.hasTrail && n < len(out) {
		out[n] = d.trail
		d.hasTrail = false
		n++
	}
	for n < len(out) && !d.exhausted {
		r, _, err := d.src.ReadRune()
		if err != nil {
			if err == io.EOF {
				d.exhausted = true
				return n, nil
			}
			return n, err
		}
		if r <= 0xFFFF {
			out[n] = uint16(r)
			n++
			continue
		}
		lead, trail := utf16.EncodeRune(r)
		out[n] = uint16(lead)
		n++
		if n == len(out) {
			d.trail, d.hasTrail = uint16(trail), true
			break
		}
		out[n] = uint16(trail)
		n++
	}
	return n, nil
}

func (d *Decoder) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}
