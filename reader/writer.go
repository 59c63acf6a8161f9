package reader

import (
	"fmt"
	"io"
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// chunkSize bounds how many encoded bytes are handed to the target per write call.
const chunkSize = 1024

// Writer is the write side of a stream. Unlike the read side it keeps no window to rewind: a string
// target is a fixed span that output is copied into and truncated at, and a byte target receives the
// output encoded in chunks. Only byte targets run through the transliterator.
type Writer struct {
	span []uint16
	pos  int

	w        io.Writer
	enc      *encoding.Encoder
	translit transform.Transformer
	pending  []byte
}

// NewSpanWriter writes into a fixed span of capacity units.
func NewSpanWriter(capacity int) *Writer {
	return &Writer{span: make([]uint16, capacity)}
}

// NewWriter encodes output in the given charset. Runes the charset cannot represent are replaced.
func NewWriter(w io.Writer, charset string) (*Writer, error) {
	enc, err := Charset(charset)
	if err != nil {
		return nil, err
	}
	return &Writer{w: w, enc: encoding.ReplaceUnsupported(enc.NewEncoder())}, nil
}

// SetTransliterator installs t and returns the previous one. Pending text of the previous one is
// flushed first. A nil t removes transliteration.
func (w *Writer) SetTransliterator(t transform.Transformer) (transform.Transformer, error) {
	old := w.translit
	if old != nil {
		if err := w.Flush(); err != nil {
			return old, err
		}
	}
	w.translit = t
	w.pending = w.pending[:0]
	return old, nil
}

// Units is what has been written into a span target.
func (w *Writer) Units() []uint16 {
	return w.span[:w.pos]
}

// Write writes units and returns how many of them were accepted.
func (w *Writer) Write(units []uint16) (int, error) {
	return w.write(units, false)
}

// Flush drains the transliterator.
func (w *Writer) Flush() error {
	_, err := w.write(nil, true)
	return err
}

// Puts writes s followed by the line delimiter.
func (w *Writer) Puts(s string) (int, error) {
	n, err := w.Write(utf16.Encode([]rune(s)))
	if err != nil {
		return n, err
	}
	m, err := w.Write([]uint16{delimLF})
	return n + m, err
}

// Putc writes one unit and returns it, or EOF if it was not written.
func (w *Writer) Putc(u uint16) uint16 {
	if n, err := w.Write([]uint16{u}); err != nil || n != 1 {
		return EOF
	}
	return u
}

func (w *Writer) write(units []uint16, flush bool) (int, error) {
	if w.w == nil {
		n := copy(w.span[w.pos:], units)
		w.pos += n
		return n, nil
	}
	text := []byte(string(utf16.Decode(units)))
	if w.translit != nil {
		var err error
		if text, err = w.transliterate(text, flush); err != nil {
			return 0, err
		}
	}
	if len(text) == 0 {
		return len(units), nil
	}
	encoded, err := w.enc.Bytes(text)
	if err != nil {
		return 0, fmt.Errorf("encode output: %w", err)
	}
	for written := 0; written < len(encoded); {
		end := min(written+chunkSize, len(encoded))
		n, err := w.w.Write(encoded[written:end])
		written += n
		if err != nil {
			return 0, err
		}
	}
	return len(units), nil
}

// transliterate runs as much of the pending text through the transliterator as it accepts; the
// rest stays pending until more text arrives or the writer is flushed.
func (w *Writer) transliterate(text []byte, flush bool) ([]byte, error) {
	w.pending = append(w.pending, text...)
	dst := make([]byte, 4*len(w.pending)+16)
	var out []byte
	for {
		nDst, nSrc, err := w.translit.Transform(dst, w.pending, flush)
		out = append(out, dst[:nDst]...)
		w.pending = append(w.pending[:0], w.pending[nSrc:]...)
		switch err {
		case nil:
			if flush {
				w.translit.Reset()
			}
			return out, nil
		case transform.ErrShortDst:
			if nDst == 0 && nSrc == 0 {
				dst = make([]byte, 2*len(dst))
			}
		case transform.ErrShortSrc:
			if !flush {
				return out, nil
			}
			return out, err
		default:
			return out, err
		}
	}
}
