package encoding

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// Writer encodes code points into a native scheme.
type Writer struct {
	w       *bufio.Writer
	scheme  Scheme
	cm      *charmap.Charmap
	state   ISO2022State
	newline string
	scratch []byte
}

func NewWriter(w io.Writer, s Scheme) *Writer {
	return &Writer{
		w:       bufio.NewWriter(w),
		scheme:  s,
		cm:      s.charmap(),
		newline: "\n",
		scratch: make([]byte, 0, 5),
	}
}

func (w *Writer) Scheme() Scheme {
	return w.scheme
}

func (w *Writer) State() ISO2022State {
	return w.state
}

// SetNewline sets the sequence written by Newline.
func (w *Writer) SetNewline(nl string) {
	w.newline = nl
}

// CanEncode reports whether r has a representation in the output
// scheme. Callers write a character reference for anything else.
func (w *Writer) CanEncode(r rune) bool {
	switch w.scheme {
	case UTF8:
		return r >= 0
	case ASCII:
		return r >= 0 && r < 0x80
	case Raw, ISO2022:
		return r >= 0 && r < 0x100
	}
	_, ok := w.cm.EncodeRune(r)
	return ok
}

func (w *Writer) WriteRune(r rune) error {
	switch w.scheme {
	case UTF8:
		w.scratch = EncodeUTF8(w.scratch[:0], r)
		_, err := w.w.Write(w.scratch)
		return err
	case ISO2022:
		if !w.CanEncode(r) {
			r = '?'
		}
		c := byte(r)
		masked := w.state == ISO2022NonASCII && c != esc
		w.state = w.state.Next(c)
		if masked {
			c &= 0x7F
		}
		return w.w.WriteByte(c)
	case Latin1, Windows1252, MacRoman:
		c, ok := w.cm.EncodeRune(r)
		if !ok {
			c = '?'
		}
		return w.w.WriteByte(c)
	case ASCII, Raw:
		if !w.CanEncode(r) {
			r = '?'
		}
	}
	return w.w.WriteByte(byte(r))
}

// WriteString writes s, which holds code points in the same UTF-8 form
// that EncodeUTF8 produces.
func (w *Writer) WriteString(s string) error {
	for i := 0; i < len(s); {
		if c := s[i]; c < 0x80 {
			if err := w.WriteRune(rune(c)); err != nil {
				return err
			}
			i++
			continue
		}
		r, n, _ := DecodeUTF8([]byte(s[i:min(i+5, len(s))]))
		if err := w.WriteRune(r); err != nil {
			return err
		}
		i += n
	}
	return nil
}

func (w *Writer) Newline() error {
	_, err := w.w.WriteString(w.newline)
	return err
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}
