package encoding

import (
	"io"

	"golang.org/x/text/encoding/charmap"
)

// InvalidFunc is called with the offset and bytes of every sequence
// that could not be decoded.
type InvalidFunc func(offset int, b []byte)

// Decoder turns a byte stream in a native scheme into code points.
type Decoder struct {
	scheme  Scheme
	cm      *charmap.Charmap
	src     []byte
	pos     int
	state   ISO2022State
	invalid InvalidFunc
}

func NewDecoder(s Scheme, src []byte) *Decoder {
	return &Decoder{
		scheme: s,
		cm:     s.charmap(),
		src:    src,
	}
}

func (d *Decoder) SetInvalidFunc(f InvalidFunc) {
	d.invalid = f
}

// Offset is the byte offset of the next read.
func (d *Decoder) Offset() int {
	return d.pos
}

func (d *Decoder) State() ISO2022State {
	return d.state
}

// ReadRune returns the next code point, or io.EOF.
func (d *Decoder) ReadRune() (rune, error) {
	if d.pos >= len(d.src) {
		return 0, io.EOF
	}

	c := d.src[d.pos]
	switch d.scheme {
	case UTF8:
		cp, n, ok := DecodeUTF8(d.src[d.pos:])
		if !ok {
			if d.invalid != nil {
				d.invalid(d.pos, d.src[d.pos:d.pos+n])
			}
		}
		d.pos += n
		return cp, nil
	case ISO2022:
		prev := d.state
		d.state = d.state.Next(c)
		d.pos++
		if prev == ISO2022NonASCII && d.state == ISO2022NonASCII {
			return rune(c | 0x80), nil
		}
		return rune(c), nil
	case Latin1, Windows1252, MacRoman:
		d.pos++
		return d.cm.DecodeByte(c), nil
	}

	// raw and ascii pass bytes through
	d.pos++
	return rune(c), nil
}

// DecodeAll decodes the rest of the input.
func (d *Decoder) DecodeAll(dst []rune) []rune {
	for {
		r, err := d.ReadRune()
		if err != nil {
			return dst
		}
		dst = append(dst, r)
	}
}
