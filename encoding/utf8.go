package encoding

// RuneError is substituted for undecodable input.
const RuneError = '�'

// minimum code point for each sequence length; anything below is overlong
var utf8Min = [6]rune{0, 0, 0x80, 0x800, 0x10000, 0x200000}

// EncodeUTF8 appends the UTF-8 form of cp to dst. Code points past
// U+1FFFFF are written in the legacy 5-byte form.
func EncodeUTF8(dst []byte, cp rune) []byte {
	u := uint32(cp)
	switch {
	case u < 0x80:
		return append(dst, byte(u))
	case u <= 0x7FF:
		return append(dst,
			0xC0|byte(u>>6),
			0x80|byte(u&0x3F))
	case u <= 0xFFFF:
		return append(dst,
			0xE0|byte(u>>12),
			0x80|byte((u>>6)&0x3F),
			0x80|byte(u&0x3F))
	case u <= 0x1FFFFF:
		return append(dst,
			0xF0|byte(u>>18),
			0x80|byte((u>>12)&0x3F),
			0x80|byte((u>>6)&0x3F),
			0x80|byte(u&0x3F))
	}
	return append(dst,
		0xF8|byte((u>>24)&0x03),
		0x80|byte((u>>18)&0x3F),
		0x80|byte((u>>12)&0x3F),
		0x80|byte((u>>6)&0x3F),
		0x80|byte(u&0x3F))
}

// DecodeUTF8 reads one code point from the head of b. On failure it
// returns RuneError, the number of bytes to skip (always 1) and false.
func DecodeUTF8(b []byte) (rune, int, bool) {
	if len(b) == 0 {
		return RuneError, 0, false
	}

	c := b[0]
	var n int
	var cp rune
	switch {
	case c < 0x80:
		return rune(c), 1, true
	case c&0xE0 == 0xC0:
		n, cp = 2, rune(c&0x1F)
	case c&0xF0 == 0xE0:
		n, cp = 3, rune(c&0x0F)
	case c&0xF8 == 0xF0:
		n, cp = 4, rune(c&0x07)
	case c&0xFC == 0xF8:
		n, cp = 5, rune(c&0x03)
	default:
		return RuneError, 1, false
	}

	if len(b) < n {
		return RuneError, 1, false
	}
	for _, cc := range b[1:n] {
		if cc&0xC0 != 0x80 {
			return RuneError, 1, false
		}
		cp = cp<<6 | rune(cc&0x3F)
	}
	if cp < utf8Min[n] {
		return RuneError, 1, false
	}
	return cp, n, true
}
