package encoding

const esc = 0x1B

// ISO2022State tracks escape sequences in an ISO-2022 byte stream. It
// does not know about character sets; it only separates the 7-bit ASCII
// runs from the multi-byte runs so those can be carried with the high
// bit set.
type ISO2022State int

const (
	ISO2022ASCII ISO2022State = iota
	ISO2022Esc
	ISO2022EscDollar
	ISO2022EscDollarParen
	ISO2022EscParen
	ISO2022NonASCII
)

func (s ISO2022State) String() string {
	switch s {
	case ISO2022ASCII:
		return "ASCII"
	case ISO2022Esc:
		return "ESC"
	case ISO2022EscDollar:
		return "ESC-$"
	case ISO2022EscDollarParen:
		return "ESC-$-("
	case ISO2022EscParen:
		return "ESC-("
	case ISO2022NonASCII:
		return "NON-ASCII"
	}
	return "invalid"
}

// Next returns the state after c has been seen.
func (s ISO2022State) Next(c byte) ISO2022State {
	if c == esc {
		return ISO2022Esc
	}

	switch s {
	case ISO2022Esc:
		switch c {
		case '$':
			return ISO2022EscDollar
		case '(':
			return ISO2022EscParen
		}
		return ISO2022ASCII
	case ISO2022EscDollar:
		if c == '(' {
			return ISO2022EscDollarParen
		}
		return ISO2022NonASCII
	case ISO2022EscDollarParen:
		return ISO2022NonASCII
	case ISO2022EscParen:
		return ISO2022ASCII
	}
	return s
}
