package s11n

import (
	"strconv"
	"strings"

	"github.com/lestrrat-go/tidy/encoding"
)

const (
	qchDquote = '"'
	qchQuote  = '\''
)

var (
	escQuot = "&#34;" // shorter than "&quot;"
	escApos = "&#39;"
	escAmp  = "&amp;"
	escLt   = "&lt;"
	escGt   = "&gt;"
)

// QuoteChar picks the quote for an attribute value: the one it was
// written with if any, otherwise a double quote unless only a single
// quote avoids escaping.
func QuoteChar(s string, delim byte) byte {
	if delim == qchDquote || delim == qchQuote {
		return delim
	}
	if strings.IndexByte(s, qchDquote) >= 0 && strings.IndexByte(s, qchQuote) < 0 {
		return qchQuote
	}
	return qchDquote
}

// DumpQuotedString writes s as a quoted attribute value. Occurrences of
// the chosen quote inside s are escaped.
func DumpQuotedString(w *encoding.Writer, s string, delim byte) error {
	q := QuoteChar(s, delim)
	if err := w.WriteRune(rune(q)); err != nil {
		return err
	}
	if err := escape(w, []byte(s), q); err != nil {
		return err
	}
	return w.WriteRune(rune(q))
}

// EscapeText writes text content, replacing markup characters and
// anything the output scheme cannot represent with references.
func EscapeText(w *encoding.Writer, s []byte) error {
	return escape(w, s, 0)
}

func escape(w *encoding.Writer, s []byte, quote byte) error {
	for i := 0; i < len(s); {
		r, n, _ := encoding.DecodeUTF8(s[i:])
		i += n

		var esc string
		switch {
		case r == '&':
			esc = escAmp
		case r == '<':
			esc = escLt
		case r == '>':
			esc = escGt
		case quote == qchDquote && r == qchDquote:
			esc = escQuot
		case quote == qchQuote && r == qchQuote:
			esc = escApos
		case !w.CanEncode(r):
			esc = "&#" + strconv.Itoa(int(r)) + ";"
		}

		var err error
		if esc != "" {
			err = w.WriteString(esc)
		} else {
			err = w.WriteRune(r)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
