// Package encoding holds the byte-level codecs used when reading and
// writing documents. The legacy single byte charsets and the catalog of
// other encodings come from golang.org/x/text; UTF-8 and ISO-2022 are
// handled here because the document model has to round trip byte
// sequences that the standard codecs reject.
package encoding

import (
	"errors"
	"strings"

	"golang.org/x/net/html/charset"
	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

// Scheme is one of the encodings that the reader and writer handle
// natively.
type Scheme int

const (
	Raw Scheme = iota
	ASCII
	Latin1
	Windows1252
	MacRoman
	UTF8
	ISO2022
)

func (s Scheme) String() string {
	switch s {
	case Raw:
		return "raw"
	case ASCII:
		return "ascii"
	case Latin1:
		return "latin1"
	case Windows1252:
		return "win1252"
	case MacRoman:
		return "mac"
	case UTF8:
		return "utf8"
	case ISO2022:
		return "iso2022"
	}
	return "unknown"
}

func (s Scheme) charmap() *charmap.Charmap {
	switch s {
	case Latin1:
		return charmap.ISO8859_1
	case Windows1252:
		return charmap.Windows1252
	case MacRoman:
		return charmap.Macintosh
	}
	return nil
}

// LookupScheme maps a configuration name to a native scheme.
func LookupScheme(name string) (Scheme, bool) {
	switch strings.ToLower(name) {
	case "raw":
		return Raw, true
	case "ascii", "us-ascii":
		return ASCII, true
	case "latin1", "iso-8859-1", "iso8859-1":
		return Latin1, true
	case "win1252", "windows-1252", "windows1252", "cp1252":
		return Windows1252, true
	case "mac", "macintosh", "macroman":
		return MacRoman, true
	case "utf8", "utf-8":
		return UTF8, true
	case "iso2022", "iso-2022-jp", "jis":
		return ISO2022, true
	}
	return Raw, false
}

// Load returns an x/text encoding for names that are not native
// schemes. Unlisted names are resolved as WHATWG labels.
func Load(name string) enc.Encoding {
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		return unicode.UTF8
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "euc-jp":
		return japanese.EUCJP
	case "shift_jis", "shift-jis", "shiftjis", "cp932":
		return japanese.ShiftJIS
	case "jis", "iso-2022-jp":
		return japanese.ISO2022JP
	case "big5":
		return traditionalchinese.Big5
	case "euc-kr":
		return korean.EUCKR
	case "gbk":
		return simplifiedchinese.GBK
	case "hz-gb2312":
		return simplifiedchinese.HZGB2312
	case "cp437":
		return charmap.CodePage437
	case "cp866":
		return charmap.CodePage866
	case "iso-8859-2":
		return charmap.ISO8859_2
	case "iso-8859-5":
		return charmap.ISO8859_5
	case "iso-8859-15":
		return charmap.ISO8859_15
	case "koi8r":
		return charmap.KOI8R
	case "macintosh":
		return charmap.Macintosh
	case "windows1250":
		return charmap.Windows1250
	case "windows1251":
		return charmap.Windows1251
	case "iso-8859-1", "windows1252":
		return charmap.Windows1252
	}

	e, _ := charset.Lookup(name)
	return e
}
