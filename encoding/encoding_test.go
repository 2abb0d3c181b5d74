package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestISO88591(t *testing.T) {
	e := Load("iso-8859-1")
	require.NotNil(t, e)
	dec := e.NewDecoder()
	enc := e.NewEncoder()
	for i := 0; i <= 255; i++ {
		if i >= 0x80 && i <= 0x9f {
			continue
		}
		v := string([]byte{byte(i)})
		s, err := dec.String(v)
		require.NoError(t, err, "decode %#x", i)

		v1, err := enc.String(s)
		require.NoError(t, err, "encode %q", s)
		require.Equal(t, v, v1, "round trip %#x", i)
	}
}

func TestLoad(t *testing.T) {
	for _, name := range []string{"shift_jis", "euc-kr", "big5", "utf-16le"} {
		require.NotNil(t, Load(name), name)
	}
	require.NotNil(t, Load("latin2"), "WHATWG labels are resolved too")
	require.Nil(t, Load("no-such-charset"))
}

func TestLookupScheme(t *testing.T) {
	testcases := map[string]Scheme{
		"UTF-8":        UTF8,
		"latin1":       Latin1,
		"iso-2022-jp":  ISO2022,
		"mac":          MacRoman,
		"windows-1252": Windows1252,
		"ascii":        ASCII,
		"raw":          Raw,
	}
	for name, want := range testcases {
		s, ok := LookupScheme(name)
		require.True(t, ok, name)
		require.Equal(t, want, s, name)
	}
	_, ok := LookupScheme("shift_jis")
	require.False(t, ok)
}

func TestUTF8(t *testing.T) {
	testcases := []struct {
		cp  rune
		enc []byte
	}{
		{cp: 0x41, enc: []byte{0x41}},
		{cp: 0x7F, enc: []byte{0x7F}},
		{cp: 0x80, enc: []byte{0xC2, 0x80}},
		{cp: 0xE9, enc: []byte{0xC3, 0xA9}},
		{cp: 0x7FF, enc: []byte{0xDF, 0xBF}},
		{cp: 0x800, enc: []byte{0xE0, 0xA0, 0x80}},
		{cp: 0x20AC, enc: []byte{0xE2, 0x82, 0xAC}},
		{cp: 0xFFFF, enc: []byte{0xEF, 0xBF, 0xBF}},
		{cp: 0x10000, enc: []byte{0xF0, 0x90, 0x80, 0x80}},
		{cp: 0x1F600, enc: []byte{0xF0, 0x9F, 0x98, 0x80}},
		{cp: 0x1FFFFF, enc: []byte{0xF7, 0xBF, 0xBF, 0xBF}},
		{cp: 0x200000, enc: []byte{0xF8, 0x88, 0x80, 0x80, 0x80}},
	}
	for _, tc := range testcases {
		t.Run(string(EncodeUTF8(nil, tc.cp)), func(t *testing.T) {
			require.Equal(t, tc.enc, EncodeUTF8(nil, tc.cp))

			cp, n, ok := DecodeUTF8(tc.enc)
			require.True(t, ok)
			require.Equal(t, len(tc.enc), n)
			require.Equal(t, tc.cp, cp)
		})
	}

	t.Run("Sequence boundaries through the decoder", func(t *testing.T) {
		cps := []rune{0x41, 0x7FF, 0xFFFF, 0x10000, 0x1FFFFF, 0x200000}
		var buf []byte
		for _, cp := range cps {
			buf = EncodeUTF8(buf, cp)
		}
		require.Len(t, buf, 1+2+3+4+4+5)

		var invalid int
		d := NewDecoder(UTF8, buf)
		d.SetInvalidFunc(func(int, []byte) { invalid++ })
		require.Equal(t, cps, d.DecodeAll(nil))
		require.Zero(t, invalid)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, b := range [][]byte{
			{0x80},             // stray continuation
			{0xC3},             // truncated
			{0xC3, 0x41},       // bad continuation
			{0xC0, 0x80},       // overlong
			{0xFE, 0x80, 0x80}, // no such lead byte
		} {
			cp, n, ok := DecodeUTF8(b)
			require.False(t, ok, "%x", b)
			require.Equal(t, 1, n)
			require.Equal(t, rune(RuneError), cp)
		}
	})
}

func TestDecoder(t *testing.T) {
	t.Run("UTF-8 replaces invalid bytes", func(t *testing.T) {
		var offsets []int
		d := NewDecoder(UTF8, []byte("a\xffb\xc3\xa9"))
		d.SetInvalidFunc(func(off int, _ []byte) {
			offsets = append(offsets, off)
		})
		require.Equal(t, []rune{'a', RuneError, 'b', 'é'}, d.DecodeAll(nil))
		require.Equal(t, []int{1}, offsets)
	})
	t.Run("Latin-1", func(t *testing.T) {
		d := NewDecoder(Latin1, []byte{'c', 'a', 'f', 0xE9})
		require.Equal(t, "café", string(d.DecodeAll(nil)))
	})
	t.Run("Windows-1252", func(t *testing.T) {
		d := NewDecoder(Windows1252, []byte{0x80})
		require.Equal(t, "€", string(d.DecodeAll(nil)))
	})
	t.Run("ISO-2022 sets the high bit inside multi-byte runs", func(t *testing.T) {
		d := NewDecoder(ISO2022, []byte{esc, '$', 'B', 0x30, 0x21, esc, '(', 'B', 'x'})
		require.Equal(t, []rune{esc, '$', 'B', 0xB0, 0xA1, esc, '(', 'B', 'x'}, d.DecodeAll(nil))
		require.Equal(t, ISO2022ASCII, d.State())
	})
}

func TestISO2022State(t *testing.T) {
	testcases := []struct {
		input []byte
		want  []ISO2022State
	}{
		{
			input: []byte{esc, '$', '(', 'D'},
			want:  []ISO2022State{ISO2022Esc, ISO2022EscDollar, ISO2022EscDollarParen, ISO2022NonASCII},
		},
		{
			input: []byte{esc, '$', 'B'},
			want:  []ISO2022State{ISO2022Esc, ISO2022EscDollar, ISO2022NonASCII},
		},
		{
			input: []byte{esc, '(', 'J'},
			want:  []ISO2022State{ISO2022Esc, ISO2022EscParen, ISO2022ASCII},
		},
		{
			input: []byte{esc, 'x'},
			want:  []ISO2022State{ISO2022Esc, ISO2022ASCII},
		},
		{
			input: []byte{esc, '$', esc},
			want:  []ISO2022State{ISO2022Esc, ISO2022EscDollar, ISO2022Esc},
		},
	}
	for _, tc := range testcases {
		t.Run(string(tc.input[1:]), func(t *testing.T) {
			var s ISO2022State
			var got []ISO2022State
			for _, c := range tc.input {
				s = s.Next(c)
				got = append(got, s)
			}
			require.Equal(t, tc.want, got)
		})
	}
}

func TestWriter(t *testing.T) {
	t.Run("ISO-2022 masks bytes in non-ASCII runs", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf, ISO2022)
		for _, c := range []rune{esc, '$', '(', 'D', 0x41, 0xC1} {
			require.NoError(t, w.WriteRune(c))
		}
		require.Equal(t, ISO2022NonASCII, w.State())
		require.NoError(t, w.Flush())
		require.Equal(t, []byte{esc, '$', '(', 'D', 0x41, 0x41}, buf.Bytes())
	})
	t.Run("ISO-2022 round trip", func(t *testing.T) {
		src := []byte{'a', esc, '$', 'B', 0x30, 0x21, esc, '(', 'B', 'z'}
		var buf bytes.Buffer
		w := NewWriter(&buf, ISO2022)
		for _, r := range NewDecoder(ISO2022, src).DecodeAll(nil) {
			require.NoError(t, w.WriteRune(r))
		}
		require.NoError(t, w.Flush())
		require.Equal(t, src, buf.Bytes())
	})
	t.Run("Single-byte schemes substitute wide code points", func(t *testing.T) {
		for _, scheme := range []Scheme{ISO2022, Raw} {
			var buf bytes.Buffer
			w := NewWriter(&buf, scheme)
			require.False(t, w.CanEncode(0x4E2D), scheme.String())
			require.NoError(t, w.WriteRune('a'))
			require.NoError(t, w.WriteRune(0x4E2D))
			require.NoError(t, w.WriteRune(0x141))
			require.NoError(t, w.Flush())
			require.Equal(t, "a??", buf.String(), scheme.String())
		}
	})
	t.Run("Latin-1", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf, Latin1)
		require.True(t, w.CanEncode('é'))
		require.False(t, w.CanEncode('€'))
		require.NoError(t, w.WriteString("café"))
		require.NoError(t, w.Flush())
		require.Equal(t, []byte{'c', 'a', 'f', 0xE9}, buf.Bytes())
	})
	t.Run("UTF-8 keeps 5-byte sequences", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf, UTF8)
		s := string(EncodeUTF8([]byte("x"), 0x200000))
		require.NoError(t, w.WriteString(s))
		require.NoError(t, w.Flush())
		require.Equal(t, s, buf.String())
	})
	t.Run("Newline", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf, ASCII)
		w.SetNewline("\r\n")
		require.False(t, w.CanEncode('é'))
		require.NoError(t, w.WriteString("a"))
		require.NoError(t, w.Newline())
		require.NoError(t, w.Flush())
		require.Equal(t, "a\r\n", buf.String())
	})
}
