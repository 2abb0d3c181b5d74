package tidy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lestrrat-go/tidy/encoding"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ParseConfig(nil)
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
	})
	t.Run("all keys", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
fix-backslash = false
allow-proprietary = true
input-xml = true
output-xhtml = true
input-encoding = "latin1"
output-encoding = "iso-2022-jp"
newline = "CRLF"
`))
		require.NoError(t, err)
		require.Equal(t, &Config{
			AllowProprietary: true,
			XMLTags:          true,
			XMLOut:           true,
			InputEncoding:    "latin1",
			OutputEncoding:   "iso-2022-jp",
			Newline:          "CRLF",
		}, cfg)

		nl, err := cfg.NewlineSequence()
		require.NoError(t, err)
		require.Equal(t, "\r\n", nl)

		s, err := cfg.OutputScheme()
		require.NoError(t, err)
		require.Equal(t, encoding.ISO2022, s)
	})
	t.Run("syntax error", func(t *testing.T) {
		_, err := ParseConfig([]byte(`newline = `))
		require.Error(t, err)
	})
	t.Run("bad newline", func(t *testing.T) {
		_, err := ParseConfig([]byte(`newline = "LFCR"`))
		require.ErrorIs(t, err, ErrInvalidNewline)
	})
	t.Run("bad input encoding", func(t *testing.T) {
		_, err := ParseConfig([]byte(`input-encoding = "klingon"`))
		require.ErrorIs(t, err, encoding.ErrUnknownEncoding)
	})
	t.Run("output encoding must be native", func(t *testing.T) {
		_, err := ParseConfig([]byte(`output-encoding = "shift_jis"`))
		require.ErrorIs(t, err, encoding.ErrUnknownEncoding)
	})
}

func TestNewlineSequence(t *testing.T) {
	for in, expect := range map[string]string{"": "\n", "lf": "\n", "CRLF": "\r\n", "cr": "\r"} {
		nl, err := (&Config{Newline: in}).NewlineSequence()
		require.NoError(t, err, "newline %q", in)
		require.Equal(t, expect, nl, "newline %q", in)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "tidy.toml")
	require.NoError(t, os.WriteFile(fn, []byte("output-xhtml = true\n"), 0600))

	cfg, err := LoadConfig(fn)
	require.NoError(t, err)
	require.True(t, cfg.XMLOut)
	require.True(t, cfg.FixBackslash, "unset keys keep their defaults")

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
