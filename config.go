package tidy

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lestrrat-go/tidy/encoding"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidNewline = errors.New("invalid newline setting")

// Config holds the settings that change how input is read, checked and
// written back.
type Config struct {
	// FixBackslash rewrites `\` to `/` in URL attributes.
	FixBackslash bool `toml:"fix-backslash"`
	// AllowProprietary suppresses UnknownElement for tags missing from
	// the dictionary.
	AllowProprietary bool `toml:"allow-proprietary"`
	// XMLTags parses the input as generic XML instead of HTML.
	XMLTags bool `toml:"input-xml"`
	// XMLOut writes XHTML.
	XMLOut         bool   `toml:"output-xhtml"`
	InputEncoding  string `toml:"input-encoding"`
	OutputEncoding string `toml:"output-encoding"`
	// Newline is one of LF, CRLF or CR.
	Newline string `toml:"newline"`
}

func DefaultConfig() *Config {
	return &Config{
		FixBackslash:   true,
		InputEncoding:  "utf-8",
		OutputEncoding: "utf-8",
		Newline:        "LF",
	}
}

// ParseConfig reads a TOML document. Keys that are absent keep their
// default values.
func ParseConfig(b []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration %s: %w", path, err)
	}
	return ParseConfig(b)
}

func (c *Config) Validate() error {
	if _, err := c.NewlineSequence(); err != nil {
		return err
	}
	if _, ok := encoding.LookupScheme(c.InputEncoding); !ok && encoding.Load(c.InputEncoding) == nil {
		return fmt.Errorf("input encoding %q: %w", c.InputEncoding, encoding.ErrUnknownEncoding)
	}
	if _, err := c.OutputScheme(); err != nil {
		return err
	}
	return nil
}

func (c *Config) NewlineSequence() (string, error) {
	switch strings.ToUpper(c.Newline) {
	case "", "LF":
		return "\n", nil
	case "CRLF":
		return "\r\n", nil
	case "CR":
		return "\r", nil
	}
	return "", fmt.Errorf("%q: %w", c.Newline, ErrInvalidNewline)
}

// OutputScheme resolves OutputEncoding. Only the native schemes can be
// written.
func (c *Config) OutputScheme() (encoding.Scheme, error) {
	if c.OutputEncoding == "" {
		return encoding.UTF8, nil
	}
	s, ok := encoding.LookupScheme(c.OutputEncoding)
	if !ok {
		return encoding.Raw, fmt.Errorf("output encoding %q: %w", c.OutputEncoding, encoding.ErrUnknownEncoding)
	}
	return s, nil
}
