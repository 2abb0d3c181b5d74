package tidy

import (
	"github.com/lestrrat-go/option"
	"github.com/lestrrat-go/tidy/node"
)

type Option = option.Interface

// ParseOption configures a Parser.
type ParseOption interface {
	Option
	parseOption()
}

type parseOption struct {
	Option
}

func (*parseOption) parseOption() {}

type identConfig struct{}
type identDiagnosticSink struct{}
type identInputEncoding struct{}
type identTokenHook struct{}

// WithConfig sets the configuration used for parsing. The parser keeps
// its own copy.
func WithConfig(c *Config) ParseOption {
	return &parseOption{option.New(identConfig{}, c)}
}

// WithDiagnosticSink sets where diagnostics are delivered. Without it
// diagnostics are dropped.
func WithDiagnosticSink(s DiagnosticSink) ParseOption {
	return &parseOption{option.New(identDiagnosticSink{}, s)}
}

// WithInputEncoding overrides Config.InputEncoding.
func WithInputEncoding(name string) ParseOption {
	return &parseOption{option.New(identInputEncoding{}, name)}
}

// withTokenHook registers a function called after each token has been
// added to the tree.
func withTokenHook(f func(*node.Document)) ParseOption {
	return &parseOption{option.New(identTokenHook{}, f)}
}
