package tidy

import (
	"context"
	"log/slog"

	"github.com/lestrrat-go/tidy/node"
)

// Parse builds a document from b. Problems in the markup are reported
// through the diagnostic sink; an error is returned only when the input
// cannot be decoded at all.
func Parse(ctx context.Context, b []byte, options ...ParseOption) (*node.Document, error) {
	return NewParser(options...).Parse(ctx, b)
}

func NewParser(options ...ParseOption) *Parser {
	p := &Parser{
		cfg:  *DefaultConfig(),
		sink: nullSink{},
	}
	var inputEncoding string
	for _, option := range options {
		switch option.Ident() {
		case identConfig{}:
			if cfg, ok := option.Value().(*Config); ok && cfg != nil {
				p.cfg = *cfg
			}
		case identDiagnosticSink{}:
			if s, ok := option.Value().(DiagnosticSink); ok && s != nil {
				p.sink = s
			}
		case identInputEncoding{}:
			inputEncoding, _ = option.Value().(string)
		case identTokenHook{}:
			p.onToken, _ = option.Value().(func(*node.Document))
		}
	}
	if inputEncoding != "" {
		p.cfg.InputEncoding = inputEncoding
	}
	return p
}

func (p *Parser) Config() Config {
	return p.cfg
}

func (p *Parser) Parse(ctx context.Context, b []byte) (*node.Document, error) {
	ctx, span := StartSpan(ctx, "tidy.Parse")
	defer span.End()

	pctx := &parserCtx{}
	if err := pctx.init(p, b); err != nil {
		TraceError(ctx, err, "failed to initialize parser")
		return nil, err
	}
	defer pctx.release()

	pctx.parseDocument()

	TraceEvent(ctx, "parsed document",
		slog.Int("nodes", pctx.doc.Len()),
		slog.String("versions", pctx.doc.Versions().String()),
	)
	return pctx.doc, nil
}
