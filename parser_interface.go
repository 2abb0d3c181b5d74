package tidy

import (
	"github.com/lestrrat-go/tidy/node"
)

const Version = "v0.1.0"

// Parser reads tag soup into a node.Document. A Parser may be reused but
// not shared between goroutines while parsing.
type Parser struct {
	cfg     Config
	sink    DiagnosticSink
	onToken func(*node.Document)
}

type parserCtx struct {
	cfg     *Config
	sink    DiagnosticSink
	doc     *node.Document
	onToken func(*node.Document)

	input  []rune
	pos    int
	line   int
	column int
	// name of the element whose content is read verbatim, if any
	rawText string
	scratch []byte
	tok     token
}

// token is one lexical unit. Text-like tokens point into the document
// buffer through span.
type token struct {
	typ    node.Type
	name   string
	attrs  []node.AttVal
	span   node.Span
	line   int
	column int
}
