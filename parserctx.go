package tidy

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/lestrrat-go/pdebug"
	"github.com/lestrrat-go/tidy/encoding"
	"github.com/lestrrat-go/tidy/internal/pool"
	"github.com/lestrrat-go/tidy/node"
	"golang.org/x/net/html"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (ctx *parserCtx) init(p *Parser, b []byte) error {
	ctx.cfg = &p.cfg
	ctx.sink = p.sink
	ctx.onToken = p.onToken
	ctx.doc = node.NewDocument()
	ctx.line = 1
	ctx.column = 1
	ctx.scratch = pool.ByteSlice().Get()

	if err := ctx.decodeInput(b); err != nil {
		return err
	}
	ctx.normalizeNewlines()
	return nil
}

func (ctx *parserCtx) release() {
	pool.ByteSlice().Put(ctx.scratch)
	ctx.scratch = nil
	ctx.input = nil
}

func (ctx *parserCtx) decodeInput(b []byte) error {
	name := ctx.cfg.InputEncoding
	if name == "" {
		name = "utf-8"
	}

	scheme, ok := encoding.LookupScheme(name)
	if !ok {
		e := encoding.Load(name)
		if e == nil {
			return fmt.Errorf("input encoding %q: %w", name, encoding.ErrUnknownEncoding)
		}
		out, err := e.NewDecoder().Bytes(b)
		if err != nil {
			return fmt.Errorf("failed to decode input as %s: %w", name, err)
		}
		b = out
		scheme = encoding.UTF8
	}

	if scheme == encoding.UTF8 {
		b = bytes.TrimPrefix(b, utf8BOM)
	}
	dec := encoding.NewDecoder(scheme, b)
	dec.SetInvalidFunc(func(offset int, _ []byte) {
		ctx.report(Diagnostic{Code: InvalidUTF8, Value: strconv.Itoa(offset)})
	})
	ctx.input = dec.DecodeAll(make([]rune, 0, len(b)))
	return nil
}

// normalizeNewlines turns CRLF and lone CR into LF.
func (ctx *parserCtx) normalizeNewlines() {
	in := ctx.input
	out := in[:0]
	for i := 0; i < len(in); i++ {
		c := in[i]
		if c == '\r' {
			if i+1 < len(in) && in[i+1] == '\n' {
				continue
			}
			c = '\n'
		}
		out = append(out, c)
	}
	ctx.input = out
}

func (ctx *parserCtx) report(d Diagnostic) {
	if d.Severity == 0 {
		d.Severity = d.Code.Severity()
	}
	if pdebug.Enabled {
		pdebug.Printf("diagnostic %s", d)
	}
	ctx.sink.Report(d)
}

// reportNode fills in the element name and position of id.
func (ctx *parserCtx) reportNode(code Code, id node.ID, av *node.AttVal) {
	d := Diagnostic{
		Code:    code,
		Node:    id,
		Element: ctx.doc.Name(id),
	}
	d.Line, d.Column = ctx.doc.Position(id)
	if av != nil {
		d.Attribute = av.Name
		d.Value = av.Value
	}
	ctx.report(d)
}

func (ctx *parserCtx) curDone() bool {
	return ctx.pos >= len(ctx.input)
}

// curPeek returns the n-th rune from the cursor, starting at 1, or 0
// past the end of input.
func (ctx *parserCtx) curPeek(n int) rune {
	if i := ctx.pos + n - 1; i < len(ctx.input) {
		return ctx.input[i]
	}
	return 0
}

func (ctx *parserCtx) curAdvance(n int) {
	for ; n > 0 && ctx.pos < len(ctx.input); n-- {
		if ctx.input[ctx.pos] == '\n' {
			ctx.line++
			ctx.column = 1
		} else {
			ctx.column++
		}
		ctx.pos++
	}
}

func (ctx *parserCtx) curHasPrefix(s string) bool {
	for i := 0; i < len(s); i++ {
		if ctx.curPeek(i+1) != rune(s[i]) {
			return false
		}
	}
	return true
}

// curHasPrefixFold is curHasPrefix ignoring ASCII case. s must be lower case.
func (ctx *parserCtx) curHasPrefixFold(s string) bool {
	for i := 0; i < len(s); i++ {
		if toLowerASCII(ctx.curPeek(i+1)) != rune(s[i]) {
			return false
		}
	}
	return true
}

// curIndex returns the distance from the cursor to the next occurrence
// of s, or -1.
func (ctx *parserCtx) curIndex(s string) int {
	if s == "" {
		return 0
	}
	first := rune(s[0])
	for i := ctx.pos; i < len(ctx.input); i++ {
		if ctx.input[i] != first || i+len(s) > len(ctx.input) {
			continue
		}
		match := true
		for j := 1; j < len(s); j++ {
			if ctx.input[i+j] != rune(s[j]) {
				match = false
				break
			}
		}
		if match {
			return i - ctx.pos
		}
	}
	return -1
}

func (ctx *parserCtx) skipBlanks() {
	for !ctx.curDone() && isBlankCh(ctx.curPeek(1)) {
		ctx.curAdvance(1)
	}
}

// encodeRunes converts input runes to the UTF-8 form used by the
// document buffer, which keeps code points Go strings would replace.
func (ctx *parserCtx) encodeRunes(rs []rune) []byte {
	buf := ctx.scratch[:0]
	for _, r := range rs {
		buf = encoding.EncodeUTF8(buf, r)
	}
	ctx.scratch = buf
	return buf
}

func (ctx *parserCtx) runesToString(rs []rune) string {
	return string(ctx.encodeRunes(rs))
}

func isBlankCh(c rune) bool {
	return c == 0x20 || (0x9 <= c && c <= 0xa) || c == 0xc || c == 0xd
}

func isASCIIAlpha(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func toLowerASCII(c rune) rune {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func isNameChar(c rune) bool {
	return isASCIIAlpha(c) || ('0' <= c && c <= '9') || c == '-' || c == '_' || c == ':' || c == '.' || c > 0x7F
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if !isBlankCh(rune(c)) {
			return false
		}
	}
	return true
}

// isMarkupStart reports whether the '<' at the cursor opens markup.
func (ctx *parserCtx) isMarkupStart() bool {
	if ctx.curPeek(1) != '<' {
		return false
	}
	switch c := ctx.curPeek(2); {
	case isASCIIAlpha(c), c == '!', c == '?', c == '%', c == '#':
		return true
	case c == '/':
		return isASCIIAlpha(ctx.curPeek(3))
	}
	return false
}

// nextToken returns the next token, or nil at the end of input. The
// returned token is reused by the following call.
func (ctx *parserCtx) nextToken() *token {
	for !ctx.curDone() {
		tok := &ctx.tok
		*tok = token{attrs: tok.attrs[:0], line: ctx.line, column: ctx.column}

		if ctx.rawText != "" {
			if ctx.parseRawText(tok) {
				return tok
			}
			continue
		}

		if ctx.isMarkupStart() {
			switch c := ctx.curPeek(2); c {
			case '/':
				ctx.parseEndTag(tok)
			case '?':
				if !ctx.curHasPrefixFold("<?php") || !ctx.parseBlock(tok, node.PHPNode, "<?", "?>") {
					ctx.parsePI(tok)
				}
			case '%':
				if !ctx.parseBlock(tok, node.ASPNode, "<%", "%>") {
					ctx.parseCharData(tok)
				}
			case '#':
				if !ctx.parseBlock(tok, node.JSTENode, "<#", "#>") {
					ctx.parseCharData(tok)
				}
			case '!':
				switch {
				case ctx.curHasPrefix("<!--"):
					ctx.parseComment(tok)
				case ctx.curHasPrefix("<![CDATA["):
					ctx.parseCDSect(tok)
				case ctx.curHasPrefixFold("<!doctype"):
					ctx.parseDocTypeDecl(tok)
				case ctx.curHasPrefix("<![") && ctx.parseBlock(tok, node.SectionNode, "<![", "]>"):
				default:
					ctx.skipDecl()
					continue
				}
			default:
				ctx.parseStartTag(tok)
			}
		} else {
			ctx.parseCharData(tok)
		}

		if pdebug.Enabled {
			pdebug.Printf("token %s %q (line %d, column %d)", tok.typ, tok.name, tok.line, tok.column)
		}
		return tok
	}
	return nil
}

func (ctx *parserCtx) parseCharData(tok *token) {
	start := ctx.pos
	ctx.curAdvance(1)
	for !ctx.curDone() && !ctx.isMarkupStart() {
		ctx.curAdvance(1)
	}

	text := html.UnescapeString(string(ctx.encodeRunes(ctx.input[start:ctx.pos])))
	tok.typ = node.TextNode
	tok.span = ctx.doc.AppendText([]byte(text))
}

// parseRawText reads the content of a raw text element up to its end
// tag. It reports false when the content is empty.
func (ctx *parserCtx) parseRawText(tok *token) bool {
	end := "</" + ctx.rawText
	ctx.rawText = ""

	start := ctx.pos
	for !ctx.curDone() {
		if ctx.curPeek(1) == '<' && ctx.curPeek(2) == '/' && ctx.curHasPrefixFold(end) {
			if c := ctx.curPeek(len(end) + 1); c == 0 || c == '>' || c == '/' || isBlankCh(c) {
				break
			}
		}
		ctx.curAdvance(1)
	}
	if ctx.pos == start {
		return false
	}

	tok.typ = node.TextNode
	tok.span = ctx.doc.AppendText(ctx.encodeRunes(ctx.input[start:ctx.pos]))
	return true
}

func (ctx *parserCtx) parseName() string {
	start := ctx.pos
	for !ctx.curDone() && isNameChar(ctx.curPeek(1)) {
		ctx.curAdvance(1)
	}
	name := ctx.runesToString(ctx.input[start:ctx.pos])
	if !ctx.cfg.XMLTags {
		name = strings.ToLower(name)
	}
	return name
}

func (ctx *parserCtx) parseStartTag(tok *token) {
	ctx.curAdvance(1) // '<'
	tok.typ = node.StartTagNode
	tok.name = ctx.parseName()

	for {
		ctx.skipBlanks()
		if ctx.curDone() {
			return
		}

		switch c := ctx.curPeek(1); {
		case c == '>':
			ctx.curAdvance(1)
			return
		case c == '/' && ctx.curPeek(2) == '>':
			ctx.curAdvance(2)
			tok.typ = node.StartEndTagNode
			return
		case c == '<':
			// missing '>'; the next tag starts here
			return
		}

		av, ok := ctx.parseAttribute()
		if !ok {
			ctx.curAdvance(1)
			continue
		}
		tok.attrs = append(tok.attrs, av)
	}
}

func (ctx *parserCtx) parseAttribute() (node.AttVal, bool) {
	start := ctx.pos
	for !ctx.curDone() {
		c := ctx.curPeek(1)
		if isBlankCh(c) || c == '=' || c == '>' || c == '<' || c == '"' || c == '\'' || (c == '/' && ctx.curPeek(2) == '>') {
			break
		}
		ctx.curAdvance(1)
	}
	if ctx.pos == start {
		return node.AttVal{}, false
	}

	av := node.AttVal{Name: ctx.runesToString(ctx.input[start:ctx.pos])}
	if !ctx.cfg.XMLTags {
		av.Name = strings.ToLower(av.Name)
	}

	ctx.skipBlanks()
	if ctx.curPeek(1) != '=' {
		return av, true
	}
	ctx.curAdvance(1)
	ctx.skipBlanks()

	av.HasValue = true
	var value []rune
	switch q := ctx.curPeek(1); q {
	case '"', '\'':
		ctx.curAdvance(1)
		vstart := ctx.pos
		for !ctx.curDone() && ctx.curPeek(1) != q {
			ctx.curAdvance(1)
		}
		value = ctx.input[vstart:ctx.pos]
		ctx.curAdvance(1)
		av.Delim = byte(q)
	default:
		vstart := ctx.pos
		for !ctx.curDone() {
			if c := ctx.curPeek(1); isBlankCh(c) || c == '>' || c == '<' {
				break
			}
			ctx.curAdvance(1)
		}
		value = ctx.input[vstart:ctx.pos]
	}
	av.Value = html.UnescapeString(ctx.runesToString(value))
	return av, true
}

func (ctx *parserCtx) parseEndTag(tok *token) {
	ctx.curAdvance(2) // "</"
	tok.typ = node.EndTagNode
	tok.name = ctx.parseName()
	for !ctx.curDone() {
		c := ctx.curPeek(1)
		if c == '<' {
			return
		}
		ctx.curAdvance(1)
		if c == '>' {
			return
		}
	}
}

// parseDelimited reads up to terminator, which is consumed. Unterminated
// content runs to the end of input and reports false.
func (ctx *parserCtx) parseDelimited(terminator string) ([]byte, bool) {
	i := ctx.curIndex(terminator)
	if i < 0 {
		content := ctx.encodeRunes(ctx.input[ctx.pos:])
		ctx.curAdvance(len(ctx.input) - ctx.pos)
		return content, false
	}
	content := ctx.encodeRunes(ctx.input[ctx.pos : ctx.pos+i])
	ctx.curAdvance(i + len(terminator))
	return content, true
}

func (ctx *parserCtx) parseComment(tok *token) {
	ctx.curAdvance(4) // "<!--"
	content, ok := ctx.parseDelimited("-->")
	if !ok {
		ctx.report(Diagnostic{Code: MalformedComment, Line: tok.line, Column: tok.column})
	}
	tok.typ = node.CommentNode
	tok.span = ctx.doc.AppendText(content)
}

func (ctx *parserCtx) parseCDSect(tok *token) {
	ctx.curAdvance(9) // "<![CDATA["
	content, _ := ctx.parseDelimited("]]>")
	tok.typ = node.CDATANode
	tok.span = ctx.doc.AppendText(content)
}

func (ctx *parserCtx) parseDocTypeDecl(tok *token) {
	ctx.curAdvance(9) // "<!doctype"
	ctx.skipBlanks()

	start := ctx.pos
	var quote rune
	for !ctx.curDone() {
		c := ctx.curPeek(1)
		if quote != 0 {
			if c == quote {
				quote = 0
			}
		} else if c == '"' || c == '\'' {
			quote = c
		} else if c == '>' {
			break
		}
		ctx.curAdvance(1)
	}
	end := ctx.pos
	for end > start && isBlankCh(ctx.input[end-1]) {
		end--
	}
	ctx.curAdvance(1) // '>'

	tok.typ = node.DocTypeNode
	tok.span = ctx.doc.AppendText(ctx.encodeRunes(ctx.input[start:end]))
}

// parseBlock reads markup that is kept verbatim between open and
// closing: server-side code and marked sections. Nothing is consumed
// when closing never appears.
func (ctx *parserCtx) parseBlock(tok *token, typ node.Type, open, closing string) bool {
	ctx.curAdvance(len(open))
	if ctx.curIndex(closing) < 0 {
		ctx.pos, ctx.line, ctx.column = ctx.pos-len(open), tok.line, tok.column
		return false
	}
	content, _ := ctx.parseDelimited(closing)
	tok.typ = typ
	tok.span = ctx.doc.AppendText(content)
	return true
}

// parsePI reads a processing instruction. The content keeps a trailing
// '?' so that "<?target ... ?>" survives unchanged.
func (ctx *parserCtx) parsePI(tok *token) {
	ctx.curAdvance(2) // "<?"
	start := ctx.pos
	for !ctx.curDone() && !isBlankCh(ctx.curPeek(1)) && ctx.curPeek(1) != '>' && ctx.curPeek(1) != '?' {
		ctx.curAdvance(1)
	}
	tok.name = ctx.runesToString(ctx.input[start:ctx.pos])
	ctx.pos, ctx.line, ctx.column = start, tok.line, tok.column+2

	terminator := ">"
	if ctx.cfg.XMLTags {
		terminator = "?>"
	}
	content, _ := ctx.parseDelimited(terminator)
	if ctx.cfg.XMLTags {
		content = append(content, '?')
	}
	tok.typ = node.ProcInsNode
	tok.span = ctx.doc.AppendText(content)
}

// skipDecl drops "<!...>" declarations other than comments, CDATA,
// marked sections and DOCTYPE.
func (ctx *parserCtx) skipDecl() {
	for !ctx.curDone() {
		c := ctx.curPeek(1)
		ctx.curAdvance(1)
		if c == '>' {
			return
		}
	}
}
