package tidy

import (
	"slices"

	"github.com/lestrrat-go/pdebug"
	"github.com/lestrrat-go/tidy/dict"
	"github.com/lestrrat-go/tidy/node"
	"golang.org/x/net/html/atom"
)

// bound on implied elements and fostering steps while placing one token
const maxPlaceSteps = 64

type action int

const (
	actAccept action = iota
	actClose
	actImply
	actFoster
	actDiscard
)

func (a action) String() string {
	switch a {
	case actAccept:
		return "accept"
	case actClose:
		return "close"
	case actImply:
		return "imply"
	case actFoster:
		return "foster"
	case actDiscard:
		return "discard"
	}
	return "unknown"
}

// content is what is about to be placed: an element or a run of text.
type content struct {
	name  string
	tag   *dict.Tag
	text  bool
	blank bool
}

func (c content) atom() atom.Atom {
	return tagAtom(c.tag)
}

func (c content) isInline() bool {
	return c.tag != nil && c.tag.Model.IsSet(dict.CMInline) && !c.tag.Model.IsSet(dict.CMBlock)
}

type treeBuilder struct {
	ctx    *parserCtx
	doc    *node.Document
	xml    bool
	open   nodeStack
	inline inlineStack
	// formatting elements closed while placing the current token
	pending []inlineRecord

	html, head, body node.ID
	line, column     int
}

var tableParts = map[atom.Atom]struct{}{
	atom.Caption:  {},
	atom.Col:      {},
	atom.Colgroup: {},
	atom.Tbody:    {},
	atom.Td:       {},
	atom.Tfoot:    {},
	atom.Th:       {},
	atom.Thead:    {},
	atom.Tr:       {},
}

func isTablePart(a atom.Atom) bool {
	_, ok := tableParts[a]
	return ok
}

func isCell(a atom.Atom) bool {
	return a == atom.Td || a == atom.Th
}

// isBarrier reports whether f isolates its content: the walk for
// generic content and end tags stops there, and inline records made
// inside it die with it.
func isBarrier(f frame) bool {
	switch f.atom() {
	case atom.Body, atom.Td, atom.Th, atom.Table, atom.Caption, atom.Object, atom.Applet:
		return true
	}
	return false
}

func isTableFrame(f frame) bool {
	switch f.rule() {
	case dict.RuleTable, dict.RuleRowGroup, dict.RuleRow, dict.RuleColGroup:
		return true
	}
	return isCell(f.atom()) || f.atom() == atom.Caption
}

// isFormatting reports whether an element of this kind is reopened
// after a block boundary closes it.
func isFormatting(f frame) bool {
	if f.tag == nil || f.tag.Rule != dict.RuleInline || !f.tag.Model.IsSet(dict.CMInline) {
		return false
	}
	if f.tag.Model.IsSet(dict.CMBlock | dict.CMMixed | dict.CMTable | dict.CMDefList | dict.CMField) {
		return false
	}
	return f.atom() != atom.A
}

func isHeadContent(tag *dict.Tag) bool {
	return tag != nil && tag.Model.IsSet(dict.CMHead) && tag.Rule != dict.RuleBlock
}

func (ctx *parserCtx) parseDocument() {
	b := &treeBuilder{
		ctx: ctx,
		doc: ctx.doc,
		xml: ctx.cfg.XMLTags,
	}
	for tok := ctx.nextToken(); tok != nil; tok = ctx.nextToken() {
		b.handle(tok)
		if ctx.onToken != nil {
			ctx.onToken(ctx.doc)
		}
	}
	b.finish()
}

func (b *treeBuilder) current() node.ID {
	if f, ok := b.open.Top(); ok {
		return f.id
	}
	return node.Root
}

func (b *treeBuilder) handle(tok *token) {
	b.line, b.column = tok.line, tok.column
	switch tok.typ {
	case node.TextNode:
		if b.xml {
			b.xmlText(tok)
		} else {
			b.text(tok)
		}
	case node.StartTagNode, node.StartEndTagNode:
		if b.xml {
			b.xmlStartTag(tok)
		} else {
			b.startTag(tok)
		}
	case node.EndTagNode:
		if b.xml {
			b.xmlEndTag(tok)
		} else {
			b.endTag(tok)
		}
	case node.CommentNode, node.CDATANode:
		b.insertLeaf(b.doc.CreateLeaf(tok.typ, tok.span))
	case node.ProcInsNode:
		b.insertLeaf(b.doc.CreateProcInsSpan(tok.name, tok.span))
	case node.SectionNode, node.ASPNode, node.JSTENode, node.PHPNode:
		// only elements take these; outside one they go into html
		if !b.xml && b.current() == node.Root {
			b.ensureHTML()
		}
		b.insertLeaf(b.doc.CreateLeaf(tok.typ, tok.span))
	case node.DocTypeNode:
		b.doctype(tok)
	}
}

func (b *treeBuilder) insertLeaf(id node.ID) {
	b.doc.SetPosition(id, b.line, b.column)
	b.insert(b.current(), node.Nil, id)
}

// insert places id under parent, before ref when ref is not Nil. A node
// the tree refuses is reported and discarded.
func (b *treeBuilder) insert(parent, ref, id node.ID) bool {
	var err error
	if ref != node.Nil {
		err = b.doc.InsertBefore(parent, id, ref)
	} else {
		err = b.doc.InsertAtEnd(parent, id)
	}
	if err != nil {
		if pdebug.Enabled {
			pdebug.Printf("discarding %s: %s", b.doc.Name(id), err)
		}
		b.ctx.reportNode(DiscardingUnexpected, id, nil)
		_ = b.doc.Discard(id)
		return false
	}
	return true
}

func (b *treeBuilder) discardToken(tok *token) {
	b.ctx.report(Diagnostic{
		Code:    DiscardingUnexpected,
		Element: tok.name,
		Line:    tok.line,
		Column:  tok.column,
	})
}

func (b *treeBuilder) doctype(tok *token) {
	id := b.doc.CreateLeaf(node.DocTypeNode, tok.span)
	b.doc.SetPosition(id, tok.line, tok.column)

	misplaced := b.doc.DocumentElement() != node.Nil
	for c := range b.doc.Children(node.Root) {
		if b.doc.Type(c) == node.DocTypeNode {
			misplaced = true
		}
	}
	if misplaced {
		b.ctx.reportNode(DiscardingUnexpected, id, nil)
		_ = b.doc.Discard(id)
		return
	}
	if b.insert(node.Root, node.Nil, id) {
		b.doc.SetDeclaredVersion(dict.VersionFromFPI(string(b.doc.Text(id))))
	}
}

// createElement builds the element for tok and validates its tag and
// attributes. The element is not yet attached.
func (b *treeBuilder) createElement(tok *token) node.ID {
	id := b.doc.CreateElement(tok.name, node.StartEndTagNode)
	b.doc.SetPosition(id, tok.line, tok.column)
	for _, av := range tok.attrs {
		b.doc.AddAttr(id, av)
	}
	if !b.xml {
		b.checkTag(id)
	}
	b.ctx.checkAttributes(id)
	return id
}

func (b *treeBuilder) checkTag(id node.ID) {
	tag := b.doc.Tag(id)
	if tag == nil {
		if !b.ctx.cfg.AllowProprietary {
			b.ctx.reportNode(UnknownElement, id, nil)
		}
		return
	}
	b.doc.ConstrainVersion(tag.Versions)
	if tag.Model.IsSet(dict.CMObsolete) {
		b.ctx.reportNode(ObsoleteElement, id, nil)
	}
}

// createImplied builds an element the markup left out.
func (b *treeBuilder) createImplied(name string, report bool) node.ID {
	id := b.doc.CreateElement(name, node.StartEndTagNode)
	b.doc.SetImplicit(id, true)
	b.doc.SetPosition(id, b.line, b.column)
	if tag := b.doc.Tag(id); tag != nil {
		b.doc.ConstrainVersion(tag.Versions)
	}
	if report {
		b.ctx.reportNode(InsertingTag, id, nil)
	}
	return id
}

func (b *treeBuilder) push(id node.ID) {
	b.open.Push(frame{
		id:     id,
		name:   b.doc.Name(id),
		tag:    b.doc.Tag(id),
		istack: b.inline.Len(),
	})
}

func (b *treeBuilder) isOpen(id node.ID) bool {
	return b.open.Find(func(f frame) bool { return f.id == id }, nil) >= 0
}

// popExplicit closes the top element because its end tag was seen.
func (b *treeBuilder) popExplicit() {
	if f, ok := b.open.Pop(); ok {
		b.closed(f)
	}
}

// popImplicit closes the top element without an end tag.
func (b *treeBuilder) popImplicit() {
	f, ok := b.open.Pop()
	if !ok {
		return
	}
	if pdebug.Enabled {
		pdebug.Printf("implicitly closing %s", f.name)
	}
	if b.xml {
		b.ctx.reportNode(MissingEndTag, f.id, nil)
		return
	}
	if isFormatting(f) {
		b.pending = append(b.pending, inlineRecord{
			name:  f.name,
			tag:   f.tag,
			attrs: slices.Clone(b.doc.Attrs(f.id)),
		})
	}
	if !f.model().IsSet(dict.CMOpt) {
		b.ctx.reportNode(MissingEndTag, f.id, nil)
	}
	b.closed(f)
}

func (b *treeBuilder) closed(f frame) {
	if isBarrier(f) {
		b.inline.Truncate(f.istack)
		b.pending = b.pending[:0]
	}
}

// popN implicitly closes the top n elements.
func (b *treeBuilder) popN(n int) {
	for range n {
		b.popImplicit()
	}
}

// closeAbove implicitly closes everything opened after id.
func (b *treeBuilder) closeAbove(id node.ID) {
	for {
		f, ok := b.open.Top()
		if !ok || f.id == id {
			return
		}
		b.popImplicit()
	}
}

// flushPending moves the formatting elements closed by the last token
// onto the inline stack, outermost first.
func (b *treeBuilder) flushPending() {
	for i := len(b.pending) - 1; i >= 0; i-- {
		b.inline.Push(b.pending[i])
	}
	b.pending = b.pending[:0]
}

func (b *treeBuilder) ensureHTML() {
	if b.html != node.Nil {
		return
	}
	id := b.createImplied("html", false)
	if b.insert(node.Root, node.Nil, id) {
		b.html = id
		b.push(id)
	}
}

func (b *treeBuilder) ensureHead() {
	b.ensureHTML()
	if b.head != node.Nil {
		return
	}
	b.closeAbove(b.html)
	id := b.createImplied("head", false)
	if b.insert(b.html, node.Nil, id) {
		b.head = id
		b.push(id)
	}
}

func (b *treeBuilder) ensureBody() {
	if b.body != node.Nil {
		return
	}
	b.ensureHTML()
	b.closeAbove(b.html)
	id := b.createImplied("body", false)
	if b.insert(b.html, node.Nil, id) {
		b.body = id
		b.push(id)
	}
}

func (b *treeBuilder) startTag(tok *token) {
	defer b.flushPending()

	tag, _ := dict.Tags().Lookup(tok.name)
	switch tagAtom(tag) {
	case atom.Html:
		if b.html != node.Nil {
			b.discardToken(tok)
			return
		}
		id := b.createElement(tok)
		if b.insert(node.Root, node.Nil, id) {
			b.html = id
			b.push(id)
		}
		return
	case atom.Head:
		if b.head != node.Nil || b.body != node.Nil {
			b.discardToken(tok)
			return
		}
		b.ensureHTML()
		b.closeAbove(b.html)
		id := b.createElement(tok)
		if b.insert(b.html, node.Nil, id) {
			b.head = id
			b.push(id)
		}
		return
	case atom.Body, atom.Frameset:
		if b.body != node.Nil {
			b.discardToken(tok)
			return
		}
		b.ensureHTML()
		b.closeAbove(b.html)
		id := b.createElement(tok)
		if b.insert(b.html, node.Nil, id) {
			b.body = id
			b.push(id)
		}
		return
	}

	in := content{name: tok.name, tag: tag}
	if b.body == node.Nil && isHeadContent(tag) {
		b.ensureHead()
		if !b.isOpen(b.head) {
			b.push(b.head)
		}
	} else {
		b.ensureBody()
	}

	b.closeForScope(in)
	parent, ref, ok := b.place(in)
	if !ok {
		b.discardToken(tok)
		return
	}

	id := b.createElement(tok)
	if !b.insert(parent, ref, id) {
		return
	}
	if tok.typ == node.StartEndTagNode || (tag != nil && tag.IsEmpty()) {
		return
	}
	b.push(id)
	if tag != nil && tag.IsRawText() {
		b.ctx.rawText = tok.name
	}
}

// closeForScope closes the elements that a start tag ends by itself:
// li ends li, dt and dd end each other, a ends a, and table parts end
// whatever is open inside the current table structure.
func (b *treeBuilder) closeForScope(in content) {
	switch a := in.atom(); {
	case a == atom.Li:
		b.closeNearest(
			func(f frame) bool { return f.atom() == atom.Li },
			func(f frame) bool { return f.rule() == dict.RuleList || isBarrier(f) },
		)
	case a == atom.Dt || a == atom.Dd:
		b.closeNearest(
			func(f frame) bool { return f.atom() == atom.Dt || f.atom() == atom.Dd },
			func(f frame) bool { return f.rule() == dict.RuleDefList || isBarrier(f) },
		)
	case a == atom.A:
		b.closeNearest(func(f frame) bool { return f.atom() == atom.A }, isBarrier)
	case isTablePart(a):
		i := b.open.Find(isTableFrame, isBarrier)
		if i < 0 {
			return
		}
		if f := b.open.At(i); isCell(f.atom()) || f.atom() == atom.Caption {
			b.popN(i + 1)
			return
		}
		b.popN(i)
	}
}

func (b *treeBuilder) closeNearest(match, stop func(frame) bool) {
	if i := b.open.Find(match, stop); i >= 0 {
		b.popN(i + 1)
	}
}

// place walks down from the top of the open-element stack until some
// element takes the content. It returns the parent for the content and
// the node it goes before, if any.
func (b *treeBuilder) place(in content) (node.ID, node.ID, bool) {
	for range b.open.Len() + maxPlaceSteps {
		top, ok := b.open.Top()
		if !ok {
			return node.Nil, node.Nil, false
		}

		act, implied := decide(top, in)
		if pdebug.Enabled {
			pdebug.Printf("place %q in %s: %s %s", in.name, top.name, act, implied)
		}
		switch act {
		case actAccept:
			b.flushPending()
			if reopensInline(top, in) {
				b.reopenInlines()
			}
			return b.current(), node.Nil, true
		case actClose:
			if top.id == b.html || top.id == b.body {
				return node.Nil, node.Nil, false
			}
			b.popImplicit()
		case actImply:
			id := b.createImplied(implied.String(), true)
			if !b.insert(top.id, node.Nil, id) {
				return node.Nil, node.Nil, false
			}
			b.push(id)
		case actFoster:
			i := b.open.Find(func(f frame) bool { return f.rule() == dict.RuleTable }, nil)
			if i < 0 {
				return node.Nil, node.Nil, false
			}
			table := b.open.At(i).id
			return b.doc.Parent(table), table, true
		case actDiscard:
			return node.Nil, node.Nil, false
		}
	}
	return node.Nil, node.Nil, false
}

// decide answers how the open element top treats in. For actImply it
// also names the element to imply.
func decide(top frame, in content) (action, atom.Atom) {
	a := in.atom()
	switch top.rule() {
	case dict.RuleHTML, dict.RuleHead:
		return actAccept, 0
	case dict.RuleTitle, dict.RuleText, dict.RuleScript, dict.RuleEmpty:
		if in.text {
			return actAccept, 0
		}
		return actClose, 0
	case dict.RuleInline:
		if in.text || in.tag == nil || in.tag.Model.IsSet(dict.CMInline) {
			return actAccept, 0
		}
		return actClose, 0
	case dict.RuleList:
		if a == atom.Li || in.blank {
			return actAccept, 0
		}
		return actImply, atom.Li
	case dict.RuleDefList:
		if a == atom.Dt || a == atom.Dd || in.blank {
			return actAccept, 0
		}
		return actImply, atom.Dd
	case dict.RuleTable:
		switch {
		case in.blank:
			return actAccept, 0
		case isCell(a):
			return actImply, atom.Tr
		case isTablePart(a):
			return actAccept, 0
		}
		return actFoster, 0
	case dict.RuleRowGroup:
		switch {
		case in.blank, a == atom.Tr:
			return actAccept, 0
		case isCell(a):
			return actImply, atom.Tr
		case isTablePart(a):
			return actClose, 0
		}
		return actFoster, 0
	case dict.RuleRow:
		switch {
		case in.blank, isCell(a):
			return actAccept, 0
		case isTablePart(a):
			return actClose, 0
		}
		return actFoster, 0
	case dict.RuleColGroup:
		if in.blank || a == atom.Col {
			return actAccept, 0
		}
		return actClose, 0
	case dict.RuleSelect:
		switch {
		case in.blank, a == atom.Option, a == atom.Optgroup:
			return actAccept, 0
		case a == atom.Select:
			return actClose, 0
		}
		return actDiscard, 0
	case dict.RuleOptGroup:
		if in.blank || a == atom.Option {
			return actAccept, 0
		}
		return actClose, 0
	case dict.RuleFrameSet:
		switch a {
		case atom.Frame, atom.Frameset, atom.Noframes:
			return actAccept, 0
		}
		if in.blank {
			return actAccept, 0
		}
		return actDiscard, 0
	}

	// flow containers
	switch {
	case a == atom.Li:
		return actImply, atom.Ul
	case a == atom.Dt || a == atom.Dd:
		return actImply, atom.Dl
	case isTablePart(a), a == atom.Option, a == atom.Optgroup, a == atom.Frame:
		return actDiscard, 0
	}
	return actAccept, 0
}

func reopensInline(top frame, in content) bool {
	switch top.rule() {
	case dict.RuleBody, dict.RuleBlock, dict.RuleInline, dict.RulePre, dict.RuleNoFrames, dict.RuleNone:
	default:
		return false
	}
	return (in.text && !in.blank) || in.isInline()
}

// reopenInlines opens copies of the recorded formatting elements that
// belong to the innermost barrier.
func (b *treeBuilder) reopenInlines() {
	base := 0
	if i := b.open.Find(isBarrier, nil); i >= 0 {
		base = b.open.At(i).istack
	}
	if base >= b.inline.Len() {
		return
	}

	records := slices.Clone(b.inline.Stack[base:])
	b.inline.Truncate(base)
	for _, r := range records {
		id := b.createImplied(r.name, true)
		for _, av := range r.attrs {
			b.doc.AddAttr(id, av)
		}
		if !b.insert(b.current(), node.Nil, id) {
			continue
		}
		b.push(id)
	}
}

func (b *treeBuilder) text(tok *token) {
	defer b.flushPending()

	blank := isBlank(b.doc.Bytes(tok.span))
	if b.body == node.Nil {
		top, _ := b.open.Top()
		switch top.rule() {
		case dict.RuleTitle, dict.RuleScript, dict.RuleText:
		default:
			if blank {
				return
			}
			b.ensureBody()
		}
	}

	parent, ref, ok := b.place(content{name: "#text", text: true, blank: blank})
	if !ok {
		if !blank {
			b.discardToken(&token{name: "#text", line: tok.line, column: tok.column})
		}
		return
	}
	id := b.doc.CreateTextSpan(tok.span)
	b.doc.SetPosition(id, tok.line, tok.column)
	b.insert(parent, ref, id)
}

func (b *treeBuilder) endTag(tok *token) {
	defer b.flushPending()

	tag, known := dict.Tags().Lookup(tok.name)
	switch tagAtom(tag) {
	case atom.Html, atom.Body:
		return
	case atom.Head:
		if b.head == node.Nil || !b.isOpen(b.head) {
			b.discardToken(tok)
			return
		}
		b.closeAbove(b.head)
		b.popExplicit()
		return
	case atom.Br:
		b.startTag(&token{typ: node.StartEndTagNode, name: "br", line: tok.line, column: tok.column})
		return
	}

	if known && tag.IsEmpty() {
		b.discardToken(tok)
		return
	}

	stop := isBarrier
	switch tagAtom(tag) {
	case atom.Table, atom.Tr, atom.Thead, atom.Tbody, atom.Tfoot:
		stop = func(f frame) bool {
			return isBarrier(f) && !isCell(f.atom()) && f.atom() != atom.Caption
		}
	}
	i := b.open.Find(func(f frame) bool { return f.name == tok.name }, stop)
	if i < 0 {
		if b.inline.RemoveLast(tok.name) {
			return
		}
		b.discardToken(tok)
		return
	}
	b.popN(i)
	b.popExplicit()
}

func (b *treeBuilder) xmlStartTag(tok *token) {
	parent := b.current()
	id := b.createElement(tok)
	if !b.insert(parent, node.Nil, id) {
		return
	}
	if tok.typ == node.StartTagNode {
		b.push(id)
	}
}

func (b *treeBuilder) xmlEndTag(tok *token) {
	i := b.open.Find(func(f frame) bool { return f.name == tok.name }, nil)
	if i < 0 {
		b.discardToken(tok)
		return
	}
	b.popN(i)
	b.popExplicit()
}

func (b *treeBuilder) xmlText(tok *token) {
	parent := b.current()
	if parent == node.Root {
		if !isBlank(b.doc.Bytes(tok.span)) {
			b.discardToken(&token{name: "#text", line: tok.line, column: tok.column})
		}
		return
	}
	id := b.doc.CreateTextSpan(tok.span)
	b.doc.SetPosition(id, tok.line, tok.column)
	b.insert(parent, node.Nil, id)
}

// finish closes everything left open and completes the document
// skeleton.
func (b *treeBuilder) finish() {
	if b.xml {
		b.popN(b.open.Len())
		return
	}

	b.ensureHTML()
	if b.head == node.Nil {
		id := b.createImplied("head", false)
		if b.insert(b.html, b.doc.FirstChild(b.html), id) {
			b.head = id
		}
	}
	b.ensureBody()
	b.popN(b.open.Len())
	b.checkDeclaredVersion()

	if b.head == node.Nil {
		return
	}
	for c := range b.doc.Children(b.head) {
		if tagAtom(b.doc.Tag(c)) == atom.Title {
			return
		}
	}
	b.ctx.reportNode(MissingTitleElement, b.head, nil)
}

// checkDeclaredVersion reports a DOCTYPE whose version the content has
// ruled out.
func (b *treeBuilder) checkDeclaredVersion() {
	declared := b.doc.DeclaredVersion()
	if declared == dict.VersUnknown || b.doc.Versions().IsSet(declared) {
		return
	}
	for c := range b.doc.Children(node.Root) {
		if b.doc.Type(c) != node.DocTypeNode {
			continue
		}
		d := Diagnostic{
			Code:    InconsistentVersion,
			Node:    c,
			Element: "!DOCTYPE",
			Value:   b.doc.Versions().Apparent(),
		}
		d.Line, d.Column = b.doc.Position(c)
		b.ctx.report(d)
		return
	}
}
