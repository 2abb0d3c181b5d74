package node

import (
	"iter"

	"github.com/lestrrat-go/tidy/dict"
)

// treeNode is the part of a record that handles the tree structure.
type treeNode struct {
	parent     ID
	firstChild ID
	lastChild  ID
	prev       ID
	next       ID
}

type record struct {
	treeNode
	typ      Type
	name     string
	tag      *dict.Tag
	span     Span
	attrs    []AttVal
	implicit bool
	line     int
	column   int
	dead     bool
}

// Document owns every node of one tree together with the text buffer
// that text-like nodes point into. IDs are never reused.
type Document struct {
	recs       []record
	buf        []byte
	versions   dict.Version
	declared   dict.Version
	attrSerial uint32
}

func NewDocument() *Document {
	doc := &Document{
		recs:     make([]record, Root+1, 64),
		versions: dict.VersAny,
	}
	doc.recs[Root] = record{typ: RootNode, name: "#document"}
	return doc
}

func (d *Document) alloc(r record) ID {
	d.recs = append(d.recs, r)
	return ID(len(d.recs) - 1)
}

func (d *Document) rec(id ID) *record {
	if id == Nil || int(id) >= len(d.recs) {
		return nil
	}
	r := &d.recs[id]
	if r.dead {
		return nil
	}
	return r
}

// Valid reports whether id names a live node of this document.
func (d *Document) Valid(id ID) bool {
	return d.rec(id) != nil
}

// Len is the number of records ever allocated, including the root.
func (d *Document) Len() int {
	return len(d.recs) - 1
}

// CreateElement allocates a detached element. The tag is resolved
// through the tag dictionary; unknown names get a nil tag.
func (d *Document) CreateElement(name string, typ Type) ID {
	if !typ.IsElement() {
		typ = StartTagNode
	}
	tag, _ := dict.Tags().Lookup(name)
	return d.alloc(record{typ: typ, name: name, tag: tag})
}

// AppendText copies b into the document buffer.
func (d *Document) AppendText(b []byte) Span {
	start := len(d.buf)
	d.buf = append(d.buf, b...)
	return Span{Start: start, End: len(d.buf)}
}

func (d *Document) createLeaf(typ Type, name string, span Span) ID {
	return d.alloc(record{typ: typ, name: name, span: span})
}

// CreateTextSpan allocates a text node over bytes already in the buffer.
func (d *Document) CreateTextSpan(span Span) ID {
	return d.createLeaf(TextNode, "#text", span)
}

func (d *Document) CreateText(b []byte) ID {
	return d.CreateTextSpan(d.AppendText(b))
}

func (d *Document) CreateComment(b []byte) ID {
	return d.createLeaf(CommentNode, "#comment", d.AppendText(b))
}

func (d *Document) CreateCDATA(b []byte) ID {
	return d.createLeaf(CDATANode, "#cdata-section", d.AppendText(b))
}

// CreateDocType allocates a DOCTYPE node. b is everything between
// "<!DOCTYPE" and ">".
func (d *Document) CreateDocType(b []byte) ID {
	return d.createLeaf(DocTypeNode, "#doctype", d.AppendText(b))
}

// CreateProcIns allocates a processing instruction. b is everything
// between "<?" and ">".
func (d *Document) CreateProcIns(target string, b []byte) ID {
	return d.CreateProcInsSpan(target, d.AppendText(b))
}

func (d *Document) CreateProcInsSpan(target string, span Span) ID {
	return d.createLeaf(ProcInsNode, target, span)
}

// CreateLeaf allocates a text-like node of the given type over span.
func (d *Document) CreateLeaf(typ Type, span Span) ID {
	switch typ {
	case TextNode:
		return d.CreateTextSpan(span)
	case CommentNode:
		return d.createLeaf(typ, "#comment", span)
	case CDATANode:
		return d.createLeaf(typ, "#cdata-section", span)
	case DocTypeNode:
		return d.createLeaf(typ, "#doctype", span)
	case SectionNode:
		return d.createLeaf(typ, "#section", span)
	case ASPNode:
		return d.createLeaf(typ, "#asp", span)
	case JSTENode:
		return d.createLeaf(typ, "#jste", span)
	case PHPNode:
		return d.createLeaf(typ, "#php", span)
	}
	return d.createLeaf(typ, "", span)
}

func (d *Document) Type(id ID) Type {
	if r := d.rec(id); r != nil {
		return r.typ
	}
	return 0
}

func (d *Document) Name(id ID) string {
	if r := d.rec(id); r != nil {
		return r.name
	}
	return ""
}

// Tag returns the dictionary entry of an element, or nil.
func (d *Document) Tag(id ID) *dict.Tag {
	if r := d.rec(id); r != nil {
		return r.tag
	}
	return nil
}

func (d *Document) Parent(id ID) ID {
	if r := d.rec(id); r != nil {
		return r.parent
	}
	return Nil
}

func (d *Document) FirstChild(id ID) ID {
	if r := d.rec(id); r != nil {
		return r.firstChild
	}
	return Nil
}

func (d *Document) LastChild(id ID) ID {
	if r := d.rec(id); r != nil {
		return r.lastChild
	}
	return Nil
}

func (d *Document) NextSibling(id ID) ID {
	if r := d.rec(id); r != nil {
		return r.next
	}
	return Nil
}

func (d *Document) PrevSibling(id ID) ID {
	if r := d.rec(id); r != nil {
		return r.prev
	}
	return Nil
}

func (d *Document) Span(id ID) Span {
	if r := d.rec(id); r != nil {
		return r.span
	}
	return Span{}
}

// Text returns the bytes of a text-like node. The slice aliases the
// document buffer.
func (d *Document) Text(id ID) []byte {
	r := d.rec(id)
	if r == nil || r.span.End <= r.span.Start {
		return nil
	}
	return d.buf[r.span.Start:r.span.End:r.span.End]
}

// SetText points a text-like node at a fresh copy of b.
func (d *Document) SetText(id ID, b []byte) error {
	r := d.rec(id)
	if r == nil {
		return ErrInvalidNode
	}
	if r.typ.IsElement() || r.typ == RootNode || r.typ == EndTagNode {
		return ErrInvalidOperation
	}
	r.span = d.AppendText(b)
	return nil
}

func (d *Document) Bytes(s Span) []byte {
	if s.Start < 0 || s.End > len(d.buf) || s.End <= s.Start {
		return nil
	}
	return d.buf[s.Start:s.End:s.End]
}

// Content appends the text of id and all of its descendants to dst.
func (d *Document) Content(id ID, dst []byte) []byte {
	for n := range d.Descendants(id, true) {
		if t := d.Type(n); t == TextNode || t == CDATANode {
			dst = append(dst, d.Text(n)...)
		}
	}
	return dst
}

func (d *Document) Implicit(id ID) bool {
	if r := d.rec(id); r != nil {
		return r.implicit
	}
	return false
}

// SetImplicit marks an element as inferred rather than read from input.
func (d *Document) SetImplicit(id ID, v bool) {
	if r := d.rec(id); r != nil {
		r.implicit = v
	}
}

func (d *Document) Position(id ID) (line, column int) {
	if r := d.rec(id); r != nil {
		return r.line, r.column
	}
	return 0, 0
}

func (d *Document) SetPosition(id ID, line, column int) {
	if r := d.rec(id); r != nil {
		r.line = line
		r.column = column
	}
}

// DocumentElement returns the element child of the root, if any.
func (d *Document) DocumentElement() ID {
	for c := d.recs[Root].firstChild; c != Nil; c = d.recs[c].next {
		if d.recs[c].typ.IsElement() {
			return c
		}
	}
	return Nil
}

func (d *Document) Versions() dict.Version {
	return d.versions
}

// ConstrainVersion narrows the version mask and returns the result.
func (d *Document) ConstrainVersion(v dict.Version) dict.Version {
	d.versions = d.versions.Constrain(v)
	return d.versions
}

// DeclaredVersion is the version named by the DOCTYPE, if any.
func (d *Document) DeclaredVersion() dict.Version {
	return d.declared
}

func (d *Document) SetDeclaredVersion(v dict.Version) {
	d.declared = v
}

// Children iterates over the direct children of id.
func (d *Document) Children(id ID) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		if d.rec(id) == nil {
			return
		}
		for c := d.recs[id].firstChild; c != Nil; {
			next := d.recs[c].next
			if !yield(c) {
				return
			}
			c = next
		}
	}
}

// Descendants iterates over the subtree below id in document order.
// The subtree must not be modified during iteration.
func (d *Document) Descendants(id ID, includeSelf bool) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		if d.rec(id) == nil {
			return
		}
		if includeSelf && !yield(id) {
			return
		}
		n := d.recs[id].firstChild
		for n != Nil {
			if !yield(n) {
				return
			}
			if c := d.recs[n].firstChild; c != Nil {
				n = c
				continue
			}
			for n != id && d.recs[n].next == Nil {
				n = d.recs[n].parent
			}
			if n == id {
				return
			}
			n = d.recs[n].next
		}
	}
}

// Walk calls fn for every node of the subtree in document order, stopping
// at the first error.
func (d *Document) Walk(id ID, fn func(ID) error) error {
	for n := range d.Descendants(id, true) {
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}
