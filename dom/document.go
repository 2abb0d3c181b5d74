package dom

import (
	"strings"

	"github.com/lestrrat-go/tidy/node"
)

type Document struct {
	treeNode
	doc   *node.Document
	nodes map[node.ID]Node
	attrs map[uint32]*Attr
}

// New wraps doc. Changes made through either view are visible in the
// other.
func New(doc *node.Document) *Document {
	d := &Document{
		doc:   doc,
		nodes: make(map[node.ID]Node),
		attrs: make(map[uint32]*Attr),
	}
	d.treeNode = treeNode{owner: d, nid: node.Root}
	return d
}

func NewDocument() *Document {
	return New(node.NewDocument())
}

// Node returns the wrapped document.
func (d *Document) Node() *node.Document {
	return d.doc
}

func (d *Document) wrap(id node.ID) Node {
	if id == node.Nil || !d.doc.Valid(id) {
		return nil
	}
	if id == node.Root {
		return d
	}
	if n, ok := d.nodes[id]; ok {
		return n
	}

	t := treeNode{owner: d, nid: id}
	var n Node
	switch d.doc.Type(id) {
	case node.StartTagNode, node.StartEndTagNode:
		n = &Element{t}
	case node.TextNode:
		n = &Text{CharacterData{t}}
	case node.CommentNode:
		n = &Comment{CharacterData{t}}
	case node.CDATANode:
		n = &CDATASection{CharacterData{t}}
	case node.DocTypeNode:
		n = &DocumentType{t}
	default:
		n = &ProcessingInstruction{t}
	}
	d.nodes[id] = n
	return n
}

func (d *Document) element(id node.ID) *Element {
	if e, ok := d.wrap(id).(*Element); ok {
		return e
	}
	return nil
}

// attr returns the adapter for the i-th attribute of element id.
func (d *Document) attr(id node.ID, i int) *Attr {
	av := d.doc.Attr(id, i)
	if av == nil {
		return nil
	}
	if a, ok := d.attrs[av.Serial()]; ok {
		return a
	}
	a := &Attr{owner: d, el: id, serial: av.Serial()}
	d.attrs[av.Serial()] = a
	return a
}

// removeAttr detaches the i-th attribute of element id. A cached
// adapter keeps a copy of the value.
func (d *Document) removeAttr(id node.ID, i int) {
	av, ok := d.doc.RemoveAttr(id, i)
	if !ok {
		return
	}
	if a, ok := d.attrs[av.Serial()]; ok {
		a.el = node.Nil
		a.val = av
		delete(d.attrs, av.Serial())
	}
}

func (d *Document) NodeName() string {
	return "#document"
}

func (d *Document) CloneNode(bool) (Node, error) {
	return nil, node.ErrInvalidOperation
}

func (d *Document) CreateElement(name string) *Element {
	return d.element(d.doc.CreateElement(name, node.StartEndTagNode))
}

func (d *Document) CreateTextNode(data string) *Text {
	return d.wrap(d.doc.CreateText([]byte(data))).(*Text)
}

func (d *Document) CreateComment(data string) *Comment {
	return d.wrap(d.doc.CreateComment([]byte(data))).(*Comment)
}

func (d *Document) CreateCDATASection(data string) *CDATASection {
	return d.wrap(d.doc.CreateCDATA([]byte(data))).(*CDATASection)
}

func (d *Document) CreateProcessingInstruction(target, data string) *ProcessingInstruction {
	content := target
	if data != "" {
		content += " " + data
	}
	return d.wrap(d.doc.CreateProcIns(target, []byte(content+"?"))).(*ProcessingInstruction)
}

// CreateAttribute returns an attribute that belongs to no element.
func (d *Document) CreateAttribute(name string) *Attr {
	return &Attr{owner: d, val: node.AttVal{Name: name}}
}

func (d *Document) DocumentElement() *Element {
	return d.element(d.doc.DocumentElement())
}

func (d *Document) Doctype() *DocumentType {
	for c := range d.doc.Children(node.Root) {
		if d.doc.Type(c) == node.DocTypeNode {
			return d.wrap(c).(*DocumentType)
		}
	}
	return nil
}

// GetElementsByTagName lists the elements called name in document
// order. "*" matches every element.
func (d *Document) GetElementsByTagName(name string) *NodeList {
	return &NodeList{owner: d, root: node.Root, name: name}
}

type DocumentType struct {
	treeNode
}

func (t *DocumentType) Name() string {
	return doctypeName(t.owner.doc.Text(t.nid))
}

func (t *DocumentType) PublicID() string {
	public, _ := doctypeIDs(string(t.owner.doc.Text(t.nid)))
	return public
}

func (t *DocumentType) SystemID() string {
	_, system := doctypeIDs(string(t.owner.doc.Text(t.nid)))
	return system
}

func doctypeName(b []byte) string {
	if f := strings.Fields(string(b)); len(f) > 0 {
		return f[0]
	}
	return ""
}

// doctypeIDs extracts the quoted identifiers following PUBLIC or SYSTEM.
func doctypeIDs(s string) (public, system string) {
	f := strings.Fields(s)
	if len(f) < 2 {
		return "", ""
	}
	keyword := strings.ToUpper(f[1])
	rest := s[strings.Index(s, f[1])+len(f[1]):]

	var quoted []string
	for len(quoted) < 2 {
		rest = strings.TrimLeft(rest, " \t\r\n")
		if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
			break
		}
		end := strings.IndexByte(rest[1:], rest[0])
		if end < 0 {
			break
		}
		quoted = append(quoted, rest[1:end+1])
		rest = rest[end+2:]
	}

	switch {
	case keyword == "PUBLIC" && len(quoted) > 0:
		public = quoted[0]
		if len(quoted) > 1 {
			system = quoted[1]
		}
	case keyword == "SYSTEM" && len(quoted) > 0:
		system = quoted[0]
	}
	return public, system
}
