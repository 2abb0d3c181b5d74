// Package dom presents a node.Document through a W3C DOM style API.
// Every adapter is cached per node, so the same node always yields the
// same Go value and identity comparisons hold.
package dom

import (
	"errors"

	"github.com/lestrrat-go/tidy/node"
)

var (
	ErrHierarchyViolation = node.ErrHierarchyViolation
	ErrNotFound           = node.ErrNotFound
	ErrWrongDocument      = errors.New("node belongs to a different document")
	ErrInUseAttribute     = errors.New("attribute is already in use by another element")
	ErrIndexSize          = errors.New("index or size is negative or out of range")
)

type NodeType int

const (
	ElementNode               NodeType = 1
	AttributeNode             NodeType = 2
	TextNode                  NodeType = 3
	CDATASectionNode          NodeType = 4
	ProcessingInstructionNode NodeType = 7
	CommentNode               NodeType = 8
	DocumentNode              NodeType = 9
	DocumentTypeNode          NodeType = 10
)

type Node interface {
	NodeName() string
	NodeType() NodeType
	NodeValue() string
	ParentNode() Node
	FirstChild() Node
	LastChild() Node
	PreviousSibling() Node
	NextSibling() Node
	ChildNodes() *NodeList
	HasChildNodes() bool
	OwnerDocument() *Document
	InsertBefore(newChild, refChild Node) (Node, error)
	ReplaceChild(newChild, oldChild Node) (Node, error)
	RemoveChild(oldChild Node) (Node, error)
	AppendChild(newChild Node) (Node, error)
	CloneNode(deep bool) (Node, error)

	base() *treeNode
}

// treeNode carries the parts every adapter shares.
type treeNode struct {
	owner *Document
	nid   node.ID
}

func (n *treeNode) base() *treeNode {
	return n
}

// ID returns the underlying node.
func (n *treeNode) ID() node.ID {
	return n.nid
}

func (n *treeNode) NodeName() string {
	d := n.owner.doc
	switch d.Type(n.nid) {
	case node.TextNode:
		return "#text"
	case node.CommentNode:
		return "#comment"
	case node.CDATANode:
		return "#cdata-section"
	case node.RootNode:
		return "#document"
	case node.DocTypeNode:
		return doctypeName(d.Text(n.nid))
	}
	return d.Name(n.nid)
}

func (n *treeNode) NodeType() NodeType {
	switch n.owner.doc.Type(n.nid) {
	case node.StartTagNode, node.StartEndTagNode:
		return ElementNode
	case node.TextNode:
		return TextNode
	case node.CDATANode:
		return CDATASectionNode
	case node.CommentNode:
		return CommentNode
	case node.RootNode:
		return DocumentNode
	case node.DocTypeNode:
		return DocumentTypeNode
	}
	return ProcessingInstructionNode
}

func (n *treeNode) NodeValue() string {
	switch n.owner.doc.Type(n.nid) {
	case node.StartTagNode, node.StartEndTagNode, node.RootNode, node.DocTypeNode:
		return ""
	}
	return string(n.owner.doc.Text(n.nid))
}

func (n *treeNode) ParentNode() Node {
	return n.owner.wrap(n.owner.doc.Parent(n.nid))
}

func (n *treeNode) FirstChild() Node {
	return n.owner.wrap(n.owner.doc.FirstChild(n.nid))
}

func (n *treeNode) LastChild() Node {
	return n.owner.wrap(n.owner.doc.LastChild(n.nid))
}

func (n *treeNode) PreviousSibling() Node {
	return n.owner.wrap(n.owner.doc.PrevSibling(n.nid))
}

func (n *treeNode) NextSibling() Node {
	return n.owner.wrap(n.owner.doc.NextSibling(n.nid))
}

func (n *treeNode) HasChildNodes() bool {
	return n.owner.doc.FirstChild(n.nid) != node.Nil
}

func (n *treeNode) ChildNodes() *NodeList {
	return &NodeList{owner: n.owner, root: n.nid, children: true}
}

func (n *treeNode) OwnerDocument() *Document {
	if n.nid == node.Root {
		return nil
	}
	return n.owner
}

// adopt returns the node id of x after checking that it belongs to the
// same document as n.
func (n *treeNode) adopt(x Node) (node.ID, error) {
	if x == nil {
		return node.Nil, ErrNotFound
	}
	b := x.base()
	if b.owner != n.owner {
		return node.Nil, ErrWrongDocument
	}
	return b.nid, nil
}

func (n *treeNode) InsertBefore(newChild, refChild Node) (Node, error) {
	nid, err := n.adopt(newChild)
	if err != nil {
		return nil, err
	}
	ref := node.Nil
	if refChild != nil {
		if ref, err = n.adopt(refChild); err != nil {
			return nil, err
		}
	}
	if err := n.owner.doc.InsertBefore(n.nid, nid, ref); err != nil {
		return nil, err
	}
	return newChild, nil
}

func (n *treeNode) AppendChild(newChild Node) (Node, error) {
	return n.InsertBefore(newChild, nil)
}

func (n *treeNode) RemoveChild(oldChild Node) (Node, error) {
	old, err := n.adopt(oldChild)
	if err != nil {
		return nil, err
	}
	d := n.owner.doc
	if d.Parent(old) != n.nid {
		return nil, ErrNotFound
	}
	if err := d.Remove(old); err != nil {
		return nil, err
	}
	return oldChild, nil
}

// ReplaceChild removes oldChild and inserts newChild in its place. If
// the insertion is refused, oldChild is put back.
func (n *treeNode) ReplaceChild(newChild, oldChild Node) (Node, error) {
	nid, err := n.adopt(newChild)
	if err != nil {
		return nil, err
	}
	old, err := n.adopt(oldChild)
	if err != nil {
		return nil, err
	}

	d := n.owner.doc
	if d.Parent(old) != n.nid {
		return nil, ErrNotFound
	}
	if nid == old {
		return oldChild, nil
	}

	ref := d.NextSibling(old)
	if ref == nid {
		ref = d.NextSibling(nid)
	}
	if err := d.Remove(old); err != nil {
		return nil, err
	}
	if err := d.InsertBefore(n.nid, nid, ref); err != nil {
		_ = d.InsertBefore(n.nid, old, ref)
		return nil, err
	}
	return oldChild, nil
}

func (n *treeNode) CloneNode(deep bool) (Node, error) {
	id, err := n.owner.doc.Clone(n.nid, deep)
	if err != nil {
		return nil, err
	}
	return n.owner.wrap(id), nil
}
