// Package node implements the document tree. Nodes live in an arena
// owned by a Document and refer to each other by ID, so a tree can be
// mutated without any node pointing at freed memory.
package node

import (
	"errors"
)

// ID identifies a node within its Document. The zero ID means "none".
type ID uint32

const (
	Nil  ID = 0
	Root ID = 1
)

// Type is the kind of a node.
type Type int

const (
	RootNode Type = iota + 1
	DocTypeNode
	CommentNode
	ProcInsNode
	TextNode
	StartTagNode
	EndTagNode
	StartEndTagNode
	CDATANode
	SectionNode
	ASPNode
	JSTENode
	PHPNode
)

func (t Type) String() string {
	switch t {
	case RootNode:
		return "Root"
	case DocTypeNode:
		return "DocType"
	case CommentNode:
		return "Comment"
	case ProcInsNode:
		return "ProcIns"
	case TextNode:
		return "Text"
	case StartTagNode:
		return "StartTag"
	case EndTagNode:
		return "EndTag"
	case StartEndTagNode:
		return "StartEndTag"
	case CDATANode:
		return "CDATA"
	case SectionNode:
		return "Section"
	case ASPNode:
		return "ASP"
	case JSTENode:
		return "JSTE"
	case PHPNode:
		return "PHP"
	}
	return "Invalid"
}

// IsElement reports whether t is one of the element kinds.
func (t Type) IsElement() bool {
	return t == StartTagNode || t == StartEndTagNode
}

var (
	ErrHierarchyViolation = errors.New("node hierarchy violation")
	ErrNotFound           = errors.New("node not found")
	ErrInvalidNode        = errors.New("invalid node")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrCorruptTree        = errors.New("corrupt tree")
)

// Span is a half-open byte range into the document buffer.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}
