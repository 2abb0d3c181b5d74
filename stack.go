package tidy

import (
	"github.com/lestrrat-go/tidy/dict"
	"github.com/lestrrat-go/tidy/internal/stack"
	"github.com/lestrrat-go/tidy/node"
	"golang.org/x/net/html/atom"
)

// tagAtom returns the atom of a dictionary entry, or zero for names the
// dictionary does not know.
func tagAtom(tag *dict.Tag) atom.Atom {
	if tag == nil {
		return 0
	}
	return tag.Atom
}

// frame is an element on the open-element stack.
type frame struct {
	id   node.ID
	name string
	tag  *dict.Tag
	// depth of the inline stack when the element was opened
	istack int
}

func (f frame) atom() atom.Atom {
	return tagAtom(f.tag)
}

func (f frame) rule() dict.ParseRule {
	if f.tag == nil {
		return dict.RuleNone
	}
	return f.tag.Rule
}

func (f frame) model() dict.ContentModel {
	if f.tag == nil {
		return dict.CMUnknown
	}
	return f.tag.Model
}

type nodeStack struct {
	stack.Stack[frame]
}

func (s *nodeStack) Top() (frame, bool) {
	return s.Peek()
}

// At returns the frame i positions below the top.
func (s *nodeStack) At(i int) frame {
	return s.Stack[len(s.Stack)-1-i]
}

// Find returns the distance from the top to the nearest frame matching
// match, stopping at the first frame matching stop. It returns -1 when
// nothing matches.
func (s *nodeStack) Find(match, stop func(frame) bool) int {
	for i := range s.Len() {
		f := s.At(i)
		if match(f) {
			return i
		}
		if stop != nil && stop(f) {
			return -1
		}
	}
	return -1
}

// inlineRecord remembers a formatting element so that it can be opened
// again after a block boundary.
type inlineRecord struct {
	name  string
	tag   *dict.Tag
	attrs []node.AttVal
}

type inlineStack struct {
	stack.Stack[inlineRecord]
}

// RemoveLast deletes the topmost record named name.
func (s *inlineStack) RemoveLast(name string) bool {
	for i := s.Len() - 1; i >= 0; i-- {
		if s.Stack[i].name == name {
			s.Remove(i)
			return true
		}
	}
	return false
}
