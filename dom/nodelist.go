package dom

import (
	"iter"
	"strings"

	"github.com/lestrrat-go/tidy/node"
)

// NodeList is a live list. It is either the children of a node or the
// elements with a given name below it; the latter walks the tree in
// document order and stops as soon as the requested item is found.
type NodeList struct {
	owner    *Document
	root     node.ID
	name     string
	children bool
}

func (l *NodeList) items() iter.Seq[node.ID] {
	d := l.owner.doc
	if l.children {
		return d.Children(l.root)
	}
	return func(yield func(node.ID) bool) {
		for id := range d.Descendants(l.root, false) {
			if !d.Type(id).IsElement() {
				continue
			}
			if l.name != "*" && !strings.EqualFold(d.Name(id), l.name) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

func (l *NodeList) Item(i int) Node {
	if i < 0 {
		return nil
	}
	for id := range l.items() {
		if i == 0 {
			return l.owner.wrap(id)
		}
		i--
	}
	return nil
}

func (l *NodeList) Length() int {
	var n int
	for range l.items() {
		n++
	}
	return n
}
