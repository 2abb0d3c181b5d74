package node

import (
	"fmt"

	"github.com/lestrrat-go/tidy/dict"
)

// canContain reports whether a node of type child may be a child of a
// node of type parent. The single-element rule for the root is checked
// separately.
func canContain(parent, child Type) bool {
	switch parent {
	case RootNode:
		switch child {
		case DocTypeNode, ProcInsNode, CommentNode, StartTagNode, StartEndTagNode:
			return true
		}
	case StartTagNode, StartEndTagNode:
		switch child {
		case StartTagNode, StartEndTagNode, CommentNode, TextNode, CDATANode, ProcInsNode,
			SectionNode, ASPNode, JSTENode, PHPNode:
			return true
		}
	}
	return false
}

func (d *Document) isAncestor(a, n ID) bool {
	for p := n; p != Nil; p = d.recs[p].parent {
		if p == a {
			return true
		}
	}
	return false
}

// checkHierarchy verifies that child may be placed under parent. It does
// not modify anything.
func (d *Document) checkHierarchy(parent, child ID) error {
	p := d.rec(parent)
	c := d.rec(child)
	if p == nil || c == nil {
		return ErrInvalidNode
	}

	if !canContain(p.typ, c.typ) {
		return fmt.Errorf("%s cannot contain %s: %w", p.typ, c.typ, ErrHierarchyViolation)
	}
	if d.isAncestor(child, parent) {
		return fmt.Errorf("node is an ancestor of its new parent: %w", ErrHierarchyViolation)
	}
	if p.typ == RootNode && c.typ.IsElement() {
		if el := d.DocumentElement(); el != Nil && el != child {
			return fmt.Errorf("root already has an element: %w", ErrHierarchyViolation)
		}
	}
	return nil
}

// unlink detaches id from its parent. A start tag that loses its last
// child becomes a self-closing tag.
func (d *Document) unlink(id ID) {
	r := &d.recs[id]
	if r.parent == Nil {
		return
	}

	p := &d.recs[r.parent]
	if r.prev != Nil {
		d.recs[r.prev].next = r.next
	} else {
		p.firstChild = r.next
	}
	if r.next != Nil {
		d.recs[r.next].prev = r.prev
	} else {
		p.lastChild = r.prev
	}
	if p.firstChild == Nil && p.typ == StartTagNode {
		p.typ = StartEndTagNode
	}
	r.parent, r.prev, r.next = Nil, Nil, Nil
}

func (d *Document) addChild(parent, child ID) {
	p := &d.recs[parent]
	c := &d.recs[child]

	c.parent = parent
	c.next = Nil
	c.prev = p.lastChild
	if p.lastChild == Nil { // No children, set firstChild to child
		p.firstChild = child
	} else {
		d.recs[p.lastChild].next = child
	}
	p.lastChild = child
	if p.typ == StartEndTagNode {
		p.typ = StartTagNode
	}
}

func (d *Document) setPrevSibling(ref, sibling ID) {
	r := &d.recs[ref]
	s := &d.recs[sibling]

	s.parent = r.parent
	s.next = ref
	s.prev = r.prev
	if r.prev != Nil {
		d.recs[r.prev].next = sibling
	} else {
		d.recs[r.parent].firstChild = sibling
	}
	r.prev = sibling
}

// InsertAtEnd makes child the last child of parent, moving it if it is
// attached elsewhere.
func (d *Document) InsertAtEnd(parent, child ID) error {
	if err := d.checkHierarchy(parent, child); err != nil {
		return err
	}
	d.unlink(child)
	d.addChild(parent, child)
	return nil
}

// InsertBefore places child immediately before ref, which must be a
// child of parent. A Nil ref appends.
func (d *Document) InsertBefore(parent, child, ref ID) error {
	if ref == Nil {
		return d.InsertAtEnd(parent, child)
	}
	if err := d.checkHierarchy(parent, child); err != nil {
		return err
	}
	r := d.rec(ref)
	if r == nil || r.parent != parent {
		return ErrNotFound
	}
	if child == ref {
		return nil
	}

	d.unlink(child)
	d.setPrevSibling(ref, child)
	if p := &d.recs[parent]; p.typ == StartEndTagNode {
		p.typ = StartTagNode
	}
	return nil
}

// Remove detaches id from its parent. The subtree stays in the arena
// and can be inserted again.
func (d *Document) Remove(id ID) error {
	r := d.rec(id)
	if r == nil {
		return ErrInvalidNode
	}
	if r.typ == RootNode {
		return fmt.Errorf("cannot remove the root: %w", ErrHierarchyViolation)
	}
	d.unlink(id)
	return nil
}

// Replace puts replacement in old's place and hands old's children to
// it. The replacement must be detached and childless; old is left
// detached and childless.
func (d *Document) Replace(old, replacement ID) error {
	o := d.rec(old)
	n := d.rec(replacement)
	if o == nil || n == nil {
		return ErrInvalidNode
	}
	if old == replacement {
		return nil
	}
	if o.typ == RootNode || n.typ == RootNode {
		return fmt.Errorf("cannot replace the root: %w", ErrHierarchyViolation)
	}
	if n.parent != Nil || n.firstChild != Nil {
		return fmt.Errorf("replacement must be detached and empty: %w", ErrHierarchyViolation)
	}
	if o.parent != Nil && !canContain(d.recs[o.parent].typ, n.typ) {
		return fmt.Errorf("%s cannot contain %s: %w", d.recs[o.parent].typ, n.typ, ErrHierarchyViolation)
	}
	if o.parent == Root && n.typ.IsElement() && !o.typ.IsElement() && d.DocumentElement() != Nil {
		return fmt.Errorf("root already has an element: %w", ErrHierarchyViolation)
	}
	for c := o.firstChild; c != Nil; c = d.recs[c].next {
		if !canContain(n.typ, d.recs[c].typ) {
			return fmt.Errorf("%s cannot contain %s: %w", n.typ, d.recs[c].typ, ErrHierarchyViolation)
		}
	}

	n.parent, n.prev, n.next = o.parent, o.prev, o.next
	if o.prev != Nil {
		d.recs[o.prev].next = replacement
	} else if o.parent != Nil {
		d.recs[o.parent].firstChild = replacement
	}
	if o.next != Nil {
		d.recs[o.next].prev = replacement
	} else if o.parent != Nil {
		d.recs[o.parent].lastChild = replacement
	}

	n.firstChild, n.lastChild = o.firstChild, o.lastChild
	for c := n.firstChild; c != Nil; c = d.recs[c].next {
		d.recs[c].parent = replacement
	}
	if n.firstChild != Nil && n.typ == StartEndTagNode {
		n.typ = StartTagNode
	}
	if o.firstChild != Nil && o.typ == StartTagNode {
		o.typ = StartEndTagNode
	}

	o.treeNode = treeNode{}
	return nil
}

// Clone copies id, and its subtree when deep is set. Dictionary entries
// are resolved again from the names; attributes get new serials.
func (d *Document) Clone(id ID, deep bool) (ID, error) {
	r := d.rec(id)
	if r == nil {
		return Nil, ErrInvalidNode
	}
	if r.typ == RootNode {
		return Nil, fmt.Errorf("cannot clone the root: %w", ErrInvalidOperation)
	}

	c := record{
		typ:      r.typ,
		name:     r.name,
		span:     r.span,
		implicit: r.implicit,
		line:     r.line,
		column:   r.column,
	}
	if c.typ.IsElement() {
		c.tag, _ = dict.Tags().Lookup(c.name)
		if !deep && r.firstChild != Nil {
			c.typ = StartEndTagNode
		}
	}
	if len(r.attrs) > 0 {
		c.attrs = make([]AttVal, 0, len(r.attrs))
		for _, av := range r.attrs {
			av.Dict, _ = dict.Attributes().Lookup(av.Name)
			d.attrSerial++
			av.serial = d.attrSerial
			c.attrs = append(c.attrs, av)
		}
	}

	nid := d.alloc(c)
	if !deep {
		return nid, nil
	}
	for ch := d.recs[id].firstChild; ch != Nil; ch = d.recs[ch].next {
		cc, err := d.Clone(ch, true)
		if err != nil {
			return Nil, err
		}
		d.addChild(nid, cc)
	}
	return nid, nil
}

// Discard removes id and marks its subtree dead. Dead IDs are never
// handed out again.
func (d *Document) Discard(id ID) error {
	if err := d.Remove(id); err != nil {
		return err
	}
	var ids []ID
	for n := range d.Descendants(id, true) {
		ids = append(ids, n)
	}
	for _, n := range ids {
		d.recs[n].dead = true
	}
	return nil
}

// Validate checks the link structure of every live node.
func (d *Document) Validate() error {
	limit := len(d.recs)
	for i := 1; i < len(d.recs); i++ {
		id := ID(i)
		r := &d.recs[i]
		if r.dead {
			continue
		}

		if (r.firstChild == Nil) != (r.lastChild == Nil) {
			return fmt.Errorf("node %d: first/last child mismatch: %w", id, ErrCorruptTree)
		}
		if r.typ == StartEndTagNode && r.firstChild != Nil {
			return fmt.Errorf("node %d: self-closing tag has children: %w", id, ErrCorruptTree)
		}
		if r.firstChild != Nil && !canContain(r.typ, d.recs[r.firstChild].typ) {
			return fmt.Errorf("node %d: %s has a %s child: %w", id, r.typ, d.recs[r.firstChild].typ, ErrCorruptTree)
		}
		if r.typ == RootNode && r.parent != Nil {
			return fmt.Errorf("node %d: root has a parent: %w", id, ErrCorruptTree)
		}

		var prev ID
		var n int
		var elements int
		for c := r.firstChild; c != Nil; c = d.recs[c].next {
			cr := &d.recs[c]
			if cr.dead {
				return fmt.Errorf("node %d: dead child %d: %w", id, c, ErrCorruptTree)
			}
			if cr.parent != id {
				return fmt.Errorf("node %d: child %d points at parent %d: %w", id, c, cr.parent, ErrCorruptTree)
			}
			if cr.prev != prev {
				return fmt.Errorf("node %d: child %d has a broken prev link: %w", id, c, ErrCorruptTree)
			}
			if !canContain(r.typ, cr.typ) {
				return fmt.Errorf("node %d: %s has a %s child: %w", id, r.typ, cr.typ, ErrCorruptTree)
			}
			if cr.typ.IsElement() {
				elements++
			}
			prev = c
			if n++; n > limit {
				return fmt.Errorf("node %d: cycle in children: %w", id, ErrCorruptTree)
			}
		}
		if prev != r.lastChild {
			return fmt.Errorf("node %d: last child mismatch: %w", id, ErrCorruptTree)
		}
		if r.typ == RootNode && elements > 1 {
			return fmt.Errorf("root has %d elements: %w", elements, ErrCorruptTree)
		}

		if r.parent != Nil {
			p := d.rec(r.parent)
			if p == nil {
				return fmt.Errorf("node %d: parent %d is gone: %w", id, r.parent, ErrCorruptTree)
			}
			if r.prev == Nil && p.firstChild != id {
				return fmt.Errorf("node %d: not the first child of %d: %w", id, r.parent, ErrCorruptTree)
			}
			if r.next == Nil && p.lastChild != id {
				return fmt.Errorf("node %d: not the last child of %d: %w", id, r.parent, ErrCorruptTree)
			}
		} else if r.prev != Nil || r.next != Nil {
			return fmt.Errorf("node %d: detached node has siblings: %w", id, ErrCorruptTree)
		}
	}
	return nil
}
