package dom

import (
	"github.com/lestrrat-go/tidy/node"
)

type Element struct {
	treeNode
}

func (e *Element) TagName() string {
	return e.owner.doc.Name(e.nid)
}

func (e *Element) GetAttribute(name string) string {
	d := e.owner.doc
	if i := d.FindAttr(e.nid, name); i >= 0 {
		return d.Attr(e.nid, i).Value
	}
	return ""
}

func (e *Element) HasAttribute(name string) bool {
	return e.owner.doc.FindAttr(e.nid, name) >= 0
}

// SetAttribute changes the value of the attribute called name, or adds
// it in front of the existing ones.
func (e *Element) SetAttribute(name, value string) {
	d := e.owner.doc
	if i := d.FindAttr(e.nid, name); i >= 0 {
		av := d.Attr(e.nid, i)
		av.Value = value
		av.HasValue = true
		return
	}
	d.InsertAttrAtStart(e.nid, node.AttVal{
		Name:      name,
		Value:     value,
		HasValue:  true,
		Synthetic: true,
	})
}

func (e *Element) RemoveAttribute(name string) {
	if i := e.owner.doc.FindAttr(e.nid, name); i >= 0 {
		e.owner.removeAttr(e.nid, i)
	}
}

func (e *Element) GetAttributeNode(name string) *Attr {
	i := e.owner.doc.FindAttr(e.nid, name)
	if i < 0 {
		return nil
	}
	return e.owner.attr(e.nid, i)
}

// SetAttributeNode attaches a. An attribute of the same name is
// detached and returned.
func (e *Element) SetAttributeNode(a *Attr) (*Attr, error) {
	if a.owner != e.owner {
		return nil, ErrWrongDocument
	}
	switch a.el {
	case e.nid:
		return a, nil
	case node.Nil:
	default:
		return nil, ErrInUseAttribute
	}

	d := e.owner.doc
	var old *Attr
	if i := d.FindAttr(e.nid, a.val.Name); i >= 0 {
		old = e.owner.attr(e.nid, i)
		e.owner.removeAttr(e.nid, i)
	}

	av := a.val
	av.Synthetic = true
	i := d.InsertAttrAtStart(e.nid, av)
	a.el = e.nid
	a.serial = d.Attr(e.nid, i).Serial()
	a.val = node.AttVal{}
	e.owner.attrs[a.serial] = a
	return old, nil
}

func (e *Element) RemoveAttributeNode(a *Attr) (*Attr, error) {
	if a.owner != e.owner || a.el != e.nid {
		return nil, ErrNotFound
	}
	i := e.owner.doc.FindAttrBySerial(e.nid, a.serial)
	if i < 0 {
		return nil, ErrNotFound
	}
	e.owner.removeAttr(e.nid, i)
	return a, nil
}

func (e *Element) Attributes() *NamedNodeMap {
	return &NamedNodeMap{el: e}
}

func (e *Element) GetElementsByTagName(name string) *NodeList {
	return &NodeList{owner: e.owner, root: e.nid, name: name}
}

// Attr is an attribute, attached to an element or not.
type Attr struct {
	owner  *Document
	el     node.ID
	serial uint32
	// value of a detached attribute
	val node.AttVal
}

func (a *Attr) attval() *node.AttVal {
	if a.el == node.Nil {
		return &a.val
	}
	d := a.owner.doc
	if i := d.FindAttrBySerial(a.el, a.serial); i >= 0 {
		return d.Attr(a.el, i)
	}
	return &a.val
}

func (a *Attr) Name() string {
	return a.attval().Name
}

func (a *Attr) Value() string {
	return a.attval().Value
}

func (a *Attr) SetValue(v string) {
	av := a.attval()
	av.Value = v
	av.HasValue = true
}

// Specified reports whether the attribute is on an element or has been
// given a value.
func (a *Attr) Specified() bool {
	return a.el != node.Nil || a.val.HasValue
}

func (a *Attr) OwnerElement() *Element {
	if a.el == node.Nil {
		return nil
	}
	return a.owner.element(a.el)
}

// NamedNodeMap is the live attribute list of an element.
type NamedNodeMap struct {
	el *Element
}

func (m *NamedNodeMap) Length() int {
	return m.el.owner.doc.AttrCount(m.el.nid)
}

func (m *NamedNodeMap) Item(i int) *Attr {
	return m.el.owner.attr(m.el.nid, i)
}

func (m *NamedNodeMap) GetNamedItem(name string) *Attr {
	return m.el.GetAttributeNode(name)
}

func (m *NamedNodeMap) SetNamedItem(a *Attr) (*Attr, error) {
	return m.el.SetAttributeNode(a)
}

func (m *NamedNodeMap) RemoveNamedItem(name string) (*Attr, error) {
	e := m.el
	i := e.owner.doc.FindAttr(e.nid, name)
	if i < 0 {
		return nil, ErrNotFound
	}
	a := e.owner.attr(e.nid, i)
	e.owner.removeAttr(e.nid, i)
	return a, nil
}
