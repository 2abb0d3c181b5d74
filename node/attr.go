package node

import (
	"strings"

	"github.com/lestrrat-go/tidy/dict"
)

// AttVal is one attribute of an element, in source order.
type AttVal struct {
	Name     string
	Value    string
	HasValue bool
	// Delim is the quote character used in the source, or 0.
	Delim byte
	Dict  *dict.Attribute
	// Synthetic attributes were added after parsing and take no part in
	// duplicate detection.
	Synthetic bool
	serial    uint32
}

// Serial identifies the attribute for as long as it stays attached.
func (a *AttVal) Serial() uint32 {
	return a.serial
}

func (d *Document) prepareAttr(av AttVal) AttVal {
	if av.Dict == nil {
		av.Dict, _ = dict.Attributes().Lookup(av.Name)
	}
	d.attrSerial++
	av.serial = d.attrSerial
	return av
}

// AddAttr appends av to the attributes of id and returns its index.
func (d *Document) AddAttr(id ID, av AttVal) int {
	r := d.rec(id)
	if r == nil || !r.typ.IsElement() {
		return -1
	}
	r.attrs = append(r.attrs, d.prepareAttr(av))
	return len(r.attrs) - 1
}

// InsertAttrAtStart makes av the first attribute of id.
func (d *Document) InsertAttrAtStart(id ID, av AttVal) int {
	r := d.rec(id)
	if r == nil || !r.typ.IsElement() {
		return -1
	}
	r.attrs = append(r.attrs, AttVal{})
	copy(r.attrs[1:], r.attrs)
	r.attrs[0] = d.prepareAttr(av)
	return 0
}

// RemoveAttr deletes the i-th attribute of id and returns it.
func (d *Document) RemoveAttr(id ID, i int) (AttVal, bool) {
	r := d.rec(id)
	if r == nil || i < 0 || i >= len(r.attrs) {
		return AttVal{}, false
	}
	av := r.attrs[i]
	r.attrs = append(r.attrs[:i], r.attrs[i+1:]...)
	return av, true
}

func (d *Document) AttrCount(id ID) int {
	if r := d.rec(id); r != nil {
		return len(r.attrs)
	}
	return 0
}

// Attr returns the i-th attribute of id. The pointer is valid until the
// attribute list of id changes.
func (d *Document) Attr(id ID, i int) *AttVal {
	r := d.rec(id)
	if r == nil || i < 0 || i >= len(r.attrs) {
		return nil
	}
	return &r.attrs[i]
}

// Attrs returns the attribute list of id. Callers must not append to it.
func (d *Document) Attrs(id ID) []AttVal {
	if r := d.rec(id); r != nil {
		return r.attrs
	}
	return nil
}

// FindAttr returns the index of the first attribute called name,
// ignoring case, or -1.
func (d *Document) FindAttr(id ID, name string) int {
	for i, av := range d.Attrs(id) {
		if strings.EqualFold(av.Name, name) {
			return i
		}
	}
	return -1
}

func (d *Document) FindAttrBySerial(id ID, serial uint32) int {
	for i, av := range d.Attrs(id) {
		if av.serial == serial {
			return i
		}
	}
	return -1
}
