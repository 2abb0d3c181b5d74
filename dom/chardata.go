package dom

import (
	"strings"

	"github.com/lestrrat-go/tidy/encoding"
)

// CharacterData is the shared part of Text, Comment and CDATASection.
// Offsets and lengths count code points.
type CharacterData struct {
	treeNode
}

func (c *CharacterData) Data() string {
	return string(c.owner.doc.Text(c.nid))
}

func (c *CharacterData) SetData(s string) error {
	return c.owner.doc.SetText(c.nid, []byte(s))
}

func (c *CharacterData) runes() []rune {
	return encoding.NewDecoder(encoding.UTF8, c.owner.doc.Text(c.nid)).DecodeAll(nil)
}

func (c *CharacterData) Length() int {
	return len(c.runes())
}

func (c *CharacterData) SubstringData(offset, count int) (string, error) {
	rs := c.runes()
	if offset < 0 || count < 0 || offset > len(rs) {
		return "", ErrIndexSize
	}
	end := min(offset+count, len(rs))

	var buf []byte
	for _, r := range rs[offset:end] {
		buf = encoding.EncodeUTF8(buf, r)
	}
	return string(buf), nil
}

func (c *CharacterData) AppendData(s string) error {
	return c.SetData(c.Data() + s)
}

type Text struct {
	CharacterData
}

type Comment struct {
	CharacterData
}

type CDATASection struct {
	CharacterData
}

type ProcessingInstruction struct {
	treeNode
}

func (p *ProcessingInstruction) Target() string {
	return p.owner.doc.Name(p.nid)
}

// Data is the content after the target, without the closing '?'.
func (p *ProcessingInstruction) Data() string {
	s := string(p.owner.doc.Text(p.nid))
	s = strings.TrimPrefix(s, p.Target())
	s = strings.TrimSuffix(s, "?")
	return strings.TrimSpace(s)
}
