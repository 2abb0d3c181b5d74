// Package s11n writes documents back out as markup.
package s11n

import (
	"fmt"
	"io"

	"github.com/lestrrat-go/tidy/encoding"
	"github.com/lestrrat-go/tidy/node"
)

// Dumper serializes a node.Document. The zero value writes HTML in
// UTF-8 with LF line endings.
type Dumper struct {
	// XML selects XHTML output: empty elements are written as <x />
	// and valueless attributes get their name as value.
	XML     bool
	Scheme  encoding.Scheme
	Newline string
}

func (d *Dumper) scheme() encoding.Scheme {
	if d.Scheme == encoding.Raw {
		return encoding.UTF8
	}
	return d.Scheme
}

func (d *Dumper) newWriter(out io.Writer) *encoding.Writer {
	w := encoding.NewWriter(out, d.scheme())
	if d.Newline != "" {
		w.SetNewline(d.Newline)
	}
	return w
}

// DumpDoc writes every top level node of doc, each followed by a
// newline.
func (d *Dumper) DumpDoc(out io.Writer, doc *node.Document) error {
	w := d.newWriter(out)
	for id := range doc.Children(node.Root) {
		if err := d.dumpNode(w, doc, id); err != nil {
			return err
		}
		if err := w.Newline(); err != nil {
			return err
		}
	}
	return w.Flush()
}

// DumpNode writes the subtree rooted at id.
func (d *Dumper) DumpNode(out io.Writer, doc *node.Document, id node.ID) error {
	if !doc.Valid(id) {
		return fmt.Errorf("dump node %d: %w", id, node.ErrInvalidNode)
	}
	w := d.newWriter(out)
	if id == node.Root {
		for c := range doc.Children(node.Root) {
			if err := d.dumpNode(w, doc, c); err != nil {
				return err
			}
		}
		return w.Flush()
	}
	if err := d.dumpNode(w, doc, id); err != nil {
		return err
	}
	return w.Flush()
}

func (d *Dumper) dumpNode(w *encoding.Writer, doc *node.Document, id node.ID) error {
	switch typ := doc.Type(id); typ {
	case node.DocTypeNode:
		return writeDelimited(w, "<!DOCTYPE ", doc.Text(id), ">")
	case node.CommentNode:
		return writeDelimited(w, "<!--", doc.Text(id), "-->")
	case node.CDATANode:
		return writeDelimited(w, "<![CDATA[", doc.Text(id), "]]>")
	case node.SectionNode:
		return writeDelimited(w, "<![", doc.Text(id), "]>")
	case node.ASPNode:
		return writeDelimited(w, "<%", doc.Text(id), "%>")
	case node.JSTENode:
		return writeDelimited(w, "<#", doc.Text(id), "#>")
	case node.PHPNode:
		return writeDelimited(w, "<?", doc.Text(id), "?>")
	case node.ProcInsNode:
		content := doc.Text(id)
		closing := ">"
		if d.XML && (len(content) == 0 || content[len(content)-1] != '?') {
			closing = "?>"
		}
		return writeDelimited(w, "<?", content, closing)
	case node.TextNode:
		if tag := doc.Tag(doc.Parent(id)); tag != nil && tag.IsRawText() {
			return w.WriteString(string(doc.Text(id)))
		}
		return EscapeText(w, doc.Text(id))
	case node.StartTagNode, node.StartEndTagNode:
		return d.dumpElement(w, doc, id)
	default:
		return fmt.Errorf("cannot dump %s: %w", typ, node.ErrInvalidNode)
	}
}

func writeDelimited(w *encoding.Writer, open string, content []byte, closing string) error {
	if err := w.WriteString(open); err != nil {
		return err
	}
	if err := w.WriteString(string(content)); err != nil {
		return err
	}
	return w.WriteString(closing)
}

func (d *Dumper) dumpElement(w *encoding.Writer, doc *node.Document, id node.ID) error {
	name := doc.Name(id)
	if err := w.WriteString("<" + name); err != nil {
		return err
	}
	for _, av := range doc.Attrs(id) {
		if err := d.dumpAttr(w, &av); err != nil {
			return err
		}
	}

	if doc.FirstChild(id) == node.Nil {
		tag := doc.Tag(id)
		switch {
		case d.XML:
			return w.WriteString(" />")
		case tag != nil && tag.IsEmpty():
			return w.WriteString(">")
		}
	}

	if err := w.WriteString(">"); err != nil {
		return err
	}
	for c := range doc.Children(id) {
		if err := d.dumpNode(w, doc, c); err != nil {
			return err
		}
	}
	return w.WriteString("</" + name + ">")
}

func (d *Dumper) dumpAttr(w *encoding.Writer, av *node.AttVal) error {
	if err := w.WriteString(" " + av.Name); err != nil {
		return err
	}

	value := av.Value
	switch {
	case av.HasValue:
	case d.XML:
		value = av.Name
	default:
		return nil
	}

	if err := w.WriteString("="); err != nil {
		return err
	}
	return DumpQuotedString(w, value, av.Delim)
}
