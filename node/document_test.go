package node_test

import (
	"testing"

	"github.com/lestrrat-go/tidy/dict"
	"github.com/lestrrat-go/tidy/node"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

func TestDocument(t *testing.T) {
	t.Run("NewDocument", func(t *testing.T) {
		doc := node.NewDocument()
		require.NotNil(t, doc)
		require.Equal(t, node.RootNode, doc.Type(node.Root))
		require.Equal(t, "#document", doc.Name(node.Root))
		require.Equal(t, dict.VersAny, doc.Versions())
		require.Equal(t, node.Nil, doc.DocumentElement())
		require.NoError(t, doc.Validate())
	})

	t.Run("CreateElement", func(t *testing.T) {
		doc := node.NewDocument()
		e := doc.CreateElement("TD", node.StartTagNode)
		require.True(t, doc.Valid(e))
		require.Equal(t, "TD", doc.Name(e))
		require.NotNil(t, doc.Tag(e))
		require.Equal(t, atom.Td, doc.Tag(e).Atom)
		require.Equal(t, node.Nil, doc.Parent(e))

		u := doc.CreateElement("frob", node.StartEndTagNode)
		require.Nil(t, doc.Tag(u), "unknown elements have no dictionary entry")
		require.Equal(t, node.StartEndTagNode, doc.Type(u))
	})

	t.Run("CreateText", func(t *testing.T) {
		doc := node.NewDocument()
		text := doc.CreateText([]byte("hello"))
		require.Equal(t, node.TextNode, doc.Type(text))
		require.Equal(t, "hello", string(doc.Text(text)))

		span := doc.AppendText([]byte("world"))
		t2 := doc.CreateTextSpan(span)
		require.Equal(t, "world", string(doc.Text(t2)))
		require.Equal(t, 5, doc.Span(t2).Len())

		require.NoError(t, doc.SetText(t2, []byte("there")))
		require.Equal(t, "there", string(doc.Text(t2)))
		require.Equal(t, "hello", string(doc.Text(text)), "other spans are untouched")
	})

	t.Run("CreateComment", func(t *testing.T) {
		doc := node.NewDocument()
		c := doc.CreateComment([]byte(" test comment "))
		require.Equal(t, node.CommentNode, doc.Type(c))
		require.Equal(t, " test comment ", string(doc.Text(c)))
	})

	t.Run("DocumentElement", func(t *testing.T) {
		doc := node.NewDocument()
		dt := doc.CreateDocType([]byte("html"))
		html := doc.CreateElement("html", node.StartTagNode)
		require.NoError(t, doc.InsertAtEnd(node.Root, dt))
		require.NoError(t, doc.InsertAtEnd(node.Root, html))
		require.Equal(t, html, doc.DocumentElement())
		require.Equal(t, dt, doc.FirstChild(node.Root))
		require.Equal(t, node.Root, doc.Parent(html))
	})

	t.Run("Content", func(t *testing.T) {
		doc := node.NewDocument()
		p := doc.CreateElement("p", node.StartTagNode)
		b := doc.CreateElement("b", node.StartTagNode)
		require.NoError(t, doc.InsertAtEnd(p, doc.CreateText([]byte("Hello, "))))
		require.NoError(t, doc.InsertAtEnd(p, b))
		require.NoError(t, doc.InsertAtEnd(b, doc.CreateText([]byte("World"))))
		require.NoError(t, doc.InsertAtEnd(p, doc.CreateComment([]byte("skipped"))))
		require.Equal(t, "Hello, World", string(doc.Content(p, nil)))
	})

	t.Run("ConstrainVersion", func(t *testing.T) {
		doc := node.NewDocument()
		doc.ConstrainVersion(dict.VersHTML40)
		v := doc.ConstrainVersion(dict.VersAll)
		require.Equal(t, dict.VersHTML40|dict.VersProprietary, v)
		require.Equal(t, v, doc.Versions())
	})
}

func TestAttributes(t *testing.T) {
	doc := node.NewDocument()
	img := doc.CreateElement("img", node.StartEndTagNode)

	i := doc.AddAttr(img, node.AttVal{Name: "src", Value: "a.png", HasValue: true, Delim: '"'})
	require.Equal(t, 0, i)
	doc.AddAttr(img, node.AttVal{Name: "ALT", Value: "A", HasValue: true})
	require.Equal(t, 2, doc.AttrCount(img))

	src := doc.Attr(img, 0)
	require.NotNil(t, src.Dict, "dictionary entry is resolved on insert")
	require.Equal(t, dict.CheckURL, src.Dict.Check)
	require.Equal(t, 1, doc.FindAttr(img, "alt"))

	require.Equal(t, 0, doc.InsertAttrAtStart(img, node.AttVal{Name: "width", Value: "10", HasValue: true, Synthetic: true}))
	require.Equal(t, "width", doc.Attr(img, 0).Name)
	require.Equal(t, "src", doc.Attr(img, 1).Name)

	serial := doc.Attr(img, 2).Serial()
	require.NotZero(t, serial)
	require.Equal(t, 2, doc.FindAttrBySerial(img, serial))

	av, ok := doc.RemoveAttr(img, 1)
	require.True(t, ok)
	require.Equal(t, "a.png", av.Value)
	require.Equal(t, 1, doc.FindAttrBySerial(img, serial))
	require.Equal(t, -1, doc.FindAttr(img, "src"))

	_, ok = doc.RemoveAttr(img, 5)
	require.False(t, ok)

	text := doc.CreateText([]byte("x"))
	require.Equal(t, -1, doc.AddAttr(text, node.AttVal{Name: "id"}), "text nodes have no attributes")
}
