package dict_test

import (
	"testing"

	"github.com/lestrrat-go/tidy/dict"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

func TestTags(t *testing.T) {
	tags := dict.Tags()
	require.Same(t, tags, dict.Tags(), "table is built once")

	t.Run("Lookup", func(t *testing.T) {
		for _, name := range []string{"td", "TD", "Td"} {
			tag, ok := tags.Lookup(name)
			require.True(t, ok, "lookup %q", name)
			require.Equal(t, "td", tag.Name)
			require.Equal(t, atom.Td, tag.Atom)
			require.Equal(t, dict.RuleBlock, tag.Rule)
			require.True(t, tag.Model.IsSet(dict.CMRow))
		}

		_, ok := tags.Lookup("blah")
		require.False(t, ok)
	})
	t.Run("Empty elements", func(t *testing.T) {
		for _, name := range []string{"br", "img", "hr", "meta", "link", "input", "col", "area", "param", "base"} {
			tag, ok := tags.Lookup(name)
			require.True(t, ok, "lookup %q", name)
			require.True(t, tag.IsEmpty(), "%s is empty", name)
			require.Equal(t, dict.RuleEmpty, tag.Rule)
		}
	})
	t.Run("Proprietary", func(t *testing.T) {
		tag, _ := tags.Lookup("blink")
		require.True(t, tag.IsProprietary())
		tag, _ = tags.Lookup("p")
		require.False(t, tag.IsProprietary())
	})
	t.Run("All", func(t *testing.T) {
		var n int
		for name, tag := range tags.All() {
			require.Equal(t, name, tag.Name)
			require.NotZero(t, tag.Versions, "%s has versions", name)
			n++
		}
		require.Equal(t, tags.Len(), n)
	})
}

func TestAttributes(t *testing.T) {
	attrs := dict.Attributes()

	testcases := map[string]struct {
		check dict.AttrCheck
		xml   bool
	}{
		"href":     {check: dict.CheckURL},
		"SRC":      {check: dict.CheckURL},
		"checked":  {check: dict.CheckBool},
		"id":       {check: dict.CheckID},
		"name":     {check: dict.CheckName},
		"onclick":  {check: dict.CheckScript},
		"align":    {check: dict.CheckAlign},
		"valign":   {check: dict.CheckVAlign},
		"title":    {check: dict.CheckNone},
		"xml:lang": {check: dict.CheckNone, xml: true},
	}
	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			a, ok := attrs.Lookup(name)
			require.True(t, ok)
			require.Equal(t, tc.check, a.Check)
			require.Equal(t, tc.xml, a.IsXML())
		})
	}

	a, _ := attrs.Lookup("bgproperties")
	require.True(t, a.IsProprietary())
	_, ok := attrs.Lookup("frobnicate")
	require.False(t, ok)
}

func TestVersion(t *testing.T) {
	t.Run("Constrain keeps proprietary bits", func(t *testing.T) {
		v := dict.VersAny.Constrain(dict.VersHTML40)
		require.Equal(t, dict.VersHTML40|dict.VersProprietary, v)
		require.False(t, v.IsSet(dict.VersHTML32))
	})
	t.Run("Constrain never widens", func(t *testing.T) {
		v := dict.VersAny.Constrain(dict.VersHTML40Strict)
		v2 := v.Constrain(dict.VersAll)
		require.Equal(t, v, v2)
	})
	t.Run("Proprietary only", func(t *testing.T) {
		v := dict.VersAny.Constrain(dict.VersProprietary)
		require.Equal(t, dict.VersProprietary, v)
		require.Equal(t, "proprietary", v.Apparent())
	})
	t.Run("Apparent", func(t *testing.T) {
		require.Equal(t, "HTML 2.0", dict.VersAny.Apparent())
		require.Equal(t, "HTML 4.01 Transitional", dict.VersIFrame.Apparent())
		require.Equal(t, "unknown", dict.VersUnknown.Apparent())
	})
	t.Run("String", func(t *testing.T) {
		require.Equal(t, "HTML 3.2|Sun", (dict.VersHTML32 | dict.VersSun).String())
	})
}

func TestVersionFromFPI(t *testing.T) {
	testcases := map[string]dict.Version{
		`-//IETF//DTD HTML 2.0//EN`:              dict.VersHTML20,
		`-//W3C//DTD HTML 3.2 Final//EN`:         dict.VersHTML32,
		`-//W3C//DTD HTML 4.01//EN`:              dict.VersHTML40Strict,
		`-//W3C//DTD HTML 4.01 Transitional//EN`: dict.VersHTML40Loose,
		`-//W3C//DTD HTML 4.01 Frameset//EN`:     dict.VersFrameset,
		`-//W3C//DTD XHTML 1.0 Transitional//EN`: dict.VersHTML40Loose,
		`html PUBLIC "-//w3c//dtd html 4.0//en"`: dict.VersHTML40Strict,
		`html`:                                   dict.VersUnknown,
	}
	for fpi, want := range testcases {
		require.Equal(t, want, dict.VersionFromFPI(fpi), fpi)
	}
}
