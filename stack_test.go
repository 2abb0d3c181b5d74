package tidy

import (
	"testing"

	"github.com/lestrrat-go/tidy/dict"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

func TestNodeStack(t *testing.T) {
	var s nodeStack
	_, ok := s.Top()
	require.False(t, ok)

	for i, name := range []string{"html", "body", "table", "tr", "td", "b"} {
		tag, _ := dict.Tags().Lookup(name)
		s.Push(frame{id: 0, name: name, tag: tag, istack: i})
	}

	top, ok := s.Top()
	require.True(t, ok)
	require.Equal(t, "b", top.name)
	require.Equal(t, "td", s.At(1).name)

	byName := func(name string) func(frame) bool {
		return func(f frame) bool { return f.name == name }
	}
	require.Equal(t, 2, s.Find(byName("tr"), nil))
	require.Equal(t, -1, s.Find(byName("tr"), isBarrier), "cells stop the walk")
	require.Equal(t, 1, s.Find(isTableFrame, isBarrier))
	require.Equal(t, 4, s.Find(byName("body"), nil))
	require.Equal(t, -1, s.Find(byName("p"), nil))

	require.Equal(t, dict.RuleInline, top.rule())
	require.Equal(t, dict.RuleNone, frame{name: "foo"}.rule())
	require.Equal(t, dict.CMUnknown, frame{name: "foo"}.model())
}

func TestInlineStack(t *testing.T) {
	var s inlineStack
	for _, name := range []string{"b", "i", "b", "u"} {
		s.Push(inlineRecord{name: name})
	}

	require.True(t, s.RemoveLast("b"))
	names := make([]string, 0, s.Len())
	for _, r := range s.Stack {
		names = append(names, r.name)
	}
	require.Equal(t, []string{"b", "i", "u"}, names)

	require.False(t, s.RemoveLast("em"))
	require.Equal(t, 3, s.Len())
}

func TestIsFormatting(t *testing.T) {
	for name, expect := range map[string]bool{
		"b":    true,
		"i":    true,
		"font": true,
		"a":    false,
		"p":    false,
		"div":  false,
		"li":   false,
	} {
		tag, ok := dict.Tags().Lookup(name)
		require.True(t, ok, name)
		require.Equal(t, expect, isFormatting(frame{name: name, tag: tag}), name)
	}
	require.False(t, isFormatting(frame{name: "foo"}))
}

func TestDecide(t *testing.T) {
	lookup := func(name string) *dict.Tag {
		tag, ok := dict.Tags().Lookup(name)
		require.True(t, ok, name)
		return tag
	}
	open := func(name string) frame {
		return frame{name: name, tag: lookup(name)}
	}
	elem := func(name string) content {
		return content{name: name, tag: lookup(name)}
	}

	require.Equal(t, atom.Td, open("td").atom())
	require.Equal(t, atom.Atom(0), frame{name: "foo"}.atom())
	require.Equal(t, atom.Atom(0), content{name: "#text", text: true}.atom())

	testcases := []struct {
		top     string
		in      content
		act     action
		implied atom.Atom
	}{
		{"ul", elem("li"), actAccept, 0},
		{"ul", elem("p"), actImply, atom.Li},
		{"dl", elem("p"), actImply, atom.Dd},
		{"div", elem("li"), actImply, atom.Ul},
		{"div", elem("dt"), actImply, atom.Dl},
		{"table", elem("td"), actImply, atom.Tr},
		{"table", elem("tr"), actAccept, 0},
		{"table", elem("p"), actFoster, 0},
		{"tr", elem("th"), actAccept, 0},
		{"tr", elem("tbody"), actClose, 0},
		{"select", elem("option"), actAccept, 0},
		{"select", elem("p"), actDiscard, 0},
		{"frameset", elem("frame"), actAccept, 0},
		{"b", content{name: "#text", text: true}, actAccept, 0},
		{"b", elem("div"), actClose, 0},
		{"div", content{name: "foo"}, actAccept, 0},
	}
	for _, tc := range testcases {
		act, implied := decide(open(tc.top), tc.in)
		require.Equal(t, tc.act, act, "%s in %s", tc.in.name, tc.top)
		require.Equal(t, tc.implied, implied, "%s in %s", tc.in.name, tc.top)
	}
}
