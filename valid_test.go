package tidy

import (
	"testing"

	"github.com/lestrrat-go/tidy/node"
	"github.com/stretchr/testify/require"
)

func TestAttributeValidators(t *testing.T) {
	testcases := []struct {
		name   string
		input  string
		config *Config
		expect map[Code]int
	}{
		{name: "url without value", input: `<a href>x</a>`, expect: map[Code]int{MissingValue: 1}},
		{name: "url", input: `<a href="/x/y.html">x</a>`},
		{name: "align", input: `<p align="center">x`},
		{name: "align is case insensitive", input: `<p align="LEFT">x`},
		{name: "bad align", input: `<p align="middle">x`, expect: map[Code]int{BadValue: 1}},
		{name: "align without value", input: `<p align>x`, expect: map[Code]int{MissingValue: 1}},
		{name: "image align uses valign values", input: `<img src="a" align="middle">`},
		{name: "image align left", input: `<img src="a" align="left">`},
		{name: "valign", input: `<table><tr><td valign="baseline">x</table>`},
		{name: "valign left outside images", input: `<table><tr><td valign="left">x</table>`, expect: map[Code]int{BadValue: 1}},
		{name: "bad valign", input: `<table><tr><td valign="up">x</table>`, expect: map[Code]int{BadValue: 1}},
		{name: "proprietary valign", input: `<img src="a" align="absbottom">`, expect: map[Code]int{ProprietaryValue: 1}},
		{name: "unknown attribute", input: `<p foo="1">x`, expect: map[Code]int{UnknownAttribute: 1}},
		{name: "attributes of unknown elements", input: `<foo bar="1">x</foo>`, expect: map[Code]int{UnknownElement: 1}},
		{name: "xml attribute", input: `<p xml:lang="en">x`, expect: map[Code]int{XMLVersionMismatch: 1}},
		{name: "xml attribute in xhtml output", input: `<p xml:lang="en">x`, config: &Config{XMLOut: true}},
		{name: "proprietary attribute", input: `<body leftmargin="0">x`, expect: map[Code]int{ProprietaryAttribute: 1}},
		{name: "repeated attribute", input: `<p id="a" class="b" ID="c" id="d">x`, expect: map[Code]int{RepeatedAttribute: 2}},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			// a title keeps MissingTitleElement out of the counts
			options := []ParseOption{}
			if tc.config != nil {
				options = append(options, WithConfig(tc.config))
			}
			_, diags := parseString(t, `<title>t</title>`+tc.input, options...)

			got := map[Code]int{}
			for _, d := range diags {
				if d.Code == MissingEndTag || d.Code == InsertingTag {
					continue
				}
				got[d.Code]++
			}
			expect := tc.expect
			if expect == nil {
				expect = map[Code]int{}
			}
			require.Equal(t, expect, got, "diagnostics: %v", diags)
		})
	}
}

func TestRepeatedAttributeKeepsAll(t *testing.T) {
	doc, diags := parseString(t, `<p id="a" id="b" id="c">x`)
	p := findElement(doc, "p")
	require.Equal(t, 3, doc.AttrCount(p))

	repeated := diags.Filter(RepeatedAttribute)
	require.Len(t, repeated, 2)
	require.Equal(t, "id", repeated[0].Attribute)
	require.Equal(t, "b", repeated[0].Value)
	require.Equal(t, "c", repeated[1].Value)
	require.Equal(t, `<p> repeated attribute "id"`, repeated[0].Message())
}

func TestBackslashInURL(t *testing.T) {
	t.Run("fixed", func(t *testing.T) {
		doc, diags := parseString(t, `<a href="dir\file.html">x</a>`)
		fixed := diags.Filter(FixedBackslash)
		require.Len(t, fixed, 1)
		require.Equal(t, `dir\file.html`, fixed[0].Value)
		require.Equal(t, SeverityInfo, fixed[0].Severity)

		a := findElement(doc, "a")
		require.Equal(t, "dir/file.html", doc.Attr(a, 0).Value)
	})
	t.Run("reported", func(t *testing.T) {
		doc, diags := parseString(t, `<a href="dir\file.html">x</a>`, WithConfig(&Config{}))
		require.Zero(t, diags.Count(FixedBackslash))
		require.Equal(t, 1, diags.Count(BackslashInURI))

		a := findElement(doc, "a")
		require.Equal(t, `dir\file.html`, doc.Attr(a, 0).Value)
	})
}

func TestUnknownAttributeDetails(t *testing.T) {
	doc, diags := parseString(t, "<p\n  onfoo=\"x\">y")
	unknown := diags.Filter(UnknownAttribute)
	require.Len(t, unknown, 1)

	d := unknown[0]
	require.Equal(t, "p", d.Element)
	require.Equal(t, "onfoo", d.Attribute)
	require.Equal(t, "x", d.Value)
	require.Equal(t, findElement(doc, "p"), d.Node)
	require.Equal(t, 1, d.Line)
	require.Equal(t, 1, d.Column)
	require.NotEqual(t, node.Nil, d.Node)
}
