package dict

import (
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/lestrrat-go/tidy/internal/orderedmap"
	"golang.org/x/net/html/atom"
)

// Tag is an entry of the tag dictionary. Entries are shared and must not
// be modified.
type Tag struct {
	Name     string
	Atom     atom.Atom
	Versions Version
	Model    ContentModel
	Rule     ParseRule
}

func (t *Tag) IsProprietary() bool {
	return t.Versions&^VersProprietary == 0
}

// IsRawText reports whether the content of the element is read and
// written verbatim.
func (t *Tag) IsRawText() bool {
	return t.Rule == RuleScript || t.Name == "textarea"
}

// IsEmpty reports whether the element never has content.
func (t *Tag) IsEmpty() bool {
	return t.Model.IsSet(CMEmpty)
}

type TagTable struct {
	tags *orderedmap.Map[string, *Tag]
}

var Tags = sync.OnceValue(func() *TagTable {
	t := &TagTable{tags: orderedmap.New[string, *Tag](len(tagDefs))}
	for _, def := range tagDefs {
		def.Atom = atom.Lookup([]byte(def.Name))
		if err := t.tags.Set(def.Name, &def); err != nil {
			panic(fmt.Sprintf("tag %q: %s", def.Name, err))
		}
	}
	return t
})

// Lookup finds a tag by name, ignoring case.
func (t *TagTable) Lookup(name string) (*Tag, bool) {
	if tag, ok := t.tags.Get(name); ok {
		return tag, true
	}
	return t.tags.Get(strings.ToLower(name))
}

func (t *TagTable) Len() int {
	return t.tags.Len()
}

func (t *TagTable) All() iter.Seq2[string, *Tag] {
	return t.tags.Range()
}

var tagDefs = []Tag{
	{Name: "a", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "abbr", Versions: VersHTML40, Model: CMInline, Rule: RuleInline},
	{Name: "acronym", Versions: VersHTML40, Model: CMInline, Rule: RuleInline},
	{Name: "address", Versions: VersAll, Model: CMBlock, Rule: RuleBlock},
	{Name: "applet", Versions: VersLoose, Model: CMObject | CMImg | CMInline | CMParam, Rule: RuleBlock},
	{Name: "area", Versions: VersAll, Model: CMBlock | CMEmpty, Rule: RuleEmpty},
	{Name: "b", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "base", Versions: VersAll, Model: CMHead | CMEmpty, Rule: RuleEmpty},
	{Name: "basefont", Versions: VersLoose, Model: CMInline | CMEmpty, Rule: RuleEmpty},
	{Name: "bdo", Versions: VersHTML40, Model: CMInline, Rule: RuleInline},
	{Name: "big", Versions: VersFrom32, Model: CMInline, Rule: RuleInline},
	{Name: "blink", Versions: VersProprietary, Model: CMInline, Rule: RuleInline},
	{Name: "blockquote", Versions: VersAll, Model: CMBlock, Rule: RuleBlock},
	{Name: "body", Versions: VersAll, Model: CMHTML | CMOpt | CMOmitST, Rule: RuleBody},
	{Name: "br", Versions: VersAll, Model: CMInline | CMEmpty, Rule: RuleEmpty},
	{Name: "button", Versions: VersHTML40, Model: CMInline, Rule: RuleBlock},
	{Name: "caption", Versions: VersFrom32, Model: CMTable, Rule: RuleBlock},
	{Name: "center", Versions: VersLoose, Model: CMBlock, Rule: RuleBlock},
	{Name: "cite", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "code", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "col", Versions: VersHTML40, Model: CMTable | CMEmpty, Rule: RuleEmpty},
	{Name: "colgroup", Versions: VersHTML40, Model: CMTable | CMOpt, Rule: RuleColGroup},
	{Name: "dd", Versions: VersAll, Model: CMDefList | CMOpt | CMNoIndent, Rule: RuleBlock},
	{Name: "del", Versions: VersHTML40, Model: CMInline | CMBlock | CMMixed, Rule: RuleInline},
	{Name: "dfn", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "dir", Versions: VersLoose, Model: CMBlock | CMObsolete, Rule: RuleList},
	{Name: "div", Versions: VersFrom32, Model: CMBlock, Rule: RuleBlock},
	{Name: "dl", Versions: VersAll, Model: CMBlock, Rule: RuleDefList},
	{Name: "dt", Versions: VersAll, Model: CMDefList | CMOpt | CMNoIndent, Rule: RuleInline},
	{Name: "em", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "embed", Versions: VersProprietary, Model: CMInline | CMImg | CMEmpty, Rule: RuleEmpty},
	{Name: "fieldset", Versions: VersHTML40, Model: CMBlock, Rule: RuleBlock},
	{Name: "font", Versions: VersLoose, Model: CMInline, Rule: RuleInline},
	{Name: "form", Versions: VersAll, Model: CMBlock, Rule: RuleBlock},
	{Name: "frame", Versions: VersFrameset, Model: CMFrames | CMEmpty, Rule: RuleEmpty},
	{Name: "frameset", Versions: VersFrameset, Model: CMHTML | CMFrames, Rule: RuleFrameSet},
	{Name: "h1", Versions: VersAll, Model: CMBlock | CMHeading, Rule: RuleInline},
	{Name: "h2", Versions: VersAll, Model: CMBlock | CMHeading, Rule: RuleInline},
	{Name: "h3", Versions: VersAll, Model: CMBlock | CMHeading, Rule: RuleInline},
	{Name: "h4", Versions: VersAll, Model: CMBlock | CMHeading, Rule: RuleInline},
	{Name: "h5", Versions: VersAll, Model: CMBlock | CMHeading, Rule: RuleInline},
	{Name: "h6", Versions: VersAll, Model: CMBlock | CMHeading, Rule: RuleInline},
	{Name: "head", Versions: VersAll, Model: CMHTML | CMOpt | CMOmitST, Rule: RuleHead},
	{Name: "hr", Versions: VersAll, Model: CMBlock | CMEmpty, Rule: RuleEmpty},
	{Name: "html", Versions: VersAll, Model: CMHTML | CMOpt | CMOmitST, Rule: RuleHTML},
	{Name: "i", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "iframe", Versions: VersIFrame, Model: CMInline, Rule: RuleBlock},
	{Name: "ilayer", Versions: VersNetscape, Model: CMInline, Rule: RuleInline},
	{Name: "img", Versions: VersAll, Model: CMInline | CMImg | CMEmpty, Rule: RuleEmpty},
	{Name: "input", Versions: VersAll, Model: CMInline | CMImg | CMEmpty, Rule: RuleEmpty},
	{Name: "ins", Versions: VersHTML40, Model: CMInline | CMBlock | CMMixed, Rule: RuleInline},
	{Name: "isindex", Versions: VersLoose, Model: CMBlock | CMEmpty, Rule: RuleEmpty},
	{Name: "kbd", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "label", Versions: VersHTML40, Model: CMInline, Rule: RuleInline},
	{Name: "layer", Versions: VersNetscape, Model: CMBlock, Rule: RuleBlock},
	{Name: "legend", Versions: VersHTML40, Model: CMInline, Rule: RuleInline},
	{Name: "li", Versions: VersAll, Model: CMList | CMOpt | CMNoIndent, Rule: RuleBlock},
	{Name: "link", Versions: VersAll, Model: CMHead | CMEmpty, Rule: RuleEmpty},
	{Name: "listing", Versions: VersAll, Model: CMBlock | CMObsolete, Rule: RulePre},
	{Name: "map", Versions: VersFrom32, Model: CMInline, Rule: RuleBlock},
	{Name: "marquee", Versions: VersMicrosoft, Model: CMInline | CMOpt, Rule: RuleInline},
	{Name: "menu", Versions: VersLoose, Model: CMBlock | CMObsolete, Rule: RuleList},
	{Name: "meta", Versions: VersAll, Model: CMHead | CMEmpty, Rule: RuleEmpty},
	{Name: "nobr", Versions: VersProprietary, Model: CMInline, Rule: RuleInline},
	{Name: "noframes", Versions: VersIFrame, Model: CMBlock | CMFrames, Rule: RuleNoFrames},
	{Name: "noscript", Versions: VersHTML40, Model: CMBlock | CMInline | CMMixed, Rule: RuleBlock},
	{Name: "object", Versions: VersHTML40, Model: CMObject | CMHead | CMImg | CMInline | CMParam, Rule: RuleBlock},
	{Name: "ol", Versions: VersAll, Model: CMBlock, Rule: RuleList},
	{Name: "optgroup", Versions: VersHTML40, Model: CMField | CMOpt, Rule: RuleOptGroup},
	{Name: "option", Versions: VersAll, Model: CMField | CMOpt, Rule: RuleText},
	{Name: "p", Versions: VersAll, Model: CMBlock | CMOpt, Rule: RuleInline},
	{Name: "param", Versions: VersFrom32, Model: CMInline | CMEmpty, Rule: RuleEmpty},
	{Name: "plaintext", Versions: VersHTML20 | VersHTML32, Model: CMBlock | CMObsolete, Rule: RuleScript},
	{Name: "pre", Versions: VersAll, Model: CMBlock, Rule: RulePre},
	{Name: "q", Versions: VersHTML40, Model: CMInline, Rule: RuleInline},
	{Name: "s", Versions: VersLoose, Model: CMInline, Rule: RuleInline},
	{Name: "samp", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "script", Versions: VersFrom32, Model: CMHead | CMMixed | CMBlock | CMInline, Rule: RuleScript},
	{Name: "select", Versions: VersAll, Model: CMInline | CMField, Rule: RuleSelect},
	{Name: "server", Versions: VersNetscape, Model: CMHead | CMMixed | CMBlock | CMInline, Rule: RuleScript},
	{Name: "small", Versions: VersFrom32, Model: CMInline, Rule: RuleInline},
	{Name: "span", Versions: VersFrom32, Model: CMInline, Rule: RuleInline},
	{Name: "strike", Versions: VersLoose, Model: CMInline, Rule: RuleInline},
	{Name: "strong", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "style", Versions: VersFrom32, Model: CMHead, Rule: RuleScript},
	{Name: "sub", Versions: VersFrom32, Model: CMInline, Rule: RuleInline},
	{Name: "sup", Versions: VersFrom32, Model: CMInline, Rule: RuleInline},
	{Name: "table", Versions: VersFrom32, Model: CMBlock, Rule: RuleTable},
	{Name: "tbody", Versions: VersHTML40, Model: CMTable | CMRowGroup | CMOpt, Rule: RuleRowGroup},
	{Name: "td", Versions: VersFrom32, Model: CMRow | CMOpt | CMNoIndent, Rule: RuleBlock},
	{Name: "textarea", Versions: VersAll, Model: CMInline | CMField, Rule: RuleText},
	{Name: "tfoot", Versions: VersHTML40, Model: CMTable | CMRowGroup | CMOpt, Rule: RuleRowGroup},
	{Name: "th", Versions: VersFrom32, Model: CMRow | CMOpt | CMNoIndent, Rule: RuleBlock},
	{Name: "thead", Versions: VersHTML40, Model: CMTable | CMRowGroup | CMOpt, Rule: RuleRowGroup},
	{Name: "title", Versions: VersAll, Model: CMHead, Rule: RuleTitle},
	{Name: "tr", Versions: VersFrom32, Model: CMTable | CMOpt, Rule: RuleRow},
	{Name: "tt", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "u", Versions: VersLoose, Model: CMInline, Rule: RuleInline},
	{Name: "ul", Versions: VersAll, Model: CMBlock, Rule: RuleList},
	{Name: "var", Versions: VersAll, Model: CMInline, Rule: RuleInline},
	{Name: "wbr", Versions: VersProprietary, Model: CMInline | CMEmpty, Rule: RuleEmpty},
	{Name: "xmp", Versions: VersAll, Model: CMBlock | CMObsolete, Rule: RuleScript},
}
