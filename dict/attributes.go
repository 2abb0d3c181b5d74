package dict

import (
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/lestrrat-go/tidy/internal/orderedmap"
)

// Attribute is an entry of the attribute dictionary.
type Attribute struct {
	Name     string
	Versions Version
	Check    AttrCheck
}

// IsXML reports whether the attribute only exists in XML documents.
func (a *Attribute) IsXML() bool {
	return a.Versions == VersXML
}

func (a *Attribute) IsProprietary() bool {
	return a.Versions.IsSet(VersProprietary)
}

type AttributeTable struct {
	attrs *orderedmap.Map[string, *Attribute]
}

var Attributes = sync.OnceValue(func() *AttributeTable {
	t := &AttributeTable{attrs: orderedmap.New[string, *Attribute](len(attributeDefs))}
	for _, def := range attributeDefs {
		if err := t.attrs.Set(def.Name, &def); err != nil {
			panic(fmt.Sprintf("attribute %q: %s", def.Name, err))
		}
	}
	return t
})

// Lookup finds an attribute by name, ignoring case.
func (t *AttributeTable) Lookup(name string) (*Attribute, bool) {
	if a, ok := t.attrs.Get(name); ok {
		return a, true
	}
	return t.attrs.Get(strings.ToLower(name))
}

func (t *AttributeTable) Len() int {
	return t.attrs.Len()
}

func (t *AttributeTable) All() iter.Seq2[string, *Attribute] {
	return t.attrs.Range()
}

var attributeDefs = []Attribute{
	{Name: "abbr", Versions: VersHTML40},
	{Name: "accept", Versions: VersAll},
	{Name: "accept-charset", Versions: VersHTML40},
	{Name: "accesskey", Versions: VersHTML40},
	{Name: "action", Versions: VersAll, Check: CheckURL},
	{Name: "add_date", Versions: VersNetscape},
	{Name: "align", Versions: VersAll, Check: CheckAlign},
	{Name: "alink", Versions: VersLoose},
	{Name: "alt", Versions: VersAll},
	{Name: "archive", Versions: VersHTML40, Check: CheckURL},
	{Name: "axis", Versions: VersHTML40},
	{Name: "background", Versions: VersLoose, Check: CheckURL},
	{Name: "bgcolor", Versions: VersLoose},
	{Name: "bgproperties", Versions: VersProprietary},
	{Name: "border", Versions: VersAll},
	{Name: "bordercolor", Versions: VersMicrosoft},
	{Name: "bottommargin", Versions: VersMicrosoft},
	{Name: "cellpadding", Versions: VersFrom32},
	{Name: "cellspacing", Versions: VersFrom32},
	{Name: "char", Versions: VersHTML40},
	{Name: "charoff", Versions: VersHTML40},
	{Name: "charset", Versions: VersHTML40},
	{Name: "checked", Versions: VersAll, Check: CheckBool},
	{Name: "cite", Versions: VersHTML40, Check: CheckURL},
	{Name: "class", Versions: VersHTML40},
	{Name: "classid", Versions: VersHTML40, Check: CheckURL},
	{Name: "clear", Versions: VersLoose},
	{Name: "code", Versions: VersLoose},
	{Name: "codebase", Versions: VersHTML40, Check: CheckURL},
	{Name: "codetype", Versions: VersHTML40},
	{Name: "color", Versions: VersLoose},
	{Name: "cols", Versions: VersIFrame},
	{Name: "colspan", Versions: VersFrom32},
	{Name: "compact", Versions: VersAll, Check: CheckBool},
	{Name: "content", Versions: VersAll},
	{Name: "coords", Versions: VersFrom32},
	{Name: "data", Versions: VersHTML40, Check: CheckURL},
	{Name: "datafld", Versions: VersMicrosoft},
	{Name: "dataformatas", Versions: VersMicrosoft},
	{Name: "datapagesize", Versions: VersHTML40},
	{Name: "datasrc", Versions: VersMicrosoft, Check: CheckURL},
	{Name: "datetime", Versions: VersHTML40},
	{Name: "declare", Versions: VersHTML40, Check: CheckBool},
	{Name: "defer", Versions: VersHTML40, Check: CheckBool},
	{Name: "dir", Versions: VersHTML40},
	{Name: "disabled", Versions: VersHTML40, Check: CheckBool},
	{Name: "enctype", Versions: VersAll},
	{Name: "face", Versions: VersLoose},
	{Name: "for", Versions: VersHTML40},
	{Name: "frame", Versions: VersHTML40},
	{Name: "frameborder", Versions: VersFrameset},
	{Name: "framespacing", Versions: VersProprietary},
	{Name: "gridx", Versions: VersProprietary},
	{Name: "gridy", Versions: VersProprietary},
	{Name: "headers", Versions: VersHTML40},
	{Name: "height", Versions: VersAll},
	{Name: "href", Versions: VersAll, Check: CheckURL},
	{Name: "hreflang", Versions: VersHTML40},
	{Name: "hspace", Versions: VersAll},
	{Name: "http-equiv", Versions: VersAll},
	{Name: "id", Versions: VersHTML40, Check: CheckID},
	{Name: "ismap", Versions: VersAll, Check: CheckBool},
	{Name: "label", Versions: VersHTML40},
	{Name: "lang", Versions: VersHTML40},
	{Name: "language", Versions: VersLoose},
	{Name: "last_modified", Versions: VersNetscape},
	{Name: "last_visit", Versions: VersNetscape},
	{Name: "leftmargin", Versions: VersMicrosoft},
	{Name: "link", Versions: VersLoose},
	{Name: "longdesc", Versions: VersHTML40, Check: CheckURL},
	{Name: "lowsrc", Versions: VersProprietary, Check: CheckURL},
	{Name: "marginheight", Versions: VersIFrame},
	{Name: "marginwidth", Versions: VersIFrame},
	{Name: "maxlength", Versions: VersAll},
	{Name: "media", Versions: VersHTML40},
	{Name: "method", Versions: VersAll},
	{Name: "multiple", Versions: VersAll, Check: CheckBool},
	{Name: "name", Versions: VersAll, Check: CheckName},
	{Name: "nohref", Versions: VersFrom32, Check: CheckBool},
	{Name: "noresize", Versions: VersFrameset, Check: CheckBool},
	{Name: "noshade", Versions: VersLoose, Check: CheckBool},
	{Name: "nowrap", Versions: VersLoose, Check: CheckBool},
	{Name: "object", Versions: VersHTML40},
	{Name: "onblur", Versions: VersEvents, Check: CheckScript},
	{Name: "onchange", Versions: VersEvents, Check: CheckScript},
	{Name: "onclick", Versions: VersEvents, Check: CheckScript},
	{Name: "ondblclick", Versions: VersEvents, Check: CheckScript},
	{Name: "onfocus", Versions: VersEvents, Check: CheckScript},
	{Name: "onkeydown", Versions: VersEvents, Check: CheckScript},
	{Name: "onkeypress", Versions: VersEvents, Check: CheckScript},
	{Name: "onkeyup", Versions: VersEvents, Check: CheckScript},
	{Name: "onload", Versions: VersEvents, Check: CheckScript},
	{Name: "onmousedown", Versions: VersEvents, Check: CheckScript},
	{Name: "onmousemove", Versions: VersEvents, Check: CheckScript},
	{Name: "onmouseout", Versions: VersEvents, Check: CheckScript},
	{Name: "onmouseover", Versions: VersEvents, Check: CheckScript},
	{Name: "onmouseup", Versions: VersEvents, Check: CheckScript},
	{Name: "onreset", Versions: VersEvents, Check: CheckScript},
	{Name: "onselect", Versions: VersEvents, Check: CheckScript},
	{Name: "onsubmit", Versions: VersEvents, Check: CheckScript},
	{Name: "onunload", Versions: VersEvents, Check: CheckScript},
	{Name: "profile", Versions: VersHTML40, Check: CheckURL},
	{Name: "prompt", Versions: VersLoose},
	{Name: "readonly", Versions: VersHTML40, Check: CheckBool},
	{Name: "rel", Versions: VersAll},
	{Name: "rev", Versions: VersAll},
	{Name: "rightmargin", Versions: VersMicrosoft},
	{Name: "rows", Versions: VersAll},
	{Name: "rowspan", Versions: VersAll},
	{Name: "rules", Versions: VersHTML40},
	{Name: "scheme", Versions: VersHTML40},
	{Name: "scope", Versions: VersHTML40},
	{Name: "scrolling", Versions: VersIFrame},
	{Name: "selected", Versions: VersAll, Check: CheckBool},
	{Name: "shape", Versions: VersFrom32},
	{Name: "showgrid", Versions: VersProprietary, Check: CheckBool},
	{Name: "showgridx", Versions: VersProprietary, Check: CheckBool},
	{Name: "showgridy", Versions: VersProprietary, Check: CheckBool},
	{Name: "size", Versions: VersLoose},
	{Name: "span", Versions: VersHTML40},
	{Name: "src", Versions: VersAll, Check: CheckURL},
	{Name: "standby", Versions: VersHTML40},
	{Name: "start", Versions: VersAll},
	{Name: "style", Versions: VersHTML40},
	{Name: "summary", Versions: VersHTML40},
	{Name: "tabindex", Versions: VersHTML40},
	{Name: "target", Versions: VersHTML40},
	{Name: "text", Versions: VersLoose},
	{Name: "title", Versions: VersHTML40},
	{Name: "topmargin", Versions: VersMicrosoft},
	{Name: "type", Versions: VersAll},
	{Name: "usemap", Versions: VersAll, Check: CheckURL},
	{Name: "valign", Versions: VersFrom32, Check: CheckVAlign},
	{Name: "value", Versions: VersAll},
	{Name: "valuetype", Versions: VersHTML40},
	{Name: "version", Versions: VersAll},
	{Name: "vlink", Versions: VersLoose},
	{Name: "vspace", Versions: VersLoose},
	{Name: "width", Versions: VersAll},
	{Name: "wrap", Versions: VersNetscape},
	{Name: "xml:lang", Versions: VersXML},
	{Name: "xml:space", Versions: VersXML},
	{Name: "xmlns", Versions: VersXML},
}
