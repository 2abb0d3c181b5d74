package dict

// ContentModel describes where an element may appear and what it holds.
type ContentModel uint32

const (
	CMEmpty ContentModel = 1 << iota
	CMHTML
	CMHead
	CMBlock
	CMInline
	CMList
	CMDefList
	CMTable
	CMRowGroup
	CMRow
	CMField
	CMObject
	CMParam
	CMFrames
	CMHeading
	CMOpt
	CMImg
	CMMixed
	CMNoIndent
	CMObsolete
	CMOmitST
)

const CMUnknown ContentModel = 0

func (m *ContentModel) Set(n ContentModel) {
	*m |= n
}

func (m ContentModel) IsSet(n ContentModel) bool {
	return m&n != 0
}

// ParseRule selects how the tree builder treats the children of an element.
type ParseRule int

const (
	RuleNone ParseRule = iota
	RuleHTML
	RuleHead
	RuleTitle
	RuleScript
	RuleBody
	RuleFrameSet
	RuleNoFrames
	RuleBlock
	RuleInline
	RuleList
	RuleDefList
	RulePre
	RuleTable
	RuleColGroup
	RuleRowGroup
	RuleRow
	RuleSelect
	RuleOptGroup
	RuleText
	RuleEmpty
)

func (r ParseRule) String() string {
	switch r {
	case RuleHTML:
		return "html"
	case RuleHead:
		return "head"
	case RuleTitle:
		return "title"
	case RuleScript:
		return "script"
	case RuleBody:
		return "body"
	case RuleFrameSet:
		return "frameset"
	case RuleNoFrames:
		return "noframes"
	case RuleBlock:
		return "block"
	case RuleInline:
		return "inline"
	case RuleList:
		return "list"
	case RuleDefList:
		return "deflist"
	case RulePre:
		return "pre"
	case RuleTable:
		return "table"
	case RuleColGroup:
		return "colgroup"
	case RuleRowGroup:
		return "rowgroup"
	case RuleRow:
		return "row"
	case RuleSelect:
		return "select"
	case RuleOptGroup:
		return "optgroup"
	case RuleText:
		return "text"
	case RuleEmpty:
		return "empty"
	}
	return "none"
}

// AttrCheck names the validator run against an attribute value.
type AttrCheck int

const (
	CheckNone AttrCheck = iota
	CheckURL
	CheckBool
	CheckID
	CheckName
	CheckScript
	CheckAlign
	CheckVAlign
)

func (c AttrCheck) String() string {
	switch c {
	case CheckURL:
		return "url"
	case CheckBool:
		return "bool"
	case CheckID:
		return "id"
	case CheckName:
		return "name"
	case CheckScript:
		return "script"
	case CheckAlign:
		return "align"
	case CheckVAlign:
		return "valign"
	}
	return "none"
}
