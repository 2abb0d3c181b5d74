package tidy

import (
	"strings"

	"github.com/lestrrat-go/tidy/dict"
	"github.com/lestrrat-go/tidy/node"
	"golang.org/x/net/html/atom"
)

// checkAttributes validates every attribute of element id, in order.
func (ctx *parserCtx) checkAttributes(id node.ID) {
	for i := range ctx.doc.AttrCount(id) {
		ctx.checkUniqueAttribute(id, i)
		ctx.checkAttribute(id, i)
	}
}

// checkUniqueAttribute reports the first later attribute with the same
// name as attribute i. Both stay on the element.
func (ctx *parserCtx) checkUniqueAttribute(id node.ID, i int) {
	av := ctx.doc.Attr(id, i)
	if av.Synthetic {
		return
	}
	for j := i + 1; j < ctx.doc.AttrCount(id); j++ {
		other := ctx.doc.Attr(id, j)
		if other.Synthetic {
			continue
		}
		if strings.EqualFold(av.Name, other.Name) {
			ctx.reportNode(RepeatedAttribute, id, other)
			return
		}
	}
}

func (ctx *parserCtx) checkAttribute(id node.ID, i int) {
	av := ctx.doc.Attr(id, i)
	tag := ctx.doc.Tag(id)

	if av.Dict == nil {
		if !ctx.cfg.XMLTags && !av.Synthetic && tag != nil && !tag.IsProprietary() {
			ctx.reportNode(UnknownAttribute, id, av)
		}
		return
	}

	switch {
	case av.Dict.IsXML():
		if !ctx.cfg.XMLTags && !ctx.cfg.XMLOut {
			ctx.reportNode(XMLVersionMismatch, id, av)
		}
	case av.Dict.Name == "title" && isAnchorOrLink(ctx.doc.Tag(id)):
		// title on a and link is valid in every version
	default:
		ctx.doc.ConstrainVersion(av.Dict.Versions)
	}

	switch av.Dict.Check {
	case dict.CheckNone:
		if av.Dict.IsProprietary() {
			ctx.reportNode(ProprietaryAttribute, id, av)
		}
	case dict.CheckURL:
		ctx.checkURL(id, av)
	case dict.CheckAlign:
		ctx.checkAlign(id, av)
	case dict.CheckVAlign:
		ctx.checkVAlign(id, av)
	case dict.CheckBool, dict.CheckID, dict.CheckName, dict.CheckScript:
		// presence is enough
	}
}

func isAnchorOrLink(tag *dict.Tag) bool {
	switch tagAtom(tag) {
	case atom.A, atom.Link:
		return true
	}
	return false
}

func (ctx *parserCtx) checkURL(id node.ID, av *node.AttVal) {
	if !av.HasValue {
		ctx.reportNode(MissingValue, id, av)
		return
	}
	if !strings.ContainsRune(av.Value, '\\') {
		return
	}
	if !ctx.cfg.FixBackslash {
		ctx.reportNode(BackslashInURI, id, av)
		return
	}
	ctx.reportNode(FixedBackslash, id, av)
	av.Value = strings.ReplaceAll(av.Value, `\`, "/")
}

func isImageLike(tag *dict.Tag) bool {
	return tag != nil && tag.Model.IsSet(dict.CMImg)
}

func (ctx *parserCtx) checkAlign(id node.ID, av *node.AttVal) {
	if isImageLike(ctx.doc.Tag(id)) {
		ctx.checkVAlign(id, av)
		return
	}
	if !av.HasValue {
		ctx.reportNode(MissingValue, id, av)
		return
	}
	switch strings.ToLower(av.Value) {
	case "left", "right", "center", "justify":
	default:
		ctx.reportNode(BadValue, id, av)
	}
}

func (ctx *parserCtx) checkVAlign(id node.ID, av *node.AttVal) {
	if !av.HasValue {
		ctx.reportNode(MissingValue, id, av)
		return
	}
	switch strings.ToLower(av.Value) {
	case "top", "middle", "bottom", "baseline":
	case "left", "right":
		if !isImageLike(ctx.doc.Tag(id)) {
			ctx.reportNode(BadValue, id, av)
		}
	case "texttop", "absmiddle", "absbottom", "textbottom":
		ctx.doc.ConstrainVersion(dict.VersProprietary)
		ctx.reportNode(ProprietaryValue, id, av)
	default:
		ctx.reportNode(BadValue, id, av)
	}
}
