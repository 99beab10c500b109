package parser

import (
	"strings"

	"browser/parser/spec"
)

// This file implements the tree construction dispatcher's foreign-content
// branch and the "rules for parsing tokens in foreign content":
// https://html.spec.whatwg.org/multipage/parsing.html#tree-construction-dispatcher
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
// (the adjustment tables below all live under that same numbered section).
// Grounded on other_examples/dpotapov-go-pages__parse.go's parseForeignContent,
// inForeignContent and mathMLTextIntegrationPoint.

// currentNodeRequiresForeignContentDispatch reports whether t should be
// handled by the foreign-content rules rather than the current insertion
// mode's own handler. https://html.spec.whatwg.org/multipage/parsing.html#tree-construction-dispatcher
func (c *HTMLTreeConstructor) currentNodeRequiresForeignContentDispatch(t *Token) bool {
	if len(c.stackOfOpenElements) == 0 || t.TokenType == endOfFileToken {
		return false
	}

	n := c.getAdjustedCurrentNode()
	if n == nil || n.Element == nil || n.Element.NamespaceURI == spec.Htmlns {
		return false
	}

	if isMathMLTextIntegrationPoint(n) {
		if t.TokenType == characterToken {
			return false
		}
		if t.TokenType == startTagToken && t.TagName != "mglyph" && t.TagName != "malignmark" {
			return false
		}
	}

	if n.Element.NamespaceURI == spec.Mathmlns && n.NodeName == "annotation-xml" &&
		t.TokenType == startTagToken && t.TagName == "svg" {
		return false
	}

	if isHTMLIntegrationPoint(n) && (t.TokenType == startTagToken || t.TokenType == characterToken) {
		return false
	}

	return true
}

// isMathMLTextIntegrationPoint is https://html.spec.whatwg.org/multipage/parsing.html#mathml-text-integration-point
func isMathMLTextIntegrationPoint(n *spec.Node) bool {
	if n.Element == nil || n.Element.NamespaceURI != spec.Mathmlns {
		return false
	}
	switch n.NodeName {
	case "mi", "mo", "mn", "ms", "mtext":
		return true
	}
	return false
}

// isHTMLIntegrationPoint is https://html.spec.whatwg.org/multipage/parsing.html#html-integration-point
func isHTMLIntegrationPoint(n *spec.Node) bool {
	if n.Element == nil {
		return false
	}
	switch n.Element.NamespaceURI {
	case spec.Mathmlns:
		if n.NodeName != "annotation-xml" || n.Attributes == nil {
			return false
		}
		enc := n.Attributes.GetNamedItem("encoding")
		if enc == nil {
			return false
		}
		v := strings.ToLower(enc.Value)
		return v == "text/html" || v == "application/xhtml+xml"
	case spec.Svgns:
		switch n.NodeName {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

// foreignContentBreakoutTags is the fixed set of start tags that always
// force an exit out of foreign content back to the current HTML
// insertion mode, regardless of where in the foreign subtree they
// appear. https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
var foreignContentBreakoutTags = map[string]bool{
	"b": true, "big": true, "blockquote": true, "body": true, "br": true,
	"center": true, "code": true, "dd": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "head": true, "hr": true, "i": true,
	"img": true, "li": true, "listing": true, "menu": true, "meta": true,
	"nobr": true, "ol": true, "p": true, "pre": true, "ruby": true, "s": true,
	"small": true, "span": true, "strong": true, "strike": true, "sub": true,
	"sup": true, "table": true, "tt": true, "u": true, "ul": true, "var": true,
}

func isForeignContentBreakoutStartTag(t *Token) bool {
	if foreignContentBreakoutTags[t.TagName] {
		return true
	}
	if t.TagName != "font" {
		return false
	}
	_, hasColor := t.Attributes["color"]
	_, hasFace := t.Attributes["face"]
	_, hasSize := t.Attributes["size"]
	return hasColor || hasFace || hasSize
}

// mathMLAttributeAdjustments is "adjust MathML attributes":
// https://html.spec.whatwg.org/multipage/parsing.html#adjust-mathml-attributes
var mathMLAttributeAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

// svgAttributeAdjustments is "adjust SVG attributes":
// https://html.spec.whatwg.org/multipage/parsing.html#adjust-svg-attributes
var svgAttributeAdjustments = map[string]string{
	"attributename":              "attributeName",
	"attributetype":              "attributeType",
	"basefrequency":              "baseFrequency",
	"baseprofile":                "baseProfile",
	"calcmode":                   "calcMode",
	"clippath":                   "clipPath",
	"clippathunits":              "clipPathUnits",
	"contentscripttype":          "contentScriptType",
	"contentstyletype":           "contentStyleType",
	"diffuseconstant":            "diffuseConstant",
	"edgemode":                   "edgeMode",
	"externalresourcesrequired":  "externalResourcesRequired",
	"filterres":                  "filterRes",
	"filterunits":                "filterUnits",
	"glyphref":                   "glyphRef",
	"gradienttransform":          "gradientTransform",
	"gradientunits":              "gradientUnits",
	"kernelmatrix":               "kernelMatrix",
	"kernelunitlength":           "kernelUnitLength",
	"keypoints":                  "keyPoints",
	"keysplines":                 "keySplines",
	"keytimes":                   "keyTimes",
	"lengthadjust":               "lengthAdjust",
	"limitingconeangle":          "limitingConeAngle",
	"markerheight":               "markerHeight",
	"markerunits":                "markerUnits",
	"markerwidth":                "markerWidth",
	"maskcontentunits":           "maskContentUnits",
	"maskunits":                  "maskUnits",
	"numoctaves":                 "numOctaves",
	"pathlength":                 "pathLength",
	"patterncontentunits":        "patternContentUnits",
	"patterntransform":           "patternTransform",
	"patternunits":               "patternUnits",
	"pointsatx":                  "pointsAtX",
	"pointsaty":                  "pointsAtY",
	"pointsatz":                  "pointsAtZ",
	"preservealpha":              "preserveAlpha",
	"preserveaspectratio":        "preserveAspectRatio",
	"primitiveunits":             "primitiveUnits",
	"refx":                       "refX",
	"refy":                       "refY",
	"repeatcount":                "repeatCount",
	"repeatdur":                  "repeatDur",
	"requiredextensions":         "requiredExtensions",
	"requiredfeatures":           "requiredFeatures",
	"specularconstant":           "specularConstant",
	"specularexponent":           "specularExponent",
	"spreadmethod":               "spreadMethod",
	"startoffset":                "startOffset",
	"stddeviation":               "stdDeviation",
	"stitchtiles":                "stitchTiles",
	"surfacescale":               "surfaceScale",
	"systemlanguage":             "systemLanguage",
	"tablevalues":                "tableValues",
	"targetx":                    "targetX",
	"targety":                    "targetY",
	"textlength":                 "textLength",
	"viewbox":                    "viewBox",
	"viewtarget":                 "viewTarget",
	"xchannelselector":           "xChannelSelector",
	"ychannelselector":           "yChannelSelector",
	"zoomandpan":                 "zoomAndPan",
}

// svgTagNameAdjustments is "adjust SVG tag names":
// https://html.spec.whatwg.org/multipage/parsing.html#adjust-svg-tag-names
var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

type foreignAttrAdjustment struct {
	ns     spec.Namespace
	prefix string
	local  string
}

// foreignAttributeAdjustments is "adjust foreign attributes":
// https://html.spec.whatwg.org/multipage/parsing.html#adjust-foreign-attributes
var foreignAttributeAdjustments = map[string]foreignAttrAdjustment{
	"xlink:actuate": {spec.Xlinkns, "xlink", "actuate"},
	"xlink:arcrole": {spec.Xlinkns, "xlink", "arcrole"},
	"xlink:href":    {spec.Xlinkns, "xlink", "href"},
	"xlink:role":    {spec.Xlinkns, "xlink", "role"},
	"xlink:show":    {spec.Xlinkns, "xlink", "show"},
	"xlink:title":   {spec.Xlinkns, "xlink", "title"},
	"xlink:type":    {spec.Xlinkns, "xlink", "type"},
	"xml:lang":      {spec.Xmlns, "xml", "lang"},
	"xml:space":     {spec.Xmlns, "xml", "space"},
	"xmlns":         {spec.Xmlnsns, "", "xmlns"},
	"xmlns:xlink":   {spec.Xmlnsns, "xmlns", "xlink"},
}

// renameAttributes rewrites t's attribute keys (and their recorded
// locations) per table, used by both the MathML and SVG attribute
// adjustment tables -- they only ever rename, they never touch
// namespace/prefix.
func renameAttributes(t *Token, table map[string]string) {
	for old, replacement := range table {
		a, ok := t.Attributes[old]
		if !ok {
			continue
		}
		delete(t.Attributes, old)
		a.Name = replacement
		a.LocalName = replacement
		t.Attributes[replacement] = a
		for i := range t.AttrLocs {
			if t.AttrLocs[i].Name == old {
				t.AttrLocs[i].Name = replacement
			}
		}
	}
}

func adjustMathMLAttributes(t *Token) {
	renameAttributes(t, mathMLAttributeAdjustments)
}

func adjustSVGAttributes(t *Token) {
	renameAttributes(t, svgAttributeAdjustments)
}

func adjustSVGTagName(t *Token) {
	if replacement, ok := svgTagNameAdjustments[t.TagName]; ok {
		t.TagName = replacement
		t.TagID = lookupTagID(replacement)
	}
}

// adjustForeignAttributes sets namespace/prefix/local-name on any
// xlink:*, xml:*, xmlns or xmlns:xlink attribute of t, leaving anything
// else untouched.
func adjustForeignAttributes(t *Token) {
	for k, a := range t.Attributes {
		adj, ok := foreignAttributeAdjustments[k]
		if !ok {
			continue
		}
		a.Namespace = adj.ns
		a.Prefix = adj.prefix
		a.LocalName = adj.local
	}
}

// foreignContentModeHandler is "the rules for parsing tokens in foreign
// content": https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
func (c *HTMLTreeConstructor) foreignContentModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\x00" {
			t.Data = string('\uFFFD')
			c.insertCharacter(t)
			return false, c.insertionMode, unexpectedTokenInForeignContent
		}
		c.insertCharacter(t)
		if !isWhitespaceChar(t.Data) {
			c.frameset = framesetNotOK
		}
		return false, c.insertionMode, noError

	case commentToken:
		c.insertComment(t)
		return false, c.insertionMode, noError

	case docTypeToken:
		return false, c.insertionMode, unexpectedTokenInForeignContent

	case startTagToken:
		return c.foreignContentStartTag(t)

	case endTagToken:
		return c.foreignContentEndTag(t)
	}

	return false, c.insertionMode, noError
}

// foreignContentStartTag handles both the breakout-tag exception (which
// pops back out to HTML content and reprocesses the token) and "any
// other start tag" (insert a properly-adjusted foreign element).
func (c *HTMLTreeConstructor) foreignContentStartTag(t *Token) (bool, insertionMode, parseError) {
	if isForeignContentBreakoutStartTag(t) {
		for {
			cur := c.getCurrentNode()
			if cur == nil {
				break
			}
			if isMathMLTextIntegrationPoint(cur) || isHTMLIntegrationPoint(cur) ||
				(cur.Element != nil && cur.Element.NamespaceURI == spec.Htmlns) {
				break
			}
			c.popOpenElement()
		}
		return true, c.insertionMode, unexpectedTokenInForeignContent
	}

	adjusted := c.getAdjustedCurrentNode()
	ns := spec.Htmlns
	if adjusted != nil && adjusted.Element != nil {
		ns = adjusted.Element.NamespaceURI
	}

	switch ns {
	case spec.Mathmlns:
		adjustMathMLAttributes(t)
	case spec.Svgns:
		adjustSVGTagName(t)
		adjustSVGAttributes(t)
	}
	adjustForeignAttributes(t)

	c.insertForeignElementForToken(t, ns)
	if t.SelfClosing {
		c.popOpenElement()
		t.AckSelfClosing = true
	}
	return false, c.insertionMode, noError
}

// foreignContentEndTag is "any other end tag" in
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata --
// walk down the stack for a case-insensitive tag-name match, popping
// everything above and including it; give up (without popping anything)
// at the topmost element, and fall through to the current HTML
// insertion mode the moment an HTML-namespace ancestor is reached
// without a match.
func (c *HTMLTreeConstructor) foreignContentEndTag(t *Token) (bool, insertionMode, parseError) {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		n := c.stackOfOpenElements[i]
		if i == 0 {
			return false, c.insertionMode, noError
		}
		if strings.EqualFold(n.NodeName, t.TagName) {
			for len(c.stackOfOpenElements)-1 >= i {
				c.popOpenElement()
			}
			return false, c.insertionMode, noError
		}
		if n.Element != nil && n.Element.NamespaceURI == spec.Htmlns {
			return c.mappings[c.insertionMode](t)
		}
	}
	return false, c.insertionMode, noError
}
