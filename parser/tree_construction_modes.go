package parser

import "browser/parser/spec"

// isWhitespaceChar reports whether s (always a single rune wide, as
// produced by the tokenizer's character tokens) is one of the five
// characters the spec treats as "whitespace" for insertion-mode
// purposes: tab, LF, FF, CR, space.
func isWhitespaceChar(s string) bool {
	switch s {
	case "\t", "\n", "\f", "\r", " ":
		return true
	}
	return false
}

var headingTags = map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true}

var formattingTags = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true, "font": true,
	"i": true, "nobr": true, "s": true, "small": true, "strike": true,
	"strong": true, "tt": true, "u": true,
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func (c *HTMLTreeConstructor) initialModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceChar(t.Data) {
			return false, initial, noError
		}
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument.Node)
		return false, initial, noError
	case docTypeToken:
		doctype := spec.NewDocTypeNode(t.TagName, t.PublicIdentifier, t.SystemIdentifier)
		c.HTMLDocument.AppendChild(doctype)
		c.HTMLDocument.Doctype = doctype

		err := noError
		if t.TagName != "html" || t.PublicIdentifier != missing || (t.SystemIdentifier != missing && t.SystemIdentifier != "about:legacy-compat") {
			err = nonConformingDoctype
		}

		if !c.isIframeSrcDoc() {
			if c.isForceQuirks(t) {
				c.quirksMode = quirks
			} else if c.isLimitedQuirks(t) {
				c.quirksMode = limitedQuirks
			} else {
				c.quirksMode = noQuirks
			}
		}
		return false, beforeHTML, err
	}

	return true, beforeHTML, missingDoctype
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-html-insertion-mode
func (c *HTMLTreeConstructor) beforeHTMLModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case docTypeToken:
		return false, beforeHTML, generalParseError
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument.Node)
		return false, beforeHTML, noError
	case characterToken:
		if isWhitespaceChar(t.Data) {
			return false, beforeHTML, noError
		}
	case startTagToken:
		if t.TagName == "html" {
			root := c.createElementForToken(t, spec.Htmlns)
			c.HTMLDocument.AppendChild(root)
			c.stackOfOpenElements = append(c.stackOfOpenElements, root)
			return false, beforeHead, noError
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			return false, beforeHTML, generalParseError
		}
	}

	root := spec.NewDOMElement(c.HTMLDocument.Node, "html", spec.Htmlns)
	c.HTMLDocument.AppendChild(root)
	c.stackOfOpenElements = append(c.stackOfOpenElements, root)
	return true, beforeHead, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-head-insertion-mode
func (c *HTMLTreeConstructor) beforeHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceChar(t.Data) {
			return false, beforeHead, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, beforeHead, noError
	case docTypeToken:
		return false, beforeHead, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, beforeHead, inBody)
		case "head":
			head := c.insertHTMLElementForToken(t)
			c.headElementPointer = head
			return false, inHead, noError
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			return false, beforeHead, generalParseError
		}
	}

	fakeHead := Token{TokenType: startTagToken, TagName: "head"}
	head := c.insertHTMLElementForToken(&fakeHead)
	c.headElementPointer = head
	return true, inHead, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inhead
func (c *HTMLTreeConstructor) inHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceChar(t.Data) {
			c.insertCharacter(t)
			return false, inHead, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, inHead, noError
	case docTypeToken:
		return false, inHead, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inHead, inBody)
		case "base", "basefont", "bgsound", "link":
			c.insertSelfClosingElement(t, spec.Htmlns)
			return false, inHead, noError
		case "meta":
			c.insertSelfClosingElement(t, spec.Htmlns)
			return false, inHead, noError
		case "title":
			c.insertHTMLElementForToken(t)
			c.originalInsertionMode = inHead
			return false, text, noError
		case "noscript":
			if c.scriptingEnabled {
				c.insertHTMLElementForToken(t)
				c.originalInsertionMode = inHead
				return false, text, noError
			}
			c.insertHTMLElementForToken(t)
			return false, inHeadNoScript, noError
		case "noframes", "style":
			c.insertHTMLElementForToken(t)
			c.originalInsertionMode = inHead
			return false, text, noError
		case "script":
			c.insertHTMLElementForToken(t)
			c.originalInsertionMode = inHead
			return false, text, noError
		case "template":
			c.insertHTMLElementForToken(t)
			c.activeFormattingElements = append(c.activeFormattingElements, spec.ScopeMarker)
			c.frameset = framesetNotOK
			c.insertionMode = inTemplate
			c.stackOfTemplateInsertionModes = append(c.stackOfTemplateInsertionModes, inTemplate)
			return false, inTemplate, noError
		case "head":
			return false, inHead, generalParseError
		}
	case endTagToken:
		switch t.TagName {
		case "head":
			c.popOpenElement()
			return false, afterHead, noError
		case "body", "html", "br":
			c.popOpenElement()
			return true, afterHead, noError
		case "template":
			if c.stackOfOpenElements.Contains(c.templateNode()) == -1 {
				return false, inHead, endTagWithoutMatchingOpenElement
			}
			c.generateAllImpliedEndTagsThoroughly()
			c.popUntil("template")
			c.clearActiveFormattingElementsToLastMarker()
			if len(c.stackOfTemplateInsertionModes) > 0 {
				c.stackOfTemplateInsertionModes = c.stackOfTemplateInsertionModes[:len(c.stackOfTemplateInsertionModes)-1]
			}
			return false, inHead, noError
		default:
			return false, inHead, generalParseError
		}
	case endOfFileToken:
		c.popOpenElement()
		return true, afterHead, noError
	}

	c.popOpenElement()
	return true, afterHead, noError
}

func (c *HTMLTreeConstructor) templateNode() *spec.Node {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		if c.stackOfOpenElements[i].NodeName == "template" {
			return c.stackOfOpenElements[i]
		}
	}
	return nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inheadnoscript
func (c *HTMLTreeConstructor) inHeadNoScriptModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case docTypeToken:
		return false, inHeadNoScript, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inHeadNoScript, inBody)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return c.useRulesFor(t, inHeadNoScript, inHead)
		case "head", "noscript":
			return false, inHeadNoScript, generalParseError
		}
	case endTagToken:
		switch t.TagName {
		case "noscript":
			c.popOpenElement()
			return false, inHead, noError
		case "br":
			c.popOpenElement()
			return true, inHead, noError
		}
		return false, inHeadNoScript, generalParseError
	case characterToken:
		if isWhitespaceChar(t.Data) {
			return c.useRulesFor(t, inHeadNoScript, inHead)
		}
	case commentToken:
		return c.useRulesFor(t, inHeadNoScript, inHead)
	}

	c.popOpenElement()
	return true, inHead, generalParseError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-head-insertion-mode
func (c *HTMLTreeConstructor) afterHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceChar(t.Data) {
			c.insertCharacter(t)
			return false, afterHead, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, afterHead, noError
	case docTypeToken:
		return false, afterHead, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, afterHead, inBody)
		case "body":
			c.insertHTMLElementForToken(t)
			c.frameset = framesetNotOK
			return false, inBody, noError
		case "frameset":
			c.insertHTMLElementForToken(t)
			return false, inFrameset, noError
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script",
			"style", "template", "title":
			if c.headElementPointer != nil {
				c.stackOfOpenElements = append(c.stackOfOpenElements, c.headElementPointer)
			}
			reprocess, mode, err := c.inHeadModeHandler(t)
			if c.headElementPointer != nil {
				if i := c.stackOfOpenElements.Contains(c.headElementPointer); i != -1 {
					c.stackOfOpenElements = append(c.stackOfOpenElements[:i], c.stackOfOpenElements[i+1:]...)
				}
			}
			return reprocess, mode, err
		case "head":
			return false, afterHead, generalParseError
		}
	case endTagToken:
		switch t.TagName {
		case "body", "html", "br":
		default:
			return false, afterHead, generalParseError
		}
	}

	fakeBody := Token{TokenType: startTagToken, TagName: "body"}
	c.insertHTMLElementForToken(&fakeBody)
	return true, inBody, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-body-insertion-mode
func (c *HTMLTreeConstructor) afterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceChar(t.Data) {
			return c.useRulesFor(t, afterBody, inBody)
		}
	case commentToken:
		c.insertCommentAt(t, c.stackOfOpenElements[0])
		return false, afterBody, noError
	case docTypeToken:
		return false, afterBody, generalParseError
	case startTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, afterBody, inBody)
		}
	case endTagToken:
		if t.TagName == "html" {
			return false, afterAfterBody, noError
		}
	case endOfFileToken:
		return false, afterBody, noError
	}

	return true, inBody, generalParseError
}

func (c *HTMLTreeConstructor) afterAfterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument.Node)
		return false, afterAfterBody, noError
	case docTypeToken:
		return c.useRulesFor(t, afterAfterBody, inBody)
	case characterToken:
		if isWhitespaceChar(t.Data) {
			return c.useRulesFor(t, afterAfterBody, inBody)
		}
	case startTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, afterAfterBody, inBody)
		}
	case endOfFileToken:
		return false, afterAfterBody, noError
	}

	return true, inBody, generalParseError
}

func (c *HTMLTreeConstructor) inFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceChar(t.Data) {
			c.insertCharacter(t)
			return false, inFrameset, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, inFrameset, noError
	case docTypeToken:
		return false, inFrameset, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inFrameset, inBody)
		case "frameset":
			c.insertHTMLElementForToken(t)
			return false, inFrameset, noError
		case "frame":
			c.insertSelfClosingElement(t, spec.Htmlns)
			return false, inFrameset, noError
		case "noframes":
			return c.useRulesFor(t, inFrameset, inHead)
		}
	case endTagToken:
		if t.TagName == "frameset" {
			if len(c.stackOfOpenElements) > 1 {
				c.popOpenElement()
			}
			if len(c.stackOfOpenElements) > 0 && c.getCurrentNode().NodeName != "frameset" {
				return false, afterFrameset, noError
			}
			return false, inFrameset, noError
		}
	case endOfFileToken:
		return false, inFrameset, noError
	}

	return false, inFrameset, generalParseError
}

func (c *HTMLTreeConstructor) afterFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceChar(t.Data) {
			c.insertCharacter(t)
			return false, afterFrameset, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, afterFrameset, noError
	case docTypeToken:
		return false, afterFrameset, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, afterFrameset, inBody)
		case "noframes":
			return c.useRulesFor(t, afterFrameset, inHead)
		}
	case endTagToken:
		if t.TagName == "html" {
			return false, afterAfterFrameset, noError
		}
	case endOfFileToken:
		return false, afterFrameset, noError
	}

	return false, afterFrameset, generalParseError
}

func (c *HTMLTreeConstructor) afterAfterFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument.Node)
		return false, afterAfterFrameset, noError
	case docTypeToken:
		return c.useRulesFor(t, afterAfterFrameset, inBody)
	case characterToken:
		if isWhitespaceChar(t.Data) {
			return c.useRulesFor(t, afterAfterFrameset, inBody)
		}
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, afterAfterFrameset, inBody)
		case "noframes":
			return c.useRulesFor(t, afterAfterFrameset, inHead)
		}
	case endOfFileToken:
		return false, afterAfterFrameset, noError
	}

	return false, afterAfterFrameset, generalParseError
}
