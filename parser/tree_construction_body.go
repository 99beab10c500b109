package parser

import "browser/parser/spec"

// closePElement implements https://html.spec.whatwg.org/multipage/parsing.html#close-a-p-element
func (c *HTMLTreeConstructor) closePElement() parseError {
	c.generateImpliedEndTags("p")
	err := noError
	if cur := c.getCurrentNode(); cur != nil && cur.NodeName != "p" {
		err = closingOfElementWithOpenChildElements
	}
	c.popUntil("p")
	return err
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (c *HTMLTreeConstructor) inBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\x00" {
			return false, inBody, generalParseError
		}
		c.reconstructActiveFormattingElements()
		c.insertCharacter(t)
		if !isWhitespaceChar(t.Data) {
			c.frameset = framesetNotOK
		}
		return false, inBody, noError

	case commentToken:
		c.insertComment(t)
		return false, inBody, noError

	case docTypeToken:
		return false, inBody, generalParseError

	case endOfFileToken:
		if len(c.stackOfTemplateInsertionModes) > 0 {
			return c.useRulesFor(t, inBody, inTemplate)
		}
		return false, inBody, noError

	case startTagToken:
		return c.inBodyStartTag(t)

	case endTagToken:
		return c.inBodyEndTag(t)
	}

	return false, inBody, noError
}

func (c *HTMLTreeConstructor) inBodyStartTag(t *Token) (bool, insertionMode, parseError) {
	switch t.TagName {
	case "html":
		if root := c.stackOfOpenElements[0]; root != nil {
			for k, v := range t.Attributes {
				if _, ok := root.Attributes.Attrs[k]; !ok {
					root.Attributes.SetNamedItem(v)
				}
			}
		}
		return false, inBody, generalParseError

	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script",
		"style", "template", "title":
		return c.useRulesFor(t, inBody, inHead)

	case "body":
		if len(c.stackOfOpenElements) > 1 {
			body := c.stackOfOpenElements[1]
			c.frameset = framesetNotOK
			for k, v := range t.Attributes {
				if _, ok := body.Attributes.Attrs[k]; !ok {
					body.Attributes.SetNamedItem(v)
				}
			}
		}
		return false, inBody, generalParseError

	case "frameset":
		if len(c.stackOfOpenElements) <= 1 || c.frameset == framesetNotOK {
			return false, inBody, generalParseError
		}
		second := c.stackOfOpenElements[1]
		if second.ParentNode != nil {
			second.ParentNode.RemoveChild(second)
		}
		c.stackOfOpenElements = c.stackOfOpenElements[:1]
		c.insertHTMLElementForToken(t)
		return false, inFrameset, noError

	case "address", "article", "aside", "blockquote", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure",
		"footer", "header", "hgroup", "main", "menu", "nav", "ol", "p",
		"section", "summary", "ul":
		err := noError
		if c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err

	case "h1", "h2", "h3", "h4", "h5", "h6":
		err := noError
		if c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = c.closePElement()
		}
		if cur := c.getCurrentNode(); cur != nil && headingTags[cur.NodeName] {
			c.popOpenElement()
			err = generalParseError
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err

	case "pre", "listing":
		err := noError
		if c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inBody, err

	case "form":
		if c.formElementPointer != nil && c.stackOfOpenElements.Contains(c.templateNode()) == -1 {
			return false, inBody, generalParseError
		}
		err := noError
		if c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = c.closePElement()
		}
		form := c.insertHTMLElementForToken(t)
		if c.templateNode() == nil {
			c.formElementPointer = form
		}
		return false, inBody, err

	case "li":
		c.frameset = framesetNotOK
		for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
			n := c.stackOfOpenElements[i]
			if n.NodeName == "li" {
				c.generateImpliedEndTags("li")
				c.popUntil("li")
				break
			}
			if isSpecial(n) && n.NodeName != "address" && n.NodeName != "div" && n.NodeName != "p" {
				break
			}
		}
		err := noError
		if c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err

	case "dd", "dt":
		c.frameset = framesetNotOK
		for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
			n := c.stackOfOpenElements[i]
			if n.NodeName == "dd" || n.NodeName == "dt" {
				c.generateImpliedEndTags(n.NodeName)
				c.popUntil(n.NodeName)
				break
			}
			if isSpecial(n) && n.NodeName != "address" && n.NodeName != "div" && n.NodeName != "p" {
				break
			}
		}
		err := noError
		if c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err

	case "plaintext":
		err := noError
		if c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err

	case "button":
		err := noError
		if c.stackOfOpenElements.ContainsElementInScope("button") {
			err = generalParseError
			c.generateImpliedEndTags("")
			c.popUntil("button")
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inBody, err

	case "a":
		for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
			e := c.activeFormattingElements[i]
			if e.NodeType == spec.ScopeMarkerNode {
				break
			}
			if e.NodeName == "a" {
				c.adoptionAgencyAlgorithm(&Token{TagName: "a"})
				if idx := c.indexInFormattingElements(e); idx != -1 {
					c.activeFormattingElements = append(c.activeFormattingElements[:idx], c.activeFormattingElements[idx+1:]...)
				}
				if idx := c.stackOfOpenElements.Contains(e); idx != -1 {
					c.stackOfOpenElements = append(c.stackOfOpenElements[:idx], c.stackOfOpenElements[idx+1:]...)
				}
				break
			}
		}
		c.reconstructActiveFormattingElements()
		elem := c.insertHTMLElementForToken(t)
		c.pushActiveFormattingElements(elem)
		return false, inBody, noError

	case "b", "big", "code", "em", "font", "i", "s", "small", "strike",
		"strong", "tt", "u":
		c.reconstructActiveFormattingElements()
		elem := c.insertHTMLElementForToken(t)
		c.pushActiveFormattingElements(elem)
		return false, inBody, noError

	case "nobr":
		c.reconstructActiveFormattingElements()
		if c.stackOfOpenElements.ContainsElementInScope("nobr") {
			c.adoptionAgencyAlgorithm(&Token{TagName: "nobr"})
			c.reconstructActiveFormattingElements()
		}
		elem := c.insertHTMLElementForToken(t)
		c.pushActiveFormattingElements(elem)
		return false, inBody, noError

	case "applet", "marquee", "object":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.activeFormattingElements = append(c.activeFormattingElements, spec.ScopeMarker)
		c.frameset = framesetNotOK
		return false, inBody, noError

	case "table":
		err := noError
		if c.quirksMode != quirks && c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inTable, err

	case "area", "br", "embed", "img", "keygen", "wbr":
		c.reconstructActiveFormattingElements()
		c.insertSelfClosingElement(t, spec.Htmlns)
		c.frameset = framesetNotOK
		return false, inBody, noError

	case "input":
		c.reconstructActiveFormattingElements()
		c.insertSelfClosingElement(t, spec.Htmlns)
		if a, ok := t.Attributes["type"]; !ok || a.Value != "hidden" {
			c.frameset = framesetNotOK
		}
		return false, inBody, noError

	case "param", "source", "track":
		c.insertSelfClosingElement(t, spec.Htmlns)
		return false, inBody, noError

	case "hr":
		err := noError
		if c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = c.closePElement()
		}
		c.insertSelfClosingElement(t, spec.Htmlns)
		c.frameset = framesetNotOK
		return false, inBody, err

	case "image":
		t.TagName = "img"
		return true, inBody, generalParseError

	case "textarea":
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		c.originalInsertionMode = inBody
		return false, text, noError

	case "xmp":
		err := noError
		if c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = c.closePElement()
		}
		c.reconstructActiveFormattingElements()
		c.frameset = framesetNotOK
		c.insertHTMLElementForToken(t)
		c.originalInsertionMode = inBody
		return false, text, err

	case "iframe":
		c.frameset = framesetNotOK
		c.insertHTMLElementForToken(t)
		c.originalInsertionMode = inBody
		return false, text, noError

	case "noembed":
		c.insertHTMLElementForToken(t)
		c.originalInsertionMode = inBody
		return false, text, noError

	case "noscript":
		if c.scriptingEnabled {
			c.insertHTMLElementForToken(t)
			c.originalInsertionMode = inBody
			return false, text, noError
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		return false, inBody, noError

	case "select":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		switch c.insertionMode {
		case inTable, inCaption, inTableBody, inRow, inCell:
			return false, inSelectInTable, noError
		}
		return false, inSelect, noError

	case "optgroup", "option":
		if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "option" {
			c.popOpenElement()
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		return false, inBody, noError

	case "rb", "rtc":
		if c.stackOfOpenElements.ContainsElementInScope("ruby") {
			c.generateImpliedEndTags("")
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, noError

	case "rp", "rt":
		if c.stackOfOpenElements.ContainsElementInScope("ruby") {
			c.generateImpliedEndTags("rtc")
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, noError

	case "math":
		c.reconstructActiveFormattingElements()
		adjustMathMLAttributes(t)
		adjustForeignAttributes(t)
		c.insertForeignElementForToken(t, spec.Mathmlns)
		if t.SelfClosing {
			c.popOpenElement()
			t.AckSelfClosing = true
		}
		return false, inBody, noError

	case "svg":
		c.reconstructActiveFormattingElements()
		adjustSVGAttributes(t)
		adjustForeignAttributes(t)
		c.insertForeignElementForToken(t, spec.Svgns)
		if t.SelfClosing {
			c.popOpenElement()
			t.AckSelfClosing = true
		}
		return false, inBody, noError

	case "caption", "col", "colgroup", "frame", "head", "tbody", "td",
		"tfoot", "th", "thead", "tr":
		return false, inBody, generalParseError
	}

	c.reconstructActiveFormattingElements()
	c.insertHTMLElementForToken(t)
	return false, inBody, noError
}

func (c *HTMLTreeConstructor) inBodyEndTag(t *Token) (bool, insertionMode, parseError) {
	switch t.TagName {
	case "body":
		if !c.stackOfOpenElements.ContainsElementInScope("body") {
			return false, inBody, endTagWithoutMatchingOpenElement
		}
		return false, afterBody, noError

	case "html":
		if !c.stackOfOpenElements.ContainsElementInScope("body") {
			return false, inBody, endTagWithoutMatchingOpenElement
		}
		return true, afterBody, noError

	case "address", "article", "aside", "blockquote", "button", "center",
		"details", "dialog", "dir", "div", "dl", "fieldset", "figcaption",
		"figure", "footer", "header", "hgroup", "listing", "main", "menu",
		"nav", "ol", "pre", "section", "summary", "ul":
		if !c.stackOfOpenElements.ContainsElementInScope(t.TagName) {
			return false, inBody, endTagWithoutMatchingOpenElement
		}
		c.generateImpliedEndTags("")
		err := noError
		if cur := c.getCurrentNode(); cur != nil && cur.NodeName != t.TagName {
			err = endTagWithoutMatchingOpenElement
		}
		c.popUntil(t.TagName)
		return false, inBody, err

	case "form":
		if c.templateNode() == nil {
			form := c.formElementPointer
			c.formElementPointer = nil
			if form == nil || c.stackOfOpenElements.Contains(form) == -1 {
				return false, inBody, endTagWithoutMatchingOpenElement
			}
			c.generateImpliedEndTags("")
			err := noError
			if c.getCurrentNode() != form {
				err = endTagWithoutMatchingOpenElement
			}
			if i := c.stackOfOpenElements.Contains(form); i != -1 {
				c.stackOfOpenElements = append(c.stackOfOpenElements[:i], c.stackOfOpenElements[i+1:]...)
			}
			return false, inBody, err
		}
		if !c.stackOfOpenElements.ContainsElementInScope("form") {
			return false, inBody, endTagWithoutMatchingOpenElement
		}
		c.generateImpliedEndTags("")
		err := noError
		if cur := c.getCurrentNode(); cur != nil && cur.NodeName != "form" {
			err = endTagWithoutMatchingOpenElement
		}
		c.popUntil("form")
		return false, inBody, err

	case "p":
		err := noError
		if !c.stackOfOpenElements.ContainsElementInButtonScope("p") {
			err = generalParseError
			fake := Token{TokenType: startTagToken, TagName: "p"}
			c.insertHTMLElementForToken(&fake)
		}
		if e := c.closePElement(); e != noError {
			err = e
		}
		return false, inBody, err

	case "li":
		if !c.stackOfOpenElements.ContainsElementInListItemScope("li") {
			return false, inBody, endTagWithoutMatchingOpenElement
		}
		c.generateImpliedEndTags("li")
		err := noError
		if cur := c.getCurrentNode(); cur != nil && cur.NodeName != "li" {
			err = endTagWithoutMatchingOpenElement
		}
		c.popUntil("li")
		return false, inBody, err

	case "dd", "dt":
		if !c.stackOfOpenElements.ContainsElementInScope(t.TagName) {
			return false, inBody, endTagWithoutMatchingOpenElement
		}
		c.generateImpliedEndTags(t.TagName)
		err := noError
		if cur := c.getCurrentNode(); cur != nil && cur.NodeName != t.TagName {
			err = endTagWithoutMatchingOpenElement
		}
		c.popUntil(t.TagName)
		return false, inBody, err

	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !c.stackOfOpenElements.ContainsElementsInScope("h1", "h2", "h3", "h4", "h5", "h6") {
			return false, inBody, endTagWithoutMatchingOpenElement
		}
		c.generateImpliedEndTags("")
		err := noError
		if cur := c.getCurrentNode(); cur != nil && cur.NodeName != t.TagName {
			err = endTagWithoutMatchingOpenElement
		}
		c.popUntil("h1", "h2", "h3", "h4", "h5", "h6")
		return false, inBody, err

	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
		"strike", "strong", "tt", "u":
		err := c.adoptionAgencyAlgorithm(t)
		return false, inBody, err

	case "applet", "marquee", "object":
		if !c.stackOfOpenElements.ContainsElementInScope(t.TagName) {
			return false, inBody, endTagWithoutMatchingOpenElement
		}
		c.generateImpliedEndTags("")
		err := noError
		if cur := c.getCurrentNode(); cur != nil && cur.NodeName != t.TagName {
			err = endTagWithoutMatchingOpenElement
		}
		c.popUntil(t.TagName)
		c.clearActiveFormattingElementsToLastMarker()
		return false, inBody, err

	case "br":
		c.reconstructActiveFormattingElements()
		c.insertSelfClosingElement(&Token{TokenType: startTagToken, TagName: "br"}, spec.Htmlns)
		c.frameset = framesetNotOK
		return false, inBody, generalParseError
	}

	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		n := c.stackOfOpenElements[i]
		if n.NodeName == t.TagName {
			c.generateImpliedEndTags(t.TagName)
			err := noError
			if c.getCurrentNode() != n {
				err = endTagWithoutMatchingOpenElement
			}
			c.popUntil(t.TagName)
			return false, inBody, err
		}
		if isSpecial(n) {
			return false, inBody, endTagWithoutMatchingOpenElement
		}
	}

	return false, inBody, endTagWithoutMatchingOpenElement
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
func (c *HTMLTreeConstructor) textModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		c.insertCharacter(t)
		return false, text, noError
	case endOfFileToken:
		c.popOpenElement()
		return true, c.originalInsertionMode, eofInElementThatCanContainOnlyText
	case endTagToken:
		if t.TagName == "script" {
			script := c.popOpenElement()
			c.pendingScript = script
			c.pendingParserPause = true
			return false, c.originalInsertionMode, noError
		}
		c.popOpenElement()
		return false, c.originalInsertionMode, noError
	}
	return false, text, noError
}
