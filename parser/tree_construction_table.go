package parser

import "browser/parser/spec"

// clearStackBackToTable pops elements off the stack of open elements
// until the current node is a table, template or html element.
// https://html.spec.whatwg.org/multipage/parsing.html#clear-the-stack-back-to-a-table-context
func (c *HTMLTreeConstructor) clearStackBackToTable() {
	for {
		cur := c.getCurrentNode()
		if cur == nil {
			return
		}
		switch cur.NodeName {
		case "table", "template", "html":
			return
		}
		c.popOpenElement()
	}
}

func (c *HTMLTreeConstructor) clearStackBackToTableBody() {
	for {
		cur := c.getCurrentNode()
		if cur == nil {
			return
		}
		switch cur.NodeName {
		case "tbody", "tfoot", "thead", "template", "html":
			return
		}
		c.popOpenElement()
	}
}

func (c *HTMLTreeConstructor) clearStackBackToTableRow() {
	for {
		cur := c.getCurrentNode()
		if cur == nil {
			return
		}
		switch cur.NodeName {
		case "tr", "template", "html":
			return
		}
		c.popOpenElement()
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intable
func (c *HTMLTreeConstructor) inTableModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		switch c.getCurrentNode().NodeName {
		case "table", "tbody", "tfoot", "thead", "tr":
			c.pendingTableCharacterTokens.Reset()
			c.pendingTableNonWhitespace = false
			c.originalInsertionMode = inTable
			return true, inTableText, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, inTable, noError
	case docTypeToken:
		return false, inTable, generalParseError
	case startTagToken:
		switch t.TagName {
		case "caption":
			c.clearStackBackToTable()
			c.activeFormattingElements = append(c.activeFormattingElements, spec.ScopeMarker)
			c.insertHTMLElementForToken(t)
			return false, inCaption, noError
		case "colgroup":
			c.clearStackBackToTable()
			c.insertHTMLElementForToken(t)
			return false, inColumnGroup, noError
		case "col":
			c.clearStackBackToTable()
			fake := Token{TokenType: startTagToken, TagName: "colgroup"}
			c.insertHTMLElementForToken(&fake)
			return true, inColumnGroup, noError
		case "tbody", "tfoot", "thead":
			c.clearStackBackToTable()
			c.insertHTMLElementForToken(t)
			return false, inTableBody, noError
		case "td", "th", "tr":
			c.clearStackBackToTable()
			fake := Token{TokenType: startTagToken, TagName: "tbody"}
			c.insertHTMLElementForToken(&fake)
			return true, inTableBody, noError
		case "table":
			if !c.stackOfOpenElements.ContainsElementInTableScope("table") {
				return false, inTable, generalParseError
			}
			c.popUntil("table")
			return true, c.resetInsertionModeAppropriately(), generalParseError
		case "style", "script", "template":
			return c.useRulesFor(t, inTable, inHead)
		case "input":
			if a, ok := t.Attributes["type"]; ok && a.Value == "hidden" {
				c.insertSelfClosingElement(t, spec.Htmlns)
				return false, inTable, generalParseError
			}
		case "form":
			if c.formElementPointer == nil && c.templateNode() == nil {
				form := c.insertHTMLElementForToken(t)
				c.formElementPointer = form
				c.popOpenElement()
			}
			return false, inTable, generalParseError
		}
	case endTagToken:
		switch t.TagName {
		case "table":
			if !c.stackOfOpenElements.ContainsElementInTableScope("table") {
				return false, inTable, endTagWithoutMatchingOpenElement
			}
			c.popUntil("table")
			return false, c.resetInsertionModeAppropriately(), noError
		case "body", "caption", "col", "colgroup", "html", "tbody", "td",
			"tfoot", "th", "thead", "tr":
			return false, inTable, generalParseError
		case "template":
			return c.useRulesFor(t, inTable, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inTable, inBody)
	}

	c.fosterParenting = true
	reprocess, mode, err := c.inBodyModeHandler(t)
	c.fosterParenting = false
	return reprocess, mode, err
}

func (c *HTMLTreeConstructor) inTableTextModeHandler(t *Token) (bool, insertionMode, parseError) {
	if t.TokenType == characterToken {
		if t.Data == "\x00" {
			return false, inTableText, generalParseError
		}
		c.pendingTableCharacterTokens.WriteString(t.Data)
		if !isWhitespaceChar(t.Data) {
			c.pendingTableNonWhitespace = true
		}
		return false, inTableText, noError
	}

	buffered := c.pendingTableCharacterTokens.String()
	if c.pendingTableNonWhitespace {
		c.fosterParenting = true
		for _, r := range buffered {
			c.inBodyModeHandler(&Token{TokenType: characterToken, Data: string(r)})
		}
		c.fosterParenting = false
	} else if buffered != "" {
		c.insertCharacter(&Token{TokenType: characterToken, Data: buffered})
	}

	return true, c.originalInsertionMode, noError
}

func (c *HTMLTreeConstructor) inCaptionModeHandler(t *Token) (bool, insertionMode, parseError) {
	if t.TokenType == endTagToken && t.TagName == "caption" {
		if !c.stackOfOpenElements.ContainsElementInTableScope("caption") {
			return false, inCaption, endTagWithoutMatchingOpenElement
		}
		c.generateImpliedEndTags("")
		err := noError
		if cur := c.getCurrentNode(); cur != nil && cur.NodeName != "caption" {
			err = endTagWithoutMatchingOpenElement
		}
		c.popUntil("caption")
		c.clearActiveFormattingElementsToLastMarker()
		return false, inTable, err
	}

	if t.TokenType == startTagToken {
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !c.stackOfOpenElements.ContainsElementInTableScope("caption") {
				return false, inCaption, generalParseError
			}
			c.popUntil("caption")
			c.clearActiveFormattingElementsToLastMarker()
			return true, inTable, noError
		}
	}
	if t.TokenType == endTagToken && t.TagName == "table" {
		if !c.stackOfOpenElements.ContainsElementInTableScope("caption") {
			return false, inCaption, generalParseError
		}
		c.popUntil("caption")
		c.clearActiveFormattingElementsToLastMarker()
		return true, inTable, noError
	}
	if t.TokenType == endTagToken {
		switch t.TagName {
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			return false, inCaption, generalParseError
		}
	}

	return c.useRulesFor(t, inCaption, inBody)
}

func (c *HTMLTreeConstructor) inColumnGroupModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceChar(t.Data) {
			c.insertCharacter(t)
			return false, inColumnGroup, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, inColumnGroup, noError
	case docTypeToken:
		return false, inColumnGroup, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inColumnGroup, inBody)
		case "col":
			c.insertSelfClosingElement(t, spec.Htmlns)
			return false, inColumnGroup, noError
		case "template":
			return c.useRulesFor(t, inColumnGroup, inHead)
		}
	case endTagToken:
		switch t.TagName {
		case "colgroup":
			if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "colgroup" {
				return false, inColumnGroup, endTagWithoutMatchingOpenElement
			}
			c.popOpenElement()
			return false, inTable, noError
		case "col":
			return false, inColumnGroup, endTagWithoutMatchingOpenElement
		case "template":
			return c.useRulesFor(t, inColumnGroup, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inColumnGroup, inBody)
	}

	if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "colgroup" {
		return false, inColumnGroup, generalParseError
	}
	c.popOpenElement()
	return true, inTable, noError
}

func (c *HTMLTreeConstructor) inTableBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "tr":
			c.clearStackBackToTableBody()
			c.insertHTMLElementForToken(t)
			return false, inRow, noError
		case "th", "td":
			c.clearStackBackToTableBody()
			fake := Token{TokenType: startTagToken, TagName: "tr"}
			c.insertHTMLElementForToken(&fake)
			return true, inRow, noError
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !c.stackOfOpenElements.ContainsElementsInScope("tbody", "thead", "tfoot") {
				return false, inTableBody, generalParseError
			}
			c.clearStackBackToTableBody()
			c.popOpenElement()
			return true, inTable, noError
		}
	case endTagToken:
		switch t.TagName {
		case "tbody", "tfoot", "thead":
			if !c.stackOfOpenElements.ContainsElementInTableScope(t.TagName) {
				return false, inTableBody, endTagWithoutMatchingOpenElement
			}
			c.clearStackBackToTableBody()
			c.popOpenElement()
			return false, inTable, noError
		case "table":
			if !c.stackOfOpenElements.ContainsElementsInScope("tbody", "thead", "tfoot") {
				return false, inTableBody, generalParseError
			}
			c.clearStackBackToTableBody()
			c.popOpenElement()
			return true, inTable, noError
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			return false, inTableBody, generalParseError
		}
	}

	return c.useRulesFor(t, inTableBody, inTable)
}

func (c *HTMLTreeConstructor) inRowModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "th", "td":
			c.clearStackBackToTableRow()
			c.insertHTMLElementForToken(t)
			c.activeFormattingElements = append(c.activeFormattingElements, spec.ScopeMarker)
			return false, inCell, noError
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !c.stackOfOpenElements.ContainsElementInTableScope("tr") {
				return false, inRow, generalParseError
			}
			c.clearStackBackToTableRow()
			c.popOpenElement()
			return true, inTableBody, noError
		}
	case endTagToken:
		switch t.TagName {
		case "tr":
			if !c.stackOfOpenElements.ContainsElementInTableScope("tr") {
				return false, inRow, endTagWithoutMatchingOpenElement
			}
			c.clearStackBackToTableRow()
			c.popOpenElement()
			return false, inTableBody, noError
		case "table":
			if !c.stackOfOpenElements.ContainsElementInTableScope("tr") {
				return false, inRow, generalParseError
			}
			c.clearStackBackToTableRow()
			c.popOpenElement()
			return true, inTableBody, noError
		case "tbody", "tfoot", "thead":
			if !c.stackOfOpenElements.ContainsElementInTableScope(t.TagName) || !c.stackOfOpenElements.ContainsElementInTableScope("tr") {
				return false, inRow, generalParseError
			}
			c.clearStackBackToTableRow()
			c.popOpenElement()
			return true, inTableBody, noError
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			return false, inRow, generalParseError
		}
	}

	return c.useRulesFor(t, inRow, inTable)
}

func (c *HTMLTreeConstructor) inCellModeHandler(t *Token) (bool, insertionMode, parseError) {
	if t.TokenType == endTagToken {
		switch t.TagName {
		case "td", "th":
			if !c.stackOfOpenElements.ContainsElementInTableScope(t.TagName) {
				return false, inCell, endTagWithoutMatchingOpenElement
			}
			c.generateImpliedEndTags("")
			err := noError
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName != t.TagName {
				err = endTagWithoutMatchingOpenElement
			}
			c.popUntil(t.TagName)
			c.clearActiveFormattingElementsToLastMarker()
			return false, inRow, err
		case "body", "caption", "col", "colgroup", "html":
			return false, inCell, generalParseError
		case "table", "tbody", "tfoot", "thead", "tr":
			if !c.stackOfOpenElements.ContainsElementInTableScope(t.TagName) {
				return false, inCell, generalParseError
			}
			c.closeCellImplicitly()
			return true, inRow, noError
		}
	}
	if t.TokenType == startTagToken {
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !c.stackOfOpenElements.ContainsElementsInScope("td", "th") {
				return false, inCell, generalParseError
			}
			c.closeCellImplicitly()
			return true, inRow, noError
		}
	}

	return c.useRulesFor(t, inCell, inBody)
}

func (c *HTMLTreeConstructor) closeCellImplicitly() {
	c.generateImpliedEndTags("")
	c.popUntil("td", "th")
	c.clearActiveFormattingElementsToLastMarker()
}

func (c *HTMLTreeConstructor) inSelectModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\x00" {
			return false, inSelect, generalParseError
		}
		c.insertCharacter(t)
		return false, inSelect, noError
	case commentToken:
		c.insertComment(t)
		return false, inSelect, noError
	case docTypeToken:
		return false, inSelect, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inSelect, inBody)
		case "option":
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "option" {
				c.popOpenElement()
			}
			c.insertHTMLElementForToken(t)
			return false, inSelect, noError
		case "optgroup":
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "option" {
				c.popOpenElement()
			}
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "optgroup" {
				c.popOpenElement()
			}
			c.insertHTMLElementForToken(t)
			return false, inSelect, noError
		case "select":
			if !c.stackOfOpenElements.ContainsElementInSelectScope("select") {
				return false, inSelect, generalParseError
			}
			c.popUntil("select")
			return false, c.resetInsertionModeAppropriately(), generalParseError
		case "input", "keygen", "textarea":
			if !c.stackOfOpenElements.ContainsElementInSelectScope("select") {
				return false, inSelect, generalParseError
			}
			c.popUntil("select")
			return true, c.resetInsertionModeAppropriately(), generalParseError
		case "script", "template":
			return c.useRulesFor(t, inSelect, inHead)
		}
	case endTagToken:
		switch t.TagName {
		case "optgroup":
			n := len(c.stackOfOpenElements)
			if n >= 2 && c.stackOfOpenElements[n-1].NodeName == "option" && c.stackOfOpenElements[n-2].NodeName == "optgroup" {
				c.popOpenElement()
			}
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "optgroup" {
				c.popOpenElement()
				return false, inSelect, noError
			}
			return false, inSelect, endTagWithoutMatchingOpenElement
		case "option":
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "option" {
				c.popOpenElement()
				return false, inSelect, noError
			}
			return false, inSelect, endTagWithoutMatchingOpenElement
		case "select":
			if !c.stackOfOpenElements.ContainsElementInSelectScope("select") {
				return false, inSelect, endTagWithoutMatchingOpenElement
			}
			c.popUntil("select")
			return false, c.resetInsertionModeAppropriately(), noError
		case "template":
			return c.useRulesFor(t, inSelect, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inSelect, inBody)
	}

	return false, inSelect, generalParseError
}

func (c *HTMLTreeConstructor) inSelectInTableModeHandler(t *Token) (bool, insertionMode, parseError) {
	if t.TokenType == startTagToken {
		switch t.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			c.popUntil("select")
			return true, c.resetInsertionModeAppropriately(), generalParseError
		}
	}
	if t.TokenType == endTagToken {
		switch t.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			if !c.stackOfOpenElements.ContainsElementInTableScope(t.TagName) {
				return false, inSelectInTable, generalParseError
			}
			c.popUntil("select")
			return true, c.resetInsertionModeAppropriately(), noError
		}
	}

	return c.useRulesFor(t, inSelectInTable, inSelect)
}

func (c *HTMLTreeConstructor) inTemplateModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken, commentToken, docTypeToken:
		return c.useRulesFor(t, inTemplate, inBody)
	case startTagToken:
		switch t.TagName {
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			return c.useRulesFor(t, inTemplate, inHead)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			c.swapTemplateMode(inTable)
			return true, inTable, noError
		case "col":
			c.swapTemplateMode(inColumnGroup)
			return true, inColumnGroup, noError
		case "tr":
			c.swapTemplateMode(inTableBody)
			return true, inTableBody, noError
		case "td", "th":
			c.swapTemplateMode(inRow)
			return true, inRow, noError
		default:
			c.swapTemplateMode(inBody)
			return true, inBody, noError
		}
	case endTagToken:
		if t.TagName == "template" {
			return c.useRulesFor(t, inTemplate, inHead)
		}
		return false, inTemplate, generalParseError
	case endOfFileToken:
		if c.templateNode() == nil {
			return false, inTemplate, noError
		}
		c.generateAllImpliedEndTagsThoroughly()
		c.popUntil("template")
		c.clearActiveFormattingElementsToLastMarker()
		if len(c.stackOfTemplateInsertionModes) > 0 {
			c.stackOfTemplateInsertionModes = c.stackOfTemplateInsertionModes[:len(c.stackOfTemplateInsertionModes)-1]
		}
		return true, c.resetInsertionModeAppropriately(), openElementsLeftAfterEOF
	}

	return false, inTemplate, noError
}

func (c *HTMLTreeConstructor) swapTemplateMode(m insertionMode) {
	if len(c.stackOfTemplateInsertionModes) > 0 {
		c.stackOfTemplateInsertionModes[len(c.stackOfTemplateInsertionModes)-1] = m
	}
}

// resetInsertionModeAppropriately implements
// https://html.spec.whatwg.org/multipage/parsing.html#reset-the-insertion-mode-appropriately
func (c *HTMLTreeConstructor) resetInsertionModeAppropriately() insertionMode {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		last := i == 0

		if last && c.createdBy == htmlFragmentParsingAlgorithm {
			node = c.contextElement
		}

		switch node.NodeName {
		case "select":
			for j := i; j > 0; j-- {
				ancestor := c.stackOfOpenElements[j-1]
				switch ancestor.NodeName {
				case "template":
					c.insertionMode = inSelect
					return inSelect
				case "table":
					c.insertionMode = inSelectInTable
					return inSelectInTable
				}
			}
			c.insertionMode = inSelect
			return inSelect
		case "td", "th":
			if !last {
				c.insertionMode = inCell
				return inCell
			}
		case "tr":
			c.insertionMode = inRow
			return inRow
		case "tbody", "thead", "tfoot":
			c.insertionMode = inTableBody
			return inTableBody
		case "caption":
			c.insertionMode = inCaption
			return inCaption
		case "colgroup":
			c.insertionMode = inColumnGroup
			return inColumnGroup
		case "table":
			c.insertionMode = inTable
			return inTable
		case "template":
			if len(c.stackOfTemplateInsertionModes) > 0 {
				m := c.stackOfTemplateInsertionModes[len(c.stackOfTemplateInsertionModes)-1]
				c.insertionMode = m
				return m
			}
		case "head":
			if !last {
				c.insertionMode = inHead
				return inHead
			}
		case "body":
			c.insertionMode = inBody
			return inBody
		case "frameset":
			c.insertionMode = inFrameset
			return inFrameset
		case "html":
			if c.headElementPointer == nil {
				c.insertionMode = beforeHead
				return beforeHead
			}
			c.insertionMode = afterHead
			return afterHead
		}

		if last {
			c.insertionMode = inBody
			return inBody
		}
	}

	c.insertionMode = inBody
	return inBody
}
