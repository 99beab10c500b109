package parser

import (
	"strings"

	"browser/parser/spec"
)

type quirksMode string

const (
	noQuirks      quirksMode = "no-quirks"
	quirks        quirksMode = "quirks"
	limitedQuirks quirksMode = "limited-quirks"
)

type createdByOrigin uint

const (
	createdByNormalParsing createdByOrigin = iota
	htmlFragmentParsingAlgorithm
)

type frameset uint

const (
	framesetOK frameset = iota
	framesetNotOK
)

// HTMLTreeConstructor holds the state for the tree construction stage:
// the stack of open elements, the active formatting elements list, the
// current insertion mode, and everything the 23 mode handlers close
// over. One of these is created per document (or per fragment) parse
// and is driven by repeated calls to ProcessToken.
type HTMLTreeConstructor struct {
	config                  htmlParserConfig
	HTMLDocument            *spec.HTMLDocument
	quirksMode              quirksMode
	fosterParenting         bool
	scriptingEnabled        bool
	insertionMode           insertionMode
	originalInsertionMode   insertionMode
	stackOfOpenElements     spec.NodeList
	activeFormattingElements spec.NodeList
	stackOfTemplateInsertionModes []insertionMode
	headElementPointer      *spec.Node
	formElementPointer      *spec.Node
	createdBy               createdByOrigin
	frameset                frameset
	mappings                map[insertionMode]treeConstructionModeHandler

	// fragment-parsing context; nil outside of ParseFragment.
	contextElement *spec.Node

	// pendingTableCharacterTokens accumulates character data seen in
	// inTableText so it can be judged all-whitespace (kept as text) or
	// not (foster-parented) once a non-character token ends the run.
	pendingTableCharacterTokens strings.Builder
	pendingTableNonWhitespace   bool

	// set once a </script> end tag has been popped in text mode and the
	// caller needs to pause to fetch/execute it before resuming. The
	// tokenizer itself never blocks; Parser.run just stops asking
	// for more tokens once this is set, and Parser.Resume clears it.
	pendingParserPause bool
	pendingScript      *spec.Node

	// currentToken is whatever token ProcessToken is currently
	// dispatching, including through "reprocess the token" loops. It's
	// used to stamp source locations on nodes a pop closes implicitly,
	// where there's no end tag of the popped element's own to record.
	currentToken *Token

	stopped bool
}

// NewHTMLTreeConstructor creates an HTMLTreeConstructor ready to receive
// tokens via ProcessToken, starting in the initial insertion mode.
func NewHTMLTreeConstructor(config htmlParserConfig) *HTMLTreeConstructor {
	if config.onParseError != nil {
		config.sourceCodeLocationInfo = true
	}
	tr := &HTMLTreeConstructor{
		config:           config,
		HTMLDocument:     spec.NewHTMLDocumentNode(),
		scriptingEnabled: config.scriptingEnabled,
		frameset:         framesetOK,
	}
	tr.createMappings()
	return tr
}

// NewHTMLTreeConstructorForFragment sets up tree construction per the
// fragment parsing algorithm: https://html.spec.whatwg.org/multipage/parsing.html#parsing-html-fragments
func NewHTMLTreeConstructorForFragment(config htmlParserConfig, context *spec.Node) *HTMLTreeConstructor {
	tr := NewHTMLTreeConstructor(config)
	tr.createdBy = htmlFragmentParsingAlgorithm
	tr.contextElement = context

	root := spec.NewDOMElement(tr.HTMLDocument.Node, "html", spec.Htmlns)
	tr.HTMLDocument.AppendChild(root)
	tr.stackOfOpenElements = append(tr.stackOfOpenElements, root)

	if context.NodeName == "form" {
		tr.formElementPointer = context
	}

	tr.resetInsertionModeAppropriately()
	return tr
}

func (c *HTMLTreeConstructor) createMappings() {
	c.mappings = map[insertionMode]treeConstructionModeHandler{
		initial:            c.initialModeHandler,
		beforeHTML:         c.beforeHTMLModeHandler,
		beforeHead:         c.beforeHeadModeHandler,
		inHead:             c.inHeadModeHandler,
		inHeadNoScript:     c.inHeadNoScriptModeHandler,
		afterHead:          c.afterHeadModeHandler,
		inBody:             c.inBodyModeHandler,
		text:               c.textModeHandler,
		inTable:            c.inTableModeHandler,
		inTableText:        c.inTableTextModeHandler,
		inCaption:          c.inCaptionModeHandler,
		inColumnGroup:      c.inColumnGroupModeHandler,
		inTableBody:        c.inTableBodyModeHandler,
		inRow:              c.inRowModeHandler,
		inCell:             c.inCellModeHandler,
		inSelect:           c.inSelectModeHandler,
		inSelectInTable:    c.inSelectInTableModeHandler,
		inTemplate:         c.inTemplateModeHandler,
		afterBody:          c.afterBodyModeHandler,
		inFrameset:         c.inFramesetModeHandler,
		afterFrameset:      c.afterFramesetModeHandler,
		afterAfterBody:     c.afterAfterBodyModeHandler,
		afterAfterFrameset: c.afterAfterFramesetModeHandler,
	}
}

// ProcessToken runs one token through the insertion-mode state machine,
// following the "reprocess the token" instruction as many times as the
// handlers ask for, and returns the Progress the tokenizer should apply
// before asking for the next token (an adjusted current node for the
// foreign-content check, and/or a forced tokenizer state for RAWTEXT,
// RCDATA, script data and plaintext elements).
func (c *HTMLTreeConstructor) ProcessToken(t *Token) *Progress {
	c.currentToken = t
	if t.TokenType == endOfFileToken {
		// every remaining open element is about to go unclosed for good;
		// stamp them before any mode handler runs so it's done exactly
		// once regardless of which insertion mode the EOF lands in.
		c.stampEOFLocations(t)
	}

	reprocess, next, err := c.dispatch(t)
	c.logError(err, t)
	c.insertionMode = next

	for reprocess {
		reprocess, next, err = c.dispatch(t)
		c.logError(err, t)
		c.insertionMode = next
	}

	return c.nextProgress()
}

// dispatch is https://html.spec.whatwg.org/multipage/parsing.html#tree-construction-dispatcher --
// most tokens go to the handler for the current insertion mode, but
// once the adjusted current node is a foreign (MathML/SVG) element and
// none of the integration-point exceptions apply, tokens are routed to
// the foreign-content rules instead. Checked fresh on every reprocess,
// since a foreign-content breakout can change the adjusted current
// node out from under a token mid-dispatch.
func (c *HTMLTreeConstructor) dispatch(t *Token) (bool, insertionMode, parseError) {
	if c.currentNodeRequiresForeignContentDispatch(t) {
		return c.foreignContentModeHandler(t)
	}
	return c.mappings[c.insertionMode](t)
}

// nextProgress computes what the tokenizer needs to know before reading
// the next token: the adjusted current node (for the foreign-content
// "has an element in the HTML namespace" check in tag-open) and a forced
// tokenizer state switch, which the tree constructor is responsible for
// per https://html.spec.whatwg.org/multipage/parsing.html#tree-construction-dispatcher
func (c *HTMLTreeConstructor) nextProgress() *Progress {
	var adjusted *spec.Node
	if len(c.stackOfOpenElements) > 0 {
		adjusted = c.getAdjustedCurrentNode()
	}
	return MakeProgress(adjusted, nil)
}

func (c *HTMLTreeConstructor) getCurrentNode() *spec.Node {
	if len(c.stackOfOpenElements) == 0 {
		return nil
	}
	return c.stackOfOpenElements[len(c.stackOfOpenElements)-1]
}

// getAdjustedCurrentNode is the current node, except during fragment
// parsing with exactly one element on the stack, where it's the context
// element instead. https://html.spec.whatwg.org/multipage/parsing.html#adjusted-current-node
func (c *HTMLTreeConstructor) getAdjustedCurrentNode() *spec.Node {
	if c.createdBy == htmlFragmentParsingAlgorithm && len(c.stackOfOpenElements) == 1 {
		return c.contextElement
	}
	return c.getCurrentNode()
}

// insertComment inserts a comment node at the appropriate place for
// inserting a node, defaulting to the current node.
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-comment
func (c *HTMLTreeConstructor) insertComment(t *Token) {
	c.insertCommentAt(t, c.getAppropriatePlaceForInsertion(nil))
}

func (c *HTMLTreeConstructor) insertCommentAt(t *Token, target *spec.Node) {
	if target == nil {
		return
	}
	commentNode := spec.NewComment(t.Data, c.HTMLDocument.Node)
	target.AppendChild(commentNode)
}

// getAppropriatePlaceForInsertion implements
// https://html.spec.whatwg.org/multipage/parsing.html#appropriate-place-for-inserting-a-node
// target defaults to the current node when nil.
func (c *HTMLTreeConstructor) getAppropriatePlaceForInsertion(target *spec.Node) *spec.Node {
	if target == nil {
		target = c.getCurrentNode()
	}
	if target == nil {
		return nil
	}

	if c.fosterParenting {
		switch target.NodeName {
		case "table", "tbody", "tfoot", "thead", "tr":
			return c.fosterParentTarget()
		}
	}

	return target
}

// fosterParentTarget finds where a node foster-parented out of a table
// actually lands: immediately before the last table on the stack of
// open elements if it has a parent, or at the end of whatever element
// is before it on the stack otherwise.
// https://html.spec.whatwg.org/multipage/parsing.html#foster-parent
func (c *HTMLTreeConstructor) fosterParentTarget() *spec.Node {
	var lastTemplate, lastTable *spec.Node
	lastTemplateI, lastTableI := -1, -1
	for i, n := range c.stackOfOpenElements {
		if n.NodeName == "template" {
			lastTemplate, lastTemplateI = n, i
		}
		if n.NodeName == "table" {
			lastTable, lastTableI = n, i
		}
	}

	if lastTemplate != nil && (lastTable == nil || lastTemplateI > lastTableI) {
		return lastTemplate
	}
	if lastTable == nil {
		return c.stackOfOpenElements[0]
	}
	if lastTable.ParentNode != nil {
		return lastTable.ParentNode
	}
	if lastTableI > 0 {
		return c.stackOfOpenElements[lastTableI-1]
	}
	return c.stackOfOpenElements[0]
}

// foster-parenting insertion actually has to insert *before* the table
// rather than simply appending to its parent; fosterParentInsert
// performs that insert (or a plain append when there's no table to
// dodge) for both elements and text.
func (c *HTMLTreeConstructor) fosterParentInsert(n *spec.Node) {
	var lastTable *spec.Node
	lastTableI := -1
	for i, e := range c.stackOfOpenElements {
		if e.NodeName == "table" {
			lastTable, lastTableI = e, i
		}
	}

	if lastTable != nil && lastTable.ParentNode != nil {
		lastTable.ParentNode.InsertBefore(n, lastTable)
		return
	}

	target := c.getCurrentNode()
	if lastTableI == 0 {
		target = c.stackOfOpenElements[0]
	} else if lastTableI > 0 {
		target = c.stackOfOpenElements[lastTableI-1]
	}
	target.AppendChild(n)
}

// createElementForToken builds an element node from a start tag token,
// wiring up its attributes. https://html.spec.whatwg.org/multipage/parsing.html#create-an-element-for-the-token
func (c *HTMLTreeConstructor) createElementForToken(t *Token, ns spec.Namespace) *spec.Node {
	element := spec.NewDOMElement(c.HTMLDocument.Node, t.TagName, ns)
	element.Attributes = spec.NewNamedNodeMap(t.Attributes, element)
	return element
}

// insertCharacter implements https://html.spec.whatwg.org/multipage/parsing.html#insert-a-character
func (c *HTMLTreeConstructor) insertCharacter(t *Token) {
	loc := c.getAppropriatePlaceForInsertion(nil)
	if loc == nil || loc.NodeType == spec.DocumentNode {
		return
	}

	if c.fosterParenting {
		if len(loc.ChildNodes) > 0 && loc.ChildNodes[len(loc.ChildNodes)-1].NodeType == spec.TextNode {
			last := loc.ChildNodes[len(loc.ChildNodes)-1]
			last.Text.Data += t.Data
			last.Text.Length = len(last.Text.Data)
			return
		}
		c.fosterParentInsert(spec.NewTextNode(c.HTMLDocument.Node, t.Data))
		return
	}

	if n := len(loc.ChildNodes); n > 0 && loc.ChildNodes[n-1].NodeType == spec.TextNode {
		last := loc.ChildNodes[n-1]
		last.Text.Data += t.Data
		last.Text.Length = len(last.Text.Data)
		return
	}

	loc.AppendChild(spec.NewTextNode(c.HTMLDocument.Node, t.Data))
}

// insertHTMLElementForToken is the common case of insertForeignElementForToken
// with the HTML namespace. https://html.spec.whatwg.org/multipage/parsing.html#insert-an-html-element
func (c *HTMLTreeConstructor) insertHTMLElementForToken(t *Token) *spec.Node {
	return c.insertForeignElementForToken(t, spec.Htmlns)
}

// insertForeignElementForToken implements
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-foreign-element
func (c *HTMLTreeConstructor) insertForeignElementForToken(t *Token, ns spec.Namespace) *spec.Node {
	loc := c.getAppropriatePlaceForInsertion(nil)
	elem := c.createElementForToken(t, ns)
	c.stampCreatedLocation(elem, t)
	if loc != nil {
		if c.fosterParenting {
			c.fosterParentInsert(elem)
		} else {
			loc.AppendChild(elem)
		}
	}
	c.stackOfOpenElements = append(c.stackOfOpenElements, elem)
	return elem
}

// stampCreatedLocation records where elem's start tag began, once
// source location tracking is on.
func (c *HTMLTreeConstructor) stampCreatedLocation(elem *spec.Node, t *Token) {
	if !c.config.sourceCodeLocationInfo {
		return
	}
	loc := spec.NodeLocation{Line: t.Location.Line, Col: t.Location.Col, Off: t.Location.Off}
	for _, a := range t.AttrLocs {
		loc.AttrLocs = append(loc.AttrLocs, spec.NodeAttrLocation{
			Name: a.Name, Line: a.Loc.Line, Col: a.Loc.Col, Off: a.Loc.Off,
		})
	}
	elem.SetSourceCodeLocation(loc)
}

// stampPoppedLocation closes out n's end-tag span when it leaves the
// stack of open elements: c.currentToken is either n's own matching end
// tag (a real end-tag span) or something else entirely that forced n
// to close early, in which case this records a zero-length span at
// that token's position instead. Same convention
// other_examples/reclaimprotocol-reclaim-tee__html_positioned.go uses
// for nodes closed by implication (`top.End = tokenStart`).
func (c *HTMLTreeConstructor) stampPoppedLocation(n *spec.Node) {
	if n == nil || !c.config.sourceCodeLocationInfo || c.currentToken == nil {
		return
	}
	loc := c.currentToken.Location
	n.SetEndTagLocation(loc.Line, loc.Col, loc.Off)
}

// stampEOFLocations closes out the span of every element still open
// when input runs out, since none of them will ever see a real end tag.
// https://html.spec.whatwg.org/multipage/parsing.html#stop-parsing
func (c *HTMLTreeConstructor) stampEOFLocations(t *Token) {
	if !c.config.sourceCodeLocationInfo {
		return
	}
	for _, n := range c.stackOfOpenElements {
		if n.Loc.EndLine == 0 && n.Loc.EndCol == 0 && n.Loc.EndOff == 0 {
			n.SetEndTagLocation(t.Location.Line, t.Location.Col, t.Location.Off)
		}
	}
}

// insertSelfClosingElement inserts a void/self-closing element and
// immediately pops it back off the stack of open elements.
func (c *HTMLTreeConstructor) insertSelfClosingElement(t *Token, ns spec.Namespace) *spec.Node {
	elem := c.insertForeignElementForToken(t, ns)
	t.AckSelfClosing = t.SelfClosing
	c.popOpenElement()
	return elem
}

// popUntil pops the stack of open elements until (and including) the
// first element matching one of names has been popped, or the stack
// runs dry. Goes through popOpenElement one at a time, rather than
// NodeList.PopUntil directly, so every element it closes -- including
// ones implicitly swept up along the way -- gets its end location
// stamped.
func (c *HTMLTreeConstructor) popUntil(names ...string) {
	if len(names) == 0 {
		return
	}
	for {
		popped := c.popOpenElement()
		if popped == nil {
			return
		}
		for _, name := range names {
			if popped.NodeName == name {
				return
			}
		}
	}
}

// useRulesFor dispatches a token to another mode's handler without
// changing c.insertionMode away from returnState unless that handler
// explicitly switched modes itself -- used by inHeadNoscript/inCaption/
// inSelectInTable/etc which mostly borrow another mode's behavior.
func (c *HTMLTreeConstructor) useRulesFor(t *Token, returnState, expectedState insertionMode) (bool, insertionMode, parseError) {
	reprocess, nextstate, err := c.mappings[expectedState](t)
	if nextstate == expectedState {
		return reprocess, returnState, err
	}
	return reprocess, nextstate, err
}

// noahsArkMatches reports whether two elements are the "same" for the
// Noah's Ark clause: same tag name, same namespace, and an identical
// attribute set (order doesn't matter, values must match exactly).
// https://html.spec.whatwg.org/multipage/parsing.html#push-onto-the-list-of-active-formatting-elements
func noahsArkMatches(a, b *spec.Node) bool {
	if a.NodeName != b.NodeName || a.Element.NamespaceURI != b.Element.NamespaceURI {
		return false
	}
	if a.Attributes.Length != b.Attributes.Length {
		return false
	}
	for name, attr := range a.Attributes.Attrs {
		other, ok := b.Attributes.Attrs[name]
		if !ok || other.Value != attr.Value {
			return false
		}
	}
	return true
}

// pushActiveFormattingElements implements the Noah's Ark clause: at most
// 3 duplicates of an element (tag, namespace and attributes all equal)
// may exist between the end of the list and the last marker.
func (c *HTMLTreeConstructor) pushActiveFormattingElements(elem *spec.Node) {
	matches := 0
	matchIdx := -1
	for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
		cur := c.activeFormattingElements[i]
		if cur.NodeType == spec.ScopeMarkerNode {
			break
		}
		if noahsArkMatches(cur, elem) {
			matches++
			// scanning backwards, this ends on the earliest match
			matchIdx = i
		}
	}

	if matches >= 3 {
		c.activeFormattingElements = append(c.activeFormattingElements[:matchIdx], c.activeFormattingElements[matchIdx+1:]...)
	}

	c.activeFormattingElements = append(c.activeFormattingElements, elem)
}

// https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements
func (c *HTMLTreeConstructor) reconstructActiveFormattingElements() {
	if len(c.activeFormattingElements) == 0 {
		return
	}

	last := len(c.activeFormattingElements) - 1
	entry := c.activeFormattingElements[last]
	if entry.NodeType == spec.ScopeMarkerNode || c.stackOfOpenElements.Contains(entry) != -1 {
		return
	}

	i := last
	for i > 0 {
		i--
		entry = c.activeFormattingElements[i]
		if entry.NodeType != spec.ScopeMarkerNode && c.stackOfOpenElements.Contains(entry) == -1 {
			continue
		}
		i++
		break
	}

	for ; i <= last; i++ {
		clone := c.activeFormattingElements[i].CloneNode(false)
		loc := c.getAppropriatePlaceForInsertion(nil)
		if loc != nil {
			loc.AppendChild(clone)
		}
		c.stackOfOpenElements = append(c.stackOfOpenElements, clone)
		c.activeFormattingElements[i] = clone
	}
}

// clearActiveFormattingElementsToLastMarker implements
// https://html.spec.whatwg.org/multipage/parsing.html#clear-the-list-of-active-formatting-elements-up-to-the-last-marker
func (c *HTMLTreeConstructor) clearActiveFormattingElementsToLastMarker() {
	for len(c.activeFormattingElements) > 0 {
		last := len(c.activeFormattingElements) - 1
		entry := c.activeFormattingElements[last]
		c.activeFormattingElements = c.activeFormattingElements[:last]
		if entry.NodeType == spec.ScopeMarkerNode {
			return
		}
	}
}

// isSpecial reports whether n belongs to the WHATWG "special" category,
// the elements that close implied end tags and bound formatting-element
// reach. https://html.spec.whatwg.org/multipage/parsing.html#special
func isSpecial(n *spec.Node) bool {
	switch n.NodeName {
	case "address", "applet", "area", "article", "aside", "base", "basefont",
		"bgsound", "blockquote", "body", "br", "button", "caption", "center",
		"col", "colgroup", "dd", "details", "dir", "div", "dl", "dt", "embed",
		"fieldset", "figcaption", "figure", "footer", "form", "frame",
		"frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
		"hgroup", "hr", "html", "iframe", "img", "input", "keygen", "li",
		"link", "listing", "main", "marquee", "menu", "meta", "nav",
		"noembed", "noframes", "noscript", "object", "ol", "p", "param",
		"plaintext", "pre", "script", "section", "select", "source", "style",
		"summary", "table", "tbody", "td", "template", "textarea", "tfoot",
		"th", "thead", "tr", "track", "ul", "wbr", "mi", "mo", "mn", "ms",
		"mtext", "annotation-xml", "foreignObject", "desc", "title":
		return true
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
func (c *HTMLTreeConstructor) adoptionAgencyAlgorithm(t *Token) parseError {
	subject := t.TagName

	if cur := c.getCurrentNode(); cur != nil && cur.NodeName == subject && c.indexInFormattingElements(cur) == -1 {
		c.popOpenElement()
		return noError
	}

	for outer := 0; outer < 8; outer++ {
		var formattingElement *spec.Node
		var feIdx int
		for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
			entry := c.activeFormattingElements[i]
			if entry.NodeType == spec.ScopeMarkerNode {
				break
			}
			if entry.NodeName == subject {
				formattingElement = entry
				feIdx = i
				break
			}
		}
		if formattingElement == nil {
			return endTagWithoutMatchingOpenElement
		}

		feStackIdx := c.stackOfOpenElements.Contains(formattingElement)
		if feStackIdx == -1 {
			c.activeFormattingElements = append(c.activeFormattingElements[:feIdx], c.activeFormattingElements[feIdx+1:]...)
			return endTagWithoutMatchingOpenElement
		}
		if !c.stackOfOpenElements.ContainsElementInScope(formattingElement.NodeName) {
			return endTagWithoutMatchingOpenElement
		}

		var furthestBlock *spec.Node
		furthestBlockIdx := -1
		for i := feStackIdx + 1; i < len(c.stackOfOpenElements); i++ {
			if isSpecial(c.stackOfOpenElements[i]) {
				furthestBlock = c.stackOfOpenElements[i]
				furthestBlockIdx = i
				break
			}
		}

		if furthestBlock == nil {
			c.stackOfOpenElements = c.stackOfOpenElements[:feStackIdx]
			c.activeFormattingElements = append(c.activeFormattingElements[:feIdx], c.activeFormattingElements[feIdx+1:]...)
			return noError
		}

		commonAncestor := c.stackOfOpenElements[feStackIdx-1]
		bookmark := feIdx

		node := furthestBlock
		lastNode := furthestBlock
		nodeIdx := furthestBlockIdx

		for inner := 0; inner < 3; inner++ {
			nodeIdx--
			if nodeIdx < 0 {
				break
			}
			node = c.stackOfOpenElements[nodeIdx]
			if node == formattingElement {
				break
			}

			nodeAFEIdx := c.indexInFormattingElements(node)
			if nodeAFEIdx == -1 {
				c.stackOfOpenElements = append(c.stackOfOpenElements[:nodeIdx], c.stackOfOpenElements[nodeIdx+1:]...)
				continue
			}

			clone := node.CloneNode(false)
			c.activeFormattingElements[nodeAFEIdx] = clone
			c.stackOfOpenElements[nodeIdx] = clone
			node = clone
			if lastNode == furthestBlock {
				bookmark = nodeAFEIdx + 1
			}
			if lastNode.ParentNode != nil {
				lastNode.ParentNode.RemoveChild(lastNode)
			}
			node.AppendChild(lastNode)
			lastNode = node
		}

		if lastNode.ParentNode != nil {
			lastNode.ParentNode.RemoveChild(lastNode)
		}
		if commonAncestor != nil {
			switch commonAncestor.NodeName {
			case "table", "tbody", "tfoot", "thead", "tr":
				c.fosterParentInsert(lastNode)
			default:
				commonAncestor.AppendChild(lastNode)
			}
		}

		feClone := formattingElement.CloneNode(false)
		for _, child := range furthestBlock.ChildNodes {
			feClone.AppendChild(child)
		}
		furthestBlock.ChildNodes = nil
		furthestBlock.FirstChild, furthestBlock.LastChild = nil, nil
		furthestBlock.AppendChild(feClone)

		if bookmark > len(c.activeFormattingElements) {
			bookmark = len(c.activeFormattingElements)
		}
		c.activeFormattingElements = append(c.activeFormattingElements[:feIdx], c.activeFormattingElements[feIdx+1:]...)
		if bookmark > feIdx {
			bookmark--
		}
		tail := append(spec.NodeList{feClone}, c.activeFormattingElements[bookmark:]...)
		c.activeFormattingElements = append(c.activeFormattingElements[:bookmark], tail...)

		if i := c.stackOfOpenElements.Contains(formattingElement); i != -1 {
			c.stackOfOpenElements = append(c.stackOfOpenElements[:i], c.stackOfOpenElements[i+1:]...)
		}
		if i := c.stackOfOpenElements.Contains(furthestBlock); i != -1 {
			c.stackOfOpenElements = append(c.stackOfOpenElements[:i+1], append(spec.NodeList{feClone}, c.stackOfOpenElements[i+1:]...)...)
		}
	}

	return noError
}

func (c *HTMLTreeConstructor) indexInFormattingElements(n *spec.Node) int {
	for i, e := range c.activeFormattingElements {
		if e == n {
			return i
		}
	}
	return -1
}

func (c *HTMLTreeConstructor) popOpenElement() *spec.Node {
	popped := c.stackOfOpenElements.Pop()
	c.stampPoppedLocation(popped)
	return popped
}

// generateImpliedEndTags pops elements off the stack while the current
// node's name is in the implied-end-tags set, skipping exceptFor.
// https://html.spec.whatwg.org/multipage/parsing.html#generate-implied-end-tags
func (c *HTMLTreeConstructor) generateImpliedEndTags(exceptFor string) {
	for {
		cur := c.getCurrentNode()
		if cur == nil {
			return
		}
		switch cur.NodeName {
		case "dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc":
			if cur.NodeName == exceptFor {
				return
			}
			c.popOpenElement()
		default:
			return
		}
	}
}

// generateAllImpliedEndTagsThoroughly is the wider set used before
// popping a table/template boundary.
// https://html.spec.whatwg.org/multipage/parsing.html#closing-the-cell
func (c *HTMLTreeConstructor) generateAllImpliedEndTagsThoroughly() {
	for {
		cur := c.getCurrentNode()
		if cur == nil {
			return
		}
		switch cur.NodeName {
		case "caption", "colgroup", "dd", "dt", "li", "optgroup", "option",
			"p", "rb", "rp", "rt", "rtc", "tbody", "td", "tfoot", "th",
			"thead", "tr":
			c.popOpenElement()
		default:
			return
		}
	}
}

// the known public identifier prefixes from
// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
// that force quirks/limited-quirks mode regardless of the system
// identifier being present.
var knownPublicIdentifiers = []string{
	"-//W3O//DTD W3 HTML Strict 3.0//EN//",
	"-/W3C/DTD HTML 4.0 Transitional/EN",
	"HTML",
	"+//Silmaril//dtd html Pro v0r11 19970101//",
	"-//AS//DTD HTML 3.0 asWedit + extensions//",
	"-//AdvaSoft Ltd//DTD HTML 3.0 asWedit + extensions//",
	"-//IETF//DTD HTML 2.0 Level 1//",
	"-//IETF//DTD HTML 2.0 Level 2//",
	"-//IETF//DTD HTML 2.0 Strict Level 1//",
	"-//IETF//DTD HTML 2.0 Strict Level 2//",
	"-//IETF//DTD HTML 2.0 Strict//",
	"-//IETF//DTD HTML 2.0//",
	"-//IETF//DTD HTML 2.1E//",
	"-//IETF//DTD HTML 3.0//",
	"-//IETF//DTD HTML 3.2 Final//",
	"-//IETF//DTD HTML 3.2//",
	"-//IETF//DTD HTML 3//",
	"-//IETF//DTD HTML Level 0//",
	"-//IETF//DTD HTML Level 1//",
	"-//IETF//DTD HTML Level 2//",
	"-//IETF//DTD HTML Level 3//",
	"-//IETF//DTD HTML Strict Level 0//",
	"-//IETF//DTD HTML Strict Level 1//",
	"-//IETF//DTD HTML Strict Level 2//",
	"-//IETF//DTD HTML Strict Level 3//",
	"-//IETF//DTD HTML Strict//",
	"-//IETF//DTD HTML//",
	"-//Metrius//DTD Metrius Presentational//",
	"-//Microsoft//DTD Internet Explorer 2.0 HTML Strict//",
	"-//Microsoft//DTD Internet Explorer 2.0 HTML//",
	"-//Microsoft//DTD Internet Explorer 2.0 Tables//",
	"-//Microsoft//DTD Internet Explorer 3.0 HTML Strict//",
	"-//Microsoft//DTD Internet Explorer 3.0 HTML//",
	"-//Microsoft//DTD Internet Explorer 3.0 Tables//",
	"-//Netscape Comm. Corp.//DTD HTML//",
	"-//Netscape Comm. Corp.//DTD Strict HTML//",
	"-//O'Reilly and Associates//DTD HTML 2.0//",
	"-//O'Reilly and Associates//DTD HTML Extended 1.0//",
	"-//O'Reilly and Associates//DTD HTML Extended Relaxed 1.0//",
	"-//SQ//DTD HTML 2.0 HoTMetaL + extensions//",
	"-//SoftQuad Software//DTD HoTMetaL PRO 6.0::19990601::extensions to HTML 4.0//",
	"-//SoftQuad//DTD HoTMetaL PRO 4.0::19971010::extensions to HTML 4.0//",
	"-//Spyglass//DTD HTML 2.0 Extended//",
	"-//Sun Microsystems Corp.//DTD HotJava HTML//",
	"-//Sun Microsystems Corp.//DTD HotJava Strict HTML//",
	"-//W3C//DTD HTML 3 1995-03-24//",
	"-//W3C//DTD HTML 3.2 Draft//",
	"-//W3C//DTD HTML 3.2 Final//",
	"-//W3C//DTD HTML 3.2//",
	"-//W3C//DTD HTML 3.2S Draft//",
	"-//W3C//DTD HTML 4.0 Frameset//",
	"-//W3C//DTD HTML 4.0 Transitional//",
	"-//W3C//DTD HTML Experimental 19960712//",
	"-//W3C//DTD HTML Experimental 970421//",
	"-//W3C//DTD W3 HTML//",
	"-//W3C//DTD W3 HTML 3.0//",
	"-//WebTechs//DTD Mozilla HTML 2.0//",
	"-//WebTechs//DTD Mozilla HTML//",
}

const (
	w3cDTDHTML401Frameset     = "-//W3C//DTD HTML 4.01 Frameset//"
	w3cDTDHTML401Transitional = "-//W3C//DTD HTML 4.01 Transitional//"
	w3cDTDXHTML1Frameset      = "-//W3C//DTD XHTML 1.0 Frameset//"
	w3cDTDXHTML1Transitional  = "-//W3C//DTD XHTML 1.0 Transitional//"
	ibmxhtml                  = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"
)

func (c *HTMLTreeConstructor) isIframeSrcDoc() bool {
	return false
}

func (c *HTMLTreeConstructor) isForceQuirks(t *Token) bool {
	if c.isIframeSrcDoc() {
		return false
	}
	if t.ForceQuirks {
		return true
	}
	if !strings.EqualFold(t.TagName, "html") {
		return true
	}

	pub, sys := t.PublicIdentifier, t.SystemIdentifier
	if pub == "-//W3O//DTD W3 HTML Strict 3.0//EN//" || pub == "-/W3C/DTD HTML 4.0 Transitional/EN" || pub == "HTML" {
		return true
	}
	if sys == ibmxhtml {
		return true
	}
	for _, v := range knownPublicIdentifiers {
		if strings.HasPrefix(pub, v) {
			return true
		}
	}
	if sys == missing && strings.HasPrefix(pub, w3cDTDHTML401Frameset) {
		return true
	}
	if sys == missing && strings.HasPrefix(pub, w3cDTDHTML401Transitional) {
		return true
	}
	return false
}

func (c *HTMLTreeConstructor) isLimitedQuirks(t *Token) bool {
	if strings.HasPrefix(t.PublicIdentifier, w3cDTDXHTML1Frameset) {
		return true
	}
	if strings.HasPrefix(t.PublicIdentifier, w3cDTDXHTML1Transitional) {
		return true
	}
	if t.SystemIdentifier != missing {
		if strings.HasPrefix(t.PublicIdentifier, w3cDTDHTML401Frameset) {
			return true
		}
		if strings.HasPrefix(t.PublicIdentifier, w3cDTDHTML401Transitional) {
			return true
		}
	}
	return false
}

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoScript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

type treeConstructionModeHandler func(t *Token) (bool, insertionMode, parseError)
