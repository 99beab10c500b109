package spec

// NodeAttrLocation records the position of one attribute's key=value
// text, copied onto a node from whatever token created it.
type NodeAttrLocation struct {
	Name           string
	Line, Col, Off int
}

// NodeLocation is the source position recorded on a node when
// sourceCodeLocationInfo is enabled: where its start tag (or, for text
// and comment nodes, the node itself) began, where it stopped
// accepting children, and where each of its attributes came from.
// Grounded on the span bookkeeping in
// other_examples/reclaimprotocol-reclaim-tee__html_positioned.go,
// adapted to the line/col/offset triple the rest of this parser uses.
type NodeLocation struct {
	Line, Col, Off          int
	EndLine, EndCol, EndOff int
	AttrLocs                []NodeAttrLocation
}

// SetSourceCodeLocation stamps where n's start tag began.
func (n *Node) SetSourceCodeLocation(loc NodeLocation) {
	n.Loc = loc
}

// SetEndTagLocation records where n stopped accepting children: the
// position of its own matching end tag, or a zero-length span at
// whatever token forced it to close early.
func (n *Node) SetEndTagLocation(line, col, off int) {
	n.Loc.EndLine, n.Loc.EndCol, n.Loc.EndOff = line, col, off
}
