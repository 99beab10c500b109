package parser

// Location is a span into the original input, with offsets counted in
// runes (Off advances once per decoded rune, not per byte), recorded for
// every token the tokenizer emits so the tree constructor can propagate
// source positions onto the nodes it creates.
// Grounded on the span bookkeeping in other_examples/reclaimprotocol-reclaim-tee__html_positioned.go,
// adapted to the line/col/offset triple the rest of this package already
// uses for error reporting.
type Location struct {
	Line, Col, Off int
	EndLine        int
	EndCol         int
	EndOff         int
}

// AttrLocation pairs an attribute name with the span of its key=value text
// in the source, used only when sourceCodeLocationInfo is enabled.
type AttrLocation struct {
	Name string
	Loc  Location
}

// NodeLocation is not constructed anywhere in this package: the tree
// constructor records node positions as spec.NodeLocation instead.
// StartTag/EndTag are zero unless the node is an element with a
// matching start/end tag.
type NodeLocation struct {
	Location
	StartTag  *Location
	EndTag    *Location
	AttrLocs  []AttrLocation
}
