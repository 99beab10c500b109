package spec

// ProcessingInstruction is https://dom.spec.whatwg.org/#processinginstruction
type ProcessingInstruction struct {
	Target string
	*CharacterData
}
