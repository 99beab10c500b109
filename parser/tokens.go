package parser

import (
	"fmt"
	"strings"

	"browser/parser/spec"
)

//go:generate stringer -type=tokenType
type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	endOfFileToken
	commentToken
	docTypeToken
	// hibernationToken is never emitted to the tree constructor, and no
	// tokenizer state produces one; HTMLTokenizer.Token only returns
	// tokens taken from the emitted queue.
	hibernationToken
)

const missing string = "MISSING"

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// Token is a concrete token that is ready to be emitted.
type Token struct {
	TokenType        tokenType
	TagID            tagID
	TagName          string
	Attributes       map[string]*spec.Attr
	AttrLocs         []AttrLocation
	PublicIdentifier string
	SystemIdentifier string
	ForceQuirks      bool
	SelfClosing      bool
	AckSelfClosing   bool
	Data             string
	Location         Location
}

// TokenBuilder builds various tokens up during the tokenization
// phase.
type TokenBuilder struct {
	attributes             map[string]*spec.Attr
	attributeKey           strings.Builder
	attributeValue         strings.Builder
	attrLocs               []AttrLocation
	curAttrLoc             Location
	name                   strings.Builder
	data                   strings.Builder
	tempBuffer             strings.Builder
	publicID               strings.Builder
	systemID               strings.Builder
	selfClosing            bool
	forceQuirks            bool
	removeNextAttr         bool
	curTagType             tagType
	characterReferenceCode int
}

// MakeTokenBuilder constructs a fresh TokenBuilder, ready to accumulate
// the first token's worth of input.
func MakeTokenBuilder() *TokenBuilder {
	t := &TokenBuilder{}
	t.NewToken()
	return t
}

// NewToken clears all the builders and attributes. We don't include
// the temp buffer here because it spans multiple states on its own
// (character references, RAWTEXT end-tag matching) and is reset
// explicitly by whichever state owns it.
func (t *TokenBuilder) NewToken() {
	t.attributes = make(map[string]*spec.Attr)
	t.attrLocs = nil
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	//default state for public and system id is "MISSING"
	t.publicID.Reset()
	t.systemID.Reset()
	t.publicID.WriteString(missing)
	t.systemID.WriteString(missing)
	t.data.Reset()
	t.name.Reset()
	t.selfClosing = false
	t.forceQuirks = false
	t.removeNextAttr = false
}

// EnableSelfClosing changes to the self-closing flag to "set".
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// EnableForceQuirks changes to the force-quirks flag to "set".
func (t *TokenBuilder) EnableForceQuirks() {
	t.forceQuirks = true
}

// WritePublicIdentifier appends a rune to the public identifier buffer.
func (t *TokenBuilder) WritePublicIdentifier(r rune) {
	_, err := t.publicID.WriteRune(r)
	if err != nil {
		fmt.Print(err)
	}
}

// WriteSystemIdentifier appends a rune to the system identifier buffer.
func (t *TokenBuilder) WriteSystemIdentifier(r rune) {
	_, err := t.systemID.WriteRune(r)
	if err != nil {
		fmt.Print(err)
	}
}

// ClearPublicIdentifier empties the public identifier buffer, leaving it
// "" (as opposed to the "MISSING" default) once the doctype state has
// seen an opening quote.
func (t *TokenBuilder) ClearPublicIdentifier() {
	t.publicID.Reset()
}

// ClearSystemIdentifier empties the system identifier buffer.
func (t *TokenBuilder) ClearSystemIdentifier() {
	t.systemID.Reset()
}

// WriteAttributeName appends a character to the current
// attribute's name.
func (t *TokenBuilder) WriteAttributeName(r rune) {
	_, err := t.attributeKey.WriteRune(r)
	if err != nil {
		fmt.Print(err)
	}
}

//WriteData appends a character to the current data section.
func (t *TokenBuilder) WriteData(r rune) {
	_, err := t.data.WriteRune(r)
	if err != nil {
		fmt.Print(err)
	}
}

// WriteAttributeValue appends a character to the current
// attribute's value.
func (t *TokenBuilder) WriteAttributeValue(r rune) {
	_, err := t.attributeValue.WriteRune(r)
	if err != nil {
		fmt.Print(err)
	}
}

// RemoveDuplicateAttributeName checks if the current name is already
// in the list of commited attributes. If so, it removes the attribute.
func (t *TokenBuilder) RemoveDuplicateAttributeName() bool {
	_, ok := t.attributes[t.attributeKey.String()]
	if ok {
		t.removeNextAttr = true
	}
	return ok
}

// WriteName appends a character to the current name value.
func (t *TokenBuilder) WriteName(r rune) {
	_, err := t.name.WriteRune(r)
	if err != nil {
		fmt.Print(err)
	}
}

// CommitAttribute ends the creation of a key/value
// pair by copying the name and value fields into the
// attribute field and clearing the name and value fields.
func (t *TokenBuilder) CommitAttribute() {
	// only commit the attribute if it isn't a duplicate
	if !t.removeNextAttr {
		k := t.attributeKey.String()
		v := t.attributeValue.String()

		if k != "" {
			t.attributes[k] = spec.NewAttr(k, v, nil)
			t.attrLocs = append(t.attrLocs, AttrLocation{Name: k, Loc: t.curAttrLoc})
		}
	}
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.removeNextAttr = false
}

// WriteTempBuffer appends a character to the temporary buffer of the current
// state.
func (t *TokenBuilder) WriteTempBuffer(r rune) {
	_, err := t.tempBuffer.WriteRune(r)
	if err != nil {
		fmt.Print(err)
	}
}

// ResetTempBuffer clears the temporary buffer to be used by some other state.
func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer.Reset()
}

// TempBuffer just returns the string version of the current buffer conents.
func (t *TokenBuilder) TempBuffer() string {
	return t.tempBuffer.String()
}

// SetCharRef sets the internal character reference count to i.
func (t *TokenBuilder) SetCharRef(i int) {
	t.characterReferenceCode = i
}

// GetCharRef returns the internal character reference count.
func (t *TokenBuilder) GetCharRef() int {
	return t.characterReferenceCode
}

// AddToCharRef adds a number to the current char ref count.
func (t *TokenBuilder) AddToCharRef(i int) {
	t.characterReferenceCode += i
}

// MultByCharRef multiplys a number to the current char ref count.
func (t *TokenBuilder) MultByCharRef(i int) {
	t.characterReferenceCode *= i

}

// Cmp compares the current char ref count to i, returning -1, 0, or 1
// if the char ref count is less than, equal to, or greater than i.
func (t *TokenBuilder) Cmp(i int) int {
	switch {
	case t.characterReferenceCode < i:
		return -1
	case t.characterReferenceCode > i:
		return 1
	default:
		return 0
	}
}

// StartTagToken creates a start tag token from the builder
// contents.
func (t *TokenBuilder) StartTagToken() Token {
	name := t.name.String()
	return Token{
		TokenType:      startTagToken,
		TagID:          lookupTagID(name),
		TagName:        name,
		Attributes:     t.attributes,
		AttrLocs:       t.attrLocs,
		SelfClosing:    t.selfClosing,
		AckSelfClosing: false,
	}
}

// EndTagToken creates an end tag token from the builder
// contents.
func (t *TokenBuilder) EndTagToken() Token {
	name := t.name.String()
	return Token{
		TokenType:   endTagToken,
		TagID:       lookupTagID(name),
		TagName:     name,
		Attributes:  t.attributes,
		AttrLocs:    t.attrLocs,
		SelfClosing: t.selfClosing,
	}
}

// CharacterToken creates a character token from the builder
// contents.
func (t *TokenBuilder) CharacterToken(r rune) Token {
	return Token{
		TokenType: characterToken,
		Data:      string(r),
	}
}

// TempBufferCharTokens turns the contents of the temporary buffer into
// one character token per rune, used when a state bails out of
// consuming something (e.g. an unmatched character reference) and has
// to re-emit what it buffered as plain characters.
func (t *TokenBuilder) TempBufferCharTokens() []Token {
	buf := t.tempBuffer.String()
	tokens := make([]Token, 0, len(buf))
	for _, r := range buf {
		tokens = append(tokens, Token{TokenType: characterToken, Data: string(r)})
	}
	return tokens
}

// EndOfFileToken create an end of file token.
func (t *TokenBuilder) EndOfFileToken() Token {
	return Token{
		TokenType: endOfFileToken,
	}
}

// CommentToken creates a comment token from the builder contents.
func (t *TokenBuilder) CommentToken() Token {
	return Token{
		TokenType: commentToken,
		Data:      t.data.String(),
	}
}

// DocTypeToken creates a doc type token from the builder contents.
func (t *TokenBuilder) DocTypeToken() Token {
	return Token{
		TokenType:        docTypeToken,
		TagName:          t.name.String(),
		ForceQuirks:      t.forceQuirks,
		PublicIdentifier: t.publicID.String(),
		SystemIdentifier: t.systemID.String(),
	}
}

// Equal reports whether two tokens carry the same tokenizer-relevant
// content, ignoring source location (used by the html5lib-test
// tokenizer conformance harness, which has no notion of position).
func (t *Token) Equal(o *Token) bool {
	if t.TokenType != o.TokenType || t.TagName != o.TagName ||
		t.ForceQuirks != o.ForceQuirks || t.SelfClosing != o.SelfClosing ||
		t.Data != o.Data || t.PublicIdentifier != o.PublicIdentifier ||
		t.SystemIdentifier != o.SystemIdentifier {
		return false
	}
	if len(t.Attributes) != len(o.Attributes) {
		return false
	}
	for k, v := range t.Attributes {
		ov, ok := o.Attributes[k]
		if !ok || ov.Value != v.Value {
			return false
		}
	}
	return true
}

func (t *Token) String() string {
	return fmt.Sprintf("%+v", *t)
}
