package parser

import (
	"io"

	"browser/parser/spec"

	"github.com/pkg/errors"
)

type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor

	// pausedProgress is whatever ProcessToken last returned when a
	// </script> end tag set pendingParserPause, so Resume can hand the
	// tokenizer back exactly what it would have gotten had the loop
	// never stopped.
	pausedProgress *Progress
}

func NewParser(htmlIn io.Reader) *Parser {
	return NewParserWithConfig(htmlIn, defaultHTMLParserConfig())
}

func NewParserWithConfig(htmlIn io.Reader, config htmlParserConfig) *Parser {
	tokenizer := NewHTMLTokenizer(htmlIn)
	treeConstructor := NewHTMLTreeConstructor(config)
	return &Parser{
		Tokenizer:       tokenizer,
		TreeConstructor: treeConstructor,
	}
}

type Progress struct {
	AdjustedCurrentNode *spec.Node
	TokenizerState      *tokenizerState
}

func MakeProgress(adjCurNode *spec.Node, tokenizerState *tokenizerState) *Progress {
	return &Progress{
		AdjustedCurrentNode: adjCurNode,
		TokenizerState:      tokenizerState,
	}
}

func (p *Parser) Start() (*spec.Node, error) {
	start := dataState
	_, err := p.startAt(&start)
	if err != nil {
		return nil, errors.Wrap(err, "parsing document")
	}
	return p.TreeConstructor.HTMLDocument.Node, nil
}

func (p *Parser) startAt(startState *tokenizerState) ([]*Token, error) {
	return p.run(MakeProgress(nil, startState))
}

// run drives the tokenizer/tree-constructor loop from progress until
// input runs out or a <script> end tag pauses it
// (https://html.spec.whatwg.org/multipage/parsing.html#scripts-that-modify-page-as-it-is-being-parsed,
// suspension point 2). Resume picks the loop back up from exactly the
// progress it stopped at.
func (p *Parser) run(progress *Progress) ([]*Token, error) {
	tokens := []*Token{}
	for p.Tokenizer.Next() {
		t, err := p.Tokenizer.Token(progress)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		tokens = append(tokens, t)
		progress = p.TreeConstructor.ProcessToken(t)

		if p.TreeConstructor.pendingParserPause {
			p.pausedProgress = progress
			return tokens, nil
		}
	}

	return tokens, nil
}

// Paused reports whether a <script> end tag has stopped the parsing
// loop short of end of input.
func (p *Parser) Paused() bool {
	return p.TreeConstructor.pendingParserPause
}

// PendingScript returns the script element inserted just before the
// parser paused, or nil if it isn't currently paused.
func (p *Parser) PendingScript() *spec.Node {
	return p.TreeConstructor.pendingScript
}

// Resume continues parsing after a <script> end tag paused the loop,
// picking the tokenizer back up exactly where it left off. A no-op if
// the parser isn't currently paused.
func (p *Parser) Resume() (*spec.Node, error) {
	if !p.TreeConstructor.pendingParserPause {
		return p.TreeConstructor.HTMLDocument.Node, nil
	}

	progress := p.pausedProgress
	if progress == nil {
		progress = MakeProgress(nil, nil)
	}
	p.TreeConstructor.pendingParserPause = false
	p.TreeConstructor.pendingScript = nil
	p.pausedProgress = nil

	if _, err := p.run(progress); err != nil {
		return nil, errors.Wrap(err, "resuming parse")
	}
	return p.TreeConstructor.HTMLDocument.Node, nil
}
