package parser

import "github.com/sirupsen/logrus"

// parseError names one of the WHATWG tree-construction error conditions.
// The engine never treats these as fatal: every handler reports one (or
// noError) and continues with the spec-prescribed recovery.
type parseError uint

const (
	noError parseError = iota
	generalParseError
	missingDoctype
	nonConformingDoctype
	misplacedDoctype
	endTagWithoutMatchingOpenElement
	misplacedStartTagForHeadElement
	nestedNoscriptInHead
	disallowedContentInNoscriptInHead
	openElementsLeftAfterEOF
	abandonedHeadElementChild
	closingOfElementWithOpenChildElements
	eofInElementThatCanContainOnlyText
	nonVoidHTMLElementStartTagWithTrailingSolidus
	unexpectedTokenInForeignContent
)

var parseErrorNames = map[parseError]string{
	noError:                              "",
	generalParseError:                    "unexpected token",
	missingDoctype:                       "missing doctype",
	nonConformingDoctype:                 "non-conforming doctype",
	misplacedDoctype:                     "misplaced doctype",
	endTagWithoutMatchingOpenElement:     "end tag without matching open element",
	misplacedStartTagForHeadElement:      "misplaced start tag for head element",
	nestedNoscriptInHead:                 "nested noscript in head",
	disallowedContentInNoscriptInHead:    "disallowed content in noscript in head",
	openElementsLeftAfterEOF:             "open elements left after eof",
	abandonedHeadElementChild:            "abandoned head element child",
	closingOfElementWithOpenChildElements: "closing of element with open child elements",
	eofInElementThatCanContainOnlyText:   "eof in element that can only contain text",
	nonVoidHTMLElementStartTagWithTrailingSolidus: "non-void html element start tag with trailing solidus",
	unexpectedTokenInForeignContent:              "unexpected token in foreign content",
}

func (p parseError) String() string {
	if n, ok := parseErrorNames[p]; ok {
		return n
	}
	return "unknown parse error"
}

// ParseErrorSink receives a record for every non-fatal parse error the
// engine encounters. Installing a sink implicitly enables source location
// tracking, since positions are otherwise not computed.
type ParseErrorSink func(rec ParseErrorRecord)

// ParseErrorRecord is the positional record handed to a ParseErrorSink.
// https://html.spec.whatwg.org/multipage/parsing.html#parse-errors
type ParseErrorRecord struct {
	Code       parseError
	StartLine  int
	StartCol   int
	StartOff   int
	EndLine    int
	EndCol     int
	EndOff     int
}

// logError reports a parse error through the configured sink, or, absent
// one, as a debug-level structured log line -- matching the rest of the
// package's use of logrus for diagnostics that aren't the caller's concern.
func (c *HTMLTreeConstructor) logError(err parseError, t *Token) {
	if err == noError {
		return
	}

	rec := ParseErrorRecord{Code: err}
	if t != nil {
		rec.StartLine, rec.StartCol, rec.StartOff = t.Location.Line, t.Location.Col, t.Location.Off
		rec.EndLine, rec.EndCol, rec.EndOff = rec.StartLine, rec.StartCol, rec.StartOff
	}

	if c.config.onParseError != nil {
		c.config.onParseError(rec)
		return
	}

	logrus.WithFields(logrus.Fields{
		"code": err.String(),
		"line": rec.StartLine,
		"col":  rec.StartCol,
	}).Debug("[TREE]: parse error")
}
