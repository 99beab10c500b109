package parser

import (
	"browser/parser/spec"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// https://html.spec.whatwg.org/#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.Replace(s, "&", "&amp;", -1)
	s = strings.Replace(s, "\u00A0", "&nbsp;", -1)
	if attrVal {
		s = strings.Replace(s, "\"", "&quot;", -1)
	} else {
		s = strings.Replace(s, "<", "&lt;", -1)
		s = strings.Replace(s, ">", "&gt;", -1)
	}

	return s
}

func SerializeHTMLFragement(fragment *spec.Node) string {
	ret := ""
	switch fragment.NodeName {
	case "basefont", "bgsound", "frame", "keygen":
		return ret
	}

	for _, child := range fragment.ChildNodes {
		switch child.NodeType {
		case spec.ElementNode:
			ret += "<" + string(child.NodeName)

			// TODO: implementation defined, but needs to be stable
			keys := make([]string, 0, len(child.Attributes.Attrs))
			for name := range child.Attributes.Attrs {
				keys = append(keys, name)
			}
			sort.Strings(keys)
			for _, k := range keys {
				ret += " " + k + "=" + "\"" + escapeString(child.Attributes.Attrs[k].Value, true) + "\""
			}
			ret += ">"
			ret += SerializeHTMLFragement(child) + "</" + string(child.NodeName) + ">"
		case spec.TextNode:
			switch child.ParentNode.NodeName {
			case "style", "script", "xmp", "iframe", "noembed", "noframes", "plaintext":
				ret += string(child.Text.Data)
			default:
				// TODO: and scripting enabled
				if child.ParentNode.NodeName == "noscript" {
					ret += string(child.Text.Data)
				} else {
					ret += escapeString(string(child.Text.Data), false)
				}
			}
		case spec.CommentNode:
			ret += "<!--" +
				string(child.Comment.Data) +
				"-->"
		case spec.ProcessingInstructionNode:
			ret += "<?" +
				string(child.ProcessingInstruction.Target) +
				" " +
				string(child.ProcessingInstruction.Data) +
				">"
		case spec.DocumentTypeNode:
			ret += "<!DOCTYPE" +
				" " +
				string(child.DocumentType.Name) +
				">"
		}
	}
	return ret
}

// ParseHTMLFragment implements https://html.spec.whatwg.org/multipage/parsing.html#parsing-html-fragments
// parsing input as if it were the contents of context, and returning the
// resulting children (of the synthetic "html" root the algorithm builds
// around them).
func ParseHTMLFragment(context *spec.Node, input string, quirks quirksMode, scriptingEnabled bool) ([]*spec.Node, error) {
	config := defaultHTMLParserConfig()
	config.scriptingEnabled = scriptingEnabled

	tokenizer := NewHTMLTokenizer(strings.NewReader(input))
	switch context.NodeName {
	case "title", "textarea":
		tokenizer.currentState = rcDataState
	case "style", "xmp", "iframe", "noembed", "noframes":
		tokenizer.currentState = rawTextState
	case "script":
		tokenizer.currentState = scriptDataState
	case "noscript":
		if scriptingEnabled {
			tokenizer.currentState = rawTextState
		} else {
			tokenizer.currentState = dataState
		}
	case "plaintext":
		tokenizer.currentState = plaintextState
	default:
		tokenizer.currentState = dataState
	}

	treeConstructor := NewHTMLTreeConstructorForFragment(config, context)
	treeConstructor.quirksMode = quirks

	for n := context.ParentNode; n != nil; n = n.ParentNode {
		if n.NodeName == "form" {
			treeConstructor.formElementPointer = n
			break
		}
	}

	progress := MakeProgress(nil, nil)
	for tokenizer.Next() {
		tok, err := tokenizer.Token(progress)
		if err != nil {
			return nil, errors.Wrap(err, "parsing fragment")
		}
		progress = treeConstructor.ProcessToken(tok)
	}

	root := treeConstructor.stackOfOpenElements[0]
	return root.ChildNodes, nil
}
