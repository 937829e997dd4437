// Package rule parses rule pattern text into the small grammar the snippet
// compiler consumes, and loads rule files.
package rule

import (
	"github.com/urbit-pilled/gritql/internal/pattern"
)

// Node kinds the rule grammar produces for code snippets. The set is closed;
// the dispatcher matches over exactly these forms.
const (
	KindCodeSnippet             = "code_snippet"
	KindBacktickSnippet         = "backtick_snippet"
	KindRawBacktickSnippet      = "raw_backtick_snippet"
	KindLanguageSpecificSnippet = "language_specific_snippet"
	KindLanguageName            = "language_name"
	KindSnippetLiteral          = "snippet_literal"
)

// Node is a rule-grammar AST node backed by the rule source text it was
// parsed from. Range indexes into that source.
type Node struct {
	Kind   string
	Range  pattern.ByteRange
	source string
	fields map[string]*Node
}

// NewNode creates a node over source covering r.
func NewNode(kind, source string, r pattern.ByteRange) *Node {
	return &Node{Kind: kind, Range: r, source: source}
}

// Text returns the source text the node covers.
func (n *Node) Text() string {
	return n.source[n.Range.Start:n.Range.End]
}

// ChildByField returns the named child, or nil if the grammar did not
// produce one.
func (n *Node) ChildByField(name string) *Node {
	return n.fields[name]
}

// SetField attaches a named child node.
func (n *Node) SetField(name string, child *Node) {
	if n.fields == nil {
		n.fields = map[string]*Node{}
	}
	n.fields[name] = child
}
