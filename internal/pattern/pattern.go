package pattern

import (
	"fmt"
	"strings"
)

// ByteRange is a half-open [Start, End) offset interval into a source text.
// Start must not exceed End.
type ByteRange struct {
	Start int
	End   int
}

func NewByteRange(start, end int) ByteRange {
	return ByteRange{Start: start, End: end}
}

func (r ByteRange) Len() int { return r.End - r.Start }

// Shift translates the range into an enclosing document's coordinate space
// by adding the enclosing range's start offset.
func (r ByteRange) Shift(offset int) ByteRange {
	return ByteRange{Start: r.Start + offset, End: r.End + offset}
}

func (r ByteRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Kind identifies the concrete form of a compiled Pattern.
type Kind int

const (
	KindUnderscore Kind = iota
	KindVariable
	KindDynamic
	KindCodeSnippet
	KindASTNode
)

// Pattern is a compiled snippet interpretation. The set of forms is closed:
// snippet compilation only ever produces the kinds listed above.
type Pattern interface {
	Kind() Kind
	String() string
}

var (
	_ Pattern = Underscore{}
	_ Pattern = (*Variable)(nil)
	_ Pattern = (*Dynamic)(nil)
	_ Pattern = (*CodeSnippet)(nil)
	_ Pattern = (*ASTNode)(nil)
)

// Underscore matches anything and binds nothing.
type Underscore struct{}

func (Underscore) Kind() Kind { return KindUnderscore }
func (Underscore) String() string { return "$_" }

// VariableRef is the stable per-rule identifier of a named metavariable.
// Name keeps the sigil the rule author wrote, e.g. "$x" or "^x".
// Anonymous wildcards carry Index -1 and are never reused.
type VariableRef struct {
	Name  string
	Index int
}

// Variable binds a single named capture.
type Variable struct {
	Ref VariableRef
}

func (*Variable) Kind() Kind { return KindVariable }
func (v *Variable) String() string { return v.Ref.Name }

// DynamicPart is one element of a DynamicSnippet: either a literal text
// fragment or a reference to a registered variable.
type DynamicPart interface {
	String() string
	dynamicPart()
}

var (
	_ DynamicPart = LiteralPart{}
	_ DynamicPart = VariablePart{}
)

// LiteralPart is a verbatim text fragment.
type LiteralPart struct {
	Text string
}

func (LiteralPart) dynamicPart()     {}
func (p LiteralPart) String() string { return p.Text }

// VariablePart is a reference to a registered variable, substituted with the
// variable's text when the snippet is rendered.
type VariablePart struct {
	Ref VariableRef
}

func (VariablePart) dynamicPart()     {}
func (p VariablePart) String() string { return p.Ref.Name }

// DynamicSnippet is an ordered literal/variable part sequence. Concatenating
// the literal parts and substituting each variable part with the text it was
// captured from reproduces the unescaped input byte-for-byte.
type DynamicSnippet struct {
	Parts []DynamicPart
}

func (s *DynamicSnippet) String() string {
	var b strings.Builder
	for _, p := range s.Parts {
		b.WriteString(p.String())
	}
	return b.String()
}

// Dynamic is a template-only pattern with no structural interpretation.
type Dynamic struct {
	Snippet *DynamicSnippet
}

func (*Dynamic) Kind() Kind { return KindDynamic }
func (d *Dynamic) String() string {
	return fmt.Sprintf("Dynamic(%s)", d.Snippet)
}

// Alternative is one structural interpretation of a snippet, keyed by the
// grammar-assigned kind identifier of its root node.
type Alternative struct {
	Sort    string
	Pattern Pattern
}

// CodeSnippet carries both interpretations of one snippet: the structural
// alternatives used for matching and an optional template used when the
// pattern is rendered as replacement text. Template is nil when the template
// build failed; Source is the original unescaped text.
type CodeSnippet struct {
	Alternatives []Alternative
	Template     *DynamicSnippet
	Source       string
}

func (*CodeSnippet) Kind() Kind { return KindCodeSnippet }
func (c *CodeSnippet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CodeSnippet(%q, %d alternatives):", c.Source, len(c.Alternatives))
	for _, alt := range c.Alternatives {
		child := strings.ReplaceAll(alt.Pattern.String(), "\n", "\n  ")
		fmt.Fprintf(&b, "\n  %s: %s", alt.Sort, child)
	}
	return b.String()
}

// Field labels one child pattern of an ASTNode with the grammar field name it
// occupies in the parent node.
type Field struct {
	Name    string
	Pattern Pattern
}

// ASTNode is a structural pattern derived from a single parsed node. Text is
// set for leaf tokens (identifiers, literals) and empty for interior nodes.
type ASTNode struct {
	Sort   string
	Text   string
	Fields []Field
}

func (*ASTNode) Kind() Kind { return KindASTNode }
func (n *ASTNode) String() string {
	if len(n.Fields) == 0 {
		if n.Text != "" {
			return fmt.Sprintf("%s(%q)", n.Sort, n.Text)
		}
		return n.Sort
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:", n.Sort)
	for _, f := range n.Fields {
		child := strings.ReplaceAll(f.Pattern.String(), "\n", "\n  ")
		fmt.Fprintf(&b, "\n  %s: %s", f.Name, child)
	}
	return b.String()
}
