package compiler

import (
	"fmt"
	"strings"

	"github.com/urbit-pilled/gritql/internal/lang"
	"github.com/urbit-pilled/gritql/internal/pattern"
	"github.com/urbit-pilled/gritql/internal/rule"
)

// CompileCodeSnippet is the entry point the rule compiler calls for every
// code snippet node. It routes the node's source child to the compiler for
// its concrete form. isRHS marks the rewrite side of a rule.
func CompileCodeSnippet(node *rule.Node, ctx *Context, isRHS bool) (pattern.Pattern, error) {
	source := node.ChildByField("source")
	if source == nil {
		return nil, &StructuralError{Msg: "missing content of codeSnippet"}
	}
	switch source.Kind {
	case rule.KindBacktickSnippet:
		return compileBacktickSnippet(source, ctx, isRHS)
	case rule.KindRawBacktickSnippet:
		return compileRawBacktickSnippet(source, ctx)
	case rule.KindLanguageSpecificSnippet:
		return compileLanguageSpecificSnippet(source, ctx, isRHS)
	default:
		return nil, &StructuralError{Msg: fmt.Sprintf("invalid code snippet kind: %s", source.Kind)}
	}
}

// compileBacktickSnippet strips the backticks and resolves the content.
func compileBacktickSnippet(node *rule.Node, ctx *Context, isRHS bool) (pattern.Pattern, error) {
	content, err := cutDelimiters(node.Text(), "`")
	if err != nil {
		return nil, err
	}
	r := pattern.NewByteRange(node.Range.Start+1, node.Range.End-1)
	return ParseSnippetContent(content, r, ctx, isRHS)
}

// compileRawBacktickSnippet compiles a raw snippet: the text is kept
// verbatim, with no escape processing and no structural parsing, so the
// result is always a template.
func compileRawBacktickSnippet(node *rule.Node, ctx *Context) (pattern.Pattern, error) {
	content, err := cutDelimiters(node.Text(), "`")
	if err != nil {
		return nil, err
	}
	r := pattern.NewByteRange(node.Range.Start+1, node.Range.End-1)
	snippet, err := assembleSnippetParts(content, r, ctx)
	if err != nil {
		return nil, err
	}
	return &pattern.Dynamic{Snippet: snippet}, nil
}

// compileLanguageSpecificSnippet validates the declared sub-language, strips
// the quoting and forwards the content to the resolver. The content range is
// the node's own range shrunk by one column on each side, preserving absolute
// offsets.
func compileLanguageSpecificSnippet(node *rule.Node, ctx *Context, isRHS bool) (pattern.Pattern, error) {
	langNode := node.ChildByField("language")
	if langNode == nil {
		return nil, &StructuralError{Msg: "missing language of languageSpecificSnippet"}
	}
	langName := strings.TrimSpace(langNode.Text())
	if _, err := lang.Resolve(langName); err != nil {
		return nil, err
	}

	snippetNode := node.ChildByField("snippet")
	if snippetNode == nil {
		return nil, &StructuralError{Msg: "missing snippet of languageSpecificSnippet"}
	}
	content, err := cutDelimiters(snippetNode.Text(), `"`)
	if err != nil {
		return nil, err
	}

	r := pattern.NewByteRange(node.Range.Start+1, node.Range.End-1)
	return ParseSnippetContent(content, r, ctx, isRHS)
}

func cutDelimiters(source, delim string) (string, error) {
	content, ok := strings.CutPrefix(source, delim)
	if !ok {
		return "", &MalformedLiteralError{Source: source}
	}
	content, ok = strings.CutSuffix(content, delim)
	if !ok {
		return "", &MalformedLiteralError{Source: source}
	}
	return content, nil
}

// unescapeSnippet applies the snippet escape substitutions as sequential
// whole-text rewrites in this exact order; each rewrite observes the output
// of the previous one.
func unescapeSnippet(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, "\\`", "`")
	s = strings.ReplaceAll(s, `\$`, "$")
	s = strings.ReplaceAll(s, `\^`, "^")
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

// DynamicSnippetFromSource builds the literal/variable template for raw
// snippet text: the text is unescaped, metavariable occurrences are located,
// and the parts are assembled in left-to-right order with every variable
// registered through the context at its absolute range.
func DynamicSnippetFromSource(rawSource string, sourceRange pattern.ByteRange, ctx *Context) (*pattern.DynamicSnippet, error) {
	return assembleSnippetParts(unescapeSnippet(rawSource), sourceRange, ctx)
}

func assembleSnippetParts(source string, sourceRange pattern.ByteRange, ctx *Context) (*pattern.DynamicSnippet, error) {
	occurrences := lang.SplitSnippet(source, ctx.Lang)

	parts := make([]pattern.DynamicPart, 0, 2*len(occurrences)+1)
	last := 0
	for _, occ := range occurrences {
		parts = append(parts, pattern.LiteralPart{Text: source[last:occ.Range.Start]})
		part, err := ctx.RegisterSnippetVariable(occ.Name, occ.Range.Shift(sourceRange.Start))
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
		last = occ.Range.End
	}
	parts = append(parts, pattern.LiteralPart{Text: source[last:]})

	return &pattern.DynamicSnippet{Parts: parts}, nil
}

// ParseSnippetContent decides how snippet text is interpreted. The branches
// are ordered; the first match wins:
//
//  1. a bracketed metavariable template is rhs-only and never parsed as code;
//  2. a snippet that is exactly one metavariable reference becomes an
//     Underscore or Variable pattern;
//  3. otherwise the text is parsed under every syntactic context the
//     language supports, falling back to a text-only template when nothing
//     parses;
//  4. parsed roots are each compiled structurally, and the template is built
//     alongside them so the same pattern serves both rule sides. A failed
//     template build is not fatal when structural alternatives exist.
func ParseSnippetContent(source string, r pattern.ByteRange, ctx *Context, isRHS bool) (pattern.Pattern, error) {
	if ctx.Lang.BracketedMetavariable().MatchString(source) {
		if !isRHS {
			return nil, &PlacementError{Range: r}
		}
		snippet, err := DynamicSnippetFromSource(source, r, ctx)
		if err != nil {
			return nil, err
		}
		return &pattern.Dynamic{Snippet: snippet}, nil
	}

	if trimmed := strings.TrimSpace(source); ctx.Lang.ExactMetavariable().MatchString(trimmed) {
		switch trimmed {
		case "$_", "^_":
			return pattern.Underscore{}, nil
		default:
			ref, err := ctx.RegisterVariable(trimmed, r)
			if err != nil {
				return nil, err
			}
			return &pattern.Variable{Ref: ref}, nil
		}
	}

	roots := ctx.Lang.ParseContexts(source)
	if len(roots) == 0 {
		snippet, err := DynamicSnippetFromSource(source, r, ctx)
		if err != nil {
			return nil, err
		}
		return &pattern.Dynamic{Snippet: snippet}, nil
	}

	alternatives := make([]pattern.Alternative, 0, len(roots))
	for _, root := range roots {
		compiled, err := CompileSnippetNode(root, r, ctx, isRHS)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, pattern.Alternative{Sort: root.Sort, Pattern: compiled})
	}

	var template *pattern.DynamicSnippet
	if snippet, err := DynamicSnippetFromSource(source, r, ctx); err == nil {
		template = snippet
	}

	return &pattern.CodeSnippet{
		Alternatives: alternatives,
		Template:     template,
		Source:       source,
	}, nil
}
