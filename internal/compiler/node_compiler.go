package compiler

import (
	"go/ast"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/urbit-pilled/gritql/internal/lang"
	"github.com/urbit-pilled/gritql/internal/pattern"
)

// nodeFrame accumulates the compiled fields of one AST node while its
// children are being traversed.
type nodeFrame struct {
	sort   string
	text   string
	fields []pattern.Field
}

// CompileSnippetNode recursively compiles one parsed snippet root into a
// structural pattern. Placeholder identifiers the language substituted for
// metavariables are lowered to Variable or Underscore patterns, registered
// through the context at their absolute ranges. isRHS is threaded for parity
// with the snippet entry point; structural compilation itself is
// side-agnostic.
func CompileSnippetNode(root lang.SnippetRoot, sourceRange pattern.ByteRange, ctx *Context, isRHS bool) (pattern.Pattern, error) {
	var (
		stack    []*nodeFrame
		result   pattern.Pattern
		firstErr error
	)

	attach := func(c *astutil.Cursor, p pattern.Pattern) {
		if len(stack) == 0 {
			result = p
			return
		}
		top := stack[len(stack)-1]
		top.fields = append(top.fields, pattern.Field{Name: c.Name(), Pattern: p})
	}

	pre := func(c *astutil.Cursor) bool {
		n := c.Node()
		if n == nil || firstErr != nil {
			return false
		}
		if ident, ok := n.(*ast.Ident); ok {
			if mv, ok := root.Metavariables[ident.Name]; ok {
				compiled, err := metavariablePattern(mv, sourceRange, ctx)
				if err != nil {
					firstErr = err
					return false
				}
				attach(c, compiled)
				return false
			}
		}
		stack = append(stack, &nodeFrame{sort: lang.SortOf(n), text: leafText(n)})
		return true
	}

	post := func(c *astutil.Cursor) bool {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		compiled := &pattern.ASTNode{Sort: frame.sort, Text: frame.text, Fields: frame.fields}
		if len(stack) == 0 {
			result = compiled
			return true
		}
		top := stack[len(stack)-1]
		top.fields = append(top.fields, pattern.Field{Name: c.Name(), Pattern: compiled})
		return true
	}

	astutil.Apply(root.Node, pre, post)
	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

// metavariablePattern lowers a substituted metavariable back to its pattern
// form: the anonymous wildcard becomes Underscore, anything else a Variable.
func metavariablePattern(mv lang.Metavariable, sourceRange pattern.ByteRange, ctx *Context) (pattern.Pattern, error) {
	if mv.Name == "$_" || mv.Name == "^_" {
		return pattern.Underscore{}, nil
	}
	ref, err := ctx.RegisterVariable(mv.Name, mv.Range.Shift(sourceRange.Start))
	if err != nil {
		return nil, err
	}
	return &pattern.Variable{Ref: ref}, nil
}

func leafText(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Ident:
		return v.Name
	case *ast.BasicLit:
		return v.Value
	}
	return ""
}
