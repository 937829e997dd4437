package lang

import (
	"errors"
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbit-pilled/gritql/internal/pattern"
)

func TestResolve(t *testing.T) {
	goLang, err := Resolve("go")
	require.NoError(t, err)

	for _, alias := range []string{"golang", "gno", "GO"} {
		l, err := Resolve(alias)
		require.NoError(t, err, alias)
		assert.Same(t, goLang, l, alias)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("cobol")
	require.Error(t, err)

	var unknownErr *UnknownLanguageError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "cobol", unknownErr.Name)
}

func TestSortOf(t *testing.T) {
	tests := []struct {
		node ast.Node
		want string
	}{
		{&ast.CallExpr{}, "call_expr"},
		{&ast.Ident{}, "ident"},
		{&ast.ExprStmt{}, "expr_stmt"},
		{&ast.BasicLit{}, "basic_lit"},
		{&ast.File{}, "source_file"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SortOf(tt.node))
	}
}

func TestParseContextsExpression(t *testing.T) {
	goLang, _ := Resolve("go")
	roots := goLang.ParseContexts("foo($x)")
	require.NotEmpty(t, roots)

	sorts := make(map[string]SnippetRoot, len(roots))
	for _, root := range roots {
		sorts[root.Sort] = root
	}
	require.Contains(t, sorts, "call_expr", "expression context should parse a call")
	require.Contains(t, sorts, "expr_stmt", "statement context should parse an expression statement")

	mv, ok := sorts["call_expr"].Metavariables["µx"]
	require.True(t, ok, "placeholder for $x should be recorded")
	assert.Equal(t, "$x", mv.Name)
	assert.Equal(t, pattern.NewByteRange(4, 6), mv.Range)
}

func TestParseContextsStatement(t *testing.T) {
	goLang, _ := Resolve("go")
	roots := goLang.ParseContexts("x := 1")
	require.Len(t, roots, 1)
	assert.Equal(t, "assign_stmt", roots[0].Sort)
	assert.Equal(t, "statement", roots[0].Context)
}

func TestParseContextsMultipleStatements(t *testing.T) {
	goLang, _ := Resolve("go")
	roots := goLang.ParseContexts("a()\nb()")
	require.Len(t, roots, 1)
	assert.Equal(t, "block_stmt", roots[0].Sort)
}

func TestParseContextsDeclaration(t *testing.T) {
	goLang, _ := Resolve("go")
	roots := goLang.ParseContexts("func f() {}")
	require.Len(t, roots, 1)
	assert.Equal(t, "func_decl", roots[0].Sort)
	assert.Equal(t, "declaration", roots[0].Context)
}

func TestParseContextsNotCode(t *testing.T) {
	goLang, _ := Resolve("go")
	assert.Empty(t, goLang.ParseContexts("hello ) world"))
	assert.Empty(t, goLang.ParseContexts(""))
}

func TestSubstituteMetavariables(t *testing.T) {
	goLang, _ := Resolve("go")

	substituted, metavars := substituteMetavariables("foo($x, ^y)", goLang)
	assert.Equal(t, "foo(µx, µy)", substituted)
	assert.Equal(t, Metavariable{Name: "$x", Range: pattern.NewByteRange(4, 6)}, metavars["µx"])
	assert.Equal(t, Metavariable{Name: "^y", Range: pattern.NewByteRange(8, 10)}, metavars["µy"])
}

func TestSubstituteMetavariablesNone(t *testing.T) {
	goLang, _ := Resolve("go")

	substituted, metavars := substituteMetavariables("foo(1)", goLang)
	assert.Equal(t, "foo(1)", substituted)
	assert.Nil(t, metavars)
}
