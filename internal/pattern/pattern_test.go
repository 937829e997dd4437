package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteRange(t *testing.T) {
	r := NewByteRange(3, 7)
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, "[3, 7)", r.String())

	shifted := r.Shift(10)
	assert.Equal(t, NewByteRange(13, 17), shifted)
	assert.Equal(t, NewByteRange(3, 7), r, "Shift must not mutate the receiver")
}

func TestDynamicSnippetString(t *testing.T) {
	s := &DynamicSnippet{Parts: []DynamicPart{
		LiteralPart{Text: "foo("},
		VariablePart{Ref: VariableRef{Name: "$x", Index: 0}},
		LiteralPart{Text: ")"},
	}}
	assert.Equal(t, "foo($x)", s.String())
}

func TestPatternKinds(t *testing.T) {
	tests := []struct {
		name string
		p    Pattern
		want Kind
	}{
		{"underscore", Underscore{}, KindUnderscore},
		{"variable", &Variable{Ref: VariableRef{Name: "$x"}}, KindVariable},
		{"dynamic", &Dynamic{Snippet: &DynamicSnippet{}}, KindDynamic},
		{"code snippet", &CodeSnippet{Source: "foo()"}, KindCodeSnippet},
		{"ast node", &ASTNode{Sort: "ident", Text: "foo"}, KindASTNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Kind())
		})
	}
}

func TestASTNodeString(t *testing.T) {
	n := &ASTNode{
		Sort: "call_expr",
		Fields: []Field{
			{Name: "Fun", Pattern: &ASTNode{Sort: "ident", Text: "foo"}},
			{Name: "Args", Pattern: &Variable{Ref: VariableRef{Name: "$x"}}},
		},
	}
	want := "call_expr:\n  Fun: ident(\"foo\")\n  Args: $x"
	assert.Equal(t, want, n.String())
}
