package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicSnippetRender(t *testing.T) {
	s := &DynamicSnippet{Parts: []DynamicPart{
		LiteralPart{Text: ""},
		VariablePart{Ref: VariableRef{Name: "$x", Index: 0}},
		LiteralPart{Text: " + 1"},
	}}

	got, err := s.Render(Bindings{"$x": "count"})
	require.NoError(t, err)
	assert.Equal(t, "count + 1", got)
}

func TestDynamicSnippetRenderUnbound(t *testing.T) {
	s := &DynamicSnippet{Parts: []DynamicPart{
		VariablePart{Ref: VariableRef{Name: "$x", Index: 0}},
	}}

	_, err := s.Render(Bindings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$x")
}

func TestCodeSnippetRenderWithoutTemplate(t *testing.T) {
	c := &CodeSnippet{Source: "foo()"}

	_, err := c.Render(Bindings{})
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestCodeSnippetRenderWithTemplate(t *testing.T) {
	c := &CodeSnippet{
		Source: "foo($x)",
		Template: &DynamicSnippet{Parts: []DynamicPart{
			LiteralPart{Text: "foo("},
			VariablePart{Ref: VariableRef{Name: "$x", Index: 0}},
			LiteralPart{Text: ")"},
		}},
	}

	got, err := c.Render(Bindings{"$x": "42"})
	require.NoError(t, err)
	assert.Equal(t, "foo(42)", got)
}
