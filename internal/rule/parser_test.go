package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbit-pilled/gritql/internal/pattern"
)

func TestParseSnippetBacktick(t *testing.T) {
	node, err := ParseSnippet("`foo($x)`")
	require.NoError(t, err)
	assert.Equal(t, KindCodeSnippet, node.Kind)

	source := node.ChildByField("source")
	require.NotNil(t, source)
	assert.Equal(t, KindBacktickSnippet, source.Kind)
	assert.Equal(t, pattern.NewByteRange(0, 9), source.Range)
	assert.Equal(t, "`foo($x)`", source.Text())
}

func TestParseSnippetLeadingWhitespace(t *testing.T) {
	node, err := ParseSnippet("  `a`")
	require.NoError(t, err)

	source := node.ChildByField("source")
	require.NotNil(t, source)
	assert.Equal(t, pattern.NewByteRange(2, 5), source.Range)
}

func TestParseSnippetEscapedBacktick(t *testing.T) {
	input := "`a\\`b`"
	node, err := ParseSnippet(input)
	require.NoError(t, err)

	source := node.ChildByField("source")
	assert.Equal(t, input, source.Text())
}

func TestParseSnippetRawBacktick(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  pattern.ByteRange
	}{
		{"no space", "raw`x`", pattern.NewByteRange(3, 6)},
		{"with space", "raw `x`", pattern.NewByteRange(4, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseSnippet(tt.input)
			require.NoError(t, err)

			source := node.ChildByField("source")
			require.NotNil(t, source)
			assert.Equal(t, KindRawBacktickSnippet, source.Kind)
			assert.Equal(t, tt.want, source.Range)
		})
	}
}

func TestParseSnippetLanguageSpecific(t *testing.T) {
	node, err := ParseSnippet(`go "foo($x)"`)
	require.NoError(t, err)

	source := node.ChildByField("source")
	require.NotNil(t, source)
	assert.Equal(t, KindLanguageSpecificSnippet, source.Kind)
	assert.Equal(t, pattern.NewByteRange(0, 12), source.Range)

	langNode := source.ChildByField("language")
	require.NotNil(t, langNode)
	assert.Equal(t, "go", langNode.Text())

	snippetNode := source.ChildByField("snippet")
	require.NotNil(t, snippetNode)
	assert.Equal(t, `"foo($x)"`, snippetNode.Text())
}

func TestParseSnippetErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"unterminated backtick", "`abc"},
		{"unterminated raw backtick", "raw `abc"},
		{"language without snippet", "go foo"},
		{"unterminated literal", `go "abc`},
		{"trailing input", "`a` x"},
		{"unexpected character", "+`a`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnippet(tt.input)
			assert.Error(t, err)
		})
	}
}
