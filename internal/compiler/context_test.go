package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbit-pilled/gritql/internal/lang"
	"github.com/urbit-pilled/gritql/internal/pattern"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	l, err := lang.Resolve("go")
	require.NoError(t, err)
	return NewContext(l)
}

func TestRegisterVariableReuse(t *testing.T) {
	ctx := newTestContext(t)

	first, err := ctx.RegisterVariable("$x", pattern.NewByteRange(0, 2))
	require.NoError(t, err)
	assert.Equal(t, pattern.VariableRef{Name: "$x", Index: 0}, first)

	second, err := ctx.RegisterVariable("$x", pattern.NewByteRange(10, 12))
	require.NoError(t, err)
	assert.Equal(t, first, second, "same name must reuse the identifier")

	other, err := ctx.RegisterVariable("$y", pattern.NewByteRange(20, 22))
	require.NoError(t, err)
	assert.Equal(t, 1, other.Index)

	assert.Len(t, ctx.Occurrences("$x"), 2)
	assert.Len(t, ctx.Occurrences("$y"), 1)
}

func TestRegisterVariableSigilConflict(t *testing.T) {
	ctx := newTestContext(t)

	_, err := ctx.RegisterVariable("$x", pattern.NewByteRange(0, 2))
	require.NoError(t, err)

	_, err = ctx.RegisterVariable("^x", pattern.NewByteRange(5, 7))
	require.Error(t, err)

	var bindingErr *VariableBindingError
	require.True(t, errors.As(err, &bindingErr))
	assert.Equal(t, "^x", bindingErr.Name)
	assert.Equal(t, "$x", bindingErr.Conflict)
}

func TestRegisterVariableAnonymous(t *testing.T) {
	ctx := newTestContext(t)

	first, err := ctx.RegisterVariable("$_", pattern.NewByteRange(0, 2))
	require.NoError(t, err)
	assert.Equal(t, -1, first.Index)

	// ^_ does not conflict with $_: wildcards never bind.
	second, err := ctx.RegisterVariable("^_", pattern.NewByteRange(3, 5))
	require.NoError(t, err)
	assert.Equal(t, -1, second.Index)

	assert.Empty(t, ctx.Variables())
}

func TestRegisterSnippetVariable(t *testing.T) {
	ctx := newTestContext(t)

	part, err := ctx.RegisterSnippetVariable("$x", pattern.NewByteRange(0, 2))
	require.NoError(t, err)

	varPart, ok := part.(pattern.VariablePart)
	require.True(t, ok)
	assert.Equal(t, pattern.VariableRef{Name: "$x", Index: 0}, varPart.Ref)

	// The snippet registry is the same registry.
	ref, err := ctx.RegisterVariable("$x", pattern.NewByteRange(5, 7))
	require.NoError(t, err)
	assert.Equal(t, varPart.Ref, ref)
}

func TestVariablesOrdered(t *testing.T) {
	ctx := newTestContext(t)

	for _, name := range []string{"$c", "$a", "$b"} {
		_, err := ctx.RegisterVariable(name, pattern.NewByteRange(0, 2))
		require.NoError(t, err)
	}

	vars := ctx.Variables()
	require.Len(t, vars, 3)
	assert.Equal(t, []string{"$c", "$a", "$b"}, []string{vars[0].Name, vars[1].Name, vars[2].Name})
	assert.Equal(t, []int{0, 1, 2}, []int{vars[0].Index, vars[1].Index, vars[2].Index})
}
