package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTemplate is returned when a CodeSnippet whose template build failed at
// compile time is rendered as replacement text.
var ErrNoTemplate = errors.New("code snippet has no text template")

// Bindings maps metavariable names (including their sigil) to the text that
// replaces them during rendering.
type Bindings map[string]string

// Render reconstructs the snippet text, substituting every variable part with
// its binding. An unbound variable is an error.
func (s *DynamicSnippet) Render(bindings Bindings) (string, error) {
	var b strings.Builder
	for _, part := range s.Parts {
		switch p := part.(type) {
		case LiteralPart:
			b.WriteString(p.Text)
		case VariablePart:
			text, ok := bindings[p.Ref.Name]
			if !ok {
				return "", fmt.Errorf("unbound metavariable %s", p.Ref.Name)
			}
			b.WriteString(text)
		}
	}
	return b.String(), nil
}

// Render emits the snippet as replacement text through its template facet.
// A snippet compiled without a usable template cannot be rendered.
func (c *CodeSnippet) Render(bindings Bindings) (string, error) {
	if c.Template == nil {
		return "", ErrNoTemplate
	}
	return c.Template.Render(bindings)
}

// Render emits the template-only pattern as text.
func (d *Dynamic) Render(bindings Bindings) (string, error) {
	return d.Snippet.Render(bindings)
}
