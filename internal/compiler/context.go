package compiler

import (
	"sort"

	"github.com/urbit-pilled/gritql/internal/lang"
	"github.com/urbit-pilled/gritql/internal/pattern"
)

// Context is the per-rule compilation state: the active target-language
// profile and the metavariable registry. One Context is created per rule,
// passed through the whole call chain and discarded when the rule is done.
// It is never shared between concurrent compilations.
type Context struct {
	Lang lang.Language

	vars   map[string]*pattern.VariableRef // base name -> stable identifier
	sigils map[string]byte                 // base name -> sigil first seen
	ranges map[string][]pattern.ByteRange  // base name -> absolute occurrence ranges
	next   int
}

// NewContext creates a fresh compilation context for the given language.
func NewContext(l lang.Language) *Context {
	return &Context{
		Lang:   l,
		vars:   map[string]*pattern.VariableRef{},
		sigils: map[string]byte{},
		ranges: map[string][]pattern.ByteRange{},
	}
}

// RegisterVariable creates or reuses the stable identifier for a metavariable
// name. The name carries its sigil ("$x" or "^x"); reusing the same base name
// with a different sigil within one rule is a VariableBindingError. The
// anonymous wildcard never binds: each "_" occurrence gets a fresh identifier
// with index -1.
func (c *Context) RegisterVariable(name string, r pattern.ByteRange) (pattern.VariableRef, error) {
	sigil, base := name[0], name[1:]
	if base == "_" {
		return pattern.VariableRef{Name: name, Index: -1}, nil
	}

	if existing, ok := c.vars[base]; ok {
		if c.sigils[base] != sigil {
			return pattern.VariableRef{}, &VariableBindingError{
				Name:     name,
				Conflict: existing.Name,
			}
		}
		c.ranges[base] = append(c.ranges[base], r)
		return *existing, nil
	}

	ref := &pattern.VariableRef{Name: name, Index: c.next}
	c.next++
	c.vars[base] = ref
	c.sigils[base] = sigil
	c.ranges[base] = append(c.ranges[base], r)
	return *ref, nil
}

// RegisterSnippetVariable registers a name like RegisterVariable and returns
// a part usable directly inside a dynamic snippet.
func (c *Context) RegisterSnippetVariable(name string, r pattern.ByteRange) (pattern.DynamicPart, error) {
	ref, err := c.RegisterVariable(name, r)
	if err != nil {
		return nil, err
	}
	return pattern.VariablePart{Ref: ref}, nil
}

// Variables returns the registered variables ordered by identifier.
func (c *Context) Variables() []pattern.VariableRef {
	refs := make([]pattern.VariableRef, 0, len(c.vars))
	for _, ref := range c.vars {
		refs = append(refs, *ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Index < refs[j].Index })
	return refs
}

// Occurrences returns the absolute ranges a variable was registered at,
// in registration order.
func (c *Context) Occurrences(name string) []pattern.ByteRange {
	if len(name) < 2 {
		return nil
	}
	return c.ranges[name[1:]]
}
