// Package compiler turns rule snippet nodes into compiled patterns: the
// snippet dispatcher, the language-tagged unwrapper, the dynamic snippet
// builder and the content resolver live here.
package compiler

import (
	"fmt"

	"github.com/urbit-pilled/gritql/internal/pattern"
)

// StructuralError reports a rule-grammar node that violates the contract this
// stage assumes, such as a missing required child or an unrecognized snippet
// form. It indicates an upstream grammar or parser defect, not user input.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string { return e.Msg }

// MalformedLiteralError reports a language-tagged snippet whose inner text is
// not wrapped in a matching pair of double quotes.
type MalformedLiteralError struct {
	Source string
}

func (e *MalformedLiteralError) Error() string {
	return fmt.Sprintf("unable to extract content from raw snippet: %s", e.Source)
}

// PlacementError reports a bracketed metavariable template used on the match
// side of a rule.
type PlacementError struct {
	Range pattern.ByteRange
}

func (e *PlacementError) Error() string {
	return "bracketed metavariables are only allowed on the rhs of a snippet"
}

// VariableBindingError reports a metavariable name reused inconsistently
// within one rule.
type VariableBindingError struct {
	Name     string
	Conflict string
}

func (e *VariableBindingError) Error() string {
	return fmt.Sprintf("metavariable %s conflicts with earlier use of %s", e.Name, e.Conflict)
}
