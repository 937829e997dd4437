// Package report renders compiled rules for humans.
package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/urbit-pilled/gritql/internal/compiler"
)

var (
	ruleStyle  = color.New(color.FgCyan, color.Bold)
	labelStyle = color.New(color.FgYellow, color.Bold)
	varStyle   = color.New(color.FgGreen)
	errorStyle = color.New(color.FgRed, color.Bold)
)

// FormatRule renders one compiled rule: its language, metavariables and the
// pattern trees of both sides.
func FormatRule(r *compiler.CompiledRule) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", ruleStyle.Sprint(r.Name), r.Lang.Name())
	if len(r.Variables) > 0 {
		names := make([]string, len(r.Variables))
		for i, v := range r.Variables {
			names[i] = varStyle.Sprint(v.Name)
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Sprint("variables:"), strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "%s\n%s\n", labelStyle.Sprint("match:"), indent(r.Match.String()))
	if r.Rewrite != nil {
		fmt.Fprintf(&b, "%s\n%s\n", labelStyle.Sprint("rewrite:"), indent(r.Rewrite.String()))
	}

	return b.String()
}

// FormatError renders one rule's compilation failure.
func FormatError(name string, err error) string {
	return fmt.Sprintf("%s %s: %v\n", errorStyle.Sprint("error:"), name, err)
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
