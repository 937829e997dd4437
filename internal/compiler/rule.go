package compiler

import (
	"fmt"
	"strings"

	"github.com/urbit-pilled/gritql/internal/lang"
	"github.com/urbit-pilled/gritql/internal/pattern"
	"github.com/urbit-pilled/gritql/internal/rule"
)

const defaultLanguage = "go"

// CompiledRule is one rule's match and rewrite sides compiled against a
// shared per-rule context, so metavariables bind consistently across both.
type CompiledRule struct {
	Name      string
	Lang      lang.Language
	Match     pattern.Pattern
	Rewrite   pattern.Pattern // nil when the rule has no rewrite
	Variables []pattern.VariableRef
}

// CompileRule compiles a loaded rule. A fresh context is created per rule;
// independent rules can therefore be compiled concurrently.
func CompileRule(r rule.Rule) (*CompiledRule, error) {
	langName := r.Language
	if langName == "" {
		langName = defaultLanguage
	}
	l, err := lang.Resolve(strings.TrimSpace(langName))
	if err != nil {
		return nil, err
	}

	ctx := NewContext(l)

	matchNode, err := rule.ParseSnippet(r.Match)
	if err != nil {
		return nil, fmt.Errorf("rule %s: parsing match pattern: %w", r.Name, err)
	}
	match, err := CompileCodeSnippet(matchNode, ctx, false)
	if err != nil {
		return nil, fmt.Errorf("rule %s: compiling match pattern: %w", r.Name, err)
	}

	var rewrite pattern.Pattern
	if r.Rewrite != "" {
		rewriteNode, err := rule.ParseSnippet(r.Rewrite)
		if err != nil {
			return nil, fmt.Errorf("rule %s: parsing rewrite pattern: %w", r.Name, err)
		}
		rewrite, err = CompileCodeSnippet(rewriteNode, ctx, true)
		if err != nil {
			return nil, fmt.Errorf("rule %s: compiling rewrite pattern: %w", r.Name, err)
		}
	}

	return &CompiledRule{
		Name:      r.Name,
		Lang:      l,
		Match:     match,
		Rewrite:   rewrite,
		Variables: ctx.Variables(),
	}, nil
}
