package lang

import (
	"fmt"
	"go/ast"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/urbit-pilled/gritql/internal/pattern"
)

// UnknownLanguageError reports a language tag that matches no registered
// target language.
type UnknownLanguageError struct {
	Name string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("invalid language: %s", e.Name)
}

// Metavariable records where a placeholder identifier in a parsed snippet
// came from: the sigil-prefixed name the author wrote and its byte range
// relative to the snippet text.
type Metavariable struct {
	Name  string
	Range pattern.ByteRange
}

// SnippetRoot is one candidate parse of snippet text under a single syntactic
// context. Metavariables maps each substituted placeholder identifier back to
// its original occurrence; the map is shared across all roots of one parse.
type SnippetRoot struct {
	Context       string
	Sort          string
	Node          ast.Node
	Metavariables map[string]Metavariable
}

// Language is a registered target-language profile. Profiles are immutable
// after registration and safe for concurrent readers.
type Language interface {
	Name() string
	Aliases() []string

	// BracketedMetavariable matches the ${name} output-templating form.
	BracketedMetavariable() *regexp.Regexp
	// ExactMetavariable matches a snippet that is exactly one metavariable
	// reference, anchored on both ends.
	ExactMetavariable() *regexp.Regexp

	// Sigils returns the metavariable sigil bytes, e.g. '$' and '^'.
	Sigils() []byte
	// Literal syntax, consumed by the metavariable scanner so that
	// occurrences inside strings and comments are not reported.
	LineComment() string
	BlockComment() (open, close string)
	StringDelimiters() []byte

	// ParseContexts parses text under every syntactic context the language
	// supports and returns one candidate root per successful context,
	// deduplicated by root sort.
	ParseContexts(text string) []SnippetRoot
}

var registry = map[string]Language{}

func register(l Language) {
	registry[l.Name()] = l
	for _, alias := range l.Aliases() {
		registry[alias] = l
	}
}

// Resolve looks up a language by name or alias. The lookup is
// case-insensitive.
func Resolve(name string) (Language, error) {
	l, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, &UnknownLanguageError{Name: name}
	}
	return l, nil
}

// All returns the registered languages sorted by name, one entry per
// language regardless of aliases.
func All() []Language {
	seen := map[string]bool{}
	var langs []Language
	for _, l := range registry {
		if !seen[l.Name()] {
			seen[l.Name()] = true
			langs = append(langs, l)
		}
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].Name() < langs[j].Name() })
	return langs
}

// SortOf returns the grammar-assigned kind identifier for an AST node,
// e.g. *ast.CallExpr -> "call_expr".
func SortOf(n ast.Node) string {
	t := reflect.TypeOf(n)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "File" {
		return "source_file"
	}
	return camelToSnake(t.Name())
}

func camelToSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
