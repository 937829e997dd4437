package lang

import (
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strings"
)

// metavarPlaceholder prefixes the identifiers metavariables are rewritten to
// before the text is handed to go/parser, which does not accept '$' or '^'.
// The micro sign is a valid identifier letter that never occurs in ordinary
// source, so placeholders cannot collide with author identifiers.
const metavarPlaceholder = "µ"

type goLanguage struct {
	bracketed *regexp.Regexp
	exact     *regexp.Regexp
}

func init() {
	register(newGoLanguage())
}

func newGoLanguage() *goLanguage {
	return &goLanguage{
		bracketed: regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}`),
		exact:     regexp.MustCompile(`^[$^]([A-Za-z_][A-Za-z0-9_]*)$`),
	}
}

func (g *goLanguage) Name() string { return "go" }
func (g *goLanguage) Aliases() []string { return []string{"golang", "gno"} }

func (g *goLanguage) BracketedMetavariable() *regexp.Regexp { return g.bracketed }
func (g *goLanguage) ExactMetavariable() *regexp.Regexp { return g.exact }

func (g *goLanguage) Sigils() []byte { return []byte{'$', '^'} }

func (g *goLanguage) LineComment() string { return "//" }

func (g *goLanguage) BlockComment() (string, string) { return "/*", "*/" }

func (g *goLanguage) StringDelimiters() []byte { return []byte{'"', '\'', '`'} }

// ParseContexts tries the snippet as an expression, as one or more statements
// and as top-level declarations, collecting one root per successful context.
// Roots are deduplicated by sort so the same interpretation is not compiled
// twice.
func (g *goLanguage) ParseContexts(text string) []SnippetRoot {
	substituted, metavars := substituteMetavariables(text, g)

	var roots []SnippetRoot
	seen := map[string]bool{}
	add := func(context string, node ast.Node) {
		sort := SortOf(node)
		if seen[sort] {
			return
		}
		seen[sort] = true
		roots = append(roots, SnippetRoot{
			Context:       context,
			Sort:          sort,
			Node:          node,
			Metavariables: metavars,
		})
	}

	if expr, err := parser.ParseExpr(substituted); err == nil {
		add("expression", expr)
	}

	if stmts := parseStatements(substituted); len(stmts) == 1 {
		add("statement", stmts[0])
	} else if len(stmts) > 1 {
		block := &ast.BlockStmt{List: stmts}
		add("statement", block)
	}

	if decls := parseDeclarations(substituted); len(decls) == 1 {
		add("declaration", decls[0])
	} else if len(decls) > 1 {
		add("declaration", &ast.File{Decls: decls})
	}

	return roots
}

// parseStatements parses text as a function body and returns its statements,
// or nil when the text is not valid statement syntax.
func parseStatements(text string) []ast.Stmt {
	src := "package p\nfunc _() {\n" + text + "\n}"
	file, err := parser.ParseFile(token.NewFileSet(), "snippet.go", src, 0)
	if err != nil || len(file.Decls) != 1 {
		return nil
	}
	fn, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Body == nil {
		return nil
	}
	return fn.Body.List
}

// parseDeclarations parses text as top-level declarations, or nil when the
// text is not valid declaration syntax.
func parseDeclarations(text string) []ast.Decl {
	src := "package p\n" + text
	file, err := parser.ParseFile(token.NewFileSet(), "snippet.go", src, 0)
	if err != nil {
		return nil
	}
	return file.Decls
}

// substituteMetavariables rewrites every metavariable occurrence to a
// placeholder identifier the Go parser accepts, and records the mapping from
// placeholder back to the original occurrence.
func substituteMetavariables(text string, l Language) (string, map[string]Metavariable) {
	occurrences := SplitSnippet(text, l)
	if len(occurrences) == 0 {
		return text, nil
	}

	var b strings.Builder
	metavars := make(map[string]Metavariable, len(occurrences))
	last := 0
	for _, occ := range occurrences {
		b.WriteString(text[last:occ.Range.Start])
		placeholder := metavarPlaceholder + occ.Name[1:]
		if _, ok := metavars[placeholder]; !ok {
			metavars[placeholder] = Metavariable{Name: occ.Name, Range: occ.Range}
		}
		b.WriteString(placeholder)
		last = occ.Range.End
	}
	b.WriteString(text[last:])
	return b.String(), metavars
}
