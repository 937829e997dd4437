package rule

import (
	"fmt"

	"github.com/urbit-pilled/gritql/internal/pattern"
)

// parser scans a single pattern expression from rule text.
type parser struct {
	input string
	pos   int
}

// ParseSnippet parses one pattern expression into its code snippet node.
// Three forms are recognized: a backtick snippet, a raw backtick snippet, and
// a language-tagged snippet like `go "fmt.Println($msg)"`.
func ParseSnippet(input string) (*Node, error) {
	p := &parser{input: input}
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("empty pattern expression")
	}

	var source *Node
	var err error
	switch {
	case p.input[p.pos] == '`':
		source, err = p.parseBacktick(KindBacktickSnippet)
	case p.atRawKeyword():
		p.pos += len("raw")
		p.skipWhitespace()
		source, err = p.parseBacktick(KindRawBacktickSnippet)
	case isIdentStart(p.input[p.pos]):
		source, err = p.parseLanguageSpecific()
	default:
		return nil, fmt.Errorf("unexpected character %q at offset %d", p.input[p.pos], p.pos)
	}
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected trailing input at offset %d", p.pos)
	}

	node := NewNode(KindCodeSnippet, input, source.Range)
	node.SetField("source", source)
	return node, nil
}

// atRawKeyword reports whether the input continues with the raw-snippet
// keyword followed by a backtick.
func (p *parser) atRawKeyword() bool {
	rest := p.input[p.pos:]
	if len(rest) < 4 || rest[:3] != "raw" {
		return false
	}
	i := 3
	for i < len(rest) && isWhitespace(rest[i]) {
		i++
	}
	return i < len(rest) && rest[i] == '`'
}

// parseBacktick scans a backtick-delimited snippet. Escaped backticks inside
// the snippet do not terminate it.
func (p *parser) parseBacktick(kind string) (*Node, error) {
	if p.pos >= len(p.input) || p.input[p.pos] != '`' {
		return nil, fmt.Errorf("expected backtick at offset %d", p.pos)
	}
	start := p.pos
	i := p.pos + 1
	for i < len(p.input) {
		if p.input[i] == '\\' {
			i += 2
			continue
		}
		if p.input[i] == '`' {
			p.pos = i + 1
			return NewNode(kind, p.input, pattern.NewByteRange(start, i+1)), nil
		}
		i++
	}
	return nil, fmt.Errorf("unterminated snippet starting at offset %d", start)
}

// parseLanguageSpecific scans a language tag followed by a double-quoted
// snippet literal.
func (p *parser) parseLanguageSpecific() (*Node, error) {
	identStart := p.pos
	for p.pos < len(p.input) && isIdentByte(p.input[p.pos]) {
		p.pos++
	}
	langNode := NewNode(KindLanguageName, p.input, pattern.NewByteRange(identStart, p.pos))

	p.skipWhitespace()
	if p.pos >= len(p.input) || p.input[p.pos] != '"' {
		return nil, fmt.Errorf("expected quoted snippet after language tag at offset %d", p.pos)
	}

	quoteStart := p.pos
	i := p.pos + 1
	for i < len(p.input) {
		if p.input[i] == '\\' {
			i += 2
			continue
		}
		if p.input[i] == '"' {
			break
		}
		i++
	}
	if i >= len(p.input) {
		return nil, fmt.Errorf("unterminated snippet literal starting at offset %d", quoteStart)
	}
	p.pos = i + 1

	literal := NewNode(KindSnippetLiteral, p.input, pattern.NewByteRange(quoteStart, i+1))
	node := NewNode(KindLanguageSpecificSnippet, p.input, pattern.NewByteRange(identStart, i+1))
	node.SetField("language", langNode)
	node.SetField("snippet", literal)
	return node, nil
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.input) && isWhitespace(p.input[p.pos]) {
		p.pos++
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
