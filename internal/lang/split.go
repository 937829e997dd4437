package lang

import (
	"strings"

	"github.com/urbit-pilled/gritql/internal/pattern"
)

// Occurrence is a single metavariable occurrence located in snippet text.
// Range covers the whole occurrence including sigil and brackets, relative to
// the scanned text. Name is the sigil-prefixed variable name with the
// bracketed form normalized away: "${x}" reports as "$x".
type Occurrence struct {
	Range pattern.ByteRange
	Name  string
}

// SplitSnippet locates every metavariable occurrence in text. Occurrences are
// non-overlapping and sorted by start offset. Occurrences inside the
// language's string and comment literals are not reported, and a sigil
// preceded by an odd run of backslashes counts as escaped.
func SplitSnippet(text string, l Language) []Occurrence {
	var occurrences []Occurrence
	lineComment := l.LineComment()
	blockOpen, blockClose := l.BlockComment()

	i := 0
	for i < len(text) {
		if lineComment != "" && strings.HasPrefix(text[i:], lineComment) {
			i = skipLineComment(text, i+len(lineComment))
			continue
		}
		if blockOpen != "" && strings.HasPrefix(text[i:], blockOpen) {
			i = skipBlockComment(text, i+len(blockOpen), blockClose)
			continue
		}
		if isStringDelimiter(text[i], l) {
			i = skipStringLiteral(text, i)
			continue
		}
		if isSigil(text[i], l) && !isEscaped(text, i) {
			if occ, next, ok := scanOccurrence(text, i); ok {
				occurrences = append(occurrences, occ)
				i = next
				continue
			}
		}
		i++
	}
	return occurrences
}

// scanOccurrence reads a metavariable starting at the sigil position. It
// recognizes $name, ^name, $_, ^_ and the bracketed ${name} form.
func scanOccurrence(text string, start int) (Occurrence, int, bool) {
	sigil := text[start]
	i := start + 1

	if sigil == '$' && i < len(text) && text[i] == '{' {
		nameStart := i + 1
		nameEnd := scanName(text, nameStart)
		if nameEnd > nameStart && nameEnd < len(text) && text[nameEnd] == '}' {
			return Occurrence{
				Range: pattern.NewByteRange(start, nameEnd+1),
				Name:  "$" + text[nameStart:nameEnd],
			}, nameEnd + 1, true
		}
		return Occurrence{}, 0, false
	}

	nameEnd := scanName(text, i)
	if nameEnd == i {
		return Occurrence{}, 0, false
	}
	return Occurrence{
		Range: pattern.NewByteRange(start, nameEnd),
		Name:  string(sigil) + text[i:nameEnd],
	}, nameEnd, true
}

// scanName reads an identifier starting at i and returns the offset just past
// it. Identifiers start with a letter or underscore.
func scanName(text string, i int) int {
	if i >= len(text) || !isNameStart(text[i]) {
		return i
	}
	for i < len(text) && isNameByte(text[i]) {
		i++
	}
	return i
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isNameStart(c) || ('0' <= c && c <= '9')
}

func isSigil(c byte, l Language) bool {
	for _, s := range l.Sigils() {
		if c == s {
			return true
		}
	}
	return false
}

func isStringDelimiter(c byte, l Language) bool {
	for _, d := range l.StringDelimiters() {
		if c == d {
			return true
		}
	}
	return false
}

func isEscaped(text string, i int) bool {
	backslashes := 0
	for j := i - 1; j >= 0 && text[j] == '\\'; j-- {
		backslashes++
	}
	return backslashes%2 == 1
}

func skipLineComment(text string, i int) int {
	for i < len(text) && text[i] != '\n' {
		i++
	}
	return i
}

func skipBlockComment(text string, i int, close string) int {
	if end := strings.Index(text[i:], close); end >= 0 {
		return i + end + len(close)
	}
	return len(text)
}

// skipStringLiteral advances past a string literal opened at i. Raw strings
// (backticks) have no escapes; quoted strings honor backslash escapes. An
// unterminated literal consumes the rest of the text.
func skipStringLiteral(text string, i int) int {
	delim := text[i]
	i++
	for i < len(text) {
		if delim != '`' && text[i] == '\\' {
			i += 2
			continue
		}
		if text[i] == delim {
			return i + 1
		}
		i++
	}
	return i
}
