package patch

import (
	"regexp"
	"strings"

	"github.com/editor-extensions/extgen/internal/errdef"
)

// Position says where an InsertionRule places its text relative to the
// anchor.
type Position int

const (
	After Position = iota
	Before
)

// Match is the anchor occurrence handed to an InsertionRule's Block func.
type Match struct {
	// Indent is the leading whitespace of the line the anchor starts on.
	Indent string
	// Text is the matched anchor text.
	Text string
}

// InsertionRule inserts a block of text next to the first occurrence of a
// named anchor. It never falls back to appending elsewhere: a missing
// anchor is reported with errdef.CodeAnchorNotFound.
type InsertionRule struct {
	Name     string
	Anchor   *regexp.Regexp
	Position Position
	Block    func(m Match) string
}

// Apply returns content with the block inserted.
func (r InsertionRule) Apply(content string) (string, error) {
	loc := r.Anchor.FindStringIndex(content)
	if loc == nil {
		return "", errdef.New(errdef.CodeAnchorNotFound, "anchor %q not found", r.Name)
	}

	m := Match{Indent: lineIndent(content, loc[0]), Text: content[loc[0]:loc[1]]}
	block := r.Block(m)
	if block == "" {
		return "", errdef.New(errdef.CodeAnchorNotFound, "insertion at anchor %q produced no text", r.Name)
	}
	at := loc[1]
	if r.Position == Before {
		at = lineStart(content, loc[0])
	}

	return content[:at] + block + content[at:], nil
}

func lineStart(s string, i int) int {
	return strings.LastIndexByte(s[:i], '\n') + 1
}

func lineIndent(s string, i int) string {
	start := lineStart(s, i)
	end := start
	for end < len(s) && (s[end] == ' ' || s[end] == '\t') {
		end++
	}
	return s[start:end]
}
