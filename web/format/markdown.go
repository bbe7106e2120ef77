// Package format renders concept and resource text for inspector payloads.
package format

import (
	"strings"

	"github.com/gomarkdown/markdown"
)

// PreprocessDescription normalizes author-entered text before rendering.
// Curly quotes show up constantly in pasted course material.
func PreprocessDescription(text string) string {
	if text == "" {
		return text
	}

	return strings.NewReplacer(
		"\u201c", "\"", // “
		"\u201d", "\"", // ”
		"\u2018", "'", // ‘
		"\u2019", "'", // ’
	).Replace(text)
}

// DescriptionToHTML renders a Markdown description to HTML for the drawer.
// Empty input yields empty output so the client can skip the block.
func DescriptionToHTML(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	md := []byte(PreprocessDescription(text))
	return strings.TrimSpace(string(markdown.ToHTML(md, nil, nil)))
}
