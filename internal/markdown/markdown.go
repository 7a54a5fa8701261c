// Package markdown turns post bodies into HTML for API clients that do not
// want to ship a renderer of their own.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// md is safe for concurrent use once built.
//
// Raw HTML in the source is dropped (goldmark writes an "omitted" comment in
// its place) because anyone who registers can publish a post.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks
		extension.Linkify, // bare URLs become links
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Render converts Markdown to HTML.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: rendering: %w", err)
	}
	return buf.String(), nil
}
