package service

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	cardMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	cardPolicy   = bluemonday.UGCPolicy()
)

// RenderCardHTML renders a card face written in Markdown to sanitized HTML.
func RenderCardHTML(text string) string {
	var buf bytes.Buffer
	if err := cardMarkdown.Convert([]byte(text), &buf); err != nil {
		return "<p>" + html.EscapeString(text) + "</p>"
	}
	return cardPolicy.Sanitize(buf.String())
}
