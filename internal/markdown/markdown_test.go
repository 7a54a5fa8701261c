package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
	}{
		{
			name:     "heading gets an anchor id",
			source:   "# Getting Started",
			contains: []string{`<h1 id="getting-started">Getting Started</h1>`},
		},
		{
			name:     "emphasis and links",
			source:   "Read **this** [guide](https://go.dev/doc).",
			contains: []string{"<strong>this</strong>", `<a href="https://go.dev/doc">guide</a>`},
		},
		{
			name:     "bare URLs are linkified",
			source:   "See https://example.com for details",
			contains: []string{`<a href="https://example.com">https://example.com</a>`},
		},
		{
			name:     "GFM table",
			source:   "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>", "<td>2</td>"},
		},
		{
			name:     "strikethrough",
			source:   "~~old~~",
			contains: []string{"<del>old</del>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := Render(tt.source)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, html, want)
			}
		})
	}
}

func TestRender_DropsRawHTML(t *testing.T) {
	html, err := Render("hello\n\n<script>alert(1)</script>")
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "<p>hello</p>")
}

func TestRender_Empty(t *testing.T) {
	html, err := Render("")
	require.NoError(t, err)
	assert.Empty(t, html)
}
