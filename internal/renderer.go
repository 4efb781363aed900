package internal

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Renderer turns response fragments into readable text. Captures carry
// responses as HTML fragments; plain text passes through untouched so
// nothing gets markdown-escaped needlessly.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render converts an HTML fragment to markdown. On conversion failure the
// raw fragment comes back unchanged; losing formatting beats losing the
// answer.
func (r *Renderer) Render(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return fragment
	}
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		Log().Debug().Err(err).Msg("html rendering failed, keeping raw fragment")
		return fragment
	}
	return strings.TrimSpace(md)
}
