package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/blogbuilder/internal/highlight"
)

// Renderer converts Markdown to HTML fragments with highlighted code blocks.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a Renderer whose code blocks are highlighted through reg.
func New(reg highlight.Registry) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(newCodeBlockRenderer(reg), 200),
			),
		),
	)
	return &Renderer{md: md}
}

// Render converts src to an HTML fragment.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderPost converts a post body, prefixed with a level-1 title heading and
// an italic date line, so every post opens the same way whatever its body.
func (r *Renderer) RenderPost(title, date string, body []byte) (string, error) {
	return r.Render(PostSource(title, date, body))
}

// PostSource returns the Markdown RenderPost converts.
func PostSource(title, date string, body []byte) []byte {
	var b bytes.Buffer
	b.WriteString("# ")
	b.WriteString(EscapeInline(title))
	b.WriteString("\n\n*")
	b.WriteString(EscapeInline(date))
	b.WriteString("*\n\n")
	b.Write(body)
	return b.Bytes()
}

// EscapeInline flattens s to one line and backslash-escapes the Markdown
// punctuation that could change its meaning as inline text.
func EscapeInline(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune("\\`*_{}[]()<>#+-!|&~", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
