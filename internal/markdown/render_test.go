package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/highlight"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	reg, err := highlight.NewChroma("default")
	require.NoError(t, err)
	return New(reg)
}

func TestRenderPost_PrependsTitleAndDate(t *testing.T) {
	out, err := newRenderer(t).RenderPost("Hello", "2024-01-01", []byte("# world\n"))
	require.NoError(t, err)

	require.Contains(t, out, `<h1 id="hello">Hello</h1>`)
	require.Contains(t, out, `<em>2024-01-01</em>`)
	require.Contains(t, out, `<h1 id="world">world</h1>`)
	require.Less(t, strings.Index(out, ">Hello<"), strings.Index(out, "<em>2024-01-01</em>"))
	require.Less(t, strings.Index(out, "<em>2024-01-01</em>"), strings.Index(out, ">world<"))
}

func TestPostSource_FlattensNewlines(t *testing.T) {
	src := PostSource("Multi\nline", "2024-01-01", []byte("body\n"))
	require.Equal(t, "# Multi line\n\n*2024\\-01\\-01*\n\nbody\n", string(src))
}

func TestRenderPost_TitleIsLiteralText(t *testing.T) {
	out, err := newRenderer(t).RenderPost("a*b*c #", "June 1, 2024", []byte("body\n"))
	require.NoError(t, err)
	require.Contains(t, out, ">a*b*c #</h1>")
	require.NotContains(t, out, "<em>b</em>")
	require.Contains(t, out, "<em>June 1, 2024</em>")
}

func TestEscapeInline(t *testing.T) {
	require.Equal(t, `a\*b\*c \#`, EscapeInline("a*b*c #"))
	require.Equal(t, `\[x\]\(y\) \& z`, EscapeInline("[x](y)\n&  z"))
	require.Equal(t, "plain words", EscapeInline(" plain\twords "))
}

func TestRender_TaggedFenceUsesLanguage(t *testing.T) {
	src := []byte("```python\ndef greet(name):\n    return name\n```\n")

	out, err := newRenderer(t).Render(src)
	require.NoError(t, err)
	require.Contains(t, out, ">def</span>")
	require.Contains(t, out, "style=\"")
	require.NotContains(t, out, `<code class="language-python">`)
}

func TestRender_UnknownFenceLanguageFails(t *testing.T) {
	src := []byte("```klingon\nQapla'\n```\n")

	_, err := newRenderer(t).Render(src)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryUnknownLanguage))
}

func TestRender_UntaggedFenceIsGuessed(t *testing.T) {
	src := []byte("```\n#!/bin/bash\necho hi\n```\n")

	out, err := newRenderer(t).Render(src)
	require.NoError(t, err)
	require.Contains(t, out, "echo")
	require.Contains(t, out, "<pre")
}

func TestRender_IndentedCodeIsHighlighted(t *testing.T) {
	src := []byte("Text:\n\n    x = 1 < 2\n")

	out, err := newRenderer(t).Render(src)
	require.NoError(t, err)
	require.Contains(t, out, "<pre")
	require.Contains(t, out, "&lt;")
}

func TestRender_RawHTMLPassesThrough(t *testing.T) {
	out, err := newRenderer(t).Render([]byte("<div class=\"note\">hi</div>\n"))
	require.NoError(t, err)
	require.Contains(t, out, `<div class="note">hi</div>`)
}

func TestRender_IsDeterministic(t *testing.T) {
	r := newRenderer(t)
	src := []byte("# A\n\n```go\nfunc main() {}\n```\n\n## A\n")
	first, err := r.Render(src)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Render(src)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
