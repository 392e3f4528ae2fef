package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/blogbuilder/internal/highlight"
)

// codeBlockRenderer replaces goldmark's code block output with highlighted HTML.
type codeBlockRenderer struct {
	registry highlight.Registry
}

func newCodeBlockRenderer(reg highlight.Registry) renderer.NodeRenderer {
	return &codeBlockRenderer{registry: reg}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	code := codeText(n, source)

	var h highlight.LanguageHighlighter
	if lang := n.Language(source); len(lang) > 0 {
		var err error
		if h, err = r.registry.Lookup(string(lang)); err != nil {
			return ast.WalkStop, err
		}
	} else {
		h = r.registry.Guess(code)
	}

	if err := h.Highlight(w, code); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

// renderCodeBlock handles indented code, which never carries a language.
func (r *codeBlockRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	code := codeText(node, source)
	if err := r.registry.Guess(code).Highlight(w, code); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

func codeText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	return b.String()
}
