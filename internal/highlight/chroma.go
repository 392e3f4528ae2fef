package highlight

import (
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// styleAliases maps user-facing style names onto chroma's registry.
// "default" is the Pygments default style, which chroma ships as "pygments".
var styleAliases = map[string]string{
	"default": "pygments",
}

// Chroma is a Registry backed by chroma lexers. Output uses inline styles
// only, so pages need no highlighting stylesheet.
type Chroma struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChroma builds a registry rendering with the named color style.
func NewChroma(styleName string) (*Chroma, error) {
	name := strings.ToLower(strings.TrimSpace(styleName))
	if alias, ok := styleAliases[name]; ok {
		name = alias
	}
	style, ok := styles.Registry[name]
	if !ok {
		return nil, ferrors.ConfigError("unknown highlight style").
			WithContext("field", "highlight.style").
			WithContext("style", styleName).
			WithContext("available", strings.Join(StyleNames(), ",")).
			Build()
	}

	return &Chroma{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
	}, nil
}

// Lookup returns the highlighter for an explicit language tag.
func (c *Chroma) Lookup(tag string) (LanguageHighlighter, error) {
	lexer := lexers.Get(strings.TrimSpace(tag))
	if lexer == nil {
		return nil, ferrors.UnknownLanguageError("no highlighter registered for language").
			WithContext("language", tag).
			Build()
	}
	return c.wrap(lexer), nil
}

// Guess picks a lexer by analysing code, defaulting to plain text.
func (c *Chroma) Guess(code string) LanguageHighlighter {
	lexer := lexers.Analyse(code)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return c.wrap(lexer)
}

func (c *Chroma) wrap(lexer chroma.Lexer) *chromaHighlighter {
	return &chromaHighlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     c.style,
		formatter: c.formatter,
	}
}

type chromaHighlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func (h *chromaHighlighter) Name() string {
	return h.lexer.Config().Name
}

func (h *chromaHighlighter) Highlight(w io.Writer, code string) error {
	it, err := h.lexer.Tokenise(nil, code)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryBuild, "tokenise code block").
			Fatal().
			WithContext("language", h.Name()).
			Build()
	}
	return h.formatter.Format(w, h.style, it)
}

// StyleNames lists accepted style names, aliases included.
func StyleNames() []string {
	names := make([]string, 0, len(styles.Registry)+len(styleAliases))
	for name := range styles.Registry {
		names = append(names, name)
	}
	for alias := range styleAliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}
