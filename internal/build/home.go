package build

import (
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// HomeMarkdown is the source of the home page: the site title, the intro
// and one list item per post in index order.
func HomeMarkdown(cfg *config.Config, idx post.Index) []byte {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(markdown.EscapeInline(cfg.Site.Title))
	b.WriteString("\n\n")

	if intro := strings.TrimSpace(cfg.Site.Intro); intro != "" {
		b.WriteString(intro)
		b.WriteString("\n\n")
	}

	for _, rec := range idx {
		b.WriteString("- [")
		b.WriteString(markdown.EscapeInline(rec.Title))
		b.WriteString("](")
		b.WriteString(rec.URL)
		b.WriteString(") *")
		b.WriteString(markdown.EscapeInline(rec.Date))
		b.WriteString("*\n")
	}
	return []byte(b.String())
}
