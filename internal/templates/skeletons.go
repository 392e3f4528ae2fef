package templates

import (
	"html"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// Placeholder names used by the built-in skeletons.
const (
	PlaceholderHome    = "home"
	PlaceholderTitle   = "title"
	PlaceholderArticle = "article"
)

const layoutCSS = `.markdown-body {
  box-sizing: border-box;
  min-width: 200px;
  max-width: 980px;
  margin: 0 auto;
  padding: 45px;
}
.site-nav {
  margin-bottom: 24px;
}
.site-nav a {
  margin-right: 12px;
}
@media (max-width: 767px) {
  .markdown-body {
    padding: 15px;
  }
}`

// Skeletons holds the parsed Home and Post page templates for one site.
type Skeletons struct {
	Home  *Template
	Post  *Template
	delim string
}

// NewSkeletons builds both skeletons from cfg. Configured text is escaped
// for HTML and for the placeholder delimiter, so only the skeleton's own
// placeholders are live.
func NewSkeletons(cfg *config.Config) (*Skeletons, error) {
	delim := cfg.Templates.PlaceholderDelimiter
	if delim == "" {
		delim = config.DefaultPlaceholderDelim
	}

	ph := func(name string) string { return delim + name }

	home, err := New("home", page(cfg, delim, escapeText(cfg.Site.Title, delim), "", ph(PlaceholderHome)), delim)
	if err != nil {
		return nil, err
	}
	post, err := New("post", page(cfg, delim, ph(PlaceholderTitle), navHeader(cfg, delim), ph(PlaceholderArticle)), delim)
	if err != nil {
		return nil, err
	}
	return &Skeletons{Home: home, Post: post, delim: delim}, nil
}

// Delimiter returns the placeholder delimiter the skeletons were parsed with.
func (s *Skeletons) Delimiter() string { return s.delim }

func page(cfg *config.Config, delim, title, header, body string) string {
	attr := func(v string) string { return escapeText(v, delim) }

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>" + title + "</title>\n")
	b.WriteString("<link rel=\"alternate\" type=\"application/atom+xml\" title=\"" + attr(cfg.FeedTitle()) + "\" href=\"feed.xml\">\n")

	ss := cfg.Stylesheet
	b.WriteString("<link rel=\"stylesheet\" href=\"" + attr(ss.Href) + "\"")
	if ss.Integrity != "" {
		b.WriteString(" integrity=\"" + attr(ss.Integrity) + "\"")
	}
	if ss.CrossOrigin != "" {
		b.WriteString(" crossorigin=\"" + attr(ss.CrossOrigin) + "\"")
	}
	if ss.ReferrerPolicy != "" {
		b.WriteString(" referrerpolicy=\"" + attr(ss.ReferrerPolicy) + "\"")
	}
	b.WriteString(">\n")
	b.WriteString("<style>\n" + Escape(layoutCSS, delim) + "\n</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<article class=\"markdown-body\">\n")
	b.WriteString(header)
	b.WriteString(body + "\n")
	b.WriteString(commentsScript(cfg, delim))
	b.WriteString("</article>\n")
	b.WriteString(analyticsScript(cfg, delim))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func navHeader(cfg *config.Config, delim string) string {
	if len(cfg.Navigation) == 0 {
		return ""
	}
	links := make([]string, 0, len(cfg.Navigation))
	for _, l := range cfg.Navigation {
		links = append(links, "<a href=\""+escapeText(l.Href, delim)+"\">"+escapeText(l.Label, delim)+"</a>")
	}
	return "<header class=\"site-nav\">\n<nav>\n" + strings.Join(links, "\n") + "\n</nav>\n</header>\n"
}

func commentsScript(cfg *config.Config, delim string) string {
	c := cfg.Comments
	if c.Script == "" || c.Repo == "" {
		return ""
	}
	attr := func(v string) string { return escapeText(v, delim) }
	return "<script src=\"" + attr(c.Script) + "\"\n" +
		"        repo=\"" + attr(c.Repo) + "\"\n" +
		"        issue-term=\"" + attr(c.IssueTerm) + "\"\n" +
		"        label=\"" + attr(c.Label) + "\"\n" +
		"        theme=\"" + attr(c.Theme) + "\"\n" +
		"        crossorigin=\"anonymous\"\n" +
		"        async>\n</script>\n"
}

func analyticsScript(cfg *config.Config, delim string) string {
	a := cfg.Analytics
	if a.Endpoint == "" || a.Script == "" {
		return ""
	}
	return "<script data-goatcounter=\"" + escapeText(a.Endpoint, delim) +
		"\" async src=\"" + escapeText(a.Script, delim) + "\"></script>\n"
}

func escapeText(s, delim string) string {
	return Escape(html.EscapeString(s), delim)
}
