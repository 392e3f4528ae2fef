package config

import "strings"

// Built-in identity used when no site.yaml is present. Real sites override
// all of these.
const (
	DefaultBaseURL        = "https://example.github.io"
	DefaultSiteTitle      = "Blog"
	DefaultAuthor         = "Blog Author"
	DefaultTagNamespace   = "tag:example.github.io,2024:"
	DefaultStylesheetHref = "https://cdnjs.cloudflare.com/ajax/libs/github-markdown-css/5.1.0/github-markdown.min.css"
	// DefaultStylesheetIntegrity must match DefaultStylesheetHref byte for byte.
	DefaultStylesheetIntegrity = "sha512-KUoB3bZ1XRBYj1QcH4BHCQjurAZnCO3WdrswyLDtp7BMwCw7dPZngSLqILf68SGgvnWHTD5pPaYrXi6wiRJ65g=="
	DefaultCommentsScript      = "https://utteranc.es/client.js"
	DefaultCommentsRepo        = "example/blog_comments"
	DefaultAnalyticsEndpoint   = "https://example.goatcounter.com/count"
	DefaultAnalyticsScript     = "//gc.zgo.at/count.js"
	DefaultHighlightStyle      = "default"
	DefaultPlaceholderDelim    = "@@"
	DefaultFrontMatterDelim    = "---"
	DefaultPostsDir            = "posts"
)

// Default returns a fully populated configuration.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Title:   DefaultSiteTitle,
			BaseURL: DefaultBaseURL,
			Author:  DefaultAuthor,
		},
		Feed: FeedConfig{
			TagNamespace: DefaultTagNamespace,
		},
		Stylesheet: StylesheetConfig{
			Href:           DefaultStylesheetHref,
			Integrity:      DefaultStylesheetIntegrity,
			CrossOrigin:    "anonymous",
			ReferrerPolicy: "no-referrer",
		},
		Comments: CommentsConfig{
			Script:    DefaultCommentsScript,
			Repo:      DefaultCommentsRepo,
			IssueTerm: "pathname",
			Label:     "comment",
			Theme:     "preferred-color-scheme",
		},
		Analytics: AnalyticsConfig{
			Endpoint: DefaultAnalyticsEndpoint,
			Script:   DefaultAnalyticsScript,
		},
		Highlight:   HighlightConfig{Style: DefaultHighlightStyle},
		Templates:   TemplatesConfig{PlaceholderDelimiter: DefaultPlaceholderDelim},
		FrontMatter: FrontMatterConfig{Delimiter: DefaultFrontMatterDelim},
		Navigation: []NavLink{
			{Label: "Home", Href: "index.html"},
			{Label: "GitHub", Href: "https://github.com/example"},
			{Label: "Twitter", Href: "https://twitter.com/example"},
			{Label: "Mastodon", Href: "https://mastodon.social/@example"},
		},
		Build: BuildConfig{
			PostsDir:    DefaultPostsDir,
			VerifyLinks: true,
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}

// applyDefaults fills values a config file explicitly blanked out.
func applyDefaults(cfg *Config) {
	d := Default()
	setIfEmpty(&cfg.Site.Title, d.Site.Title)
	setIfEmpty(&cfg.Site.BaseURL, d.Site.BaseURL)
	setIfEmpty(&cfg.Site.Author, d.Site.Author)
	setIfEmpty(&cfg.Feed.Title, cfg.Site.Title)
	setIfEmpty(&cfg.Feed.TagNamespace, d.Feed.TagNamespace)
	setIfEmpty(&cfg.Stylesheet.Href, d.Stylesheet.Href)
	setIfEmpty(&cfg.Comments.Script, d.Comments.Script)
	setIfEmpty(&cfg.Comments.IssueTerm, d.Comments.IssueTerm)
	setIfEmpty(&cfg.Analytics.Script, d.Analytics.Script)
	setIfEmpty(&cfg.Highlight.Style, d.Highlight.Style)
	setIfEmpty(&cfg.Templates.PlaceholderDelimiter, d.Templates.PlaceholderDelimiter)
	setIfEmpty(&cfg.FrontMatter.Delimiter, d.FrontMatter.Delimiter)
	setIfEmpty(&cfg.Build.PostsDir, d.Build.PostsDir)
}

// normalize trims whitespace and canonicalizes enumerations.
func normalize(cfg *Config) {
	cfg.Site.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Site.BaseURL), "/")
	cfg.Highlight.Style = strings.ToLower(strings.TrimSpace(cfg.Highlight.Style))
	normalizeLogging(&cfg.Logging)
}

func setIfEmpty(dst *string, value string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = value
	}
}
