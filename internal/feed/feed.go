// Package feed emits the machine-readable site artifacts: the Atom feed,
// the sitemap and robots.txt.
package feed

import (
	"encoding/xml"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// Output names relative to the site root.
const (
	AtomFile    = "feed.xml"
	SitemapFile = "sitemap.xml"
	RobotsFile  = "robots.txt"
)

const (
	atomTimeLayout    = "2006-01-02T15:04:05-07:00"
	sitemapDateLayout = "2006-01-02"
)

// emptyUpdated stands in for the newest post date when there are no posts,
// keeping the feed valid and the output reproducible.
var emptyUpdated = time.Unix(0, 0).UTC()

// Site is the identity shared by all emitters.
type Site struct {
	Title        string
	BaseURL      string // absolute, no trailing slash
	Author       string
	TagNamespace string
}

// SiteFromConfig extracts the feed identity from cfg.
func SiteFromConfig(cfg *config.Config) Site {
	return Site{
		Title:        cfg.FeedTitle(),
		BaseURL:      cfg.Site.BaseURL,
		Author:       cfg.Site.Author,
		TagNamespace: cfg.Feed.TagNamespace,
	}
}

// URL joins a page name onto the base URL.
func (s Site) URL(page string) string { return s.BaseURL + "/" + page }

func marshal(kind string, v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "marshal "+kind).Fatal().Build()
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	return append(out, '\n'), nil
}
