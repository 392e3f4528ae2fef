package feed

import (
	"encoding/xml"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

type urlSet struct {
	XMLName xml.Name     `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap lists the home page followed by every post in index order.
func Sitemap(idx post.Index, site Site) ([]byte, error) {
	set := urlSet{URLs: make([]sitemapURL, 0, len(idx)+1)}

	home := sitemapURL{Loc: site.URL("")}
	if latest := idx.Latest(); !latest.IsZero() {
		home.LastMod = latest.Format(sitemapDateLayout)
	}
	set.URLs = append(set.URLs, home)

	for _, rec := range idx {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     site.URL(rec.URL),
			LastMod: rec.Published.Format(sitemapDateLayout),
		})
	}
	return marshal("sitemap", set)
}
