package feed

import (
	"encoding/xml"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

const atomNamespace = "http://www.w3.org/2005/Atom"

type atomFeed struct {
	XMLName xml.Name    `xml:"http://www.w3.org/2005/Atom feed"`
	Title   string      `xml:"title"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Links   []atomLink  `xml:"link"`
	Author  atomAuthor  `xml:"author"`
	Entries []atomEntry `xml:"entry"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr,omitempty"`
	Href string `xml:"href,attr"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	ID      string     `xml:"id"`
	Title   string     `xml:"title"`
	Updated string     `xml:"updated"`
	Author  atomAuthor `xml:"author"`
	Link    atomLink   `xml:"link"`
	Summary string     `xml:"summary,omitempty"`
}

// Atom renders the feed with one entry per post in index order. The feed's
// updated time is the newest post's.
func Atom(idx post.Index, site Site) ([]byte, error) {
	updated := idx.Latest()
	if updated.IsZero() {
		updated = emptyUpdated
	}

	f := atomFeed{
		Title:   site.Title,
		ID:      site.URL(""),
		Updated: updated.Format(atomTimeLayout),
		Links: []atomLink{
			{Rel: "self", Type: "application/atom+xml", Href: site.URL(AtomFile)},
			{Rel: "alternate", Type: "text/html", Href: site.URL("")},
		},
		Author:  atomAuthor{Name: site.Author},
		Entries: make([]atomEntry, 0, len(idx)),
	}

	for _, rec := range idx {
		f.Entries = append(f.Entries, atomEntry{
			ID:      site.TagNamespace + rec.Slug,
			Title:   rec.Title,
			Updated: rec.Published.Format(atomTimeLayout),
			Author:  atomAuthor{Name: site.Author},
			Link:    atomLink{Rel: "alternate", Type: "text/html", Href: site.URL(rec.URL)},
			Summary: rec.Summary,
		})
	}
	return marshal("atom feed", f)
}
