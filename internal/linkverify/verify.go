package linkverify

import (
	"encoding/xml"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// Files checked by VerifySite, relative to the site root.
const (
	HomeFile    = "index.html"
	FeedFile    = "feed.xml"
	SitemapFile = "sitemap.xml"
)

// Broken is a published link that does not resolve inside the site.
type Broken struct {
	Source string // site-relative file holding the link
	URL    string
	Reason string
}

// VerifySite checks the relative anchors on the home page, the alternate
// links of the feed and the sitemap locations. Broken links are returned,
// not treated as errors; errors mean a file could not be read or parsed.
func VerifySite(root, baseURL string) ([]Broken, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid base URL").Fatal().WithContext("url", baseURL).Build()
	}
	v := &verifier{root: root, base: base}

	links, err := ExtractLinksFromFile(filepath.Join(root, HomeFile), baseURL)
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		if l.Tag != "a" || !ShouldVerifyLink(l) {
			continue
		}
		u, perr := url.Parse(l.URL)
		if perr != nil {
			v.broken(HomeFile, l.URL, "unparseable URL")
			continue
		}
		if u.IsAbs() || u.Host != "" {
			continue
		}
		v.checkRelative(HomeFile, l.URL, u)
	}

	feedLinks, err := feedAlternates(filepath.Join(root, FeedFile))
	if err != nil {
		return nil, err
	}
	for _, href := range feedLinks {
		v.checkAbsolute(FeedFile, href)
	}

	locs, err := sitemapLocs(filepath.Join(root, SitemapFile))
	if err != nil {
		return nil, err
	}
	for _, loc := range locs {
		v.checkAbsolute(SitemapFile, loc)
	}

	return v.found, nil
}

type verifier struct {
	root  string
	base  *url.URL
	found []Broken
}

func (v *verifier) broken(source, link, reason string) {
	v.found = append(v.found, Broken{Source: source, URL: link, Reason: reason})
}

// checkRelative resolves a link found in a page at the site root.
func (v *verifier) checkRelative(source, raw string, u *url.URL) {
	if u.Path == "" {
		return
	}
	p := u.Path
	if strings.HasPrefix(p, "/") {
		rel, ok := strings.CutPrefix(p, v.base.Path)
		if !ok {
			v.broken(source, raw, "outside the site path")
			return
		}
		p = rel
	}
	v.checkFile(source, raw, p)
}

// checkAbsolute requires an absolute URL under the base URL.
func (v *verifier) checkAbsolute(source, raw string) {
	u, err := url.Parse(raw)
	if err != nil {
		v.broken(source, raw, "unparseable URL")
		return
	}
	if !strings.EqualFold(u.Scheme, v.base.Scheme) || !strings.EqualFold(u.Host, v.base.Host) {
		v.broken(source, raw, "not under the base URL")
		return
	}
	rel, ok := strings.CutPrefix(u.Path, v.base.Path)
	if !ok && u.Path+"/" != v.base.Path {
		v.broken(source, raw, "not under the base URL")
		return
	}
	v.checkFile(source, raw, rel)
}

func (v *verifier) checkFile(source, raw, rel string) {
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += HomeFile
	}
	// Rooting the path first clamps any ".." at the site root.
	clean := path.Clean("/" + rel)[1:]
	if clean == "" {
		clean = HomeFile
	}
	info, err := os.Stat(filepath.Join(v.root, filepath.FromSlash(clean)))
	if err != nil || info.IsDir() {
		v.broken(source, raw, "no such file: "+clean)
	}
}

func feedAlternates(p string) ([]string, error) {
	var doc struct {
		Links []xmlLink `xml:"link"`
		Entry []struct {
			Links []xmlLink `xml:"link"`
		} `xml:"entry"`
	}
	if err := decodeXML(p, &doc); err != nil {
		return nil, err
	}

	var out []string
	collect := func(links []xmlLink) {
		for _, l := range links {
			if l.Rel == "" || l.Rel == "alternate" {
				out = append(out, l.Href)
			}
		}
	}
	collect(doc.Links)
	for _, e := range doc.Entry {
		collect(e.Links)
	}
	return out, nil
}

type xmlLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

func sitemapLocs(p string) ([]string, error) {
	var doc struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	if err := decodeXML(p, &doc); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(doc.URLs))
	for _, u := range doc.URLs {
		out = append(out, strings.TrimSpace(u.Loc))
	}
	return out, nil
}

func decodeXML(p string, v any) error {
	f, err := os.Open(filepath.Clean(p))
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to open XML file").Fatal().WithContext("path", p).Build()
	}
	defer func() { _ = f.Close() }()

	if err := xml.NewDecoder(f).Decode(v); err != nil {
		return errors.WrapError(err, errors.CategoryBuild, "failed to parse XML file").Fatal().WithContext("path", p).Build()
	}
	return nil
}
