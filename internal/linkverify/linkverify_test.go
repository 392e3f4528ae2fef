package linkverify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testBase = "https://blog.example.org"

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

const goodFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <link rel="self" href="https://blog.example.org/feed.xml"></link>
  <link rel="alternate" href="https://blog.example.org/"></link>
  <entry><link rel="alternate" href="https://blog.example.org/hello.html"></link></entry>
</feed>
`

const goodSitemap = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://blog.example.org/</loc></url>
  <url><loc>https://blog.example.org/hello.html</loc></url>
</urlset>
`

const goodHome = `<!DOCTYPE html><html><head>
<link rel="stylesheet" href="https://cdn.example.com/x.css">
<script src="//gc.zgo.at/count.js"></script>
</head><body>
<a href="hello.html">Hello</a>
<a href="#top">top</a>
<a href="mailto:me@example.org">mail</a>
<a href="https://github.com/example">GitHub</a>
<img src="missing.png" alt="ignored">
</body></html>`

func TestExtractLinks(t *testing.T) {
	links, err := ExtractLinks(strings.NewReader(goodHome), testBase)
	require.NoError(t, err)

	byURL := map[string]*Link{}
	for _, l := range links {
		byURL[l.URL] = l
	}
	require.Equal(t, "Hello", byURL["hello.html"].Text)
	require.Equal(t, "a", byURL["hello.html"].Tag)
	require.True(t, byURL["hello.html"].IsInternal)
	require.False(t, byURL["https://github.com/example"].IsInternal)
	require.False(t, byURL["//gc.zgo.at/count.js"].IsInternal)
	require.Equal(t, "stylesheet", byURL["https://cdn.example.com/x.css"].Text)
	require.Equal(t, "img", byURL["missing.png"].Tag)

	require.Len(t, FilterLinks(links, false, true), 3)
}

func TestShouldVerifyLink(t *testing.T) {
	require.True(t, ShouldVerifyLink(&Link{URL: "hello.html"}))
	for _, u := range []string{"", "#x", "mailto:a@b", "tel:1", "javascript:void(0)", "data:,x"} {
		require.False(t, ShouldVerifyLink(&Link{URL: u}), u)
	}
}

func TestVerifySite_Clean(t *testing.T) {
	root := writeSite(t, map[string]string{
		HomeFile:     goodHome,
		"hello.html": "<html></html>",
		FeedFile:     goodFeed,
		SitemapFile:  goodSitemap,
	})

	broken, err := VerifySite(root, testBase)
	require.NoError(t, err)
	require.Empty(t, broken)
}

func TestVerifySite_ReportsBrokenLinks(t *testing.T) {
	root := writeSite(t, map[string]string{
		HomeFile: `<a href="hello.html">Hello</a><a href="gone.html">Gone</a><a href="/other.html?x=1#y">O</a>`,
		"hello.html": "ok",
		FeedFile: `<feed xmlns="http://www.w3.org/2005/Atom">
<entry><link rel="alternate" href="https://elsewhere.example.com/hello.html"></link></entry>
<entry><link rel="alternate" href="https://blog.example.org/missing.html"></link></entry>
</feed>`,
		SitemapFile: `<urlset><url><loc>https://blog.example.org/nope.html</loc></url></urlset>`,
	})

	broken, err := VerifySite(root, testBase)
	require.NoError(t, err)

	var got []string
	for _, b := range broken {
		got = append(got, b.Source+" "+b.URL)
	}
	require.Equal(t, []string{
		"index.html gone.html",
		"index.html /other.html?x=1#y",
		"feed.xml https://elsewhere.example.com/hello.html",
		"feed.xml https://blog.example.org/missing.html",
		"sitemap.xml https://blog.example.org/nope.html",
	}, got)
}

func TestVerifySite_BasePath(t *testing.T) {
	root := writeSite(t, map[string]string{
		HomeFile:     `<a href="/blog/hello.html">abs</a><a href="/elsewhere.html">x</a>`,
		"hello.html": "ok",
		FeedFile:     `<feed><link rel="alternate" href="https://blog.example.org/blog"></link></feed>`,
		SitemapFile:  `<urlset><url><loc>https://blog.example.org/blog/hello.html</loc></url></urlset>`,
	})

	broken, err := VerifySite(root, testBase+"/blog/")
	require.NoError(t, err)
	require.Len(t, broken, 1)
	require.Equal(t, "/elsewhere.html", broken[0].URL)
	require.Equal(t, "outside the site path", broken[0].Reason)
}

func TestVerifySite_MissingArtifact(t *testing.T) {
	root := writeSite(t, map[string]string{HomeFile: "<p></p>", FeedFile: goodFeed})
	_, err := VerifySite(root, testBase)
	require.Error(t, err)
}

func TestVerifySite_DirectoryIsNotAFile(t *testing.T) {
	root := writeSite(t, map[string]string{
		HomeFile:         `<a href="sub">dir</a>`,
		"sub/other.html": "x",
		FeedFile:         goodFeed,
		"hello.html":     "ok",
		SitemapFile:      goodSitemap,
	})
	broken, err := VerifySite(root, testBase)
	require.NoError(t, err)
	require.Len(t, broken, 1)
	require.Equal(t, "sub", broken[0].URL)
}
