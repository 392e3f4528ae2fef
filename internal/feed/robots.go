package feed

// Robots allows every crawler and points it at the sitemap.
func Robots(site Site) []byte {
	return []byte("User-agent: *\nAllow: /\nSitemap: " + site.URL(SitemapFile) + "\n")
}
