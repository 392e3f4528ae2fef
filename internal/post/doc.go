// Package post loads Markdown posts with TOML front matter and orders them
// into the index that drives the home page, feed and sitemap.
package post
