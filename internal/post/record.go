package post

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

// Front-matter keys with fixed meaning.
const (
	FieldTitle   = "title"
	FieldDate    = "date"
	FieldSummary = "summary"
)

// Extension marks post source files.
const Extension = ".md"

// Record is one parsed post. It is built once per build and not mutated.
type Record struct {
	Title     string
	Date      string // as written in the front matter
	Published time.Time
	Slug      string
	URL       string // relative and escaped, see PageURL
	Summary   string
	Extra     map[string]any
	Body      []byte
	Source    string
}

// OutputFile is the page path relative to the site root.
func (r *Record) OutputFile() string { return r.Slug + ".html" }

// PageURL is the relative link to the page of slug. The slug is
// path-escaped and colons are encoded so the link never reads as a scheme.
func PageURL(slug string) string {
	return strings.ReplaceAll(url.PathEscape(slug), ":", "%3A") + ".html"
}

// Load reads and parses one post file. Every failure is a malformed post
// error naming the file and, where known, the field.
func Load(path, delimiter string) (*Record, error) {
	content, err := readFile(path)
	if err != nil {
		return nil, err
	}

	fm, body, _, err := frontmatter.Split(content, delimiter)
	if err != nil {
		return nil, malformed(path, "front matter is not delimited", err).Build()
	}

	fields, err := frontmatter.ParseTOML(fm)
	if err != nil {
		return nil, malformed(path, "front matter is not valid TOML", err).Build()
	}

	slug := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if slug == "" || slug == "index" {
		return nil, malformed(path, "file name cannot be used as a page name", nil).
			WithContext("slug", slug).
			Build()
	}

	title, err := stringField(path, fields, FieldTitle)
	if err != nil {
		return nil, err
	}
	rawDate, err := dateField(path, fields)
	if err != nil {
		return nil, err
	}
	published, err := ParseDate(rawDate)
	if err != nil {
		return nil, malformed(path, "date is not a recognizable date", err).
			WithContext("field", FieldDate).
			WithContext("value", rawDate).
			Build()
	}

	var summary string
	if _, ok := fields[FieldSummary]; ok {
		if summary, err = stringField(path, fields, FieldSummary); err != nil {
			return nil, err
		}
	}

	extra := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case FieldTitle, FieldDate, FieldSummary:
		default:
			extra[k] = v
		}
	}

	return &Record{
		Title:     title,
		Date:      rawDate,
		Published: published,
		Slug:      slug,
		URL:       PageURL(slug),
		Summary:   summary,
		Extra:     extra,
		Body:      body,
		Source:    path,
	}, nil
}

func readFile(path string) ([]byte, error) {
	// #nosec G304 -- path comes from a listing of the posts directory.
	f, err := os.Open(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "open post").
			WithContext("file", path).
			Fatal().
			Build()
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read post").
			WithContext("file", path).
			Fatal().
			Build()
	}
	return content, nil
}

func malformed(path, message string, cause error) *ferrors.ErrorBuilder {
	b := ferrors.MalformedPostError(message).WithContext("file", path)
	if cause != nil {
		b = b.WithCause(cause)
	}
	return b
}

func stringField(path string, fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok {
		return "", malformed(path, "missing mandatory field", nil).WithContext("field", key).Build()
	}
	s, ok := v.(string)
	if !ok {
		return "", malformed(path, "field must be a string", nil).
			WithContext("field", key).
			WithContext("type", fmt.Sprintf("%T", v)).
			Build()
	}
	if key == FieldTitle && strings.TrimSpace(s) == "" {
		return "", malformed(path, "field must not be empty", nil).WithContext("field", key).Build()
	}
	return s, nil
}

// dateField accepts either a string or a native TOML date.
func dateField(path string, fields map[string]any) (string, error) {
	v, ok := fields[FieldDate]
	if !ok {
		return "", malformed(path, "missing mandatory field", nil).WithContext("field", FieldDate).Build()
	}
	switch d := v.(type) {
	case string:
		return d, nil
	case time.Time:
		return normalizeTOMLDate(d), nil
	default:
		return "", malformed(path, "date must be a string or a TOML date", nil).
			WithContext("field", FieldDate).
			WithContext("type", fmt.Sprintf("%T", v)).
			Build()
	}
}
