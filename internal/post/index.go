package post

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// Index is the ordered set of posts for one build.
type Index []*Record

// LoadDir loads every *.md file directly inside dir and returns them sorted.
// Files are read in name order so the first reported error is stable. Two
// files with the same slug (a.md and a.MD) are a malformed post error.
func LoadDir(dir, delimiter string) (Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NewError(ferrors.CategoryNotFound, "posts directory not found").
				WithContext("path", dir).
				WithCause(err).
				Fatal().
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "list posts directory").
			WithContext("path", dir).
			Fatal().
			Build()
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Extension) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	idx := make(Index, 0, len(names))
	sources := make(map[string]string, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		rec, err := Load(path, delimiter)
		if err != nil {
			return nil, err
		}
		if other, dup := sources[rec.Slug]; dup {
			return nil, malformed(path, "another post has the same page name", nil).
				WithContext("slug", rec.Slug).
				WithContext("conflicts_with", other).
				Build()
		}
		sources[rec.Slug] = path
		idx = append(idx, rec)
	}
	Sort(idx)
	return idx, nil
}

// Sort orders idx newest first. Equal dates fall back to English collation
// of the title, then to the slug, so the order never depends on the
// filesystem.
func Sort(idx Index) {
	c := collate.New(language.English)
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := idx[i], idx[j]
		if !a.Published.Equal(b.Published) {
			return a.Published.After(b.Published)
		}
		if cmp := c.CompareString(a.Title, b.Title); cmp != 0 {
			return cmp < 0
		}
		return a.Slug < b.Slug
	})
}

// Latest returns the newest Published time, or the zero time for an empty
// index.
func (idx Index) Latest() time.Time {
	var latest time.Time
	for _, r := range idx {
		if r.Published.After(latest) {
			latest = r.Published
		}
	}
	return latest
}
