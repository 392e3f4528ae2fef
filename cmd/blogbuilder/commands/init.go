package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	cfgPath := root.ConfigPath()
	if err := config.Init(cfgPath, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Stdout, "Wrote configuration to %s\n", cfgPath)

	cfg := config.Default()
	postsDir := filepath.Join(root.Src, filepath.FromSlash(cfg.Build.PostsDir))
	created, err := writeFirstPost(postsDir, cfg.FrontMatter.Delimiter, time.Now())
	if err != nil {
		return err
	}
	if created != "" {
		_, _ = fmt.Fprintf(g.Stdout, "Wrote first post to %s\n", created)
	}
	return nil
}

// writeFirstPost creates hello.md unless postsDir already holds posts.
func writeFirstPost(postsDir, delimiter string, now time.Time) (string, error) {
	entries, err := os.ReadDir(postsDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "list posts directory").
			Fatal().WithContext("path", postsDir).Build()
	}
	for _, e := range entries {
		if strings.EqualFold(filepath.Ext(e.Name()), post.Extension) {
			return "", nil
		}
	}

	fm, err := frontmatter.SerializeTOML(map[string]any{
		post.FieldTitle:   "Hello",
		post.FieldDate:    now.Format("2006-01-02"),
		post.FieldSummary: "The first post.",
	}, frontmatter.Style{})
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryInternal, "serialize front matter").Fatal().Build()
	}
	doc := frontmatter.Join(fm, []byte("Welcome to the blog.\n"), delimiter, frontmatter.Style{Newline: "\n", HasTrailingNewline: true})

	if err := os.MkdirAll(postsDir, 0o750); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "create posts directory").
			Fatal().WithContext("path", postsDir).Build()
	}
	path := filepath.Join(postsDir, "hello"+post.Extension)
	// #nosec G306 -- posts are public content.
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "write first post").
			Fatal().WithContext("path", path).Build()
	}
	return path, nil
}
