package build

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/feed"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/highlight"
	"git.home.luguber.info/inful/blogbuilder/internal/linkverify"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/templates"
)

// DefaultOutputDirName is the output directory used when none is given,
// relative to the source directory.
const DefaultOutputDirName = "_site"

// Generator builds a static site from a source tree.
type Generator struct {
	config    *config.Config
	srcDir    string
	outputDir string
	postsDir  string

	highlighter highlight.Registry
	renderer    *markdown.Renderer
	skeletons   *templates.Skeletons
	recorder    metrics.Recorder
	logger      *slog.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRecorder injects a metrics recorder. Nil restores the no-op recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r == nil {
			r = metrics.NoopRecorder{}
		}
		g.recorder = r
	}
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithHighlighter replaces the chroma registry built from the configured
// style.
func WithHighlighter(reg highlight.Registry) Option {
	return func(g *Generator) { g.highlighter = reg }
}

// NewGenerator prepares a generator reading from srcDir and writing to
// outputDir (default <srcDir>/_site). The output directory is deleted on
// every run, so it may not contain the source or posts directory.
func NewGenerator(cfg *config.Config, srcDir, outputDir string, opts ...Option) (*Generator, error) {
	if cfg == nil {
		return nil, ferrors.InternalError("configuration is required").Build()
	}
	if srcDir == "" {
		srcDir = "."
	}
	if outputDir == "" {
		outputDir = filepath.Join(srcDir, DefaultOutputDirName)
	}

	g := &Generator{
		config:    cfg,
		srcDir:    filepath.Clean(srcDir),
		outputDir: filepath.Clean(outputDir),
		postsDir:  filepath.Join(filepath.Clean(srcDir), filepath.FromSlash(cfg.Build.PostsDir)),
		recorder:  metrics.NoopRecorder{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.checkOutputDir(); err != nil {
		return nil, err
	}

	if g.highlighter == nil {
		reg, err := highlight.NewChroma(cfg.Highlight.Style)
		if err != nil {
			return nil, err
		}
		g.highlighter = reg
	}
	g.renderer = markdown.New(g.highlighter)

	sk, err := templates.NewSkeletons(cfg)
	if err != nil {
		return nil, err
	}
	g.skeletons = sk
	return g, nil
}

// OutputDir returns the directory the site is written to.
func (g *Generator) OutputDir() string { return g.outputDir }

// Run executes the pipeline once. The report is returned even on failure.
func (g *Generator) Run() (*Report, error) {
	bs := &buildState{report: newReport(g.outputDir)}
	g.logger.Info("Build started",
		logfields.Path(g.srcDir),
		slog.String("output", g.outputDir))

	err := g.runStages(bs, g.pipeline())
	bs.report.finish(err)

	g.recorder.ObserveBuildDuration(bs.report.Duration())
	if err != nil {
		g.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return bs.report, err
	}
	g.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	g.logger.Info("Build completed",
		logfields.Posts(bs.report.Posts),
		logfields.Files(bs.report.Files),
		logfields.Bytes(bs.report.Bytes),
		logfields.Duration(bs.report.Duration()),
		logfields.Outcome(string(bs.report.Status)))
	return bs.report, nil
}

// checkOutputDir refuses output directories whose removal would delete
// sources.
func (g *Generator) checkOutputDir() error {
	out, err := filepath.Abs(g.outputDir)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "resolve output directory").Fatal().Build()
	}
	for _, protected := range []string{g.srcDir, g.postsDir} {
		abs, err := filepath.Abs(protected)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryValidation, "resolve source directory").Fatal().Build()
		}
		if isWithin(abs, out) {
			return ferrors.ValidationError("output directory must not contain the source directory").
				WithContext("output", g.outputDir).
				WithContext("source", protected).
				WithCause(ErrOutputOverlapsSource).
				Build()
		}
	}
	return nil
}

// isWithin reports whether path equals dir or lies below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (g *Generator) stagePrepareOutput(_ *buildState) error {
	if err := os.RemoveAll(g.outputDir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "remove output directory").
			WithContext("path", g.outputDir).
			Fatal().
			Build()
	}
	if err := os.MkdirAll(g.outputDir, 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create output directory").
			WithContext("path", g.outputDir).
			Fatal().
			Build()
	}
	return nil
}

func (g *Generator) stageLoadPosts(bs *buildState) error {
	idx, err := post.LoadDir(g.postsDir, g.config.FrontMatter.Delimiter)
	if err != nil {
		return err
	}
	bs.index = idx
	bs.report.Posts = len(idx)
	g.recorder.SetPosts(len(idx))
	g.logger.Info("Posts loaded", logfields.Posts(len(idx)), logfields.Path(g.postsDir))
	return nil
}

func (g *Generator) stageRenderPosts(bs *buildState) error {
	for _, rec := range bs.index {
		fragment, err := g.renderer.RenderPost(rec.Title, rec.Date, rec.Body)
		if err != nil {
			return withFile(err, rec.Source)
		}
		page, err := g.skeletons.RenderPost(rec, fragment)
		if err != nil {
			return withFile(err, rec.Source)
		}
		if err := g.writePage(bs, page); err != nil {
			return err
		}
		g.logger.Debug("Post rendered", logfields.Slug(rec.Slug), logfields.Title(rec.Title))
	}
	return nil
}

func (g *Generator) stageRenderHome(bs *buildState) error {
	fragment, err := g.renderer.Render(HomeMarkdown(g.config, bs.index))
	if err != nil {
		return err
	}
	page, err := g.skeletons.RenderHome(fragment)
	if err != nil {
		return err
	}
	return g.writePage(bs, page)
}

func (g *Generator) stageWriteFeeds(bs *buildState) error {
	site := feed.SiteFromConfig(g.config)

	atom, err := feed.Atom(bs.index, site)
	if err != nil {
		return err
	}
	sitemap, err := feed.Sitemap(bs.index, site)
	if err != nil {
		return err
	}

	for _, page := range []templates.Page{
		{Path: feed.AtomFile, Content: atom},
		{Path: feed.SitemapFile, Content: sitemap},
		{Path: feed.RobotsFile, Content: feed.Robots(site)},
	} {
		if err := g.writePage(bs, page); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) stageVerifyLinks(bs *buildState) error {
	if !g.config.Build.VerifyLinks {
		return stageSkipped{reason: "disabled by build.verify_links"}
	}

	broken, err := linkverify.VerifySite(g.outputDir, g.config.Site.BaseURL)
	if err != nil {
		return err
	}
	bs.report.BrokenLinks = len(broken)
	if len(broken) == 0 {
		return nil
	}

	for _, b := range broken {
		g.logger.Error("Broken link", logfields.File(b.Source), logfields.URL(b.URL), "reason", b.Reason)
	}
	return ferrors.BuildError("generated site contains broken links").
		WithContext("count", len(broken)).
		WithContext("first", broken[0].Source+": "+broken[0].URL).
		WithCause(ErrBrokenLinks).
		Build()
}

func (g *Generator) writePage(bs *buildState, page templates.Page) error {
	full, err := templates.WritePage(g.outputDir, page)
	if err != nil {
		return err
	}
	bs.report.Files++
	bs.report.Bytes += len(page.Content)
	g.recorder.AddFileWritten(len(page.Content))
	g.logger.Debug("File written", logfields.Path(full), logfields.Bytes(len(page.Content)))
	return nil
}

// withFile attaches the source file to classified errors that lack one.
func withFile(err error, file string) error {
	ce, ok := ferrors.AsClassified(err)
	if !ok {
		return ferrors.WrapError(err, ferrors.CategoryBuild, "render post").
			WithContext("file", file).
			Fatal().
			Build()
	}
	if _, has := ce.Context().Get("file"); has {
		return err
	}
	return ce.WithContext("file", file)
}
