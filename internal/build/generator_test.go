package build

import (
	"encoding/xml"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
)

const helloPost = "---\ntitle = \"Hello\"\ndate = \"2024-01-01\"\n---\n# world\n"

type fixture struct {
	src string
	dst string
	cfg *config.Config
}

func newFixture(t *testing.T, posts map[string]string) *fixture {
	t.Helper()
	src := t.TempDir()
	postsDir := filepath.Join(src, "posts")
	require.NoError(t, os.MkdirAll(postsDir, 0o750))
	for name, content := range posts {
		require.NoError(t, os.WriteFile(filepath.Join(postsDir, name), []byte(content), 0o600))
	}

	cfg := config.Default()
	cfg.Site.BaseURL = "https://blog.example.org"
	cfg.Site.Title = "Notes"
	cfg.Feed.TagNamespace = "tag:blog.example.org,2024:"
	return &fixture{src: src, dst: filepath.Join(src, DefaultOutputDirName), cfg: cfg}
}

func (f *fixture) run(t *testing.T, opts ...Option) (*Report, error) {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	g, err := NewGenerator(f.cfg, f.src, "", opts...)
	require.NoError(t, err)
	require.Equal(t, f.dst, g.OutputDir())
	return g.Run()
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	// #nosec G304 -- path is controlled by test.
	data, err := os.ReadFile(filepath.Join(f.dst, name))
	require.NoError(t, err)
	return string(data)
}

func TestRun_HelloPost(t *testing.T) {
	f := newFixture(t, map[string]string{"hello.md": helloPost})

	report, err := f.run(t)
	require.NoError(t, err)
	require.True(t, report.Status.IsSuccess())
	require.Equal(t, 1, report.Posts)
	require.Equal(t, 5, report.Files)

	page := f.read(t, "hello.html")
	require.Contains(t, page, "<title>Hello</title>")
	require.Contains(t, page, ">Hello</h1>")
	require.Contains(t, page, "<em>2024-01-01</em>")
	require.Contains(t, page, ">world</h1>")
	require.Less(t, strings.Index(page, ">Hello</h1>"), strings.Index(page, "<em>2024-01-01</em>"))
	require.Less(t, strings.Index(page, "<em>2024-01-01</em>"), strings.Index(page, ">world</h1>"))

	home := f.read(t, "index.html")
	require.Contains(t, home, `<a href="hello.html">Hello</a>`)
	require.Contains(t, home, "<title>Notes</title>")

	require.Contains(t, f.read(t, "robots.txt"), "Sitemap: https://blog.example.org/sitemap.xml")
	require.Contains(t, f.read(t, "sitemap.xml"), "<loc>https://blog.example.org/hello.html</loc>")
}

func TestRun_SlugsNeedingEscapes(t *testing.T) {
	f := newFixture(t, map[string]string{
		"c#.md":      "---\ntitle = \"C sharp\"\ndate = \"2024-03-01\"\n---\nbody\n",
		"100%.md":    "---\ntitle = \"Percent\"\ndate = \"2024-02-01\"\n---\nbody\n",
		"my post.md": "---\ntitle = \"Spaced\"\ndate = \"2024-01-01\"\n---\nbody\n",
	})
	require.True(t, f.cfg.Build.VerifyLinks)

	report, err := f.run(t)
	require.NoError(t, err)
	require.Zero(t, report.BrokenLinks)

	for _, name := range []string{"c#.html", "100%.html", "my post.html"} {
		require.FileExists(t, filepath.Join(f.dst, name))
	}

	home := f.read(t, "index.html")
	sitemap := f.read(t, "sitemap.xml")
	feed := f.read(t, "feed.xml")
	for _, escaped := range []string{"c%23.html", "100%25.html", "my%20post.html"} {
		require.Contains(t, home, `href="`+escaped+`"`)
		require.Contains(t, sitemap, "<loc>https://blog.example.org/"+escaped+"</loc>")
		require.Contains(t, feed, `href="https://blog.example.org/`+escaped+`"`)
	}
	require.NotContains(t, sitemap, "my post.html")
}

func TestRun_FeedAndHomeOrder(t *testing.T) {
	f := newFixture(t, map[string]string{
		"a-january.md": "---\ntitle = \"January\"\ndate = \"2024-01-01\"\n---\nwinter\n",
		"b-june.md":    "---\ntitle = \"June\"\ndate = \"2024-06-01\"\nsummary = \"Summer.\"\n---\nsummer\n",
	})

	_, err := f.run(t)
	require.NoError(t, err)

	var atom struct {
		Updated string `xml:"updated"`
		Entries []struct {
			Title   string `xml:"title"`
			Updated string `xml:"updated"`
		} `xml:"entry"`
	}
	require.NoError(t, xml.Unmarshal([]byte(f.read(t, "feed.xml")), &atom))
	require.Len(t, atom.Entries, 2)
	require.Equal(t, "June", atom.Entries[0].Title)
	require.Equal(t, "January", atom.Entries[1].Title)
	require.Equal(t, atom.Entries[0].Updated, atom.Updated)

	want, err := time.Parse(time.RFC3339, atom.Updated)
	require.NoError(t, err)
	require.True(t, want.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))

	home := f.read(t, "index.html")
	require.Less(t, strings.Index(home, "b-june.html"), strings.Index(home, "a-january.html"))
}

func TestRun_Highlighting(t *testing.T) {
	f := newFixture(t, map[string]string{
		"code.md": "---\ntitle = \"Code\"\ndate = \"2024-01-01\"\n---\n" +
			"```python\ndef f():\n    return 1\n```\n\n```\nplain text here\n```\n",
	})

	_, err := f.run(t)
	require.NoError(t, err)

	page := f.read(t, "code.html")
	require.Contains(t, page, "<pre")
	require.Contains(t, page, `style="`)
	require.Contains(t, page, "def")
	require.Contains(t, page, "plain")
}

func TestRun_UnknownLanguageAborts(t *testing.T) {
	f := newFixture(t, map[string]string{
		"bad.md": "---\ntitle = \"Bad\"\ndate = \"2024-01-01\"\n---\n```no-such-language-xyz\nx\n```\n",
	})

	report, err := f.run(t)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryUnknownLanguage))
	require.Equal(t, StageRenderPosts, report.FailedStage)

	ce, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	file, _ := ce.Context().GetString("file")
	require.Equal(t, "bad.md", filepath.Base(file))
}

func TestRun_MissingClosingDelimiterAbortsWholeBuild(t *testing.T) {
	f := newFixture(t, map[string]string{
		"good.md":   helloPost,
		"broken.md": "---\ntitle = \"Broken\"\ndate = \"2024-01-01\"\nno end\n",
	})

	report, err := f.run(t)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryMalformedPost))
	require.False(t, report.Status.IsSuccess())
	require.Equal(t, StageLoadPosts, report.FailedStage)
	require.Equal(t, []StageName{StagePrepareOutput, StageLoadPosts}, report.Stages)
	require.NoFileExists(t, filepath.Join(f.dst, "good.html"))
	require.NoFileExists(t, filepath.Join(f.dst, "index.html"))
}

func TestRun_LogsFailedStageCategory(t *testing.T) {
	f := newFixture(t, map[string]string{
		"broken.md": "---\ntitle = \"Broken\"\n",
	})

	var logs strings.Builder
	g, err := NewGenerator(f.cfg, f.src, "", WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)
	_, err = g.Run()
	require.Error(t, err)
	require.Contains(t, logs.String(), "stage=load_posts")
	require.Contains(t, logs.String(), "category=malformed_post")
}

func TestRun_Deterministic(t *testing.T) {
	f := newFixture(t, map[string]string{
		"hello.md": helloPost,
		"two.md":   "---\ntitle = \"Two\"\ndate = 2024-02-02\n---\n```go\nfunc main() {}\n```\n",
		"tie.md":   "---\ntitle = \"Also Hello\"\ndate = \"2024-01-01\"\n---\nsame day\n",
	})

	snapshot := func() map[string]string {
		out := map[string]string{}
		entries, err := os.ReadDir(f.dst)
		require.NoError(t, err)
		for _, e := range entries {
			out[e.Name()] = f.read(t, e.Name())
		}
		return out
	}

	_, err := f.run(t)
	require.NoError(t, err)
	first := snapshot()

	_, err = f.run(t)
	require.NoError(t, err)
	require.Equal(t, first, snapshot())
}

func TestRun_RemovesStaleOutput(t *testing.T) {
	f := newFixture(t, map[string]string{"hello.md": helloPost})
	require.NoError(t, os.MkdirAll(f.dst, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(f.dst, "stale.html"), []byte("old"), 0o600))

	_, err := f.run(t)
	require.NoError(t, err)
	require.NoFileExists(t, filepath.Join(f.dst, "stale.html"))
}

func TestRun_NoPosts(t *testing.T) {
	f := newFixture(t, nil)

	report, err := f.run(t)
	require.NoError(t, err)
	require.Equal(t, 0, report.Posts)
	require.Contains(t, f.read(t, "feed.xml"), "<feed")
}

func TestRun_MissingPostsDirectory(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.Remove(filepath.Join(f.src, "posts")))

	_, err := f.run(t)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestRun_VerifyLinksDisabled(t *testing.T) {
	f := newFixture(t, map[string]string{"hello.md": helloPost})
	f.cfg.Build.VerifyLinks = false

	report, err := f.run(t)
	require.NoError(t, err)
	require.Equal(t, StageResultSkipped, report.StageResults[StageVerifyLinks])
}

func TestRun_StageOrderAndReport(t *testing.T) {
	f := newFixture(t, map[string]string{"hello.md": helloPost})

	report, err := f.run(t)
	require.NoError(t, err)
	require.Equal(t, []StageName{
		StagePrepareOutput, StageLoadPosts, StageRenderPosts,
		StageRenderHome, StageWriteFeeds, StageVerifyLinks,
	}, report.Stages)
	for _, st := range report.Stages {
		require.Equal(t, StageResultSuccess, report.StageResults[st], st)
	}
	require.Zero(t, report.BrokenLinks)
	require.Contains(t, report.Summary(), "outcome=success")
}

type recordingRecorder struct {
	metrics.NoopRecorder
	results  map[string]metrics.ResultLabel
	outcomes []metrics.BuildOutcomeLabel
	posts    int
	files    int
	bytes    int
}

func (r *recordingRecorder) IncStageResult(stage string, res metrics.ResultLabel) {
	r.results[stage] = res
}
func (r *recordingRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) {
	r.outcomes = append(r.outcomes, o)
}
func (r *recordingRecorder) SetPosts(n int) { r.posts = n }
func (r *recordingRecorder) AddFileWritten(n int) {
	r.files++
	r.bytes += n
}

func TestRun_RecordsMetrics(t *testing.T) {
	f := newFixture(t, map[string]string{"hello.md": helloPost})
	rec := &recordingRecorder{results: map[string]metrics.ResultLabel{}}

	report, err := f.run(t, WithRecorder(rec))
	require.NoError(t, err)
	require.Equal(t, []metrics.BuildOutcomeLabel{metrics.BuildOutcomeSuccess}, rec.outcomes)
	require.Equal(t, metrics.ResultSuccess, rec.results[string(StageWriteFeeds)])
	require.Equal(t, 1, rec.posts)
	require.Equal(t, report.Files, rec.files)
	require.Equal(t, report.Bytes, rec.bytes)
}

func TestRun_RecordsFailure(t *testing.T) {
	f := newFixture(t, map[string]string{"x.md": "no front matter"})
	rec := &recordingRecorder{results: map[string]metrics.ResultLabel{}}

	_, err := f.run(t, WithRecorder(rec))
	require.Error(t, err)
	require.Equal(t, []metrics.BuildOutcomeLabel{metrics.BuildOutcomeFailed}, rec.outcomes)
	require.Equal(t, metrics.ResultFatal, rec.results[string(StageLoadPosts)])
}

func TestNewGenerator_RejectsOverlappingOutput(t *testing.T) {
	f := newFixture(t, nil)

	for _, dst := range []string{f.src, filepath.Dir(f.src), filepath.Join(f.src, "posts")} {
		_, err := NewGenerator(f.cfg, f.src, dst)
		require.Error(t, err, dst)
		require.ErrorIs(t, err, ErrOutputOverlapsSource)
		require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	}
}

func TestNewGenerator_UnknownStyle(t *testing.T) {
	f := newFixture(t, nil)
	f.cfg.Highlight.Style = "no-such-style"

	_, err := NewGenerator(f.cfg, f.src, "")
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestNewGenerator_NilConfig(t *testing.T) {
	_, err := NewGenerator(nil, t.TempDir(), "")
	require.Error(t, err)
}
