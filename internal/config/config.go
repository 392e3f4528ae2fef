package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// DefaultFileName is looked up in the source root when no --config is given.
const DefaultFileName = "site.yaml"

// Config holds the site identity and the fixed page fragments the builder
// embeds into every page. Nothing here changes between builds of the same site.
type Config struct {
	Site        SiteConfig        `yaml:"site"`
	Feed        FeedConfig        `yaml:"feed"`
	Stylesheet  StylesheetConfig  `yaml:"stylesheet"`
	Comments    CommentsConfig    `yaml:"comments"`
	Analytics   AnalyticsConfig   `yaml:"analytics"`
	Highlight   HighlightConfig   `yaml:"highlight"`
	Templates   TemplatesConfig   `yaml:"templates"`
	FrontMatter FrontMatterConfig `yaml:"front_matter"`
	Navigation  []NavLink         `yaml:"navigation"`
	Build       BuildConfig       `yaml:"build"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Title   string `yaml:"title"`
	BaseURL string `yaml:"base_url"` // Canonical absolute URL, no trailing slash
	Author  string `yaml:"author"`
	Intro   string `yaml:"intro"` // Markdown shown above the post list on the home page
}

// FeedConfig controls the Atom feed.
type FeedConfig struct {
	Title string `yaml:"title"`
	// TagNamespace prefixes every entry id, e.g. "tag:example.org,2024:".
	// The date inside must never change once the feed is published.
	TagNamespace string `yaml:"tag_namespace"`
}

// StylesheetConfig is the external Markdown-body stylesheet. Integrity is
// emitted verbatim for subresource integrity checks.
type StylesheetConfig struct {
	Href           string `yaml:"href"`
	Integrity      string `yaml:"integrity"`
	CrossOrigin    string `yaml:"crossorigin"`
	ReferrerPolicy string `yaml:"referrerpolicy"`
}

// CommentsConfig parameterizes the comments widget script tag.
type CommentsConfig struct {
	Script    string `yaml:"script"`
	Repo      string `yaml:"repo"`
	IssueTerm string `yaml:"issue_term"`
	Label     string `yaml:"label"`
	Theme     string `yaml:"theme"`
}

// AnalyticsConfig points the analytics script at its counter endpoint.
type AnalyticsConfig struct {
	Endpoint string `yaml:"endpoint"`
	Script   string `yaml:"script"`
}

// HighlightConfig selects the code highlighting color style.
type HighlightConfig struct {
	Style string `yaml:"style"`
}

// TemplatesConfig controls page skeleton substitution.
type TemplatesConfig struct {
	PlaceholderDelimiter string `yaml:"placeholder_delimiter"`
}

// FrontMatterConfig controls post metadata parsing.
type FrontMatterConfig struct {
	Delimiter string `yaml:"delimiter"`
}

// NavLink is one entry of the post page navigation header.
type NavLink struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// BuildConfig controls the build pipeline.
type BuildConfig struct {
	PostsDir    string `yaml:"posts_dir"`    // Relative to the source root
	VerifyLinks bool   `yaml:"verify_links"` // Check emitted links after writing
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Load reads a YAML configuration file on top of Default().
//
// ${VAR} references are expanded from the environment after .env files have
// been loaded.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("file", configPath).
				WithCause(err).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read config file").
			Fatal().
			WithContext("file", configPath).
			Build()
	}

	cfg, err := Parse(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	if err != nil {
		if classified, ok := ferrors.AsClassified(err); ok {
			return nil, classified.WithContext("file", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadOptional loads configPath if it exists and returns Default() otherwise.
func LoadOptional(configPath string) (*Config, bool, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		return cfg, false, nil
	}
	cfg, err := Load(configPath)
	return cfg, err == nil, err
}

// Parse decodes YAML from r, applies defaults, normalizes and validates.
// Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	applyDefaults(cfg)
	normalize(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// String renders the effective configuration as YAML, for --verbose dumps.
func (c *Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<unprintable config: %v>", err)
	}
	return string(out)
}

// FeedTitle returns the feed title, falling back to the site title.
func (c *Config) FeedTitle() string {
	if c.Feed.Title != "" {
		return c.Feed.Title
	}
	return c.Site.Title
}

// PostURL returns the absolute published URL of a generated page.
func (c *Config) PostURL(page string) string {
	return c.Site.BaseURL + "/" + page
}
