package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSite(); err != nil {
		return err
	}
	if err := cv.validateFeed(); err != nil {
		return err
	}
	if err := cv.validateDelimiters(); err != nil {
		return err
	}
	if err := cv.validateNavigation(); err != nil {
		return err
	}
	if err := cv.validateLogging(); err != nil {
		return err
	}
	return cv.validateBuild()
}

func (cv *configurationValidator) validateSite() error {
	u, err := url.Parse(cv.config.Site.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("site.base_url must be an absolute http(s) URL", "site.base_url", cv.config.Site.BaseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return invalid("site.base_url must not carry a query or fragment", "site.base_url", cv.config.Site.BaseURL)
	}
	return nil
}

func (cv *configurationValidator) validateFeed() error {
	ns := cv.config.Feed.TagNamespace
	if !strings.HasPrefix(ns, "tag:") || !strings.HasSuffix(ns, ":") || strings.Count(ns, ",") != 1 {
		return invalid("feed.tag_namespace must look like tag:<authority>,<date>:", "feed.tag_namespace", ns)
	}
	return nil
}

func (cv *configurationValidator) validateDelimiters() error {
	fm := cv.config.FrontMatter.Delimiter
	if strings.TrimSpace(fm) != fm || strings.ContainsAny(fm, "\r\n") {
		return invalid("front_matter.delimiter must be a single line without surrounding whitespace", "front_matter.delimiter", fm)
	}

	ph := cv.config.Templates.PlaceholderDelimiter
	for _, r := range ph {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '{' || r == '}' || unicode.IsSpace(r) {
			return invalid("templates.placeholder_delimiter must not contain identifier characters, braces or whitespace", "templates.placeholder_delimiter", ph)
		}
	}
	return nil
}

func (cv *configurationValidator) validateNavigation() error {
	for i, link := range cv.config.Navigation {
		if strings.TrimSpace(link.Label) == "" || strings.TrimSpace(link.Href) == "" {
			return ferrors.ValidationError("navigation links need a label and an href").
				WithContext("field", "navigation").
				WithContext("index", i).
				Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validateLogging() error {
	if err := logLevels.Validate(string(cv.config.Logging.Level)); err != nil {
		return err
	}
	return logFormats.Validate(string(cv.config.Logging.Format))
}

func (cv *configurationValidator) validateBuild() error {
	dir := cv.config.Build.PostsDir
	clean := filepath.Clean(dir)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return invalid("build.posts_dir must be relative to the source root", "build.posts_dir", dir)
	}
	return nil
}

func invalid(message, field, value string) error {
	return ferrors.ValidationError(message).
		WithContext("field", field).
		WithContext("value", value).
		Build()
}
