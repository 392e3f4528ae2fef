package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// Global carries process-wide state into every command.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Src         string           `help:"Site source directory." default:"." type:"path"`
	Dst         string           `help:"Output directory (default <src>/_site). Deleted and recreated on every build." type:"path"`
	Config      string           `short:"c" help:"Site configuration file (default <src>/site.yaml when present)." type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFormat   string           `name:"log-format" help:"Log format: text or json (overrides logging.format)."`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus textfile metrics here after the build." type:"path"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" default:"1" help:"Build the site (default command)"`
	Init   InitCmd   `cmd:"" help:"Create a starter site.yaml and a first post"`
	Styles StylesCmd `cmd:"" help:"List available code highlighting styles"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	base := config.LoggingConfig{Level: config.LogLevelInfo, Format: config.LogFormatText}
	slog.SetDefault(c.loggingConfig(base).NewLogger(os.Stderr))
	return nil
}

// loggingConfig applies the command-line overrides to base.
func (c *CLI) loggingConfig(base config.LoggingConfig) config.LoggingConfig {
	if c.Verbose {
		base.Level = config.LogLevelDebug
	}
	if c.LogFormat != "" {
		base.Format = config.NormalizeLogFormat(c.LogFormat)
	}
	return base
}

// ConfigPath returns the explicit --config, or the default file in the
// source directory.
func (c *CLI) ConfigPath() string {
	if c.Config != "" {
		return c.Config
	}
	return filepath.Join(c.Src, config.DefaultFileName)
}

// LoadConfig loads --config, which must exist, or the optional default file.
func (c *CLI) LoadConfig(logger *slog.Logger) (*config.Config, error) {
	if c.Config != "" {
		return config.Load(c.Config)
	}
	cfg, found, err := config.LoadOptional(c.ConfigPath())
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Info("No site configuration found, using built-in defaults", "path", c.ConfigPath())
	}
	return cfg, nil
}
