package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct{}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g.Logger)
	if err != nil {
		return err
	}
	logger := root.loggingConfig(cfg.Logging).NewLogger(g.Stderr)
	if root.Verbose {
		logger.Debug("Effective configuration", "config", cfg.String())
	}

	opts := []build.Option{build.WithLogger(logger)}
	var prom *metrics.PrometheusRecorder
	if root.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		opts = append(opts, build.WithRecorder(prom))
	}

	gen, err := build.NewGenerator(cfg, root.Src, root.Dst, opts...)
	if err != nil {
		return err
	}
	if prom != nil && inside(root.MetricsFile, gen.OutputDir()) {
		return ferrors.ValidationError("metrics file must not be inside the output directory").
			WithContext("path", root.MetricsFile).
			Build()
	}

	report, runErr := gen.Run()
	if prom != nil {
		if err := prom.WriteTextfile(root.MetricsFile); err != nil {
			if runErr == nil {
				return err
			}
			logger.Warn("Failed to write metrics file", logfields.Path(root.MetricsFile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	_, _ = fmt.Fprintf(g.Stdout, "Built %d posts into %s (%s)\n", report.Posts, report.OutputDir, report.Summary())
	return nil
}

func inside(path, dir string) bool {
	absPath, err1 := filepath.Abs(path)
	absDir, err2 := filepath.Abs(dir)
	if err1 != nil || err2 != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
