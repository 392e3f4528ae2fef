package build

import (
	"time"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StagePrepareOutput StageName = "prepare_output"
	StageLoadPosts     StageName = "load_posts"
	StageRenderPosts   StageName = "render_posts"
	StageRenderHome    StageName = "render_home"
	StageWriteFeeds    StageName = "write_feeds"
	StageVerifyLinks   StageName = "verify_links"
)

// stageSkipped marks a stage that chose not to run.
type stageSkipped struct{ reason string }

func (s stageSkipped) Error() string { return "stage skipped: " + s.reason }

// buildState carries data between stages of one Run.
type buildState struct {
	index  post.Index
	report *Report
}

// Stage is one step of the pipeline.
type Stage func(bs *buildState) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

func (g *Generator) pipeline() []StageDef {
	return []StageDef{
		{StagePrepareOutput, g.stagePrepareOutput},
		{StageLoadPosts, g.stageLoadPosts},
		{StageRenderPosts, g.stageRenderPosts},
		{StageRenderHome, g.stageRenderHome},
		{StageWriteFeeds, g.stageWriteFeeds},
		{StageVerifyLinks, g.stageVerifyLinks},
	}
}

// runStages executes stages in order, recording timing and stopping on the
// first error.
func (g *Generator) runStages(bs *buildState, stages []StageDef) error {
	for _, st := range stages {
		t0 := time.Now()
		err := st.Fn(bs)
		dur := time.Since(t0)

		res := StageResultSuccess
		var skipped stageSkipped
		switch {
		case err == nil:
		case asSkipped(err, &skipped):
			res, err = StageResultSkipped, nil
		default:
			res = StageResultFatal
		}

		bs.report.recordStage(st.Name, res, dur)
		g.recorder.ObserveStageDuration(string(st.Name), dur)
		g.recorder.IncStageResult(string(st.Name), metricsResult(res))

		switch res {
		case StageResultFatal:
			g.logger.Error("Stage failed",
				logfields.Stage(string(st.Name)),
				logfields.Duration(dur),
				logfields.Category(string(ferrors.GetCategory(err))),
				logfields.Error(err))
			if _, ok := ferrors.AsClassified(err); !ok {
				err = ferrors.WrapError(err, ferrors.CategoryInternal, "stage failed").
					WithContext("stage", string(st.Name)).
					Fatal().
					Build()
			}
			return err
		case StageResultSkipped:
			g.logger.Debug("Stage skipped", logfields.Stage(string(st.Name)), "reason", skipped.reason)
		default:
			g.logger.Debug("Stage completed", logfields.Stage(string(st.Name)), logfields.Duration(dur))
		}
	}
	return nil
}

func asSkipped(err error, target *stageSkipped) bool {
	s, ok := err.(stageSkipped)
	if ok {
		*target = s
	}
	return ok
}

func metricsResult(res StageResult) metrics.ResultLabel {
	switch res {
	case StageResultFatal:
		return metrics.ResultFatal
	case StageResultSkipped:
		return metrics.ResultSkipped
	default:
		return metrics.ResultSuccess
	}
}
