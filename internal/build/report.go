package build

import (
	"fmt"
	"time"
)

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusSuccess BuildStatus = "success"
	BuildStatusFailed  BuildStatus = "failed"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool { return s == BuildStatusSuccess }

// StageResult is how a single stage ended.
type StageResult string

const (
	StageResultSuccess StageResult = "success"
	StageResultFatal   StageResult = "fatal"
	StageResultSkipped StageResult = "skipped"
)

// Report summarizes one Run.
type Report struct {
	Status         BuildStatus
	OutputDir      string
	Posts          int
	Files          int
	Bytes          int
	Start          time.Time
	End            time.Time
	Stages         []StageName // in execution order
	StageResults   map[StageName]StageResult
	StageDurations map[StageName]time.Duration
	FailedStage    StageName
	BrokenLinks    int
}

func newReport(outputDir string) *Report {
	return &Report{
		OutputDir:      outputDir,
		Start:          time.Now(),
		StageResults:   make(map[StageName]StageResult),
		StageDurations: make(map[StageName]time.Duration),
	}
}

// Duration is the wall time of the build.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

func (r *Report) recordStage(name StageName, res StageResult, d time.Duration) {
	r.Stages = append(r.Stages, name)
	r.StageResults[name] = res
	r.StageDurations[name] = d
	if res == StageResultFatal {
		r.FailedStage = name
	}
}

func (r *Report) finish(err error) {
	r.End = time.Now()
	if err != nil {
		r.Status = BuildStatusFailed
		return
	}
	r.Status = BuildStatusSuccess
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("posts=%d files=%d bytes=%d duration=%s stages=%d outcome=%s",
		r.Posts, r.Files, r.Bytes, r.Duration().Truncate(time.Millisecond), len(r.Stages), string(r.Status))
}
