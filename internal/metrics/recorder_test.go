package metrics

import (
	"testing"
	"time"
)

// Compile-time checks.
var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("load_posts", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("load_posts", ResultSuccess)
	r.IncBuildOutcome(BuildOutcomeSuccess)
	r.SetPosts(3)
	r.AddFileWritten(10)
}
