package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	require.Same(t, reg, pr.Registry())

	pr.ObserveStageDuration("render_posts", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("render_posts", ResultSuccess)
	pr.IncStageResult("render_posts", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.SetPosts(2)
	pr.AddFileWritten(100)
	pr.AddFileWritten(50)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				values[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	require.InDelta(t, 2, values["blogbuilder_stage_results_total"], 0)
	require.InDelta(t, 1, values["blogbuilder_build_outcomes_total"], 0)
	require.InDelta(t, 2, values["blogbuilder_posts"], 0)
	require.InDelta(t, 2, values["blogbuilder_files_written_total"], 0)
	require.InDelta(t, 150, values["blogbuilder_bytes_written_total"], 0)
	require.InDelta(t, 1, values["blogbuilder_stage_duration_seconds"], 0)
	require.InDelta(t, 1, values["blogbuilder_build_duration_seconds"], 0)
}

func TestPrometheusRecorder_PrivateRegistry(t *testing.T) {
	a := NewPrometheusRecorder(nil)
	b := NewPrometheusRecorder(nil)
	require.NotSame(t, a.Registry(), b.Registry())
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetPosts(4)
	pr.IncBuildOutcome(BuildOutcomeFailed)

	path := filepath.Join(t.TempDir(), "blog.prom")
	require.NoError(t, pr.WriteTextfile(path))

	// #nosec G304 -- path is controlled by test.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "blogbuilder_posts 4")
	require.Contains(t, string(data), `blogbuilder_build_outcomes_total{outcome="failed"} 1`)
}

func TestWriteTextfile_BadPath(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	err := pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	require.Error(t, err)
}
