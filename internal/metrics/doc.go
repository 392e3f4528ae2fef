// Package metrics records build metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check. When a metrics file is
// requested, PrometheusRecorder collects into a private registry and
// WriteTextfile dumps it in the Prometheus text format for the node
// exporter's textfile collector.
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	gen, _ := build.NewGenerator(cfg, src, dst, build.WithRecorder(rec))
//	_, _ = gen.Run()
//	_ = rec.WriteTextfile("/var/lib/node_exporter/blog.prom")
package metrics
