// Package metrics records build and fetch metrics for newsbuild.
//
// Components receive a Recorder and call it unconditionally. NoopRecorder is
// the default; PrometheusRecorder is installed when the build is asked to
// export a textfile:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	// ... run the build with rec ...
//	_ = metrics.WriteTextfile(path, reg)
//
// The textfile is in the format read by the node_exporter textfile collector,
// which is how a one-shot CI step publishes metrics without serving HTTP.
package metrics
