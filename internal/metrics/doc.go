// Package metrics provides the observability hooks of the render pipeline.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics stay optional everywhere:
//
//	pipeline := htmlfilter.New(filter).WithRecorder(metrics.NoopRecorder{})
//
// When the server runs with metrics enabled, a PrometheusRecorder registered
// on the server's registry is injected instead and exposed through HTTPHandler.
package metrics
