// Package metrics provides observability hooks for config generation.
//
// Components receive a Recorder and default to NoopRecorder, so the generate
// and check commands pay nothing for metrics. The watch command swaps in a
// PrometheusRecorder and serves it through HTTPHandler when
// watch.metrics_addr is configured.
package metrics
