// Package metrics provides Prometheus-compatible metrics for the XMLA endpoint.
//
// The package writes the Prometheus text exposition format
// (text/plain; version=0.0.4) itself. Supported metric types:
//
//   - Counter: monotonically increasing value (e.g., request counts)
//   - Histogram: distribution of values with fixed buckets (e.g., latencies)
//   - GaugeFunc: a value read at scrape time (e.g., open sessions)
//
// All metrics are safe for concurrent use.
//
// # XMLA Metrics
//
//   - xmlad_requests_total: requests by method and outcome (ok, fault)
//   - xmlad_faults_total: faults by XMLA fault code
//   - xmlad_request_duration_seconds: latency by method
//
// # Usage
//
//	reg := metrics.NewRegistry()
//	m := metrics.NewXMLA(reg)
//	reg.NewGaugeFunc("xmlad_sessions_active", "Open XMLA sessions", func() float64 {
//		return float64(store.Len())
//	})
//	mux.Handle("/metrics", reg.Handler())
package metrics
