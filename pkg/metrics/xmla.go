package metrics

import "time"

// XMLA holds the metrics recorded by the XMLA handler. A nil *XMLA records
// nothing.
type XMLA struct {
	Requests *Counter
	Faults   *Counter
	Duration *Histogram
}

// NewXMLA registers the XMLA metrics in r.
func NewXMLA(r *Registry) *XMLA {
	return &XMLA{
		Requests: r.NewCounter("xmlad_requests_total",
			"XMLA requests by SOAP method and outcome", "method", "outcome"),
		Faults: r.NewCounter("xmlad_faults_total",
			"SOAP faults by XMLA fault code", "code"),
		Duration: r.NewHistogram("xmlad_request_duration_seconds",
			"XMLA request latency in seconds", DefaultBuckets, "method"),
	}
}

// Observe records one request. method is the SOAP method, empty when the
// envelope could not be read; faultCode is empty on success.
func (m *XMLA) Observe(method, faultCode string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "unknown"
	}
	outcome := "ok"
	if faultCode != "" {
		outcome = "fault"
		_ = m.Faults.Inc(faultCode)
	}
	_ = m.Requests.Inc(method, outcome)
	_ = m.Duration.Observe(elapsed.Seconds(), method)
}
