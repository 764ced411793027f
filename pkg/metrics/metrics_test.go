package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exposition(t *testing.T, r *Registry) string {
	t.Helper()
	var b strings.Builder
	_, err := r.WriteTo(&b)
	require.NoError(t, err)
	return b.String()
}

func TestCounter(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	c := r.NewCounter("xmla_calls", "Calls", "method", "outcome")

	require.NoError(t, c.Inc("Discover", "ok"))
	require.NoError(t, c.Inc("Discover", "ok"))
	require.NoError(t, c.Add(3, "Execute", "fault"))

	assert.Equal(t, 2.0, c.Value("Discover", "ok"))
	assert.Equal(t, 3.0, c.Value("Execute", "fault"))
	assert.Zero(t, c.Value("Execute", "ok"))

	assert.ErrorIs(t, c.Inc("Discover"), ErrLabelCountMismatch)
	assert.ErrorIs(t, c.Add(-1, "Discover", "ok"), ErrNegativeCounterValue)

	samples := c.Collect()
	require.Len(t, samples, 2)
	assert.Equal(t, "Discover", samples[0].Labels["method"], "ordered by label values")
}

func TestHistogram(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	h := r.NewHistogram("latency", "Latency", []float64{1, 0.1}, "method")

	require.NoError(t, h.Observe(0.0625, "Execute"))
	require.NoError(t, h.Observe(0.09375, "Execute"))
	require.NoError(t, h.Observe(0.5, "Execute"))
	require.NoError(t, h.Observe(7, "Execute"))

	out := exposition(t, r)
	assert.Contains(t, out, "# TYPE latency histogram\n")
	assert.Contains(t, out, `latency_bucket{le="0.1",method="Execute"} 2`+"\n")
	assert.Contains(t, out, `latency_bucket{le="1",method="Execute"} 3`+"\n")
	assert.Contains(t, out, `latency_bucket{le="+Inf",method="Execute"} 4`+"\n")
	assert.Contains(t, out, `latency_sum{method="Execute"} 7.65625`+"\n")
	assert.Contains(t, out, `latency_count{method="Execute"} 4`+"\n")
}

func TestGaugeFunc(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	n := 3
	r.NewGaugeFunc("sessions", "Open sessions", func() float64 { return float64(n) })

	assert.Contains(t, exposition(t, r), "# TYPE sessions gauge\nsessions 3\n")
}

func TestRegistry_Duplicate(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.NewCounter("dup", "first")
	assert.Panics(t, func() { r.NewCounter("dup", "second") })
}

func TestRegistry_Handler(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.NewCounter("unused", "Never incremented")
	c := r.NewCounter("escaped", "Line one\nline two", "value")
	require.NoError(t, c.Inc(`say "hi"\`))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	assert.Equal(t, "text/plain; version=0.0.4; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotContains(t, string(body), "unused", "metrics without samples are skipped")
	assert.Contains(t, string(body), `# HELP escaped Line one\nline two`)
	assert.Contains(t, string(body), `escaped{value="say \"hi\"\\"} 1`)
}

func TestXMLA_Observe(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	m := NewXMLA(r)

	m.Observe("Discover", "", 20*time.Millisecond)
	m.Observe("Execute", "00HSBD02", time.Second)
	m.Observe("", "00USMC03", time.Millisecond)

	assert.Equal(t, 1.0, m.Requests.Value("Discover", "ok"))
	assert.Equal(t, 1.0, m.Requests.Value("Execute", "fault"))
	assert.Equal(t, 1.0, m.Requests.Value("unknown", "fault"))
	assert.Equal(t, 1.0, m.Faults.Value("00HSBD02"))

	var nilMetrics *XMLA
	assert.NotPanics(t, func() { nilMetrics.Observe("Discover", "", time.Second) })
}

func TestCounter_Concurrent(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	c := r.NewCounter("concurrent", "Concurrent increments", "worker")

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			label := "even"
			if i%2 == 1 {
				label = "odd"
			}
			for range 1000 {
				_ = c.Inc(label)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4000.0, c.Value("even"))
	assert.Equal(t, 4000.0, c.Value("odd"))
}
