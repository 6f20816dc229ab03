package bench

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/chunkset"
)

var _ chunkset.MetricsCollector = (*Prometheus)(nil)

// Prometheus exports pass latencies, set sizes and snapshot IO.
// It implements Recorder and chunkset.MetricsCollector.
type Prometheus struct {
	passLatency   *prometheus.HistogramVec
	sizeBytes     *prometheus.GaugeVec
	bitsPerValue  *prometheus.GaugeVec
	opLatency     *prometheus.HistogramVec
	snapshotBytes *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		passLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chunkbench_pass_seconds",
			Help:    "Duration of one benchmark pass",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"encoding", "mode"}),
		sizeBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "chunkbench_size_bytes",
			Help: "Summed size of the loaded sets",
		}, []string{"encoding"}),
		bitsPerValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "chunkbench_bits_per_value",
			Help: "Storage cost per stored value",
		}, []string{"encoding"}),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chunkbench_operation_latency_seconds",
			Help:    "Latency of snapshot and union operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		snapshotBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chunkbench_snapshot_bytes_total",
			Help: "Bytes written and read by snapshot operations",
		}, []string{"op"}),
	}

	reg.MustRegister(p.passLatency, p.sizeBytes, p.bitsPerValue, p.opLatency, p.snapshotBytes)
	return p
}

// Observe implements Recorder.
func (p *Prometheus) Observe(encoding string, mode Mode, d time.Duration) {
	p.passLatency.WithLabelValues(encoding, string(mode)).Observe(d.Seconds())
}

// ObserveSuite records the size of a built suite.
func (p *Prometheus) ObserveSuite(s *Suite) {
	name := s.Encoding().Name()
	p.sizeBytes.WithLabelValues(name).Set(float64(s.SizeInBytes()))
	p.bitsPerValue.WithLabelValues(name).Set(s.BitsPerValue())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordSave implements chunkset.MetricsCollector.
func (p *Prometheus) RecordSave(bytes int, d time.Duration, err error) {
	p.opLatency.WithLabelValues("save", status(err)).Observe(d.Seconds())
	if err == nil {
		p.snapshotBytes.WithLabelValues("save").Add(float64(bytes))
	}
}

// RecordLoad implements chunkset.MetricsCollector.
func (p *Prometheus) RecordLoad(bytes int, d time.Duration, err error) {
	p.opLatency.WithLabelValues("load", status(err)).Observe(d.Seconds())
	if err == nil {
		p.snapshotBytes.WithLabelValues("load").Add(float64(bytes))
	}
}

// RecordUnion implements chunkset.MetricsCollector.
func (p *Prometheus) RecordUnion(_ int, d time.Duration, err error) {
	p.opLatency.WithLabelValues("union", status(err)).Observe(d.Seconds())
}
