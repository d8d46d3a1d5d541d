package sppfile

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 单次运行的指标, 使用独立 registry
type Metrics struct {
	registry     *prometheus.Registry
	epochs       *prometheus.CounterVec
	observations prometheus.Histogram
	satellites   prometheus.Histogram
}

// NewMetrics 创建并注册指标
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		epochs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sppfile_epochs_total",
				Help: "Processed epochs by outcome.",
			},
			[]string{"outcome"},
		),
		observations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sppfile_epoch_observations",
				Help:    "Observations per epoch.",
				Buckets: prometheus.LinearBuckets(4, 4, 12),
			},
		),
		satellites: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sppfile_solution_satellites",
				Help:    "Valid satellites per successful solution.",
				Buckets: prometheus.LinearBuckets(4, 4, 12),
			},
		),
	}
	m.registry.MustRegister(m.epochs, m.observations, m.satellites)
	return m
}

// ObserveEpoch 记录一个历元
func (m *Metrics) ObserveEpoch(nobs int, out Outcome) {
	m.observations.Observe(float64(nobs))
	if out.Failed {
		m.epochs.WithLabelValues("failed").Inc()
		return
	}
	m.epochs.WithLabelValues("success").Inc()
	m.satellites.Observe(float64(out.Sol.NumSat))
}

// WriteTextfile 输出 node-exporter textfile 格式
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
