// Package metrics exposes Prometheus counters for record codec activity.
package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Operation names used as the "operation" label.
const (
	OpParse   = "parse"
	OpWrite   = "write"
	OpSave    = "save_state"
	OpLoad    = "load_state"
	OpArchive = "archive"
)

// Byte directions used as the "direction" label.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Metrics holds the Prometheus collectors for one process. Collectors are
// registered on a private registry so independent instances (tests, the
// CLI) never collide on the global default registry.
type Metrics struct {
	registry *prometheus.Registry

	recordOperationsTotal *prometheus.CounterVec
	recordBytesTotal      *prometheus.CounterVec
	keywordWarningsTotal  *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		recordOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sarmeta_record_operations_total",
				Help: "Total number of record codec operations",
			},
			[]string{"operation", "record", "status"},
		),

		recordBytesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sarmeta_record_bytes_total",
				Help: "Total number of binary record bytes read or written",
			},
			[]string{"direction"},
		),

		keywordWarningsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sarmeta_keyword_warnings_total",
				Help: "Total number of keyword-list load warnings",
			},
			[]string{"kind"},
		),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordOperation counts one codec operation on a record type.
func (m *Metrics) RecordOperation(operation, record string, err error) {
	if m == nil {
		return
	}
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.recordOperationsTotal.WithLabelValues(operation, record, status).Inc()
}

// RecordBytes adds n bytes in the given direction.
func (m *Metrics) RecordBytes(direction string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recordBytesTotal.WithLabelValues(direction).Add(float64(n))
}

// KeywordWarning counts one load warning of the given kind.
func (m *Metrics) KeywordWarning(kind string) {
	if m == nil {
		return
	}
	m.keywordWarningsTotal.WithLabelValues(kind).Inc()
}

// Snapshot gathers every counter into a flat map keyed by
// name{label="value",...}.
func (m *Metrics) Snapshot() (map[string]float64, error) {
	out := make(map[string]float64)
	if m == nil {
		return out, nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				labels = append(labels, lp.GetName()+"=\""+lp.GetValue()+"\"")
			}
			sort.Strings(labels)

			key := mf.GetName()
			if len(labels) > 0 {
				key += "{" + strings.Join(labels, ",") + "}"
			}
			out[key] = metric.GetCounter().GetValue()
		}
	}
	return out, nil
}
