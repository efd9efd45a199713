// Package status keeps runtime counters for the game loop and pools
package status

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Registry is the metrics facade shared by the game
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[AtomicFloat]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[AtomicFloat](),
	}
}

// Counter returns a named counter
func (r *Registry) Counter(name string) *atomic.Int64 {
	return r.Counters.Get(name)
}

// Gauge returns a named gauge
func (r *Registry) Gauge(name string) *AtomicFloat {
	return r.Gauges.Get(name)
}

// Snapshot copies every metric into a flat map
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.Counters.Len()+r.Gauges.Len())
	r.Counters.Range(func(k string, v *atomic.Int64) {
		out[k] = float64(v.Load())
	})
	r.Gauges.Range(func(k string, v *AtomicFloat) {
		out[k] = v.Get()
	})
	return out
}

// MarshalLogObject lets a registry be logged as a zap.Object field
func (r *Registry) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	r.Counters.Range(func(k string, v *atomic.Int64) {
		enc.AddInt64(k, v.Load())
	})
	r.Gauges.Range(func(k string, v *AtomicFloat) {
		enc.AddFloat64(k, v.Get())
	})
	return nil
}

// Field returns the registry as a zap field
func (r *Registry) Field() zap.Field {
	return zap.Object("metrics", r)
}
