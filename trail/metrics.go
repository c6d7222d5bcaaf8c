package trail

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/lixenwraith/cursor-trail/trail"

// instruments caches controller metric handles
type instruments struct {
	ticks   metric.Int64Counter
	moves   metric.Int64Counter
	markers metric.Int64UpDownCounter
}

// newInstruments creates the controller instruments, falling back to noop on error
func newInstruments(meter metric.Meter) *instruments {
	if meter == nil {
		meter = noop.Meter{}
	}
	ins := &instruments{
		ticks:   noop.Int64Counter{},
		moves:   noop.Int64Counter{},
		markers: noop.Int64UpDownCounter{},
	}

	if c, err := meter.Int64Counter("trail.ticks",
		metric.WithDescription("Frame updates applied to the trail")); err == nil {
		ins.ticks = c
	}
	if c, err := meter.Int64Counter("trail.pointer.moves",
		metric.WithDescription("Pointer moves observed by the trail")); err == nil {
		ins.moves = c
	}
	if c, err := meter.Int64UpDownCounter("trail.markers",
		metric.WithDescription("Live trail markers")); err == nil {
		ins.markers = c
	}
	return ins
}
