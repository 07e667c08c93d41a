// Package link holds the bandwidth state of the emulated link and the
// mapping between bandwidth and the 0-127 slider domain of a control surface.
package link

import (
	"fmt"
	"math"

	"linkctl/internal/control"
)

// PacketSizeBytes is the fixed packet size of the emulated link; the
// packets-per-second readout on the status display derives from it.
const PacketSizeBytes = 1504

// SliderMax is the top position of the normalized slider domain.
const SliderMax = 127

// Link is the single mutable bandwidth state. It is owned exclusively by
// the profile engine and mutated only through its methods.
type Link struct {
	min     float64
	max     float64
	current float64
	up      bool
}

// New creates a Link at full bandwidth with the link up.
// Bounds must satisfy 0 < min <= max.
func New(minMbps, maxMbps float64) (*Link, error) {
	if minMbps <= 0 || minMbps > maxMbps {
		return nil, fmt.Errorf("invalid bandwidth bounds: min=%g max=%g", minMbps, maxMbps)
	}
	return &Link{min: minMbps, max: maxMbps, current: maxMbps, up: true}, nil
}

// Bounds returns the configured min and max bandwidth in Mbps.
func (l *Link) Bounds() (minMbps, maxMbps float64) { return l.min, l.max }

// Current returns the current bandwidth in Mbps.
func (l *Link) Current() float64 { return l.current }

// Up reports whether the link is running.
func (l *Link) Up() bool { return l.up }

// Clamp bounds a requested bandwidth to [min, max].
func (l *Link) Clamp(mbps float64) float64 {
	return math.Min(math.Max(mbps, l.min), l.max)
}

// Set clamps mbps to the bounds, stores it, and returns the applied value.
func (l *Link) Set(mbps float64) float64 {
	l.current = l.Clamp(mbps)
	return l.current
}

// Bandwidth maps a slider position to Mbps: min + p*(max-min)/127, clamped.
// Out-of-range positions are clamped, never rejected. The endpoints return
// the exact bounds; the interpolation can round a hair below max, which
// Clamp alone would not repair.
func (l *Link) Bandwidth(pos int) float64 {
	if pos <= 0 {
		return l.min
	}
	if pos >= SliderMax {
		return l.max
	}
	return l.Clamp(l.min + float64(pos)*(l.max-l.min)/SliderMax)
}

// PositionOf is the inverse mapping, rounded to the nearest position and
// clamped to [0, 127]. It is not an exact inverse at fractional boundaries
// but round-tripping stays within one slider step.
func (l *Link) PositionOf(mbps float64) int {
	if l.max == l.min {
		return SliderMax
	}
	p := int(math.Round((l.Clamp(mbps) - l.min) / (l.max - l.min) * SliderMax))
	if p < 0 {
		p = 0
	} else if p > SliderMax {
		p = SliderMax
	}
	return p
}

// Position returns the slider position of the current bandwidth.
func (l *Link) Position() int { return l.PositionOf(l.current) }

// SetPosition moves the link to the bandwidth of a slider position and
// returns the applied value.
func (l *Link) SetPosition(pos int) float64 {
	return l.Set(l.Bandwidth(pos))
}

// Down drops the link: bandwidth is reported as the minimum with the
// running flag cleared.
func (l *Link) Down() {
	l.current = l.min
	l.up = false
}

// Restore brings the link back up at the given bandwidth.
func (l *Link) Restore(mbps float64) {
	l.up = true
	l.Set(mbps)
}

// Record derives the wire record for the current state.
func (l *Link) Record() control.Record {
	return control.RecordFor(l.current, l.up)
}

// PacketsPerSecond returns the packet rate of the current bandwidth for
// the fixed packet size. Display only; the shaper works in bits.
func (l *Link) PacketsPerSecond() int {
	return int(l.current * 1e6 / (8 * PacketSizeBytes))
}

// Status is a read-only snapshot handed to feedback sinks.
type Status struct {
	Mbps    float64
	MinMbps float64
	MaxMbps float64
	Up      bool
	PPS     int
}

// Status snapshots the current state.
func (l *Link) Status() Status {
	return Status{
		Mbps:    l.current,
		MinMbps: l.min,
		MaxMbps: l.max,
		Up:      l.up,
		PPS:     l.PacketsPerSecond(),
	}
}
