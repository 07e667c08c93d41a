// Package input abstracts the physical control devices (keyboard, MIDI
// surface) behind a single event stream consumed by the profile engine.
package input

import "errors"

// ErrDeviceUnavailable marks an input device that cannot be opened. It is
// checked once at startup and never retried.
var ErrDeviceUnavailable = errors.New("input device unavailable")

// Kind enumerates the discrete control events a device can produce.
type Kind int

const (
	// Increase steps the bandwidth up by the configured amount.
	Increase Kind = iota
	// Decrease steps the bandwidth down.
	Decrease
	// TriggerOutage starts the scripted link outage.
	TriggerOutage
	// TriggerVRamp starts the V-shaped bandwidth ramp.
	TriggerVRamp
	// TriggerRandomWalk starts the randomized walk.
	TriggerRandomWalk
	// SetAbsolute sets the bandwidth from a slider position (MIDI only).
	SetAbsolute
)

func (k Kind) String() string {
	switch k {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	case TriggerOutage:
		return "outage"
	case TriggerVRamp:
		return "v-ramp"
	case TriggerRandomWalk:
		return "random-walk"
	case SetAbsolute:
		return "set-absolute"
	}
	return "unknown"
}

// Event is a single control event. Level carries the 0-127 slider position
// for SetAbsolute and is zero otherwise.
type Event struct {
	Kind  Kind
	Level int
}

// Source produces a lazy, infinite, non-restartable stream of control
// events. The channel closes when the device shuts down; the stream cannot
// be restarted afterwards.
type Source interface {
	Events() <-chan Event
	Close() error
}
