package input

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters the rtmidi driver
)

// Mapping assigns controller numbers on a MIDI surface to control events.
type Mapping struct {
	Port     int
	SliderCC uint8
	OutageCC uint8
	VRampCC  uint8
	RandomCC uint8
}

// Translate maps a control-change message to an event. Slider moves become
// absolute positions; buttons fire on press (value > 0) and are silent on
// release. Unmapped controllers produce nothing.
func (m Mapping) Translate(controller, value uint8) (Event, bool) {
	switch controller {
	case m.SliderCC:
		return Event{Kind: SetAbsolute, Level: int(value)}, true
	case m.OutageCC:
		if value > 0 {
			return Event{Kind: TriggerOutage}, true
		}
	case m.VRampCC:
		if value > 0 {
			return Event{Kind: TriggerVRamp}, true
		}
	case m.RandomCC:
		if value > 0 {
			return Event{Kind: TriggerRandomWalk}, true
		}
	}
	return Event{}, false
}

// MIDI is a control-surface source. Only control-change messages are
// interpreted; note on/off and everything else is ignored. If the matching
// output port opens, it also drives the surface's motorized slider and the
// outage button light.
type MIDI struct {
	events    chan Event
	mapping   Mapping
	stop      func()
	send      func(midi.Message) error
	closeOnce sync.Once
}

// NewMIDI opens the configured input port and starts listening. A bad port
// index fails fast with ErrDeviceUnavailable before the control loop starts.
func NewMIDI(m Mapping) (*MIDI, error) {
	in, err := midi.InPort(m.Port)
	if err != nil {
		return nil, fmt.Errorf("%w: midi input port %d: %v", ErrDeviceUnavailable, m.Port, err)
	}

	d := &MIDI{events: make(chan Event, 16), mapping: m}
	d.stop, err = midi.ListenTo(in, d.receive)
	if err != nil {
		return nil, fmt.Errorf("%w: listen on midi port %d: %v", ErrDeviceUnavailable, m.Port, err)
	}

	// Feedback is best effort: surfaces without an input-numbered output
	// port simply get no light/slider updates.
	if out, err := midi.OutPort(m.Port); err == nil {
		if send, err := midi.SendTo(out); err == nil {
			d.send = send
		}
	}
	return d, nil
}

func (d *MIDI) receive(msg midi.Message, _ int32) {
	var ch, controller, value uint8
	if !msg.GetControlChange(&ch, &controller, &value) {
		return
	}
	ev, ok := d.mapping.Translate(controller, value)
	if !ok {
		return
	}
	select {
	case d.events <- ev:
	default:
		// Engine is mid-profile and the buffer is full; the surface will
		// send a fresh absolute position on the next touch anyway.
	}
}

// Events implements Source.
func (d *MIDI) Events() <-chan Event { return d.events }

// MoveSlider pushes a position to the surface's motorized slider.
func (d *MIDI) MoveSlider(pos int) error {
	if d.send == nil {
		return nil
	}
	if pos < 0 {
		pos = 0
	} else if pos > 127 {
		pos = 127
	}
	return d.send(midi.ControlChange(0, d.mapping.SliderCC, uint8(pos)))
}

// SetLight turns the outage button light on or off.
func (d *MIDI) SetLight(on bool) error {
	if d.send == nil {
		return nil
	}
	var v uint8
	if on {
		v = 127
	}
	return d.send(midi.ControlChange(0, d.mapping.OutageCC, v))
}

// Close stops the listener and closes the event stream. Idempotent.
func (d *MIDI) Close() error {
	d.closeOnce.Do(func() {
		if d.stop != nil {
			d.stop()
		}
		close(d.events)
	})
	return nil
}

// Ports lists the available MIDI input and output ports.
func Ports() (ins, outs []string) {
	for _, p := range midi.GetInPorts() {
		ins = append(ins, fmt.Sprintf("%d\t%s", p.Number(), p.String()))
	}
	for _, p := range midi.GetOutPorts() {
		outs = append(outs, fmt.Sprintf("%d\t%s", p.Number(), p.String()))
	}
	return ins, outs
}

// Shutdown releases the MIDI driver. Call once at process exit.
func Shutdown() {
	midi.CloseDriver()
}
