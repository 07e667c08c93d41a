package input

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// KeyAction classifies a decoded key press.
type KeyAction int

const (
	// KeyIgnore means the key maps to nothing and the loop continues.
	KeyIgnore KeyAction = iota
	// KeyEvent means the key produced a control event.
	KeyEvent
	// KeyQuit means the operator asked to leave.
	KeyQuit
)

// Keyboard reads single key presses from a raw-mode terminal.
// Up and down arrows step the bandwidth, enter drops the link; anything
// else is discarded. 'q' and ctrl-c end the stream.
type Keyboard struct {
	events    chan Event
	fd        int
	saved     *term.State
	closeOnce sync.Once
}

// NewKeyboard switches stdin to raw mode and starts the read loop.
func NewKeyboard() (*Keyboard, error) {
	fd := int(os.Stdin.Fd())
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: raw terminal: %v", ErrDeviceUnavailable, err)
	}
	k := &Keyboard{events: make(chan Event), fd: fd, saved: saved}
	go k.readLoop()
	return k, nil
}

func (k *Keyboard) readLoop() {
	buf := make([]byte, 8)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			close(k.events)
			return
		}
		ev, action := ParseKey(buf[:n])
		switch action {
		case KeyQuit:
			close(k.events)
			return
		case KeyEvent:
			// Blocking send: key presses arriving while a profile runs
			// stay queued and take effect once the engine is idle again.
			k.events <- ev
		}
	}
}

// ParseKey decodes one raw terminal read into a control event.
func ParseKey(b []byte) (Event, KeyAction) {
	if len(b) == 0 {
		return Event{}, KeyIgnore
	}
	// Arrow keys arrive as CSI sequences in raw mode.
	if len(b) >= 3 && b[0] == 0x1b && b[1] == '[' {
		switch b[2] {
		case 'A':
			return Event{Kind: Increase}, KeyEvent
		case 'B':
			return Event{Kind: Decrease}, KeyEvent
		}
		return Event{}, KeyIgnore
	}
	switch b[0] {
	case '\r', '\n':
		return Event{Kind: TriggerOutage}, KeyEvent
	case 'q', 0x03: // ctrl-c
		return Event{}, KeyQuit
	}
	return Event{}, KeyIgnore
}

// Events implements Source.
func (k *Keyboard) Events() <-chan Event { return k.events }

// Close restores the terminal. Idempotent.
func (k *Keyboard) Close() error {
	var err error
	k.closeOnce.Do(func() {
		err = term.Restore(k.fd, k.saved)
	})
	return err
}
