package input

import (
	"testing"
	"time"
)

func TestParseKeyArrows(t *testing.T) {
	ev, action := ParseKey([]byte{0x1b, '[', 'A'})
	if action != KeyEvent || ev.Kind != Increase {
		t.Errorf("up arrow: got %v/%v", ev.Kind, action)
	}
	ev, action = ParseKey([]byte{0x1b, '[', 'B'})
	if action != KeyEvent || ev.Kind != Decrease {
		t.Errorf("down arrow: got %v/%v", ev.Kind, action)
	}
}

func TestParseKeyEnterTriggersOutage(t *testing.T) {
	for _, b := range [][]byte{{'\r'}, {'\n'}} {
		ev, action := ParseKey(b)
		if action != KeyEvent || ev.Kind != TriggerOutage {
			t.Errorf("enter %q: got %v/%v", b, ev.Kind, action)
		}
	}
}

func TestParseKeyQuit(t *testing.T) {
	for _, b := range [][]byte{{'q'}, {0x03}} {
		if _, action := ParseKey(b); action != KeyQuit {
			t.Errorf("%q: expected KeyQuit, got %v", b, action)
		}
	}
}

func TestParseKeyIgnoresEverythingElse(t *testing.T) {
	cases := [][]byte{{'x'}, {' '}, {0x1b, '[', 'C'}, {0x1b}, {}}
	for _, b := range cases {
		if _, action := ParseKey(b); action != KeyIgnore {
			t.Errorf("%q: expected KeyIgnore, got %v", b, action)
		}
	}
}

func TestMappingTranslateSlider(t *testing.T) {
	m := Mapping{SliderCC: 0, OutageCC: 41, VRampCC: 42, RandomCC: 43}
	ev, ok := m.Translate(0, 64)
	if !ok || ev.Kind != SetAbsolute || ev.Level != 64 {
		t.Errorf("slider: got %+v ok=%v", ev, ok)
	}
	// Slider at zero is still a valid absolute position.
	ev, ok = m.Translate(0, 0)
	if !ok || ev.Level != 0 {
		t.Errorf("slider zero: got %+v ok=%v", ev, ok)
	}
}

func TestMappingTranslateButtons(t *testing.T) {
	m := Mapping{SliderCC: 0, OutageCC: 41, VRampCC: 42, RandomCC: 43}
	cases := []struct {
		cc   uint8
		want Kind
	}{
		{41, TriggerOutage},
		{42, TriggerVRamp},
		{43, TriggerRandomWalk},
	}
	for _, tc := range cases {
		ev, ok := m.Translate(tc.cc, 127)
		if !ok || ev.Kind != tc.want {
			t.Errorf("cc %d press: got %+v ok=%v", tc.cc, ev, ok)
		}
		// Button release must not fire a second time.
		if _, ok := m.Translate(tc.cc, 0); ok {
			t.Errorf("cc %d release: expected no event", tc.cc)
		}
	}
}

func TestMappingTranslateUnmapped(t *testing.T) {
	m := Mapping{SliderCC: 0, OutageCC: 41, VRampCC: 42, RandomCC: 43}
	if _, ok := m.Translate(99, 127); ok {
		t.Error("unmapped controller produced an event")
	}
}

type stubSource struct{ ch chan Event }

func (s *stubSource) Events() <-chan Event { return s.ch }
func (s *stubSource) Close() error         { return nil }

func TestMergeFunnelsAllSources(t *testing.T) {
	a := &stubSource{ch: make(chan Event, 1)}
	b := &stubSource{ch: make(chan Event, 1)}
	m := Merge(a, b)

	a.ch <- Event{Kind: Increase}
	b.ch <- Event{Kind: TriggerOutage}

	got := map[Kind]bool{}
	for i := 0; i < 2; i++ {
		select {
		case ev := <-m.Events():
			got[ev.Kind] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for merged event")
		}
	}
	if !got[Increase] || !got[TriggerOutage] {
		t.Errorf("missing events from merged stream: %v", got)
	}
}

func TestMergeClosesAfterAllSources(t *testing.T) {
	a := &stubSource{ch: make(chan Event)}
	b := &stubSource{ch: make(chan Event)}
	m := Merge(a, b)

	close(a.ch)
	close(b.ch)

	select {
	case ev, ok := <-m.Events():
		if ok {
			t.Fatalf("unexpected event after close: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("merged stream did not close")
	}
}
