package input

import "sync"

type merged struct {
	sources []Source
	events  chan Event
}

// Merge funnels several sources into one stream, so a session can take
// events from a control surface and the display's key bindings at the same
// time. The merged stream closes once every source stream has closed.
func Merge(sources ...Source) Source {
	m := &merged{sources: sources, events: make(chan Event, 16)}
	var wg sync.WaitGroup
	for _, s := range sources {
		wg.Add(1)
		go func(s Source) {
			defer wg.Done()
			for ev := range s.Events() {
				m.events <- ev
			}
		}(s)
	}
	go func() {
		wg.Wait()
		close(m.events)
	}()
	return m
}

// Events implements Source.
func (m *merged) Events() <-chan Event { return m.events }

// Close closes every underlying source. The first error wins.
func (m *merged) Close() error {
	var first error
	for _, s := range m.sources {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
