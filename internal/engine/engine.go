// Package engine interprets control events against the bandwidth state and
// drives the published signal through one of four profiles: manual adjust,
// scripted outage, V-shaped ramp, and randomized walk.
package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"

	"linkctl/internal/control"
	"linkctl/internal/input"
	"linkctl/internal/link"
	"linkctl/internal/logging"
	"linkctl/internal/trace"
)

// Publisher is the write side of the control channel.
type Publisher interface {
	Publish(rec control.Record) error
}

// Feedback renders state to the operator. It is write-only from the
// engine's perspective; nothing flows back except through an input Source.
type Feedback interface {
	Render(st link.Status)
	Beep()
}

// DeviceFeedback drives a control surface's motorized slider and outage
// button light. Optional; keyboard sessions run without one.
type DeviceFeedback interface {
	MoveSlider(pos int) error
	SetLight(on bool) error
}

// Timing groups the manual step size and the profile delays.
type Timing struct {
	StepMbps       float64
	OutageDuration time.Duration
	RampStepDelay  time.Duration
	WalkDuration   time.Duration
	WalkStepDelay  time.Duration
}

// DefaultTiming returns the production profile timings.
func DefaultTiming() Timing {
	return Timing{
		StepMbps:       0.1,
		OutageDuration: time.Second,
		RampStepDelay:  100 * time.Millisecond,
		WalkDuration:   10 * time.Second,
		WalkStepDelay:  500 * time.Millisecond,
	}
}

// Slow surfaces choke on per-step slider updates, so ramps only push
// device feedback every 4th step.
const deviceFeedbackStride = 4

// Options carries the optional engine collaborators.
type Options struct {
	Device    DeviceFeedback
	Tracer    trace.Writer
	SessionID string
	Clock     clock.Clock
	Rand      *rand.Rand
}

// Engine owns the bandwidth state exclusively and runs the control loop.
// Profiles run to completion; a second event cannot interrupt one in
// progress.
type Engine struct {
	link    *link.Link
	channel Publisher
	sink    Feedback
	device  DeviceFeedback
	tracer  trace.Writer
	session string
	timing  Timing
	clk     clock.Clock
	rng     *rand.Rand
	log     *slog.Logger
}

// New creates an Engine. The link is handed over by exclusive ownership
// and must not be mutated elsewhere afterwards.
func New(lnk *link.Link, channel Publisher, sink Feedback, timing Timing, opts Options) *Engine {
	e := &Engine{
		link:    lnk,
		channel: channel,
		sink:    sink,
		device:  opts.Device,
		tracer:  opts.Tracer,
		session: opts.SessionID,
		timing:  timing,
		clk:     opts.Clock,
		rng:     opts.Rand,
		log:     slog.Default(),
	}
	if e.clk == nil {
		e.clk = clock.New()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Run publishes the initial state and then processes events until the
// context is cancelled or the source's stream ends. Events arriving while
// a profile is in progress are not consumed until it completes.
func (e *Engine) Run(ctx context.Context, src input.Source) error {
	e.log = logging.FromContext(ctx)
	min, max := e.link.Bounds()
	e.log.Info("starting control loop", "min_mbps", min, "max_mbps", max)

	// The reader must see a well-defined record before the first input.
	if err := e.publish("startup"); err != nil {
		return err
	}
	e.sink.Render(e.link.Status())
	e.moveSlider(e.link.Position())

	for {
		select {
		case <-ctx.Done():
			e.log.Info("stopping control loop")
			return nil
		case ev, ok := <-src.Events():
			if !ok {
				e.log.Info("input stream ended")
				return nil
			}
			e.Handle(ev)
		}
	}
}

// Handle runs the profile for a single event to completion.
func (e *Engine) Handle(ev input.Event) {
	switch ev.Kind {
	case input.Increase:
		e.manual(e.link.Current()+e.timing.StepMbps, ev.Kind.String())
	case input.Decrease:
		e.manual(e.link.Current()-e.timing.StepMbps, ev.Kind.String())
	case input.SetAbsolute:
		e.manual(e.link.Bandwidth(ev.Level), ev.Kind.String())
	case input.TriggerOutage:
		e.outage()
	case input.TriggerVRamp:
		e.vRamp()
	case input.TriggerRandomWalk:
		e.randomWalk()
	}
}

// publish pushes the current state through the control channel and, when
// tracing, records the row. On failure the previous record stays the last
// durably observed value.
func (e *Engine) publish(profile string) error {
	rec := e.link.Record()
	if err := e.channel.Publish(rec); err != nil {
		e.log.Error("publish failed", "profile", profile, "err", err)
		return err
	}
	if e.tracer != nil {
		row := trace.Row{
			Timestamp:     e.clk.Now().UTC(),
			SessionID:     e.session,
			Profile:       profile,
			Mbps:          e.link.Current(),
			BitsPerSecond: rec.BitsPerSecond,
			LinkUp:        rec.Up(),
		}
		if err := e.tracer.Write(row); err != nil {
			e.log.Error("trace write failed", "err", err)
		}
	}
	return nil
}

// step publishes and then refreshes the display, in that order, so the
// reader's view is never more stale than the operator's.
func (e *Engine) step(profile string) {
	_ = e.publish(profile)
	e.sink.Render(e.link.Status())
}

func (e *Engine) moveSlider(pos int) {
	if e.device == nil {
		return
	}
	if err := e.device.MoveSlider(pos); err != nil {
		e.log.Debug("slider feedback failed", "err", err)
	}
}

func (e *Engine) setLight(on bool) {
	if e.device == nil {
		return
	}
	if err := e.device.SetLight(on); err != nil {
		e.log.Debug("light feedback failed", "err", err)
	}
}
