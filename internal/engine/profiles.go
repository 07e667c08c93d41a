package engine

import "linkctl/internal/link"

// manual is a single clamped step: update state, publish once, render once.
func (e *Engine) manual(mbps float64, profile string) {
	e.link.Set(mbps)
	e.step(profile)
	e.moveSlider(e.link.Position())
}

// outage drops the link for the configured duration and restores the
// previous bandwidth. Input is not consumed while it sleeps.
func (e *Engine) outage() {
	prev := e.link.Current()
	e.log.Info("link outage", "duration", e.timing.OutageDuration)

	e.link.Down()
	e.step("outage")
	e.sink.Beep()
	e.setLight(true)

	e.clk.Sleep(e.timing.OutageDuration)

	e.link.Restore(prev)
	e.step("outage")
	e.setLight(false)
	e.moveSlider(e.link.Position())
}

// vRamp walks the slider from the current position down to 0 and back up,
// publishing at every step, then restores the pre-ramp bandwidth exactly.
// The climb stops one step short of the start; the final value comes from
// the explicit restore so float rounding cannot drift it.
func (e *Engine) vRamp() {
	prev := e.link.Current()
	start := e.link.Position()
	e.log.Info("v-ramp", "start_position", start)

	steps := 0
	for p := start; p >= 0; p-- {
		e.rampStep(p, &steps)
	}
	for p := 1; p < start; p++ {
		e.rampStep(p, &steps)
	}

	e.link.Set(prev)
	e.step("v-ramp")
	e.moveSlider(e.link.Position())
}

func (e *Engine) rampStep(pos int, steps *int) {
	e.link.SetPosition(pos)
	e.step("v-ramp")
	if *steps%deviceFeedbackStride == 0 {
		e.moveSlider(pos)
	}
	*steps++
	e.clk.Sleep(e.timing.RampStepDelay)
}

// randomWalk jumps to a uniformly random slider position every step for
// the configured duration, then restores the pre-walk bandwidth exactly.
func (e *Engine) randomWalk() {
	prev := e.link.Current()
	steps := int(e.timing.WalkDuration / e.timing.WalkStepDelay)
	e.log.Info("random walk", "steps", steps)

	for i := 0; i < steps; i++ {
		pos := e.rng.Intn(link.SliderMax + 1)
		e.link.SetPosition(pos)
		e.step("random-walk")
		e.moveSlider(pos)
		e.clk.Sleep(e.timing.WalkStepDelay)
	}

	e.link.Set(prev)
	e.step("random-walk")
	e.moveSlider(e.link.Position())
}
