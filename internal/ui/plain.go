package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"

	"linkctl/internal/config"
	"linkctl/internal/link"
)

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorCyan  = "\x1b[36m"
)

// Plain prints the link state as ANSI-colored lines for sessions without
// the full-screen display.
type Plain struct {
	cfg  *config.Config
	out  io.Writer
	once sync.Once
}

// NewPlain creates a Plain sink writing to os.Stdout.
func NewPlain(cfg *config.Config) *Plain {
	return &Plain{cfg: cfg, out: os.Stdout}
}

func (p *Plain) printOverview() {
	fmt.Fprintln(p.out, "Link control session:")
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Control mode:\t%s\n", p.cfg.Mode)
	fmt.Fprintf(tw, "Control file:\t%s\n", p.cfg.ControlFile)
	fmt.Fprintf(tw, "Min bandwidth:\t%6.3f Mbps\n", p.cfg.MinMbps)
	fmt.Fprintf(tw, "Max bandwidth:\t%6.3f Mbps\n", p.cfg.MaxMbps)
	fmt.Fprintf(tw, "Manual step:\t%6.3f Mbps\n", p.cfg.StepMbps)
	tw.Flush()
	fmt.Fprintln(p.out)
}

// Render implements engine.Feedback.
func (p *Plain) Render(st link.Status) {
	p.once.Do(p.printOverview)
	state := colorGreen + "up" + colorReset
	if !st.Up {
		state = colorRed + "down" + colorReset
	}
	// Raw-mode terminals need the explicit carriage return.
	fmt.Fprintf(p.out, "%sbw=%7.3f Mbps%s pps=%4d link=%s\r\n",
		colorCyan, st.Mbps, colorReset, st.PPS, state)
}

// Beep implements engine.Feedback.
func (p *Plain) Beep() {
	fmt.Fprint(p.out, "\a")
}
