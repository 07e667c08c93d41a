package trace

import (
	"fmt"
	"io"
	"os"
	"time"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
	colorCyan   = "\x1b[36m"
	colorGray   = "\x1b[90m"
)

// StdoutWriter prints trace rows using ANSI colors.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter creates a StdoutWriter writing to os.Stdout.
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{out: os.Stdout}
}

// Write outputs a single trace row in colorized format.
func (w *StdoutWriter) Write(row Row) error {
	linkColor := colorGreen
	linkText := "up"
	if !row.LinkUp {
		linkColor = colorRed
		linkText = "down"
	}
	_, err := fmt.Fprintf(w.out, "%s[%s]%s %s%s%s %sbw=%.3f Mbps%s %sbps=%d%s %slink=%s%s\n",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, row.Profile, colorReset,
		colorCyan, row.Mbps, colorReset,
		colorYellow, row.BitsPerSecond, colorReset,
		linkColor, linkText, colorReset)
	return err
}
