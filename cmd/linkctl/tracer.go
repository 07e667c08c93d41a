package main

import (
	"os"

	"linkctl/internal/config"
	"linkctl/internal/trace"
)

// newTracer assembles the trace writers from config and environment.
// It returns a nil writer when tracing is off, plus a cleanup function
// closing any files.
func newTracer(cfg *config.Config) (trace.Writer, func(), error) {
	cleanup := func() {}
	var writers []trace.Writer

	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" {
		w, err := trace.NewGreptimeWriter(endpoint, "public", os.Getenv("BANDWIDTH_TRACE_TABLE"))
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, w)
	}

	// Stdout rows only make sense without the full-screen display.
	if cfg.TraceStdout && !cfg.UI {
		writers = append(writers, trace.NewStdoutWriter())
	}

	if cfg.TraceFile != "" {
		fw, err := trace.NewFileWriter(cfg.TraceFile)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, fw)
		cleanup = func() { fw.Close() }
	}

	switch len(writers) {
	case 0:
		return nil, cleanup, nil
	case 1:
		return writers[0], cleanup, nil
	}
	return trace.NewMultiWriter(writers...), cleanup, nil
}
