package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"linkctl/internal/config"
	"linkctl/internal/control"
	"linkctl/internal/engine"
	"linkctl/internal/input"
	"linkctl/internal/link"
	"linkctl/internal/logging"
	"linkctl/internal/ui"
)

var (
	ctlConfigPath  string
	ctlSchemaPath  string
	ctlFile        string
	ctlMode        string
	ctlMin         float64
	ctlMax         float64
	ctlStep        float64
	ctlPort        int
	ctlSliderCC    int
	ctlOutageCC    int
	ctlVRampCC     int
	ctlRandomCC    int
	ctlNoUI        bool
	ctlTraceFile   string
	ctlTraceStdout bool
	ctlDebug       bool
)

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Run the interactive control loop",
	Long:  "control reads operator input from the keyboard or a MIDI surface and publishes the resulting bandwidth signal until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(ctlConfigPath, ctlSchemaPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := logging.New(ctlDebug)
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), logger))
		defer cancel()

		ch, err := control.Open(cfg.ControlFile)
		if err != nil {
			return err
		}
		defer ch.Close()

		tracer, cleanup, err := newTracer(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		lnk, err := link.New(cfg.MinMbps, cfg.MaxMbps)
		if err != nil {
			return err
		}

		opts := engine.Options{
			Tracer:    tracer,
			SessionID: uuid.NewString(),
		}

		var src input.Source
		var sink engine.Feedback
		switch cfg.Mode {
		case config.ModeMIDI:
			dev, err := input.NewMIDI(input.Mapping{
				Port:     cfg.MIDI.Port,
				SliderCC: uint8(cfg.MIDI.SliderCC),
				OutageCC: uint8(cfg.MIDI.OutageCC),
				VRampCC:  uint8(cfg.MIDI.VRampCC),
				RandomCC: uint8(cfg.MIDI.RandomCC),
			})
			if err != nil {
				return err
			}
			defer input.Shutdown()
			defer dev.Close()
			opts.Device = dev
			if cfg.UI {
				u := ui.New(cfg)
				defer u.Close()
				sink = u
				// The display's key bindings stay live next to the surface.
				src = input.Merge(dev, u)
			} else {
				src = dev
				sink = ui.NewPlain(cfg)
			}
		default:
			if cfg.UI {
				u := ui.New(cfg)
				defer u.Close()
				src = u
				sink = u
			} else {
				kb, err := input.NewKeyboard()
				if err != nil {
					return err
				}
				defer kb.Close()
				src = kb
				sink = ui.NewPlain(cfg)
			}
		}

		timing := engine.DefaultTiming()
		timing.StepMbps = cfg.StepMbps
		eng := engine.New(lnk, ch, sink, timing, opts)

		done := make(chan error, 1)
		go func() { done <- eng.Run(ctx, src) }()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigs:
			cancel()
			// A profile in progress cannot be aborted; wait for it.
			err = <-done
		case err = <-done:
		}
		logger.Info("link control stopped")
		return err
	},
}

// applyFlags lets explicit command-line flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("file") {
		cfg.ControlFile = ctlFile
	}
	if f.Changed("mode") {
		cfg.Mode = ctlMode
	}
	if f.Changed("min") {
		cfg.MinMbps = ctlMin
	}
	if f.Changed("max") {
		cfg.MaxMbps = ctlMax
	}
	if f.Changed("step") {
		cfg.StepMbps = ctlStep
	}
	if f.Changed("midi-port") {
		cfg.MIDI.Port = ctlPort
	}
	if f.Changed("slider-cc") {
		cfg.MIDI.SliderCC = ctlSliderCC
	}
	if f.Changed("outage-cc") {
		cfg.MIDI.OutageCC = ctlOutageCC
	}
	if f.Changed("vramp-cc") {
		cfg.MIDI.VRampCC = ctlVRampCC
	}
	if f.Changed("random-cc") {
		cfg.MIDI.RandomCC = ctlRandomCC
	}
	if f.Changed("no-ui") {
		cfg.UI = !ctlNoUI
	}
	if f.Changed("trace-file") {
		cfg.TraceFile = ctlTraceFile
	}
	if f.Changed("trace-stdout") {
		cfg.TraceStdout = ctlTraceStdout
	}
}

func init() {
	f := controlCmd.Flags()
	f.StringVar(&ctlConfigPath, "config", "", "Path to session configuration YAML")
	f.StringVar(&ctlSchemaPath, "schema", "", "Path to CUE schema for config validation")
	f.StringVarP(&ctlFile, "file", "f", "/tmp/linkctl", "Path to the mmap control file")
	f.StringVarP(&ctlMode, "mode", "m", config.ModeKeyboard, "Input source: keyboard or midi")
	f.Float64Var(&ctlMin, "min", 0.012032, "Minimum bandwidth of the link in Mbps")
	f.Float64VarP(&ctlMax, "max", "b", 12.0, "Maximum bandwidth of the link in Mbps")
	f.Float64Var(&ctlStep, "step", 0.1, "Manual adjustment step in Mbps")
	f.IntVar(&ctlPort, "midi-port", 0, "MIDI port index")
	f.IntVar(&ctlSliderCC, "slider-cc", 0, "Controller number of the bandwidth slider")
	f.IntVar(&ctlOutageCC, "outage-cc", 41, "Controller number of the outage button")
	f.IntVar(&ctlVRampCC, "vramp-cc", 42, "Controller number of the V-ramp button")
	f.IntVar(&ctlRandomCC, "random-cc", 43, "Controller number of the random-walk button")
	f.BoolVar(&ctlNoUI, "no-ui", false, "Disable the full-screen display")
	f.StringVar(&ctlTraceFile, "trace-file", "", "Path to export the bandwidth trace (JSONL)")
	f.BoolVar(&ctlTraceStdout, "trace-stdout", false, "Print trace rows to stdout (requires --no-ui)")
	f.BoolVar(&ctlDebug, "debug", false, "Enable debug logging")
}
