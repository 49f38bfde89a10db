package main

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opd-ai/vpp"
	"github.com/opd-ai/vpp/factory"
	"github.com/opd-ai/vpp/interfaces"
	vpptest "github.com/opd-ai/vpp/testing"
	"github.com/opd-ai/vpp/video"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Stream synthetic frames through one element",
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().Int("frames", 30, "Number of input frames")
	runCmd.Flags().Int("width", 1920, "Input width")
	runCmd.Flags().Int("height", 1080, "Input height")
	runCmd.Flags().String("interlace-mode", "progressive", "Input interlace mode: progressive, interleaved or mixed")
	runCmd.Flags().Int("fps", 30, "Input frame rate")
	runCmd.Flags().String("preset", "", "YAML preset applied on top of the defaults")
	runCmd.Flags().String("backend", "full", "Simulated backend: full, bob-only or none")
}

type runOptions struct {
	frames    int
	width     int
	height    int
	interlace video.InterlaceMode
	fps       int
	preset    string
	backend   string
}

func parseRunOptions(cmd *cobra.Command) (runOptions, error) {
	var o runOptions
	var err error
	flags := cmd.Flags()

	if o.frames, err = flags.GetInt("frames"); err != nil {
		return o, err
	}
	if o.width, err = flags.GetInt("width"); err != nil {
		return o, err
	}
	if o.height, err = flags.GetInt("height"); err != nil {
		return o, err
	}
	if o.fps, err = flags.GetInt("fps"); err != nil {
		return o, err
	}
	if o.preset, err = flags.GetString("preset"); err != nil {
		return o, err
	}
	if o.backend, err = flags.GetString("backend"); err != nil {
		return o, err
	}
	mode, err := flags.GetString("interlace-mode")
	if err != nil {
		return o, err
	}
	if o.interlace, err = video.ParseInterlaceMode(mode); err != nil {
		return o, err
	}

	if o.frames <= 0 || o.width <= 0 || o.height <= 0 || o.fps <= 0 {
		return o, errors.New("frames, width, height and fps must be positive")
	}
	return o, nil
}

func newDisplay(backend string) (*vpptest.SimulatedDisplay, error) {
	display := vpptest.NewSimulatedDisplay()
	switch backend {
	case "full":
	case "bob-only":
		display.ConfigureFilters(func(f *vpptest.SimulatedFilter) {
			f.SupportOnlyMethods(interfaces.DeinterlaceBob)
		})
	case "none":
		display.DisableFilters()
	default:
		return nil, errors.Newf("unknown backend %q", backend)
	}
	return display, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	opts, err := parseRunOptions(cmd)
	if err != nil {
		return err
	}

	display, err := newDisplay(opts.backend)
	if err != nil {
		return err
	}

	f := factory.NewElementFactory()
	if opts.preset != "" {
		if err := f.LoadPreset(opts.preset); err != nil {
			return err
		}
	}

	downstream := vpptest.NewRecordingDownstream()
	elem, err := f.CreateElement(display, downstream)
	if err != nil {
		return err
	}
	defer elem.Close()

	if err := elem.Start(); err != nil {
		return err
	}
	defer elem.Stop()

	sink := video.Info{
		Format:        video.FormatNV12,
		Width:         opts.width,
		Height:        opts.height,
		InterlaceMode: opts.interlace,
		FPSN:          opts.fps,
		FPSD:          1,
		Feature:       video.FeatureVASurface,
	}
	src, err := elem.FixateCaps(vpp.PadSink, sink, elem.TransformCaps(vpp.PadSink, nil))
	if err != nil {
		return err
	}
	if err := elem.SetCaps(sink, src); err != nil {
		return err
	}
	elem.DecideAllocation(true, true)

	logrus.WithFields(logrus.Fields{
		"function":    "runSimulation",
		"sink":        sink.String(),
		"src":         src.String(),
		"passthrough": elem.IsPassthrough(),
		"backend":     opts.backend,
	}).Info("Negotiated")

	frameDur := sink.FrameDuration()
	var failed int
	for i := 0; i < opts.frames; i++ {
		var flags video.BufferFlags
		if i == 0 {
			flags |= video.FlagDiscont
		}
		if opts.interlace != video.InterlaceProgressive {
			flags |= video.FlagInterlaced | video.FlagTFF
		}

		buf := vpptest.NewSurfaceBuffer(sink, time.Duration(i)*frameDur, flags)
		if err := elem.Chain(buf); err != nil {
			failed++
			logrus.WithFields(logrus.Fields{
				"function": "runSimulation",
				"frame":    i,
				"error":    err.Error(),
			}).Error("Frame failed")
		}
	}

	for i, out := range downstream.Buffers() {
		logrus.WithFields(logrus.Fields{
			"function":  "runSimulation",
			"index":     i,
			"timestamp": out.Timestamp,
			"duration":  out.Duration,
			"discont":   out.Has(video.FlagDiscont),
		}).Debug("Emitted frame")
	}

	var processCalls int
	for _, filter := range display.Filters() {
		processCalls += len(filter.CallsTo("Process"))
	}

	params := elem.Parameters()
	logrus.WithFields(logrus.Fields{
		"function":           "runSimulation",
		"frames_in":          opts.frames,
		"frames_out":         downstream.Len(),
		"frames_failed":      failed,
		"process_calls":      processCalls,
		"passthrough":        elem.IsPassthrough(),
		"deinterlace_method": params.DeinterlaceMethod.String(),
	}).Info("Simulation finished")

	if failed > 0 {
		return errors.Newf("%d of %d frames failed", failed, opts.frames)
	}
	return nil
}
