package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/plus3/ambient/config"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Render a number of frames headless and save the last one as PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCapture(settings, captureOpts, log.Default())
	},
}

type captureOptions struct {
	Frames int
	Out    string
	Size   string
	Seed   uint64
}

var captureOpts captureOptions

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().IntVar(&captureOpts.Frames, "frames", 60, "ticks to run before capturing")
	captureCmd.Flags().StringVar(&captureOpts.Out, "out", "ambient.png", "output PNG file")
	captureCmd.Flags().StringVar(&captureOpts.Size, "size", "1280x720", "image size as WxH")
	captureCmd.Flags().Uint64Var(&captureOpts.Seed, "seed", 1, "random seed for the field")
}

func parseSize(s string) (w, h int, err error) {
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return 0, 0, errors.Wrapf(err, "size %q is not WxH", s)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, errors.Errorf("size %q must be positive", s)
	}
	return w, h, nil
}

func runCapture(s *config.Settings, opts captureOptions, logger *log.Logger) error {
	if opts.Frames < 1 {
		return errors.Errorf("need at least one frame, got %d", opts.Frames)
	}
	w, h, err := parseSize(opts.Size)
	if err != nil {
		return err
	}
	cfg, err := s.EngineConfig()
	if err != nil {
		return err
	}
	bg, err := s.Background()
	if err != nil {
		return err
	}

	hl, err := newHeadless(cfg, w, h, bg, rand.New(rand.NewPCG(opts.Seed, opts.Seed)), logger)
	if err != nil {
		return err
	}
	defer hl.close()

	for i := 0; i < opts.Frames; i++ {
		hl.step()
	}

	f, err := os.Create(opts.Out)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer f.Close()

	if err := hl.raster.WritePNG(f); err != nil {
		return err
	}

	stats := hl.engine.Stats()
	logger.Printf("Wrote %s: %dx%d after %d frames, %d connections", opts.Out, w, h, stats.Frames, stats.Connections)
	return f.Close()
}
