package main

import (
	"context"
	"image/color"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/plus3/ambient/config"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Tick the engine headless as fast as possible and print a report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench(cmd.Context(), settings, benchOpts, os.Stdout, log.Default())
	},
}

type benchOptions struct {
	Duration       time.Duration
	Points         int
	Size           string
	GCPauseMetrics bool
}

var benchOpts benchOptions

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().DurationVar(&benchOpts.Duration, "duration", 10*time.Second, "how long to run")
	benchCmd.Flags().IntVar(&benchOpts.Points, "points", 0, "override the configured point count")
	benchCmd.Flags().StringVar(&benchOpts.Size, "size", "1280x720", "surface size as WxH")
	benchCmd.Flags().BoolVar(&benchOpts.GCPauseMetrics, "gc-pause-metrics", false, "include GC pause metrics in the report")
}

func runBench(ctx context.Context, s *config.Settings, opts benchOptions, out io.Writer, logger *log.Logger) error {
	w, h, err := parseSize(opts.Size)
	if err != nil {
		return err
	}
	cfg, err := s.EngineConfig()
	if err != nil {
		return err
	}
	if opts.Points > 0 {
		cfg.Points = opts.Points
	}

	hl, err := newHeadless(cfg, w, h, color.NRGBA{A: 255}, rand.New(rand.NewPCG(1, 1)), logger)
	if err != nil {
		return err
	}
	defer hl.close()

	report := &Report{
		Duration:       opts.Duration,
		Points:         cfg.Points,
		Threshold:      cfg.Threshold,
		RecomputeEvery: cfg.RecomputeEvery,
		Width:          w,
		Height:         h,
		GCPauseMetrics: opts.GCPauseMetrics,
		TickTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Printf("Running %d points for %s...", cfg.Points, opts.Duration)
	ctx, cancel := context.WithTimeout(ctx, opts.Duration)
	defer cancel()

	startTime := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			tickStart := time.Now()
			hl.step()
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
			report.TotalTicks++
		}
	}
	report.TotalTime = time.Since(startTime)

	runtime.ReadMemStats(&report.MemStatsEnd)
	report.TickTime.Finalize()

	stats := hl.engine.Stats()
	report.Connections = stats.Connections
	report.Recomputes = stats.Recomputes
	report.Update, report.Render = hl.engine.SchedulerStats()

	return report.Generate(out)
}
