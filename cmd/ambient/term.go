package main

import (
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/plus3/ambient/host/term"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Render the backdrop in the terminal (Esc, q or Ctrl-C quits)",
	RunE:  runTerm,
}

func init() {
	rootCmd.AddCommand(termCmd)
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, err := settings.EngineConfig()
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if path := settings.Terminal.LogFile; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		defer f.Close()
		logger = log.New(f, "ambient ", log.LstdFlags)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return term.Run(ctx, term.Options{
		Config:    cfg,
		FPS:       settings.Terminal.FPS,
		IdlePause: settings.IdlePause,
		Logger:    logger,
	})
}
