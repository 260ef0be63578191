package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/plus3/ambient/host/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Render the backdrop in a desktop window",
	RunE:  runWindow,
}

var windowDebug bool

func init() {
	rootCmd.AddCommand(windowCmd)
	windowCmd.Flags().BoolVar(&windowDebug, "debug", false, "show the imgui statistics overlay")
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := settings.EngineConfig()
	if err != nil {
		return err
	}
	bg, err := settings.Background()
	if err != nil {
		return err
	}

	return window.Run(window.Options{
		Title:      settings.Window.Title,
		Width:      settings.Window.Width,
		Height:     settings.Window.Height,
		Background: bg,
		Config:     cfg,
		IdlePause:  settings.IdlePause,
		Debug:      windowDebug || settings.Window.Debug,
		Logger:     log.Default(),
	})
}
