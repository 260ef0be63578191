package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/plus3/ambient/config"
)

var (
	configPath string
	settings   *config.Settings
)

var rootCmd = &cobra.Command{
	Use:           "ambient",
	Short:         "Animated particle field backdrop",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default is the user config dir)")
}

func loadSettings() error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			log.Printf("No config directory, using defaults: %v", err)
			settings = config.Default()
			return nil
		}
		path = p
	}

	s, err := config.Load(path, log.Default())
	if err != nil {
		return err
	}
	settings = s
	return nil
}
