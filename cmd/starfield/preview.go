package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-starfield/internal/platform/tui"
)

var flagLogFile string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Animated terminal preview",
	Long: `Scroll the starfield layers in the terminal while following a ship.

Without --preset or --config a menu lets you pick a preset first.

Controls:
  W/A/S/D, arrows  - Move the ship
  F                - Take the ship in or out of focus (the field freezes)
  ?                - Toggle full help
  Esc/B            - Back to the preset menu
  Q/Ctrl+C         - Quit

Examples:
  starfield preview
  starfield preview --preset nebula
  starfield preview --config ./my-field.yaml --seed 42
  starfield preview --log-file preview.log --log-level debug`,
	Run: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the screen is taken by the preview)")
}

func runPreview(_ *cobra.Command, _ []string) {
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		exitOnError(err)
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "preview")

	width, height := terminalSize()

	if flagPreset == "" && flagConfig == "" {
		exitOnError(tui.RunSession(tui.SessionOptions{
			Seed:   flagSeed,
			Width:  width,
			Height: height,
			Logger: logger,
		}))
		return
	}

	cfg, label, err := loadConfig()
	exitOnError(err)

	exitOnError(tui.RunPreview(tui.PreviewOptions{
		Config: cfg,
		Preset: label,
		Seed:   flagSeed,
		Width:  width,
		Height: height,
		Logger: logger,
	}))
}
