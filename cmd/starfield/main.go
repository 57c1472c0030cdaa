// starfield generates layered parallax star textures and previews them in the terminal.
//
// Usage:
//
//	starfield presets             - List available presets
//	starfield layers              - Print the derived layer table
//	starfield generate            - Write layer textures to files and the catalog
//	starfield catalog             - Inspect generated textures
//	starfield preview             - Animated terminal preview
//	starfield serve               - Start SSH server for remote previews
//
// Global flags:
//
//	--seed <value>     - RNG seed for reproducible textures
//	--db <path>        - Catalog database path (default: ~/.starfield/catalog.db)
//	--config <path>    - Starfield YAML config
//	--preset <id>      - Start from a registered preset
//	--log-level <lvl>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-starfield/internal/config"
	"github.com/vovakirdan/tui-starfield/internal/registry"

	// Import presets to register them
	_ "github.com/vovakirdan/tui-starfield/internal/presets"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starfield",
	Short: "Starfield - procedural parallax star layers in your terminal",
	Long: `Starfield generates randomized star textures for a stack of parallax
layers scaled to a camera's perspective, and scrolls them in the terminal
while following a focused ship.

Available commands:
  presets   - Show all registered presets
  layers    - Print the per-layer parameters for a camera altitude
  generate  - Generate layer textures and record them in the catalog
  catalog   - List, extract or delete generated textures
  preview   - Animated terminal preview
  serve     - Start SSH server for remote previews

Examples:
  starfield presets
  starfield layers --preset dense
  starfield generate --preset nebula --format png --scale 4
  starfield preview
  starfield serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.LoadDotEnv(""); err != nil {
			return err
		}
		flags := cmd.Flags()
		if !flags.Changed("seed") {
			flagSeed = config.EnvInt64(config.EnvSeed, flagSeed)
		}
		if !flags.Changed("db") {
			flagDBPath = config.EnvString(config.EnvDB, flagDBPath)
		}
		if !flags.Changed("preset") {
			flagPreset = config.EnvString(config.EnvPreset, flagPreset)
		}
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.starfield/catalog.db", "Path to texture catalog database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom starfield config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Preset to start from (see 'starfield presets')")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(layersCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates a CLI logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// loadConfig resolves the configuration from --config, --preset or the
// default search path, then applies environment overrides. It also returns
// a label for catalog records.
func loadConfig() (config.StarFieldConfig, string, error) {
	var (
		cfg   config.StarFieldConfig
		label string
		err   error
	)

	switch {
	case flagConfig != "":
		cfg, err = config.Load(flagConfig)
		label = "custom"
	case flagPreset != "":
		var p registry.Preset
		p, err = registry.Create(flagPreset)
		if err != nil {
			return cfg, "", fmt.Errorf("%w (run 'starfield presets' to list them)", err)
		}
		cfg = p.Config()
		label = p.ID()
	default:
		cfg, err = config.Load("")
		label = "default"
	}
	if err != nil {
		return cfg, "", err
	}

	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, "", err
	}
	return cfg, label, nil
}

// exitOnError prints the error the way every command reports failures.
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
