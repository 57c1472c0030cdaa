package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-starfield/internal/parallax"
)

var flagAltitude float64

var layersCmd = &cobra.Command{
	Use:   "layers",
	Short: "Print the derived layer parameters",
	Long: `Derive every layer for the configured camera altitude and print the
perspective-scaled size, density, star size and scroll factor of each.

Examples:
  starfield layers
  starfield layers --preset sparse
  starfield layers --altitude 20`,
	Run: runLayers,
}

func init() {
	layersCmd.Flags().Float64Var(&flagAltitude, "altitude", 0, "Camera altitude (0 = from config)")
}

func runLayers(_ *cobra.Command, _ []string) {
	cfg, label, err := loadConfig()
	exitOnError(err)

	altitude := cfg.Camera.Altitude
	if flagAltitude != 0 {
		altitude = flagAltitude
	}

	settings, err := cfg.ToSettings()
	exitOnError(err)

	layers, p, err := parallax.DeriveLayers(settings, altitude)
	exitOnError(err)

	fmt.Printf("Starfield layers - %s\n", label)
	fmt.Println()
	fmt.Printf("  altitude %.2f  distance %d  divider %.3f\n", altitude, settings.StarFieldDistance, p.Divider)
	fmt.Printf("  base %dx%d -> %dx%d  area x%.2f  density %d -> %d\n",
		settings.BaseWidth, settings.BaseHeight, p.Width, p.Height, p.AreaScale, settings.Density, p.ScaledDensity)
	fmt.Println()

	fmt.Printf("  %-5s  %-9s  %-7s  %-6s  %-8s  %-8s  %-5s  %-8s  %-7s\n",
		"Layer", "Size", "Stars", "Radius", "ColorInt", "SizeInt", "Shift", "Parallax", "Opacity")
	fmt.Printf("  %-5s  %-9s  %-7s  %-6s  %-8s  %-8s  %-5s  %-8s  %-7s\n",
		"-----", "----", "-----", "------", "--------", "-------", "-----", "--------", "-------")

	for _, l := range layers {
		fmt.Printf("  %-5d  %-9s  %-7d  %-6d  %-8d  %-8d  %-5d  %-8.4f  %-7.3f\n",
			l.Index,
			fmt.Sprintf("%dx%d", l.Width, l.Height),
			l.Density,
			l.StarSize,
			l.ColorInterval,
			l.SizeInterval,
			l.SizeShift,
			l.ParallaxScale,
			l.MaterialVisibility,
		)
	}
}
