package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-starfield/internal/core"
	"github.com/vovakirdan/tui-starfield/internal/parallax"
	"github.com/vovakirdan/tui-starfield/internal/storage"
	"github.com/vovakirdan/tui-starfield/internal/texture"
)

var (
	flagOutDir    string
	flagFormat    string
	flagScale     int
	flagNoCatalog bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate layer textures",
	Long: `Generate the star texture of every layer, write each one to a file and
record the batch in the texture catalog.

Files are named <label>-<batch>-layer<N>.<ext>. The seed used is printed and
stored so a batch can be regenerated exactly.

Examples:
  starfield generate
  starfield generate --preset nebula --seed 42
  starfield generate --format bmp --scale 4 --out ./textures
  starfield generate --no-catalog`,
	Run: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagOutDir, "out", "", "Output directory (default: export.dir from config)")
	generateCmd.Flags().StringVar(&flagFormat, "format", "", "Image format: png, bmp, tiff (default: export.format from config)")
	generateCmd.Flags().IntVar(&flagScale, "scale", 0, "Nearest-neighbour upscale factor (default: export.scale from config)")
	generateCmd.Flags().BoolVar(&flagNoCatalog, "no-catalog", false, "Do not record the textures in the catalog")
}

func runGenerate(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "generate")

	cfg, label, err := loadConfig()
	exitOnError(err)

	outDir := firstNonEmpty(flagOutDir, cfg.Export.Dir, ".")
	format, err := texture.ParseFormat(firstNonEmpty(flagFormat, cfg.Export.Format, "png"))
	exitOnError(err)
	scale := flagScale
	if scale <= 0 {
		scale = max(cfg.Export.Scale, 1)
	}

	settings, err := cfg.ToSettings()
	exitOnError(err)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mgr := parallax.NewManager(parallax.WithLogger(logger))
	exitOnError(mgr.Configure(settings))
	exitOnError(mgr.Attach(cfg.Camera.Altitude, core.NewRNG(uint64(seed))))
	defer mgr.Detach()

	exitOnError(os.MkdirAll(outDir, 0o755))

	var store *storage.Store
	if !flagNoCatalog {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open catalog, files only", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	batchID := uuid.New().String()
	var total int
	for _, layer := range mgr.Layers() {
		var buf bytes.Buffer
		exitOnError(texture.Encode(&buf, layer.Texture, format, scale))

		name := fmt.Sprintf("%s-%s-layer%d%s", label, batchID[:8], layer.Config.Index, format.Extension())
		path := filepath.Join(outDir, name)
		exitOnError(os.WriteFile(path, buf.Bytes(), 0o644))
		total += buf.Len()

		if store != nil {
			_, err := store.SaveLayer(storage.LayerRecord{
				BatchID:    batchID,
				Preset:     label,
				Seed:       seed,
				Altitude:   cfg.Camera.Altitude,
				LayerIndex: layer.Config.Index,
				Width:      layer.Texture.Width,
				Height:     layer.Texture.Height,
				Density:    layer.Config.Density,
				StarSize:   layer.Config.StarSize,
				Format:     string(format),
				Data:       buf.Bytes(),
			})
			if err != nil {
				logger.Warn("could not record layer", "layer", layer.Config.Index, "error", err)
			}
		}

		fmt.Printf("  %s  %dx%d  %d stars  %s\n",
			path, layer.Texture.Width*scale, layer.Texture.Height*scale, layer.Config.Density, humanize.Bytes(uint64(buf.Len())))
	}

	fmt.Println()
	fmt.Printf("Batch %s (seed %d): %d layers, %s\n", batchID, seed, len(mgr.Layers()), humanize.Bytes(uint64(total)))
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
