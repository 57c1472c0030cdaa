package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-starfield/internal/platform/tui"
	"github.com/vovakirdan/tui-starfield/internal/storage"
)

var flagLimit int

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List generated textures",
	Long: `List the texture batches recorded by 'starfield generate'.

Subcommands inspect, extract or delete recorded textures.

Examples:
  starfield catalog
  starfield catalog show 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed
  starfield catalog extract 12 ./layer.png
  starfield catalog delete 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed
  starfield catalog browse`,
	Args: cobra.NoArgs,
	Run:  runCatalog,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <batch>",
	Short: "Show the layers of a batch",
	Args:  cobra.ExactArgs(1),
	Run:   runCatalogShow,
}

var catalogExtractCmd = &cobra.Command{
	Use:   "extract <layer-id> <file>",
	Short: "Write a recorded layer texture to a file",
	Args:  cobra.ExactArgs(2),
	Run:   runCatalogExtract,
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <batch>",
	Short: "Delete every layer of a batch",
	Args:  cobra.ExactArgs(1),
	Run:   runCatalogDelete,
}

var catalogBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively",
	Args:  cobra.NoArgs,
	Run:   runCatalogBrowse,
}

func init() {
	catalogCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of batches to list")

	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogExtractCmd)
	catalogCmd.AddCommand(catalogDeleteCmd)
	catalogCmd.AddCommand(catalogBrowseCmd)
}

// openCatalog opens the catalog database or exits.
func openCatalog() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening catalog database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runCatalog(_ *cobra.Command, _ []string) {
	store := openCatalog()
	defer store.Close()

	batches, err := store.Batches(flagLimit)
	exitOnError(err)

	fmt.Println("Texture catalog")
	fmt.Println()

	if len(batches) == 0 {
		fmt.Println("No textures recorded yet.")
		fmt.Println()
		fmt.Println("Run 'starfield generate' to add the first batch!")
		return
	}

	fmt.Printf("  %-36s  %-8s  %-20s  %-6s  %-9s  %s\n", "Batch", "Preset", "Seed", "Layers", "Size", "Created")
	fmt.Printf("  %-36s  %-8s  %-20s  %-6s  %-9s  %s\n", "-----", "------", "----", "------", "----", "-------")

	for _, b := range batches {
		fmt.Printf("  %-36s  %-8s  %-20d  %-6d  %-9s  %s\n",
			b.BatchID, b.Preset, b.Seed, b.Layers, humanize.Bytes(uint64(b.TotalBytes)), humanize.Time(b.CreatedAt))
	}
}

func runCatalogShow(_ *cobra.Command, args []string) {
	store := openCatalog()
	defer store.Close()

	layers, err := store.LayersInBatch(args[0])
	exitOnError(err)

	if len(layers) == 0 {
		fmt.Printf("No layers recorded for batch %s.\n", args[0])
		return
	}

	first := layers[0]
	fmt.Printf("Batch %s - %s, seed %d, altitude %.2f\n", first.BatchID, first.Preset, first.Seed, first.Altitude)
	fmt.Println()
	fmt.Printf("  %-6s  %-5s  %-9s  %-6s  %-6s  %-6s  %s\n", "ID", "Layer", "Size", "Stars", "Radius", "Format", "Bytes")
	fmt.Printf("  %-6s  %-5s  %-9s  %-6s  %-6s  %-6s  %s\n", "--", "-----", "----", "-----", "------", "------", "-----")
	for _, l := range layers {
		fmt.Printf("  %-6d  %-5d  %-9s  %-6d  %-6d  %-6s  %s\n",
			l.ID, l.LayerIndex, fmt.Sprintf("%dx%d", l.Width, l.Height), l.Density, l.StarSize, l.Format,
			humanize.Bytes(uint64(len(l.Data))))
	}
}

func runCatalogExtract(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitOnError(fmt.Errorf("invalid layer id %q", args[0]))
	}

	store := openCatalog()
	defer store.Close()

	layer, err := store.LoadLayer(id)
	exitOnError(err)

	exitOnError(os.WriteFile(args[1], layer.Data, 0o644))
	fmt.Printf("Wrote layer %d (%s, %s) to %s\n", layer.ID, layer.Format, humanize.Bytes(uint64(len(layer.Data))), args[1])
}

func runCatalogDelete(_ *cobra.Command, args []string) {
	store := openCatalog()
	defer store.Close()

	n, err := store.DeleteBatch(args[0])
	exitOnError(err)

	if n == 0 {
		fmt.Printf("No layers recorded for batch %s.\n", args[0])
		return
	}
	fmt.Printf("Deleted %d layers of batch %s.\n", n, args[0])
}

func runCatalogBrowse(_ *cobra.Command, _ []string) {
	store := openCatalog()
	defer store.Close()

	width, height := terminalSize()
	exitOnError(tui.RunCatalog(store, width, height))
}

// terminalSize returns the size of stdout, or 80x24 when unknown.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
