package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-starfield/internal/registry"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List all available presets",
	Long:  `Shows a list of all starfield presets registered in the program.`,
	Run:   runPresets,
}

func runPresets(_ *cobra.Command, _ []string) {
	presets := registry.List()

	if len(presets) == 0 {
		fmt.Println("No presets available.")
		return
	}

	fmt.Println("Available presets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, p := range presets {
		maxIDLen = max(maxIDLen, len(p.ID))
		maxTitleLen = max(maxTitleLen, len(p.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	for _, p := range presets {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, p.ID, maxTitleLen, p.Title, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'starfield preview --preset <id>' to watch one.")
}
