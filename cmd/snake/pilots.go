package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/pilot"
)

var pilotsCmd = &cobra.Command{
	Use:   "pilots",
	Short: "List available pilots",
	Long:  `Shows the pilots that can steer the snake in 'snake play --pilot' and 'snake train'.`,
	Args:  cobra.NoArgs,
	Run:   runPilots,
}

func runPilots(cmd *cobra.Command, args []string) {
	pilots := pilot.List()

	if len(pilots) == 0 {
		fmt.Println("No pilots available.")
		return
	}

	fmt.Println("Available pilots:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, p := range pilots {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, p := range pilots {
		fmt.Printf("  %-*s  %s\n", maxNameLen, p.Name, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'snake play --pilot <name>' to watch one play.")
}
