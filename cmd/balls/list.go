package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balls/internal/engine"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the difficulties",
	Long:  `Shows every difficulty with the best score recorded for it.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("balls", false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	store := openScores(logger)
	if store != nil {
		defer store.Close()
	}

	fmt.Println("Difficulties:")
	fmt.Println()
	fmt.Printf("  %-8s  %-8s  %s\n", "ID", "Title", "Best")
	fmt.Printf("  %-8s  %-8s  %s\n", "--", "-----", "----")

	for _, d := range engine.Difficulties {
		best := "-"
		if store != nil {
			if high, hsErr := store.HighScore(d.String()); hsErr == nil && high > 0 {
				best = fmt.Sprint(high)
			}
		}
		fmt.Printf("  %-8s  %-8s  %s\n", d.String(), d.Title(), best)
	}

	fmt.Println()
	fmt.Println("Run 'balls play --difficulty <id>' to play.")
}
