package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balls/internal/config"
	"github.com/vovakirdan/tui-balls/internal/engine"
	"github.com/vovakirdan/tui-balls/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for a difficulty, or for every
difficulty when none is given.

Examples:
  balls scores
  balls scores hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	difficulties := engine.Difficulties
	if len(args) == 1 {
		d, err := config.ParseDifficulty(args[0])
		if err != nil {
			exitf("%v", err)
		}
		difficulties = []engine.Difficulty{d}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	for i, d := range difficulties {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, d); err != nil {
			exitf("retrieving scores: %v", err)
		}
	}
}

func printScores(store *storage.Store, d engine.Difficulty) error {
	scores, err := store.TopScores(d.String(), 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", d.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-12s  %s\n", "Rank", "Score", "Balls", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-12s  %s\n", "----", "-----", "-----", "------", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5d  %-12s  %s\n", i+1, entry.Score, entry.Balls, entry.Player, dateStr)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
	return nil
}
