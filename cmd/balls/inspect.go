package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-balls/internal/game"
	"github.com/vovakirdan/tui-balls/internal/savegame"
)

var flagInspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Describe a saved record",
	Long: `Decode a record file and print its counters, grid and live balls.

Formats:
  text - Human readable (default)
  yaml - Machine readable

Examples:
  balls inspect run.balls
  balls inspect run.balls --format yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&flagInspectFormat, "format", "text", "Output format: text, yaml")
}

func runInspect(_ *cobra.Command, args []string) {
	record, err := savegame.ReadFile(args[0])
	if err != nil {
		exitf("%v", err)
	}
	sum, err := game.Summarize(record)
	if err != nil {
		exitf("%s: %v", args[0], err)
	}

	switch flagInspectFormat {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(sum); err != nil {
			exitf("%v", err)
		}
		enc.Close() //nolint:errcheck // stdout
	case "text":
		printSummary(sum)
	default:
		exitf("unknown format %q", flagInspectFormat)
	}
}

func printSummary(sum *game.Summary) {
	fmt.Printf("Version:     %d\n", sum.Version)
	fmt.Printf("Difficulty:  %s\n", sum.Difficulty)
	fmt.Printf("Score:       %d\n", sum.Score)
	fmt.Printf("Balls/shot:  %d\n", sum.BallsPerShot)
	fmt.Printf("Double:      %t\n", sum.DoubleScore)
	fmt.Printf("Start x:     %.1f\n", sum.StartX)
	fmt.Printf("Over:        %t\n", sum.Over)
	fmt.Println()

	for _, row := range sum.Rows {
		fmt.Printf("  %s\n", row)
	}

	if sum.Shot == nil {
		fmt.Println()
		fmt.Println("No shot in progress.")
		return
	}

	s := sum.Shot
	fmt.Println()
	fmt.Printf("Shot: %d balls, %d stopped, %d to spawn, %d in flight\n",
		s.Total, s.Stopped, s.Remaining, s.InFlight)
	for i, b := range s.Balls {
		fmt.Printf("  %-3d pos (%7.1f, %7.1f)  vel (%6.2f, %6.2f)\n", i+1, b.X, b.Y, b.VX, b.VY)
	}
}
