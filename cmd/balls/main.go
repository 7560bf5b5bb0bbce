// balls is a terminal ball-bouncing block breaker.
//
// Usage:
//
//	balls play               - Play a round
//	balls menu               - Start menu with continue and high scores
//	balls list               - List difficulties
//	balls scores [diff]      - Show high scores
//	balls serve              - Start SSH server for remote play
//	balls api                - Serve the leaderboard as JSON over HTTP
//	balls sim                - Auto-play a round without a terminal
//	balls inspect <file>     - Describe a saved record
//	balls saves              - Manage save slots
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: config tick_rate)
//	--seed <value>      - Set RNG seed for reproducible rounds
//	--db <path>         - Set database path (default: ~/.balls/scores.db)
//	--config <path>     - Use a custom balls.yaml
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "balls",
	Short: "Balls - bounce a volley of balls through numbered blocks",
	Long: `Balls is a terminal block breaker. Aim, launch a volley of balls and
break the numbered blocks before they reach the floor.

Available commands:
  play     - Play a round directly
  menu     - Interactive menu with continue and high scores
  list     - Show the difficulties
  scores   - View high scores
  serve    - Start SSH server for remote play
  api      - JSON leaderboard over HTTP
  sim      - Headless auto-play
  inspect  - Describe a saved record
  saves    - List, delete, import and export save slots

Examples:
  balls play --difficulty hard
  balls play --slot quicksave
  balls menu
  balls serve --ssh :2222
  balls sim --shots 50 --seed 7 --out run.balls`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = tick_rate from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.balls/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom balls.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(savesCmd)
}
