package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balls/internal/config"
	"github.com/vovakirdan/tui-balls/internal/engine"
	"github.com/vovakirdan/tui-balls/internal/game"
	"github.com/vovakirdan/tui-balls/internal/savegame"
)

var (
	flagSimShots      int
	flagSimDifficulty string
	flagSimOut        string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Auto-play a round without a terminal",
	Long: `Play shots at random targets until the round ends or --shots is
reached. Each shot is logged, and the final record can be written to a file
for 'balls play --load' or 'balls inspect'.

Examples:
  balls sim --shots 100
  balls sim --difficulty compete --seed 7 --out run.balls
  balls sim --log-level debug`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimShots, "shots", 20, "Maximum number of shots")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset: simple, normal, hard, compete")
	simCmd.Flags().StringVar(&flagSimOut, "out", "", "Write the final record to this file")
}

func runSim(_ *cobra.Command, _ []string) {
	_, opts, err := loadSettings()
	if err != nil {
		exitf("%v", err)
	}
	if flagSimDifficulty != "" {
		if opts.Difficulty, err = config.ParseDifficulty(flagSimDifficulty); err != nil {
			exitf("%v", err)
		}
	}
	if flagSimShots <= 0 {
		exitf("--shots must be positive")
	}

	logger, closeLog, err := newLogger("balls-sim", false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()
	opts.Logger = logger

	session := game.New(opts)
	aim := engine.NewSource(opts.Seed + 1)

	for shot := 1; shot <= flagSimShots && !session.Over(); shot++ {
		target := randomTarget(aim)
		ticks := session.PlayShot(target)
		b := session.Board()
		logger.Info("shot",
			"n", shot,
			"target", fmt.Sprintf("%.0f,%.0f", target.X, target.Y),
			"ticks", ticks,
			"score", b.Score(),
			"balls", b.BallsPerShot(),
			"start_x", fmt.Sprintf("%.1f", b.StartX()),
			"over", session.Over(),
		)
	}

	b := session.Board()
	fmt.Printf("Difficulty: %s\n", b.Difficulty().Title())
	fmt.Printf("Shots:      %d\n", session.Shots())
	fmt.Printf("Score:      %d\n", b.Score())
	fmt.Printf("Balls:      %d\n", b.BallsPerShot())
	fmt.Printf("Over:       %t\n", session.Over())

	if flagSimOut != "" {
		path, err := savegame.WriteFile(flagSimOut, session.Record())
		if err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Record:     %s\n", path)
	}
}

// randomTarget picks an aim point inside the playable area above the
// launch line.
func randomTarget(src engine.Source) engine.Vec2 {
	x := engine.Radius + src.Float64()*(engine.Width-2*engine.Radius)
	y := engine.Radius + src.Float64()*(engine.StartY()-engine.Side-engine.Radius)
	return engine.V(x, y)
}
