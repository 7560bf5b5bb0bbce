package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balls/internal/config"
	"github.com/vovakirdan/tui-balls/internal/game"
	"github.com/vovakirdan/tui-balls/internal/platform/tui"
	"github.com/vovakirdan/tui-balls/internal/savegame"
)

var (
	flagDifficulty string
	flagLoad       string
	flagSlot       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round in the terminal.

Controls:
  Left/Right/h/l  - Move the aim
  Shift+Left/H    - Nudge the aim
  Up/Down/k/j     - Raise or lower the aim
  Mouse           - Aim with the pointer, click to launch
  Space/Enter     - Launch
  P               - Pause a running shot
  S               - Quick save
  R               - Restart (after game over)
  Q/Ctrl+C        - Quit

Difficulty options:
  simple  - Blocks hold about half the balls per shot
  normal  - Blocks hold about one volley (the default)
  hard    - Blocks hold about one and a half volleys
  compete - Block values grow faster, every new row carries a +1 ball tile

Examples:
  balls play
  balls play --difficulty hard
  balls play --load run.balls
  balls play --slot quicksave`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: simple, normal, hard, compete")
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Resume a record file")
	playCmd.Flags().StringVar(&flagSlot, "slot", "", "Resume a save slot")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagLoad != "" && flagSlot != "" {
		exitf("--load and --slot cannot be used together")
	}

	cfg, opts, err := loadSettings()
	if err != nil {
		exitf("%v", err)
	}
	if flagDifficulty != "" {
		if opts.Difficulty, err = config.ParseDifficulty(flagDifficulty); err != nil {
			exitf("%v", err)
		}
	}

	logger, closeLog, err := newLogger("balls", true)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()
	opts.Logger = logger

	scores := openScores(logger)
	saves := openSaves(cfg, logger)
	defer func() {
		if scores != nil {
			scores.Close()
		}
	}()

	session := game.New(opts)
	if record, loadErr := loadRecord(saves); loadErr != nil {
		exitf("%v", loadErr)
	} else if record != nil {
		if err := session.Restore(record); err != nil {
			exitf("%v", err)
		}
	}

	runCfg := runtimeConfig(cfg, opts.Seed)
	if _, err := tui.Run(session, tuiDeps(cfg, scores, saves, logger), runCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// loadRecord reads the record named by --load or --slot, nil if neither
// is set.
func loadRecord(saves *savegame.Store) ([]byte, error) {
	switch {
	case flagLoad != "":
		return savegame.ReadFile(flagLoad)
	case flagSlot != "":
		if saves == nil {
			return nil, fmt.Errorf("save slots are not available")
		}
		return saves.Load(flagSlot)
	}
	return nil, nil
}
