package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balls/internal/game"
	"github.com/vovakirdan/tui-balls/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with a menu",
	Long: `Start in interactive menu mode.

Pick a difficulty, continue the quick save or browse the high scores.
Leaving a round with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  balls menu
  balls menu --fps 60
  balls menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, opts, err := loadSettings()
	if err != nil {
		exitf("%v", err)
	}

	logger, closeLog, err := newLogger("balls", true)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()
	opts.Logger = logger

	scores := openScores(logger)
	saves := openSaves(cfg, logger)
	deps := tuiDeps(cfg, scores, saves, logger)
	runCfg := runtimeConfig(cfg, opts.Seed)

	message := ""
	for {
		menuResult, err := tui.RunMenu(deps, runCfg, opts.Difficulty, message)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		message = ""

		// Update config with any size changes
		runCfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(deps.Scores, opts.Difficulty, runCfg.ScreenW, runCfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		roundOpts := opts
		roundOpts.Difficulty = menuResult.Difficulty
		if flagSeed == 0 {
			roundOpts.Seed = time.Now().UnixNano()
		}
		session := game.New(roundOpts)

		if menuResult.Continue {
			record, loadErr := deps.Saves.Load(deps.QuickSlot)
			if loadErr == nil {
				loadErr = session.Restore(record)
			}
			if loadErr != nil {
				logger.Warn("could not continue", "slot", deps.QuickSlot, "err", loadErr)
				message = "could not continue: " + loadErr.Error()
				continue
			}
		}

		back, runErr := tui.Run(session, deps, runCfg)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			break
		}
		if !back {
			break
		}
	}

	if scores != nil {
		scores.Close()
	}
}
