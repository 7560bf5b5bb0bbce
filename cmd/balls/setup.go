package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-balls/internal/config"
	"github.com/vovakirdan/tui-balls/internal/core"
	"github.com/vovakirdan/tui-balls/internal/game"
	"github.com/vovakirdan/tui-balls/internal/platform/tui"
	"github.com/vovakirdan/tui-balls/internal/savegame"
	"github.com/vovakirdan/tui-balls/internal/storage"
)

// exitHooks run before exitf ends the process, since os.Exit skips
// deferred calls.
var exitHooks []func()

// exitf prints an error, runs the exit hooks and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	runExitHooks()
	os.Exit(1)
}

// runExitHooks runs the registered hooks newest first and forgets them.
func runExitHooks() {
	for i := len(exitHooks) - 1; i >= 0; i-- {
		exitHooks[i]()
	}
	exitHooks = nil
}

// loadSettings reads the config and derives the round options from it and
// the global flags.
func loadSettings() (config.BallsConfig, game.Options, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, game.Options{}, err
	}
	opts, err := game.OptionsFromConfig(cfg)
	if err != nil {
		return cfg, game.Options{}, err
	}
	opts.Seed = flagSeed
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return cfg, opts, nil
}

// newLogger builds the command logger. Full-screen commands discard output
// unless --log-file is set, so log lines never land on the alt screen.
// The returned func closes the log file.
func newLogger(prefix string, fullScreen bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("bad --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("open log file: %w", openErr)
		}
		w = f
		var once sync.Once
		closeFn = func() { once.Do(func() { f.Close() }) } //nolint:errcheck // best effort on exit
		exitHooks = append(exitHooks, closeFn)
	case fullScreen:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// runtimeConfig sizes the screen from the terminal, 80x24 if unknown.
func runtimeConfig(cfg config.BallsConfig, seed int64) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	tickRate := cfg.Gameplay.TickRate
	if flagFPS > 0 {
		tickRate = flagFPS
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
		Seed:     seed,
	}
}

// openScores opens the score database. A failure is only a warning: the
// game still works without high scores.
func openScores(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

// openSaves opens the save slot directory, nil if it is unavailable.
func openSaves(cfg config.BallsConfig, logger *log.Logger) *savegame.Store {
	saves, err := savegame.Open(cfg.Saves.AppName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save directory: %v\n", err)
		logger.Warn("saves disabled", "app", cfg.Saves.AppName, "err", err)
		return nil
	}
	return saves
}

// tuiDeps wires the stores into the front-end. Nil stores stay nil
// interfaces.
func tuiDeps(cfg config.BallsConfig, scores *storage.Store, saves *savegame.Store, logger *log.Logger) tui.Deps {
	deps := tui.Deps{
		Logger:         logger,
		Player:         playerName(),
		QuickSlot:      cfg.Saves.QuickSlot,
		AutosaveOnQuit: cfg.Saves.AutosaveOnQuit,
	}
	if scores != nil {
		deps.Scores = scores
	}
	if saves != nil {
		deps.Saves = saves
	}
	return deps
}

func playerName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}
