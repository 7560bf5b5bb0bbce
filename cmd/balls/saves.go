package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balls/internal/config"
	"github.com/vovakirdan/tui-balls/internal/game"
	"github.com/vovakirdan/tui-balls/internal/savegame"
)

var flagDeleteSlot string

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List or delete save slots",
	Long: `List the save slots with a short summary of each, or delete one.

Examples:
  balls saves
  balls saves --delete quicksave
  balls saves export quicksave run.balls
  balls saves import run.balls`,
	Args: cobra.NoArgs,
	Run:  runSaves,
}

var savesExportCmd = &cobra.Command{
	Use:   "export <slot> <file>",
	Short: "Write a slot to a record file",
	Args:  cobra.ExactArgs(2),
	Run:   runSavesExport,
}

var savesImportCmd = &cobra.Command{
	Use:   "import <file> [slot]",
	Short: "Store a record file in a slot",
	Long: `Store a record file in a slot. The slot name defaults to the file
name without its extension. The record is checked before it is stored.`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runSavesImport,
}

func init() {
	savesCmd.Flags().StringVar(&flagDeleteSlot, "delete", "", "Delete this slot")
	savesCmd.AddCommand(savesExportCmd)
	savesCmd.AddCommand(savesImportCmd)
}

func openSlotStore() *savegame.Store {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		exitf("%v", err)
	}
	saves, err := savegame.Open(cfg.Saves.AppName)
	if err != nil {
		exitf("%v", err)
	}
	return saves
}

func runSaves(_ *cobra.Command, _ []string) {
	saves := openSlotStore()

	if flagDeleteSlot != "" {
		if err := saves.Delete(flagDeleteSlot); err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Deleted %s\n", flagDeleteSlot)
		return
	}

	slots, err := saves.List()
	if err != nil {
		exitf("%v", err)
	}
	if len(slots) == 0 {
		fmt.Println("No saves yet.")
		return
	}

	fmt.Printf("  %-20s  %-8s  %-8s  %-5s  %s\n", "Slot", "Level", "Score", "Balls", "State")
	fmt.Printf("  %-20s  %-8s  %-8s  %-5s  %s\n", "----", "-----", "-----", "-----", "-----")
	for _, slot := range slots {
		record, loadErr := saves.Load(slot)
		if loadErr != nil {
			fmt.Printf("  %-20s  unreadable: %v\n", slot, loadErr)
			continue
		}
		sum, sumErr := game.Summarize(record)
		if sumErr != nil {
			fmt.Printf("  %-20s  invalid: %v\n", slot, sumErr)
			continue
		}
		state := "idle"
		switch {
		case sum.Over:
			state = "over"
		case sum.Shot != nil:
			state = "mid-shot"
		}
		fmt.Printf("  %-20s  %-8s  %-8d  %-5d  %s\n", slot, sum.Difficulty, sum.Score, sum.BallsPerShot, state)
	}
}

func runSavesExport(_ *cobra.Command, args []string) {
	saves := openSlotStore()
	record, err := saves.Load(args[0])
	if err != nil {
		exitf("%v", err)
	}
	path, err := savegame.WriteFile(args[1], record)
	if err != nil {
		exitf("%v", err)
	}
	fmt.Printf("Exported %s to %s\n", args[0], path)
}

func runSavesImport(_ *cobra.Command, args []string) {
	record, err := savegame.ReadFile(args[0])
	if err != nil {
		exitf("%v", err)
	}
	if _, err := game.Summarize(record); err != nil {
		exitf("%s: %v", args[0], err)
	}

	slot := savegame.SlotFromPath(args[0])
	if len(args) == 2 {
		slot = args[1]
	}

	saves := openSlotStore()
	if err := saves.Save(slot, record); err != nil {
		exitf("%v", err)
	}
	fmt.Printf("Imported %s as %s\n", args[0], slot)
}
