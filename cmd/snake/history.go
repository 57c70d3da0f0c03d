package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagHistoryPilot string
	flagLimit        int
	flagPlain        bool
	flagClear        bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse journaled episodes",
	Long: `Show episodes recorded in the journal, grouped by pilot. Keyboard play is
journaled as "keyboard".

On a terminal this opens an interactive browser; use --plain (or pipe the
output) for a text listing.

Examples:
  snake history
  snake history --pilot qlearn --plain --limit 20
  snake history --pilot keyboard --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&flagHistoryPilot, "pilot", "", "Only show this pilot")
	f.IntVar(&flagLimit, "limit", 10, "Episodes to list in plain mode")
	f.BoolVar(&flagPlain, "plain", false, "Print a text listing instead of the interactive view")
	f.BoolVar(&flagClear, "clear", false, "Delete journaled episodes (of --pilot, or all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Journal.Enabled {
		return errors.New("the episode journal is disabled")
	}

	store, err := storage.Open(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("cannot open episode journal: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearEpisodes(flagHistoryPilot); err != nil {
			return err
		}
		if flagHistoryPilot == "" {
			fmt.Println("Cleared all episodes.")
		} else {
			fmt.Printf("Cleared episodes of %s.\n", flagHistoryPilot)
		}
		return nil
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		rc := runtimeConfig(cfg)
		return tui.RunHistory(store, flagHistoryPilot, rc.ScreenW, rc.ScreenH)
	}
	return printHistory(store)
}

func printHistory(store *storage.Store) error {
	var (
		eps []storage.EpisodeEntry
		err error
	)
	if flagHistoryPilot == "" {
		eps, err = store.RecentEpisodes(flagLimit)
	} else {
		eps, err = store.EpisodesByPilot(flagHistoryPilot, flagLimit)
	}
	if err != nil {
		return err
	}

	if len(eps) == 0 {
		fmt.Println("No episodes recorded yet.")
		fmt.Println()
		fmt.Println("Run 'snake play' or 'snake train --record' to fill the journal.")
		return nil
	}

	// Print header
	fmt.Printf("  %-5s  %-10s  %-6s  %-6s  %-7s  %-5s  %-8s  %s\n",
		"#", "Pilot", "Fruits", "Ticks", "Reward", "End", "Board", "When")
	fmt.Printf("  %-5s  %-10s  %-6s  %-6s  %-7s  %-5s  %-8s  %s\n",
		"-", "-----", "------", "-----", "------", "---", "-----", "----")

	rows := tui.EpisodeRows(eps)
	for i, r := range rows {
		fmt.Printf("  %-5s  %-10s  %-6s  %-6s  %-7s  %-5s  %-8s  %s\n",
			r[0], eps[i].Pilot, r[1], r[2], r[3], r[4], r[5], r[6])
	}

	if flagHistoryPilot != "" {
		st, err := store.Stats(flagHistoryPilot)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("%d episodes, best %d fruits, avg %.1f fruits, avg reward %.2f\n",
			st.Episodes, st.BestFruits, st.AvgFruits, st.AvgReward)
	}
	return nil
}
