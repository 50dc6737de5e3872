package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lexkit/case-cli/internal/hearing"
)

var hearingsCmd = &cobra.Command{
	Use:   "hearings",
	Short: "Manage the hearing calendar",
}

var hearingsImportCmd = &cobra.Command{
	Use:   "import <feed.ics>",
	Short: "Import hearings from a calendar feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}

		store, err := hearing.OpenStore(cfg.Hearings.StorePath)
		if err != nil {
			return err
		}

		events := hearing.ParseICS(data)
		added, err := store.Add(events)
		if err != nil {
			return err
		}

		fmt.Printf("%d new hearings added (%d already known)\n", added, len(events)-added)
		return nil
	},
}

var hearingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored hearings with their status",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := hearing.OpenStore(cfg.Hearings.StorePath)
		if err != nil {
			return err
		}

		events := store.Events()
		if len(events) == 0 {
			fmt.Println("no hearings stored")
			return nil
		}

		now := time.Now()
		for _, ev := range events {
			line := fmt.Sprintf("%s  [%s]  %s", ev.Start.Format("2006-01-02 15:04"), ev.Classify(now), ev.Summary)
			if ev.Location != "" {
				line += "  @ " + ev.Location
			}
			fmt.Println(line)
		}
		return nil
	},
}

var hearingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored hearings",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := hearing.OpenStore(cfg.Hearings.StorePath)
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("hearing calendar cleared")
		return nil
	},
}

func init() {
	hearingsCmd.AddCommand(hearingsImportCmd, hearingsListCmd, hearingsClearCmd)
	rootCmd.AddCommand(hearingsCmd)
}
