package commands

import (
	"log/slog"
	"time"

	"hoopsdb/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rescrapeCmd)
}

var rescrapeCmd = &cobra.Command{
	Use:   "rescrape <player-id> [player-id...]",
	Short: "Refreshes the stored rows for the given players from their live profile pages.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		store := openStore(cfg)
		defer store.Close()
		client := createClient(cfg)

		t1 := time.Now()
		err := store.Rescrape(cmd.Context(), client, args)
		t2 := time.Now()
		if err != nil {
			serviceutil.Fatal("rescrape failed", err)
		}

		slog.Info(
			"rescrape time",
			"seconds", t2.Sub(t1).Seconds(),
			"players", len(args),
		)
	},
}
