package commands

import (
	"fmt"

	"hoopsdb/lib/serviceutil"
	"hoopsdb/services/players"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(spotCheckCmd)
}

var spotCheckCmd = &cobra.Command{
	Use:   "spot-check <player-id> [player-id...]",
	Short: "Compares stored rows against the live profile pages, without writing anything.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		store := openStore(cfg)
		defer store.Close()
		client := createClient(cfg)

		for _, playerId := range args {
			res, err := store.SpotCheck(cmd.Context(), client, playerId)
			if err != nil {
				serviceutil.Fatal("spot check failed", err)
			}
			fmt.Println(players.RenderSpotCheck(res))
		}
	},
}
