package commands

import (
	"fmt"

	"hoopsdb/lib/serviceutil"
	"hoopsdb/services/players"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(repairCmd)
}

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Fixes malformed draft rounds and shooting hands in place, then prints the distributions.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		store := openStore(cfg)
		defer store.Close()

		res, err := store.Repair(cmd.Context())
		if err != nil {
			serviceutil.Fatal("repair failed", err)
		}
		fmt.Println(players.RenderRepairResult(res))

		fmt.Println(renderDistributions(cmd.Context(), store))
	},
}
