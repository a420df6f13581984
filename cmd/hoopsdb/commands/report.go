package commands

import (
	"context"
	"fmt"
	"log/slog"

	"hoopsdb/lib/serviceutil"
	"hoopsdb/services/players"

	"github.com/spf13/cobra"
)

var emailTo *[]string

func init() {
	emailTo = reportCmd.Flags().StringSlice(
		"email-to", nil,
		"Also email the report to these addresses.",
	)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [--email-to <addr,...>]",
	Short: "Prints the shooting hand and draft round distributions.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		store := openStore(cfg)
		defer store.Close()

		report := renderDistributions(cmd.Context(), store)
		fmt.Println(report)

		if len(*emailTo) > 0 {
			err := players.SendReport(
				cmd.Context(), cfg.Smtp,
				*emailTo, "hoopsdb players report", report,
			)
			if err != nil {
				serviceutil.Fatal("failed to email report", err)
			}
			slog.Info("report emailed", "to", *emailTo)
		}
	},
}

func renderDistributions(ctx context.Context, store players.Store) string {
	shoots, err := store.ShootsDistribution(ctx)
	if err != nil {
		serviceutil.Fatal("failed to read shoots distribution", err)
	}
	rounds, err := store.DraftRoundDistribution(ctx)
	if err != nil {
		serviceutil.Fatal("failed to read draft round distribution", err)
	}
	return players.RenderDistributions(shoots, rounds)
}
