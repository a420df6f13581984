package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"hoopsdb/lib/configutil"
	"hoopsdb/lib/restyutil"
	"hoopsdb/lib/scrapers/bbref"
	"hoopsdb/lib/serviceutil"
	"hoopsdb/lib/sqliteutil"
	"hoopsdb/lib/telemetry"
	"hoopsdb/services/players"

	"github.com/spf13/cobra"
)

type ScraperConfig struct {
	// defaults to basketball-reference
	BaseUrl string `json:"base_url"`
	// seconds to wait before each page fetch, 0 uses the scraper default
	RequestDelaySeconds int `json:"request_delay_seconds"`
}

type Config struct {
	Database sqliteutil.Config  `json:"database"`
	Scraper  ScraperConfig      `json:"scraper"`
	Smtp     players.SmtpConfig `json:"smtp"`
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "hoopsdb",
	Short: "hoopsdb maintains the biographical columns of the NBA players database.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
		if verbose {
			bbref.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/bbref"))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"Enable verbose logging/instrumentation.",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func openStore(cfg Config) players.Store {
	store, err := players.Open(cfg.Database)
	if err != nil {
		serviceutil.Fatal("failed to open players db", err)
	}
	return store
}

func createClient(cfg Config) *bbref.Client {
	client, err := bbref.NewClient(bbref.ClientOptions{
		BaseUrl:      cfg.Scraper.BaseUrl,
		RequestDelay: time.Duration(cfg.Scraper.RequestDelaySeconds) * time.Second,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize scraper", err)
	}
	return client
}
