package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/TMCabrera/indycargo/lib/restyutil"
	"github.com/TMCabrera/indycargo/lib/scrapers/indystats"
	"github.com/TMCabrera/indycargo/lib/telemetry"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "indycar",
	Short: "indycar fetches and normalizes IndyCar session results from the IndyStats service.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
		if verbose {
			indystats.SetRestyInstrumentOutput(
				restyutil.NewFilesystemOutput("resty_telemetry/indystats"),
			)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and http dumps")
}

func Execute() {
	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer cancel()

	tel, err := telemetry.SetupFromEnv(ctx, "indycar-cli")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
