package cmd

import (
	"log"
	"os"

	"github.com/TMCabrera/indycargo/lib/analysis"
	"github.com/TMCabrera/indycargo/lib/resultstore"
	"github.com/TMCabrera/indycargo/lib/scrapers/indystats"
	"github.com/TMCabrera/indycargo/lib/sessions"
	"github.com/TMCabrera/indycargo/lib/timezone"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var rpiFlags struct {
	fromYear int
	toYear   int
	bySeason bool
	minRaces int
	dbPath   string
}

func init() {
	year := timezone.Now().Year()
	rpiCmd.Flags().IntVar(&rpiFlags.fromYear, "from", year, "first season to include")
	rpiCmd.Flags().IntVar(&rpiFlags.toYear, "to", year, "last season to include")
	rpiCmd.Flags().BoolVar(&rpiFlags.bySeason, "by-season", false, "one row per driver per season")
	rpiCmd.Flags().IntVar(&rpiFlags.minRaces, "min-races", 0, "drop drivers with fewer races")
	rpiCmd.Flags().StringVar(&rpiFlags.dbPath, "db", "", "read records from this sqlite database instead of fetching")
	rootCmd.AddCommand(rpiCmd)
}

var rpiCmd = &cobra.Command{
	Use:   "rpi",
	Short: "Prints the race performance index table for a year range.",
	Run: func(cmd *cobra.Command, args []string) {
		query := sessions.Query{
			FromYear: rpiFlags.fromYear,
			ToYear:   rpiFlags.toYear,
			Type:     sessions.TypeRace,
		}

		var records sessions.Table
		var err error
		if rpiFlags.dbPath != "" {
			db, err := resultstore.Config{File: rpiFlags.dbPath}.Open()
			if err != nil {
				log.Fatal(err)
			}
			defer db.Close()
			records, err = resultstore.NewStore(db).Pull(cmd.Context(), query)
			if err != nil {
				log.Fatal(err)
			}
		} else {
			client := indystats.NewClient(indystats.ClientOptions{})
			records, err = sessions.GetSessionsRecords(cmd.Context(), client, query, sessions.Options{})
			if err != nil {
				log.Fatal(err)
			}
		}

		summaries := analysis.DriverSummaries(records, analysis.SummaryOptions{
			BySeason: rpiFlags.bySeason,
			MinRaces: rpiFlags.minRaces,
		})

		out := table.NewWriter()
		out.SetOutputMirror(os.Stdout)
		header := table.Row{
			"Driver", "Races", "Avg St", "Avg Fin", "Pct Index", "Fin Rate", "Adj Fin Rate", "Points", "Pts/Race", "RPI",
		}
		if rpiFlags.bySeason {
			header = append(table.Row{"Season"}, header...)
		}
		out.AppendHeader(header)

		for _, s := range summaries {
			row := table.Row{
				s.DriverName, s.RacesCompleted, s.AvgStartPosition, s.AvgFinishPosition,
				s.FinishPercentileIndex, s.FinishRate, s.AdjFinishRate,
				s.PointsEarned, s.PointsPerRace, s.RacePerformanceIndex,
			}
			if rpiFlags.bySeason {
				row = append(table.Row{s.Season}, row...)
			}
			out.AppendRow(row)
		}
		out.Render()
	},
}
