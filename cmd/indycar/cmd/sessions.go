package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/TMCabrera/indycargo/lib/resultstore"
	"github.com/TMCabrera/indycargo/lib/scrapers/indystats"
	"github.com/TMCabrera/indycargo/lib/sessions"
	"github.com/TMCabrera/indycargo/lib/timezone"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var sessionsFlags struct {
	fromYear    int
	toYear      int
	sessionType string
	format      string
	outDir      string
	dbPath      string
}

func init() {
	year := timezone.Now().Year()
	sessionsCmd.Flags().IntVar(&sessionsFlags.fromYear, "from", year, "first season to fetch")
	sessionsCmd.Flags().IntVar(&sessionsFlags.toYear, "to", year, "last season to fetch")
	sessionsCmd.Flags().StringVarP(&sessionsFlags.sessionType, "type", "t", "R", "session type: R, P, Q, W or All")
	sessionsCmd.Flags().StringVarP(&sessionsFlags.format, "format", "f", "table", "output: table, csv or sqlite")
	sessionsCmd.Flags().StringVarP(&sessionsFlags.outDir, "out", "o", "output", "directory for csv exports")
	sessionsCmd.Flags().StringVar(&sessionsFlags.dbPath, "db", "indycar.db", "sqlite database for the sqlite format")
	rootCmd.AddCommand(sessionsCmd)
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Fetches and cleans session records for a year range.",
	Run: func(cmd *cobra.Command, args []string) {
		sessionType, err := sessions.ParseSessionType(sessionsFlags.sessionType)
		if err != nil {
			log.Fatal(err)
		}
		query := sessions.Query{
			FromYear: sessionsFlags.fromYear,
			ToYear:   sessionsFlags.toYear,
			Type:     sessionType,
		}

		opts := sessions.Options{Format: sessions.FormatTable, OutputDir: sessionsFlags.outDir}
		switch sessionsFlags.format {
		case "table", "sqlite":
		case "csv":
			opts.Format = sessions.FormatCSV
		default:
			log.Fatalf("unknown format %q: expected table, csv or sqlite", sessionsFlags.format)
		}

		client := indystats.NewClient(indystats.ClientOptions{})
		result, err := sessions.GetSessionsRecords(cmd.Context(), client, query, opts)
		if err != nil {
			log.Fatal(err)
		}

		switch sessionsFlags.format {
		case "table":
			printSessionsTable(result)
		case "sqlite":
			db, err := resultstore.Config{File: sessionsFlags.dbPath}.Open()
			if err != nil {
				log.Fatal(err)
			}
			defer db.Close()
			err = resultstore.NewStore(db).Push(cmd.Context(), result)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("stored %d records in %s\n", result.Len(), sessionsFlags.dbPath)
		}
	},
}

func printSessionsTable(t sessions.Table) {
	out := table.NewWriter()
	out.SetOutputMirror(os.Stdout)
	out.AppendHeader(table.Row{
		"Season", "Event", "Track", "Session", "Fin", "St", "Driver", "Laps", "Best Lap", "Points", "Status",
	})

	for _, r := range t.Records {
		out.AppendRow(table.Row{
			r.Season,
			r.EventName,
			strOrDash(r.TrackName),
			r.EventType,
			intOrDash(r.PositionFinish),
			intOrDash(r.PositionStart),
			r.DriverName,
			intOrDash(r.LapsComplete),
			lapOrDash(r.BestLapTime),
			intOrDash(r.PointsEarned),
			r.Status,
		})
	}

	out.Render()
	fmt.Printf("%d records\n", t.Len())
}
