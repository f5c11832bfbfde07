package cmd

import (
	"os"

	"github.com/TMCabrera/indycargo/lib/tracks"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tracksCmd)
}

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "Prints the bundled event-to-track reference table.",
	Run: func(cmd *cobra.Command, args []string) {
		lookup := tracks.Default()

		out := table.NewWriter()
		out.SetOutputMirror(os.Stdout)
		out.AppendHeader(table.Row{"Event", "Track"})
		for i, event := range lookup.Events() {
			out.AppendRow(table.Row{event, lookup.Track(i)})
		}
		out.Render()
	},
}
