package sessions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TMCabrera/indycargo/lib/scrapers/indystats"
	"github.com/TMCabrera/indycargo/lib/tracks"
)

// Format selects how GetSessionsRecords hands results back.
type Format string

const (
	// FormatTable returns the in-memory clean table only.
	FormatTable Format = "table"
	// FormatCSV additionally writes the table to a CSV file.
	FormatCSV Format = "csv"
)

type Options struct {
	Format Format
	// OutputDir receives the CSV export; defaults to "output".
	OutputDir string
	// Lookup overrides the bundled track reference table.
	Lookup *tracks.Lookup
}

// GetSessionsRecords runs the whole pipeline: enumerate the query's
// sessions, fetch each one, clean the accumulated rows and, for
// FormatCSV, export them. The returned table is always populated.
func GetSessionsRecords(ctx context.Context, client *indystats.Client, query Query, opts Options) (Table, error) {
	if err := query.Validate(); err != nil {
		return Table{}, err
	}
	switch opts.Format {
	case FormatTable, FormatCSV, "":
	default:
		return Table{}, fmt.Errorf("unknown output format %q: expected table or csv", opts.Format)
	}

	raw, err := FetchRecords(ctx, client, query)
	if err != nil {
		return Table{}, err
	}

	lookup := tracks.Default()
	if opts.Lookup != nil {
		lookup = *opts.Lookup
	}
	table := Clean(raw, lookup)

	if opts.Format == FormatCSV {
		dir := opts.OutputDir
		if dir == "" {
			dir = "output"
		}
		path, err := table.ExportCSV(dir, CSVFilename(query))
		if err != nil {
			return table, err
		}
		slog.InfoContext(ctx, "exported session records", "path", path, "rows", table.Len())
	}

	return table, nil
}
