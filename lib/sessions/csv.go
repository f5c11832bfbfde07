package sessions

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// WriteCSV writes the table with a header row in the documented
// column order. Nil columns become empty cells, dates render as
// YYYY-MM-DD, lap and elapsed times in the M:SS.ffff notation.
func (t Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return err
	}
	for _, r := range t.Records {
		if err := writer.Write(r.csvRow()); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportCSV writes the table to <dir>/<filename>, creating the
// directory if needed, and returns the full path.
func (t Table) ExportCSV(dir, filename string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := t.WriteCSV(file); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// CSVFilename names an export after its query the way downstream
// notebooks expect: sessions_<year>.csv for a single year,
// sessions_<from>_<to>.csv otherwise.
func CSVFilename(query Query) string {
	if query.FromYear == query.ToYear {
		return fmt.Sprintf("sessions_%d.csv", query.FromYear)
	}
	return fmt.Sprintf("sessions_%d_%d.csv", query.FromYear, query.ToYear)
}

func (r Record) csvRow() []string {
	nullableInt := func(v *int) string {
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	}
	nullableFloat := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	nullableDuration := func(v *time.Duration) string {
		if v == nil {
			return ""
		}
		return FormatLapTime(*v)
	}

	trackName := ""
	if r.TrackName != nil {
		trackName = *r.TrackName
	}
	eventDate := ""
	if r.EventDate != nil {
		eventDate = r.EventDate.Format("2006-01-02")
	}

	return []string{
		strconv.Itoa(r.Season),
		r.EventID,
		r.EventName,
		trackName,
		r.TrackType,
		eventDate,
		r.EventType,
		string(r.SessionType),
		r.SessionID,
		r.DetailsID,
		r.EntrylistID,
		r.DriversID,
		r.DriverName,
		r.FirstName,
		r.LastName,
		nullableInt(r.CarNumber),
		nullableInt(r.PositionStart),
		nullableInt(r.PositionFinish),
		nullableInt(r.PositionChange),
		nullableInt(r.LapsComplete),
		nullableInt(r.LapsLed),
		nullableInt(r.LapsDown),
		nullableInt(r.TimesLed),
		nullableInt(r.PitStops),
		nullableInt(r.PointsEarned),
		nullableDuration(r.BestLapTime),
		nullableDuration(r.ElapsedTime),
		nullableFloat(r.BestSpeed),
		nullableFloat(r.SpeedAvg),
		r.Gap,
		r.Difference,
		r.Status,
	}
}
