package indystats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/TMCabrera/indycargo/lib/htmlutil"
)

// archive results pages label their table columns informally; this
// maps the labels seen in the wild back onto the JSON field names so
// both shapes normalize identically.
var headerFields = map[string]string{
	"fin":          "PositionFinish",
	"finish":       "PositionFinish",
	"pos":          "PositionFinish",
	"st":           "PositionStart",
	"start":        "PositionStart",
	"car":          "CarNumber",
	"no.":          "CarNumber",
	"driver":       "DriverName",
	"laps":         "LapsComplete",
	"laps led":     "LapsLed",
	"led":          "LapsLed",
	"laps down":    "LapsDown",
	"times led":    "TimesLed",
	"best lap":     "BestLapTime",
	"best time":    "BestLapTime",
	"best speed":   "BestSpeed",
	"avg speed":    "SpeedAvg",
	"elapsed time": "ElapsedTime",
	"pits":         "PitStops",
	"pit stops":    "PitStops",
	"points":       "PointsEarned",
	"gap":          "Gap",
	"diff":         "Difference",
	"status":       "Status",
}

// ParseResultsTable parses an HTML results page into the same shape
// FetchSessionDetails produces from JSON. Cells under unrecognized
// headers are kept under their literal label so nothing is silently
// dropped.
func ParseResultsTable(ctx context.Context, r io.Reader) (SessionDetails, error) {
	_, span := tracer.Start(ctx, "ParseResultsTable")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return SessionDetails{}, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return SessionDetails{}, fmt.Errorf("parse results table: no table in document")
	}

	var columns []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		label := htmlutil.CellText(th)
		field, ok := headerFields[strings.ToLower(label)]
		if !ok {
			field = label
		}
		columns = append(columns, field)
	})
	if len(columns) == 0 {
		return SessionDetails{}, fmt.Errorf("parse results table: no header row")
	}

	details := SessionDetails{
		EventName:   htmlutil.CellText(doc.Find("h1").First()),
		SessionDate: doc.Find("table").First().AttrOr("data-session-date", ""),
		SessionName: doc.Find("table").First().AttrOr("data-session-name", ""),
		SessionType: doc.Find("table").First().AttrOr("data-session-type", ""),
		TrackType:   doc.Find("table").First().AttrOr("data-track-type", ""),
	}

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		record := RawRecord{}
		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			if i >= len(columns) {
				return
			}
			record[columns[i]] = htmlutil.CellText(td)
		})
		if len(record) == 0 {
			return
		}
		details.Records = append(details.Records, record)
	})

	return details, nil
}
