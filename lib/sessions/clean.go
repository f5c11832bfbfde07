package sessions

import (
	"strings"

	"github.com/TMCabrera/indycargo/lib/scrapers/indystats"
	"github.com/TMCabrera/indycargo/lib/textutil"
	"github.com/TMCabrera/indycargo/lib/tracks"
)

// Clean normalizes raw source rows into the documented schema:
// source labels become typed columns, numbers and times are coerced
// (nil on anything unreadable), names lose their whitespace and
// encoding artifacts, and the track name is joined in from the
// reference lookup. Rows without a session identifier are dropped, as
// are duplicate (session, entrylist) pairs beyond the first. Input
// order is preserved and the transform is idempotent.
func Clean(raw []indystats.RawRecord, lookup tracks.Lookup) Table {
	seen := map[[2]string]bool{}
	records := make([]Record, 0, len(raw))

	for _, row := range raw {
		sessionId := strings.TrimSpace(row.String("EventsSessionsID"))
		if sessionId == "" {
			continue
		}
		entrylistId := strings.TrimSpace(row.String("EventsEntrylistID"))

		key := [2]string{sessionId, entrylistId}
		if entrylistId != "" && seen[key] {
			continue
		}
		seen[key] = true

		records = append(records, cleanRecord(row, sessionId, entrylistId, lookup))
	}

	return Table{Records: records}
}

func cleanRecord(row indystats.RawRecord, sessionId, entrylistId string, lookup tracks.Lookup) Record {
	eventName := textutil.CleanName(row.String("EventName"))

	var trackName *string
	if name, ok := lookup.TrackName(eventName); ok {
		trackName = &name
	}

	r := Record{
		EventID:   strings.TrimSpace(row.String("EventID")),
		EventName: eventName,
		TrackName: trackName,
		TrackType: textutil.CleanName(row.String("TrackType")),
		EventDate: parseEventDate(row.String("EventDate")),
		EventType: textutil.CleanName(row.String("EventType")),

		SessionID:   sessionId,
		DetailsID:   strings.TrimSpace(row.String("EventsSessionsDetailsID")),
		EntrylistID: entrylistId,

		DriversID:  strings.TrimSpace(row.String("DriversID")),
		DriverName: textutil.CleanName(row.String("DriverName")),
		FirstName:  textutil.CleanName(row.String("FirstName")),
		LastName:   textutil.CleanName(row.String("LastName")),

		CarNumber:      coerceInt(row["CarNumber"]),
		PositionStart:  coerceInt(row["PositionStart"]),
		PositionFinish: coerceInt(row["PositionFinish"]),
		LapsComplete:   coerceInt(row["LapsComplete"]),
		LapsLed:        coerceInt(row["LapsLed"]),
		LapsDown:       coerceInt(row["LapsDown"]),
		TimesLed:       coerceInt(row["TimesLed"]),
		PitStops:       coerceInt(row["PitStops"]),
		PointsEarned:   coerceInt(row["PointsEarned"]),

		BestLapTime: ParseLapTime(row.String("BestLapTime")),
		ElapsedTime: ParseLapTime(row.String("ElapsedTime")),
		BestSpeed:   coerceFloat(row["BestSpeed"]),
		SpeedAvg:    coerceFloat(row["SpeedAvg"]),

		Gap:        textutil.CleanName(row.String("Gap")),
		Difference: textutil.CleanName(row.String("Difference")),
		Status:     textutil.CleanName(row.String("Status")),
	}

	if season := coerceInt(row["Season"]); season != nil {
		r.Season = *season
	} else if r.EventDate != nil {
		r.Season = r.EventDate.Year()
	}

	r.SessionType = sessionTypeOf(row.String("SessionType"), r.EventType)

	// grid-to-flag movement only means something in a race
	if r.SessionType == TypeRace && r.PositionStart != nil && r.PositionFinish != nil {
		change := *r.PositionStart - *r.PositionFinish
		r.PositionChange = &change
	}

	return r
}

// sessionTypeOf trusts the source's code when it carries one and falls
// back to classifying the session name (HTML archive pages have no
// code field).
func sessionTypeOf(code, sessionName string) SessionType {
	if parsed, err := ParseSessionType(code); err == nil && parsed != TypeAll {
		return parsed
	}
	for _, t := range []SessionType{TypeRace, TypePractice, TypeQualifying, TypeWarmup} {
		if t.matches(sessionName) {
			return t
		}
	}
	return TypeAll
}

// Raw converts a clean table back into source-shaped rows. Cleaning is
// idempotent through this: Clean(t.Raw()) reproduces t.
func (t Table) Raw() []indystats.RawRecord {
	out := make([]indystats.RawRecord, len(t.Records))
	for i, r := range t.Records {
		row := indystats.RawRecord{
			"EventID":                 r.EventID,
			"EventName":               r.EventName,
			"TrackType":               r.TrackType,
			"EventType":               r.EventType,
			"SessionType":             string(r.SessionType),
			"Season":                  r.Season,
			"EventsSessionsID":        r.SessionID,
			"EventsSessionsDetailsID": r.DetailsID,
			"EventsEntrylistID":       r.EntrylistID,
			"DriversID":               r.DriversID,
			"DriverName":              r.DriverName,
			"FirstName":               r.FirstName,
			"LastName":                r.LastName,
			"Gap":                     r.Gap,
			"Difference":              r.Difference,
			"Status":                  r.Status,
		}
		if r.EventDate != nil {
			row["EventDate"] = r.EventDate.Format(sourceDateFormat)
		}
		putInt := func(key string, v *int) {
			if v != nil {
				row[key] = float64(*v)
			}
		}
		putInt("CarNumber", r.CarNumber)
		putInt("PositionStart", r.PositionStart)
		putInt("PositionFinish", r.PositionFinish)
		putInt("LapsComplete", r.LapsComplete)
		putInt("LapsLed", r.LapsLed)
		putInt("LapsDown", r.LapsDown)
		putInt("TimesLed", r.TimesLed)
		putInt("PitStops", r.PitStops)
		putInt("PointsEarned", r.PointsEarned)
		if r.BestLapTime != nil {
			row["BestLapTime"] = FormatLapTime(*r.BestLapTime)
		}
		if r.ElapsedTime != nil {
			row["ElapsedTime"] = FormatLapTime(*r.ElapsedTime)
		}
		if r.BestSpeed != nil {
			row["BestSpeed"] = *r.BestSpeed
		}
		if r.SpeedAvg != nil {
			row["SpeedAvg"] = *r.SpeedAvg
		}
		out[i] = row
	}
	return out
}
