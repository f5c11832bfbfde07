// Package resultstore persists clean session records to sqlite (or a
// remote libsql database), keyed on (session, entrylist) so re-running
// a fetch upserts instead of duplicating.
package resultstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/TMCabrera/indycargo/lib/sessions"
	"github.com/TMCabrera/indycargo/lib/timezone"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

const Schema = `
CREATE TABLE IF NOT EXISTS session_records (
	events_sessions_id TEXT NOT NULL,
	events_entrylist_id TEXT NOT NULL,
	events_sessions_details_id TEXT,
	season INTEGER NOT NULL,
	session_type TEXT NOT NULL,
	event_id TEXT,
	event_name TEXT,
	track_name TEXT,
	track_type TEXT,
	event_date INTEGER,
	event_type TEXT,
	drivers_id TEXT,
	driver_name TEXT,
	first_name TEXT,
	last_name TEXT,
	car_number INTEGER,
	position_start INTEGER,
	position_finish INTEGER,
	position_change INTEGER,
	laps_complete INTEGER,
	laps_led INTEGER,
	laps_down INTEGER,
	times_led INTEGER,
	pit_stops INTEGER,
	points_earned INTEGER,
	best_lap_time_ns INTEGER,
	elapsed_time_ns INTEGER,
	best_speed REAL,
	speed_avg REAL,
	gap TEXT,
	difference TEXT,
	status TEXT,
	PRIMARY KEY (events_sessions_id, events_entrylist_id)
);
CREATE INDEX IF NOT EXISTS idx_session_records_season
	ON session_records (season, session_type);
`

type Config struct {
	// File is a local sqlite database path.
	File string `json:"file"`
	// Url, when set, takes precedence and opens a remote libsql
	// database instead.
	Url string `json:"url"`
}

func (c Config) Open() (*sql.DB, error) {
	var db *sql.DB
	var err error
	if c.Url != "" {
		db, err = sql.Open("libsql", c.Url)
	} else {
		db, err = sql.Open("sqlite", c.File)
	}
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

const upsertRecord = `
INSERT OR REPLACE INTO session_records (
	events_sessions_id, events_entrylist_id, events_sessions_details_id,
	season, session_type, event_id, event_name, track_name, track_type,
	event_date, event_type, drivers_id, driver_name, first_name,
	last_name, car_number, position_start, position_finish,
	position_change, laps_complete, laps_led, laps_down, times_led,
	pit_stops, points_earned, best_lap_time_ns, elapsed_time_ns,
	best_speed, speed_avg, gap, difference, status
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Push upserts every record of the table in one transaction.
func (s Store) Push(ctx context.Context, table sessions.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertRecord)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range table.Records {
		_, err = stmt.ExecContext(ctx,
			r.SessionID, r.EntrylistID, r.DetailsID,
			r.Season, string(r.SessionType), r.EventID, r.EventName,
			nullString(r.TrackName), r.TrackType,
			nullDate(r.EventDate), r.EventType,
			r.DriversID, r.DriverName, r.FirstName, r.LastName,
			nullInt(r.CarNumber), nullInt(r.PositionStart),
			nullInt(r.PositionFinish), nullInt(r.PositionChange),
			nullInt(r.LapsComplete), nullInt(r.LapsLed),
			nullInt(r.LapsDown), nullInt(r.TimesLed),
			nullInt(r.PitStops), nullInt(r.PointsEarned),
			nullDuration(r.BestLapTime), nullDuration(r.ElapsedTime),
			nullFloat(r.BestSpeed), nullFloat(r.SpeedAvg),
			r.Gap, r.Difference, r.Status,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

const selectRecords = `
SELECT
	events_sessions_id, events_entrylist_id, events_sessions_details_id,
	season, session_type, event_id, event_name, track_name, track_type,
	event_date, event_type, drivers_id, driver_name, first_name,
	last_name, car_number, position_start, position_finish,
	position_change, laps_complete, laps_led, laps_down, times_led,
	pit_stops, points_earned, best_lap_time_ns, elapsed_time_ns,
	best_speed, speed_avg, gap, difference, status
FROM session_records
WHERE season >= ? AND season <= ? AND (? = 'All' OR session_type = ?)
ORDER BY season, event_id, events_sessions_id, rowid
`

// Pull reads back the records a query selects.
func (s Store) Pull(ctx context.Context, query sessions.Query) (sessions.Table, error) {
	if err := query.Validate(); err != nil {
		return sessions.Table{}, err
	}

	rows, err := s.db.QueryContext(
		ctx, selectRecords,
		query.FromYear, query.ToYear, string(query.Type), string(query.Type),
	)
	if err != nil {
		return sessions.Table{}, err
	}
	defer rows.Close()

	var table sessions.Table
	for rows.Next() {
		var r sessions.Record
		var sessionType string
		var trackName sql.NullString
		var eventDate, bestLap, elapsed sql.NullInt64
		var carNumber, posStart, posFinish, posChange sql.NullInt64
		var lapsComplete, lapsLed, lapsDown, timesLed sql.NullInt64
		var pitStops, points sql.NullInt64
		var bestSpeed, speedAvg sql.NullFloat64

		err = rows.Scan(
			&r.SessionID, &r.EntrylistID, &r.DetailsID,
			&r.Season, &sessionType, &r.EventID, &r.EventName,
			&trackName, &r.TrackType,
			&eventDate, &r.EventType,
			&r.DriversID, &r.DriverName, &r.FirstName, &r.LastName,
			&carNumber, &posStart, &posFinish, &posChange,
			&lapsComplete, &lapsLed, &lapsDown, &timesLed,
			&pitStops, &points,
			&bestLap, &elapsed,
			&bestSpeed, &speedAvg,
			&r.Gap, &r.Difference, &r.Status,
		)
		if err != nil {
			return sessions.Table{}, err
		}

		r.SessionType = sessions.SessionType(sessionType)
		if trackName.Valid {
			r.TrackName = &trackName.String
		}
		if eventDate.Valid {
			date := time.Unix(eventDate.Int64, 0).In(timezone.Location)
			r.EventDate = &date
		}
		r.CarNumber = fromNullInt(carNumber)
		r.PositionStart = fromNullInt(posStart)
		r.PositionFinish = fromNullInt(posFinish)
		r.PositionChange = fromNullInt(posChange)
		r.LapsComplete = fromNullInt(lapsComplete)
		r.LapsLed = fromNullInt(lapsLed)
		r.LapsDown = fromNullInt(lapsDown)
		r.TimesLed = fromNullInt(timesLed)
		r.PitStops = fromNullInt(pitStops)
		r.PointsEarned = fromNullInt(points)
		r.BestLapTime = fromNullDuration(bestLap)
		r.ElapsedTime = fromNullDuration(elapsed)
		if bestSpeed.Valid {
			r.BestSpeed = &bestSpeed.Float64
		}
		if speedAvg.Valid {
			r.SpeedAvg = &speedAvg.Float64
		}

		table.Records = append(table.Records, r)
	}
	return table, rows.Err()
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullDuration(v *time.Duration) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullDate(v *time.Time) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v.Unix(), Valid: true}
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func fromNullDuration(v sql.NullInt64) *time.Duration {
	if !v.Valid {
		return nil
	}
	d := time.Duration(v.Int64)
	return &d
}
