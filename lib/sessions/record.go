package sessions

import "time"

// Record is one entrant's cleaned row. Pointer-typed columns are
// nullable: a nil means the source had no value (or an unparsable
// one), which is distinct from zero.
type Record struct {
	Season      int
	EventID     string
	EventName   string
	TrackName   *string
	TrackType   string
	EventDate   *time.Time
	EventType   string      // source session name, e.g. "Race", "Practice 2"
	SessionType SessionType // single-letter code

	SessionID   string // events_sessions_id, the session identifier
	DetailsID   string // events_sessions_details_id
	EntrylistID string // events_entrylist_id

	DriversID  string
	DriverName string
	FirstName  string
	LastName   string

	CarNumber      *int
	PositionStart  *int
	PositionFinish *int
	// start minus finish; only derived for race sessions
	PositionChange *int
	LapsComplete   *int
	LapsLed        *int
	LapsDown       *int
	TimesLed       *int
	PitStops       *int
	PointsEarned   *int

	BestLapTime *time.Duration
	ElapsedTime *time.Duration
	BestSpeed   *float64
	SpeedAvg    *float64

	Gap        string
	Difference string
	Status     string
}

// Table is the clean session table: an ordered sequence of records
// with a fixed column schema. Row order is the order the source
// returned them in.
type Table struct {
	Records []Record
}

func (t Table) Len() int {
	return len(t.Records)
}

// Columns is the documented CSV column schema, in header order.
var Columns = []string{
	"season",
	"event_id",
	"event_name",
	"track_name",
	"track_type",
	"event_date",
	"event_type",
	"session_type",
	"events_sessions_id",
	"events_sessions_details_id",
	"events_entrylist_id",
	"drivers_id",
	"driver_name",
	"first_name",
	"last_name",
	"car_number",
	"position_start",
	"position_finish",
	"position_change",
	"laps_complete",
	"laps_led",
	"laps_down",
	"times_led",
	"pit_stops",
	"points_earned",
	"best_lap_time",
	"elapsed_time",
	"best_speed",
	"speed_avg",
	"gap",
	"difference",
	"status",
}
