package sessions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/TMCabrera/indycargo/lib/scrapers/indystats"
	"github.com/TMCabrera/indycargo/lib/telemetry"
	"github.com/TMCabrera/indycargo/lib/tracks"
	"github.com/stretchr/testify/require"
)

const fakeSeasons = `[
	{
		"Year": "2020",
		"Events": [
			{
				"EventID": "ev-500",
				"EventName": "Indianapolis 500",
				"Sessions": [
					{"EventsSessionID": "ses-race", "SessionName": "Race"},
					{"EventsSessionID": "ses-p1", "SessionName": "Practice 1"},
					{"EventsSessionID": "ses-broken", "SessionName": "Race 2"}
				]
			}
		]
	},
	{
		"Year": "2019",
		"Events": [
			{
				"EventID": "ev-sonoma",
				"EventName": "GoPro Grand Prix of Sonoma",
				"Sessions": [
					{"EventsSessionID": "ses-2019", "SessionName": "Race"}
				]
			}
		]
	}
]`

const fakeRaceDetails = `{
	"EventName": "Indianapolis 500",
	"SessionDate": "8/23/2020",
	"SessionName": "Race",
	"SessionType": "R",
	"TrackType": "Oval",
	"records": [
		{
			"EventsSessionsID": "ses-race",
			"EventsEntrylistID": "el-1",
			"DriverName": "Takuma Sato",
			"PositionStart": "3",
			"PositionFinish": "1",
			"Status": "Running"
		},
		{
			"EventsSessionsID": "ses-race",
			"EventsEntrylistID": "el-2",
			"DriverName": "Scott Dixon",
			"PositionStart": "1",
			"PositionFinish": "2",
			"Status": "Running"
		}
	]
}`

const fakeHtmlDetails = `<html>
<body>
<h1>GoPro Grand Prix of Sonoma</h1>
<table data-session-date="9/15/2019" data-session-name="Race" data-session-type="R" data-track-type="Road">
	<thead>
		<tr><th>Fin</th><th>St</th><th>Car</th><th>Driver</th><th>Laps</th><th>Status</th></tr>
	</thead>
	<tbody>
		<tr><td>1</td><td>3</td><td>27</td><td>Alexander Rossi</td><td>85</td><td>Running</td></tr>
		<tr><td>2</td><td>1</td><td>9</td><td>Scott Dixon</td><td>85</td><td>Running</td></tr>
	</tbody>
</table>
</body>
</html>`

type fakeStats struct {
	server   *httptest.Server
	requests atomic.Int64
}

func newFakeStats(t *testing.T) *fakeStats {
	f := &fakeStats{}

	mux := http.NewServeMux()
	mux.HandleFunc("/Services/IndyStats.svc/SeasonDropDown", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		w.Write([]byte(fakeSeasons))
	})
	mux.HandleFunc("/Services/IndyStats.svc/EventsSessionDetails", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		switch r.URL.Query().Get("id") {
		case "ses-race":
			w.Write([]byte(fakeRaceDetails))
		case "ses-2019":
			// archive sessions come back as an html results table
			w.Write([]byte(fakeHtmlDetails))
		default:
			// ses-broken and anything unknown
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeStats) client() *indystats.Client {
	return indystats.NewClient(indystats.ClientOptions{
		BaseUrl: f.server.URL,
		NoDelay: true,
	})
}

func TestListSessionsFiltersYearAndType(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:sessions")
	defer cleanup()

	fake := newFakeStats(t)

	candidates, err := ListSessions(context.Background(), fake.client(), Query{
		FromYear: 2020,
		ToYear:   2020,
		Type:     TypeRace,
	})
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, candidates, 2)
	for _, c := range candidates {
		require.Equal(t, 2020, c.Year)
		require.Contains(t, c.SessionName, "Race")
	}
}

func TestFetchRecordsSkipsBrokenSessions(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:sessions")
	defer cleanup()

	fake := newFakeStats(t)

	// ses-broken fails with a 500 but the call still returns the
	// records of ses-race
	raw, err := FetchRecords(context.Background(), fake.client(), Query{
		FromYear: 2020,
		ToYear:   2020,
		Type:     TypeRace,
	})
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, raw, 2)
	for _, r := range raw {
		require.Equal(t, 2020, r["Season"])
		require.Equal(t, "Indianapolis 500", r["EventName"])
	}
}

func TestFetchRecordsAttachesSessionIdToHtmlRows(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:sessions")
	defer cleanup()

	fake := newFakeStats(t)

	raw, err := FetchRecords(context.Background(), fake.client(), Query{
		FromYear: 2019,
		ToYear:   2019,
		Type:     TypeRace,
	})
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, raw, 2)
	for _, r := range raw {
		require.Equal(t, "ses-2019", r.String("EventsSessionsID"))
	}

	// the rows survive cleaning end to end
	table := Clean(raw, tracks.Default())
	require.Equal(t, 2, table.Len())

	r := table.Records[0]
	require.Equal(t, "ses-2019", r.SessionID)
	require.Equal(t, TypeRace, r.SessionType)
	require.Equal(t, 2019, r.Season)
	require.Equal(t, "Alexander Rossi", r.DriverName)
	require.NotNil(t, r.PositionFinish)
	require.Equal(t, 1, *r.PositionFinish)
	require.NotNil(t, r.PositionChange)
	require.Equal(t, 2, *r.PositionChange)
	require.NotNil(t, r.TrackName)
	require.Equal(t, "Sonoma Raceway", *r.TrackName)
}

func TestGetSessionsRecordsRaceQuery(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:sessions")
	defer cleanup()

	fake := newFakeStats(t)

	table, err := GetSessionsRecords(context.Background(), fake.client(), Query{
		FromYear: 2020,
		ToYear:   2020,
		Type:     TypeRace,
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, 2, table.Len())
	for _, r := range table.Records {
		require.Equal(t, 2020, r.Season)
		require.Equal(t, TypeRace, r.SessionType)
		require.NotEmpty(t, r.SessionID)
		require.GreaterOrEqual(t, r.Season, 2020)
		require.LessOrEqual(t, r.Season, 2020)
	}
	require.Equal(t, "Takuma Sato", table.Records[0].DriverName)
}

func TestInvalidQueryFailsBeforeFetching(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:sessions")
	defer cleanup()

	fake := newFakeStats(t)

	_, err := GetSessionsRecords(context.Background(), fake.client(), Query{
		FromYear: 2024,
		ToYear:   2020,
		Type:     TypeRace,
	}, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid year range")

	_, err = GetSessionsRecords(context.Background(), fake.client(), Query{
		FromYear: 2020,
		ToYear:   2020,
		Type:     SessionType("X"),
	}, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown session type")

	require.Equal(t, int64(0), fake.requests.Load())
}

func TestParseSessionType(t *testing.T) {
	testCases := []struct {
		input    string
		expected SessionType
	}{
		{input: "R", expected: TypeRace},
		{input: "race", expected: TypeRace},
		{input: "p", expected: TypePractice},
		{input: "Qualifications", expected: TypeQualifying},
		{input: "W", expected: TypeWarmup},
		{input: "all", expected: TypeAll},
		{input: "", expected: TypeAll},
	}
	for _, test := range testCases {
		got, err := ParseSessionType(test.input)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, test.expected, got, "input %q", test.input)
	}

	_, err := ParseSessionType("Z")
	require.Error(t, err)
}

func TestSessionTypeMatchesNames(t *testing.T) {
	require.True(t, TypeRace.matches("Race"))
	require.True(t, TypeRace.matches("race 2"))
	require.True(t, TypeQualifying.matches("Firestone Qualifications"))
	require.True(t, TypeWarmup.matches("WARM UP"))
	require.False(t, TypePractice.matches("Race"))
	require.True(t, TypeAll.matches("anything at all"))
}
