package analysis

import (
	"testing"

	"github.com/TMCabrera/indycargo/lib/sessions"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func raceRow(sessionId, driver string, start, finish int, status string, points int) sessions.Record {
	return sessions.Record{
		Season:         2020,
		SessionID:      sessionId,
		EntrylistID:    sessionId + "-" + driver,
		SessionType:    sessions.TypeRace,
		DriverName:     driver,
		PositionStart:  ptr(start),
		PositionFinish: ptr(finish),
		PointsEarned:   ptr(points),
		Status:         status,
	}
}

func sampleTable() sessions.Table {
	return sessions.Table{Records: []sessions.Record{
		raceRow("r1", "Dixon", 2, 1, StatusRunning, 50),
		raceRow("r1", "Sato", 1, 2, StatusRunning, 40),
		raceRow("r1", "Rahal", 3, 3, StatusRunning, 35),
		raceRow("r1", "Power", 4, 4, StatusMechanical, 30),

		raceRow("r2", "Dixon", 1, 1, StatusRunning, 50),
		raceRow("r2", "Sato", 2, 4, StatusMechanical, 30),
		raceRow("r2", "Rahal", 4, 2, StatusRunning, 40),
		raceRow("r2", "Power", 3, 3, StatusRunning, 35),
	}}
}

func TestEnrichRunningCounts(t *testing.T) {
	enriched := Enrich(sampleTable())
	require.Len(t, enriched, 8)

	// r1 has 3 running cars, r2 has 3
	for _, e := range enriched {
		require.Equal(t, 3, e.RunningCars, "session %s driver %s", e.SessionID, e.DriverName)
	}
}

func TestEnrichFinishPercentile(t *testing.T) {
	enriched := Enrich(sampleTable())

	byDriver := map[string]Enriched{}
	for _, e := range enriched {
		if e.SessionID == "r1" {
			byDriver[e.DriverName] = e
		}
	}

	// winner of the running field
	require.NotNil(t, byDriver["Dixon"].FinishPercentile)
	require.Equal(t, 100.0, *byDriver["Dixon"].FinishPercentile)
	// middle of the running field
	require.NotNil(t, byDriver["Sato"].FinishPercentile)
	require.Equal(t, 50.0, *byDriver["Sato"].FinishPercentile)
	// last running car
	require.NotNil(t, byDriver["Rahal"].FinishPercentile)
	require.Equal(t, 0.0, *byDriver["Rahal"].FinishPercentile)
	// retirements get no percentile
	require.Nil(t, byDriver["Power"].FinishPercentile)
}

func TestEnrichBestSpeedPct(t *testing.T) {
	table := sessions.Table{Records: []sessions.Record{
		{SessionID: "r1", SessionType: sessions.TypeRace, DriverName: "A", BestSpeed: ptr(220.0), Status: StatusRunning},
		{SessionID: "r1", SessionType: sessions.TypeRace, DriverName: "B", BestSpeed: ptr(110.0), Status: StatusRunning},
		{SessionID: "r1", SessionType: sessions.TypeRace, DriverName: "C", Status: StatusRunning},
	}}
	enriched := Enrich(table)

	require.NotNil(t, enriched[0].BestSpeedPct)
	require.Equal(t, 100.0, *enriched[0].BestSpeedPct)
	require.NotNil(t, enriched[1].BestSpeedPct)
	require.Equal(t, 50.0, *enriched[1].BestSpeedPct)
	require.Nil(t, enriched[2].BestSpeedPct)
}

func TestDriverSummaries(t *testing.T) {
	summaries := DriverSummaries(sampleTable(), SummaryOptions{})
	require.Len(t, summaries, 4)

	// Dixon won both races: top of the table
	require.Equal(t, "Dixon", summaries[0].DriverName)
	require.Equal(t, 2, summaries[0].RacesCompleted)
	require.Equal(t, 100.0, summaries[0].FinishPercentileIndex)
	require.Equal(t, 100.0, summaries[0].FinishRate)
	require.Equal(t, 100.0, summaries[0].AdjFinishRate)
	require.Equal(t, 100.0, summaries[0].RacePerformanceIndex)
	require.Equal(t, 100, summaries[0].PointsEarned)
	require.Equal(t, 1.5, summaries[0].AvgStartPosition)
	require.Equal(t, 1.0, summaries[0].AvgFinishPosition)

	for _, s := range summaries {
		// finished at most as high as started rates allow
		require.GreaterOrEqual(t, s.FinishRate, 0.0)
		require.LessOrEqual(t, s.FinishRate, 100.0)
	}
}

func TestDriverSummariesAdjustedFinishRate(t *testing.T) {
	summaries := DriverSummaries(sampleTable(), SummaryOptions{})

	var sato DriverSummary
	for _, s := range summaries {
		if s.DriverName == "Sato" {
			sato = s
		}
	}

	// one finish, one mechanical retirement: raw rate 50, adjusted 100
	require.Equal(t, 50.0, sato.FinishRate)
	require.Equal(t, 100.0, sato.AdjFinishRate)
}

func TestDriverSummariesMinRaces(t *testing.T) {
	table := sampleTable()
	table.Records = append(table.Records, raceRow("r3", "OneOff", 10, 10, StatusRunning, 20))

	summaries := DriverSummaries(table, SummaryOptions{MinRaces: 2})
	for _, s := range summaries {
		require.NotEqual(t, "OneOff", s.DriverName)
		require.GreaterOrEqual(t, s.RacesCompleted, 2)
	}
}

func TestDriverSummariesBySeason(t *testing.T) {
	table := sampleTable()
	extra := raceRow("r9", "Dixon", 1, 1, StatusRunning, 50)
	extra.Season = 2021
	table.Records = append(table.Records, extra)

	summaries := DriverSummaries(table, SummaryOptions{BySeason: true})

	dixonSeasons := map[int]bool{}
	for _, s := range summaries {
		if s.DriverName == "Dixon" {
			dixonSeasons[s.Season] = true
		}
	}
	require.True(t, dixonSeasons[2020])
	require.True(t, dixonSeasons[2021])
}

func TestDriverSummariesIgnoreNonRaceSessions(t *testing.T) {
	table := sampleTable()
	practice := raceRow("p1", "Practiceman", 1, 1, StatusRunning, 0)
	practice.SessionType = sessions.TypePractice
	table.Records = append(table.Records, practice)

	summaries := DriverSummaries(table, SummaryOptions{})
	for _, s := range summaries {
		require.NotEqual(t, "Practiceman", s.DriverName)
	}
}
