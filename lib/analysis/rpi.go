package analysis

import (
	"math"
	"sort"

	"github.com/TMCabrera/indycargo/lib/sessions"
)

// DriverSummary aggregates a driver's race results, optionally within
// a single season.
type DriverSummary struct {
	DriverName string
	// Season is 0 when summarizing across all seasons.
	Season                int
	RacesCompleted        int
	AvgStartPosition      float64
	AvgFinishPosition     float64
	FinishPercentileIndex float64
	FinishRate            float64
	// AdjFinishRate excludes mechanical retirements from the
	// denominator, so it reads as "finish rate when the car held up".
	AdjFinishRate        float64
	PointsEarned         int
	PointsPerRace        float64
	RacePerformanceIndex float64
}

type SummaryOptions struct {
	// BySeason produces one summary per (driver, season) instead of
	// one per driver.
	BySeason bool
	// MinRaces drops drivers with fewer completed races.
	MinRaces int
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// harmonic mean of two rates; collapses to 0 when either is 0
func hmean2(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}

type summaryKey struct {
	driver string
	season int
}

// DriverSummaries computes the race performance index table over the
// race rows of a clean table, sorted by index descending.
func DriverSummaries(t sessions.Table, opts SummaryOptions) []DriverSummary {
	enriched := Enrich(t)

	type accumulator struct {
		races          int
		startSum       int
		startCount     int
		finishSum      int
		finishCount    int
		percentileSum  float64
		percentileN    int
		runningCount   int
		mechanicalWear int
		points         int
	}

	groups := map[summaryKey]*accumulator{}
	var order []summaryKey

	for _, e := range enriched {
		if e.SessionType != sessions.TypeRace {
			continue
		}
		key := summaryKey{driver: e.DriverName}
		if opts.BySeason {
			key.season = e.Season
		}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
			order = append(order, key)
		}

		acc.races++
		if e.PositionStart != nil {
			acc.startSum += *e.PositionStart
			acc.startCount++
		}
		if e.PositionFinish != nil {
			acc.finishSum += *e.PositionFinish
			acc.finishCount++
		}
		if e.FinishPercentile != nil {
			acc.percentileSum += *e.FinishPercentile
			acc.percentileN++
		}
		if e.Status == StatusRunning {
			acc.runningCount++
		}
		if e.Status == StatusMechanical {
			acc.mechanicalWear++
		}
		if e.PointsEarned != nil {
			acc.points += *e.PointsEarned
		}
	}

	var summaries []DriverSummary
	for _, key := range order {
		acc := groups[key]
		if acc.races < opts.MinRaces {
			continue
		}

		s := DriverSummary{
			DriverName:     key.driver,
			Season:         key.season,
			RacesCompleted: acc.races,
			PointsEarned:   acc.points,
			PointsPerRace:  round1(float64(acc.points) / float64(acc.races)),
			FinishRate:     round2(float64(acc.runningCount) / float64(acc.races) * 100),
		}
		if acc.startCount > 0 {
			s.AvgStartPosition = round1(float64(acc.startSum) / float64(acc.startCount))
		}
		if acc.finishCount > 0 {
			s.AvgFinishPosition = round1(float64(acc.finishSum) / float64(acc.finishCount))
		}
		if acc.percentileN > 0 {
			s.FinishPercentileIndex = round2(acc.percentileSum / float64(acc.percentileN))
		}
		if denom := acc.races - acc.mechanicalWear; denom > 0 {
			s.AdjFinishRate = round2(float64(acc.runningCount) / float64(denom) * 100)
		}
		s.RacePerformanceIndex = round2(hmean2(s.FinishPercentileIndex, s.AdjFinishRate))

		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].RacePerformanceIndex > summaries[j].RacePerformanceIndex
	})
	return summaries
}
