// Package analysis derives per-event and per-driver statistics from a
// clean session table: finish percentiles among cars still running,
// relative best speeds, and the driver race performance index.
package analysis

import (
	"math"

	"github.com/TMCabrera/indycargo/lib/sessions"
)

// StatusRunning is the source's status value for a car that finished
// on track.
const StatusRunning = "Running"

// StatusMechanical marks retirements the adjusted finish rate forgives.
const StatusMechanical = "Mechanical"

// Enriched is a clean record with the derived per-event columns
// attached. Nil derived columns mean the statistic does not apply to
// the row (non-finisher, single-car field, missing inputs).
type Enriched struct {
	sessions.Record

	// RunningCars is the number of entrants in this row's session that
	// finished with a Running status.
	RunningCars int
	// FinishedRank ranks this row's finish among Running entrants of
	// the session, 1 being the winner.
	FinishedRank *int
	// FinishPercentile places the finish within the running field:
	// 100 for the winner, 0 for the last running car.
	FinishPercentile *float64
	// BestSpeedPct is this row's best speed as a percentage of the
	// fastest best speed in the session.
	BestSpeedPct *float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Enrich computes the derived columns for every row. Input order is
// preserved; the input table is not modified.
func Enrich(t sessions.Table) []Enriched {
	running := map[string]int{}
	topSpeed := map[string]float64{}
	for _, r := range t.Records {
		if r.Status == StatusRunning {
			running[r.SessionID]++
		}
		if r.BestSpeed != nil && *r.BestSpeed > topSpeed[r.SessionID] {
			topSpeed[r.SessionID] = *r.BestSpeed
		}
	}

	out := make([]Enriched, len(t.Records))
	for i, r := range t.Records {
		e := Enriched{Record: r, RunningCars: running[r.SessionID]}

		if r.Status == StatusRunning && r.PositionFinish != nil {
			rank := 1
			for _, other := range t.Records {
				if other.SessionID != r.SessionID || other.Status != StatusRunning {
					continue
				}
				if other.PositionFinish != nil && *other.PositionFinish < *r.PositionFinish {
					rank++
				}
			}
			e.FinishedRank = &rank

			if e.RunningCars > 1 {
				pct := round2(float64(e.RunningCars-rank) / float64(e.RunningCars-1) * 100)
				e.FinishPercentile = &pct
			}
		}

		if r.BestSpeed != nil && topSpeed[r.SessionID] > 0 {
			pct := round2(*r.BestSpeed / topSpeed[r.SessionID] * 100)
			e.BestSpeedPct = &pct
		}

		out[i] = e
	}
	return out
}
