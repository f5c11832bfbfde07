package tracks

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/TMCabrera/indycargo/lib/textutil"
	"github.com/antzucaro/matchr"

	_ "embed"
)

// the reference table is maintained by hand: the IndyStats payloads
// carry event names but not the circuits they ran on.
//
//go:embed race_track.csv
var rawTable []byte

// Lookup maps event names to track names. It is immutable once
// constructed; the normalizer receives it explicitly instead of
// reaching for package state.
type Lookup struct {
	byEvent map[string]string
	events  []string
	tracks  []string
}

// jaro-winkler floor under which a fuzzy candidate is considered a
// different event rather than naming drift
const fuzzyThreshold = 0.93

func Parse(r io.Reader) (Lookup, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = 2

	rows, err := reader.ReadAll()
	if err != nil {
		return Lookup{}, fmt.Errorf("parse track table: %w", err)
	}
	if len(rows) == 0 || rows[0][0] != "EventName" {
		return Lookup{}, fmt.Errorf("parse track table: missing EventName header")
	}

	l := Lookup{byEvent: map[string]string{}}
	for _, row := range rows[1:] {
		event := textutil.CleanName(row[0])
		track := textutil.CleanName(row[1])
		if event == "" || track == "" {
			continue
		}
		key := textutil.NormalizeName(event)
		if _, exists := l.byEvent[key]; exists {
			continue
		}
		l.byEvent[key] = track
		l.events = append(l.events, event)
		l.tracks = append(l.tracks, track)
	}
	return l, nil
}

var defaultOnce sync.Once
var defaultLookup Lookup

// Default returns the lookup built from the bundled reference table,
// loading it once per process.
func Default() Lookup {
	defaultOnce.Do(func() {
		var err error
		defaultLookup, err = Parse(strings.NewReader(string(rawTable)))
		if err != nil {
			panic(err)
		}
	})
	return defaultLookup
}

// TrackName resolves an event name to its track. Exact (normalized)
// matches win; otherwise the closest fuzzy candidate is used to absorb
// source-side renames like sponsor changes. Unknown events return
// ("", false).
func (l Lookup) TrackName(eventName string) (string, bool) {
	key := textutil.NormalizeName(eventName)
	if key == "" {
		return "", false
	}
	if track, ok := l.byEvent[key]; ok {
		return track, true
	}

	best := -1
	var bestSim float64
	for i, event := range l.events {
		sim := matchr.JaroWinkler(key, textutil.NormalizeName(event), false)
		if sim > bestSim {
			bestSim = sim
			best = i
		}
	}
	if best >= 0 && bestSim >= fuzzyThreshold {
		return l.tracks[best], true
	}
	return "", false
}

// Events lists the known event names in table order.
func (l Lookup) Events() []string {
	out := make([]string, len(l.events))
	copy(out, l.events)
	return out
}

// Track returns the track for the i-th event in table order.
func (l Lookup) Track(i int) string {
	return l.tracks[i]
}

func (l Lookup) Len() int {
	return len(l.events)
}
