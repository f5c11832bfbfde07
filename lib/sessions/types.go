package sessions

import (
	"fmt"
	"strings"

	"github.com/TMCabrera/indycargo/lib/textutil"
)

// SessionType is the single-letter session filter code carried over
// from the results site: R (race), P (practice), Q (qualifying),
// W (warmup), or All.
type SessionType string

const (
	TypeRace       SessionType = "R"
	TypePractice   SessionType = "P"
	TypeQualifying SessionType = "Q"
	TypeWarmup     SessionType = "W"
	TypeAll        SessionType = "All"
)

// ParseSessionType accepts the code letters case-insensitively plus
// the spelled-out names.
func ParseSessionType(s string) (SessionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "race":
		return TypeRace, nil
	case "p", "practice":
		return TypePractice, nil
	case "q", "qualifying", "qualifications":
		return TypeQualifying, nil
	case "w", "warmup":
		return TypeWarmup, nil
	case "all", "":
		return TypeAll, nil
	}
	return "", fmt.Errorf(
		"unknown session type %q: expected R, P, Q, W or All", s,
	)
}

// keyword per type, in the normalized form MatchName compares against
var sessionNameMatchers = map[SessionType][]string{
	TypeRace:       {"race"},
	TypePractice:   {"practice"},
	TypeQualifying: {"qualif"},
	TypeWarmup:     {"warm"},
}

// matches decides whether a source-side session name ("Race",
// "Practice 2", "Qualifications", "Warm Up", ...) belongs to this
// type.
func (t SessionType) matches(sessionName string) bool {
	matchers, ok := sessionNameMatchers[t]
	if !ok {
		return true
	}
	return textutil.MatchName(sessionName, matchers)
}

// Query selects the sessions to fetch: an inclusive year range and a
// session type filter.
type Query struct {
	FromYear int
	ToYear   int
	Type     SessionType
}

// Validate fails fast on impossible queries so no network request is
// ever issued for them.
func (q Query) Validate() error {
	if q.FromYear > q.ToYear {
		return fmt.Errorf(
			"invalid year range: from_year %d is after to_year %d",
			q.FromYear, q.ToYear,
		)
	}
	switch q.Type {
	case TypeRace, TypePractice, TypeQualifying, TypeWarmup, TypeAll:
		return nil
	}
	return fmt.Errorf(
		"unknown session type %q: expected R, P, Q, W or All", string(q.Type),
	)
}
