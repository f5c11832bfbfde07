package sessions

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/TMCabrera/indycargo/lib/scrapers/indystats"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Candidate identifies one session to fetch, taken from the season
// index and already filtered by the query.
type Candidate struct {
	Year        int
	EventID     string
	EventName   string
	SessionID   string
	SessionName string
}

// ListSessions enumerates the sessions matching the query's year range
// and type filter. It issues exactly one request (the season index).
func ListSessions(ctx context.Context, client *indystats.Client, query Query) ([]Candidate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	seasons, err := client.FetchSeasons(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, season := range seasons {
		year, err := strconv.Atoi(season.Year)
		if err != nil {
			slog.WarnContext(ctx, "skipping season with unreadable year", "year", season.Year)
			continue
		}
		if year < query.FromYear || year > query.ToYear {
			continue
		}

		for _, event := range season.Events {
			for _, session := range event.Sessions {
				if !query.Type.matches(session.SessionName) {
					continue
				}
				candidates = append(candidates, Candidate{
					Year:        year,
					EventID:     event.EventID,
					EventName:   event.EventName,
					SessionID:   session.EventsSessionID,
					SessionName: session.SessionName,
				})
			}
		}
	}

	return candidates, nil
}

// FetchRecords fetches the raw per-entrant rows of every session the
// query selects, one request per session, sequentially. A session that
// fails to fetch or parse is logged and skipped; the remaining
// sessions still contribute, so the result may be partial but the call
// only errors on an invalid query or an unreachable season index.
//
// Each raw record is annotated with its session's metadata under the
// source-style keys the normalizer expects (EventName, TrackType,
// EventDate, EventType, SessionType, EventID, Season), plus the
// session identifier for rows whose payload shape omits it.
func FetchRecords(ctx context.Context, client *indystats.Client, query Query) ([]indystats.RawRecord, error) {
	ctx, span := tracer.Start(ctx, "FetchRecords")
	defer span.End()

	candidates, err := ListSessions(ctx, client, query)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("candidate_sessions", len(candidates)))

	var raw []indystats.RawRecord
	fetched := 0
	for _, candidate := range candidates {
		details, err := client.FetchSessionDetails(ctx, candidate.SessionID)
		if err != nil {
			slog.WarnContext(
				ctx, "skipping session",
				"session_id", candidate.SessionID,
				"event", candidate.EventName,
				"year", candidate.Year,
				"err", err,
			)
			continue
		}
		fetched++

		season := candidate.Year
		if date := parseEventDate(details.SessionDate); date != nil {
			season = date.Year()
		}

		for _, record := range details.Records {
			annotated := make(indystats.RawRecord, len(record)+8)
			for k, v := range record {
				annotated[k] = v
			}
			annotated["EventName"] = details.EventName
			annotated["TrackType"] = details.TrackType
			annotated["EventDate"] = details.SessionDate
			annotated["EventType"] = details.SessionName
			annotated["SessionType"] = details.SessionType
			annotated["EventID"] = candidate.EventID
			annotated["Season"] = season
			// html results tables carry no id columns; the session is
			// known from the index entry that led here
			if record.String("EventsSessionsID") == "" {
				annotated["EventsSessionsID"] = candidate.SessionID
			}
			raw = append(raw, annotated)
		}
	}

	span.AddEvent("fetched", trace.WithAttributes(
		attribute.Int("sessions", fetched),
		attribute.Int("records", len(raw)),
	))
	slog.DebugContext(
		ctx, "fetched session records",
		"candidates", len(candidates),
		"fetched", fetched,
		"records", len(raw),
	)
	return raw, nil
}
