package indystats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// RawRecord is one entrant's row exactly as the source serves it:
// source field names as keys, loosely typed values (strings for
// numbers, padded names, empty strings for missing data). The
// normalizer in lib/sessions owns turning this into typed columns.
type RawRecord map[string]any

func (r RawRecord) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// json numbers decode as float64; ids and counts come back
		// without a fractional part
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%v", s)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SessionDetails is the EventsSessionDetails payload: session-level
// metadata plus one RawRecord per entrant.
type SessionDetails struct {
	EventName   string      `json:"EventName"`
	SessionDate string      `json:"SessionDate"`
	SessionName string      `json:"SessionName"`
	SessionType string      `json:"SessionType"`
	TrackType   string      `json:"TrackType"`
	Records     []RawRecord `json:"records"`
}

// FetchSessionDetails retrieves the per-entrant results of a single
// session. Some archive sessions come back as an HTML results table
// instead of JSON; both shapes land in the same SessionDetails.
func (c *Client) FetchSessionDetails(ctx context.Context, sessionId string) (SessionDetails, error) {
	c.politeDelay()

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParam("id", sessionId).
		Get("/Services/IndyStats.svc/EventsSessionDetails")
	if err != nil {
		return SessionDetails{}, err
	}
	if res.StatusCode() != 200 {
		return SessionDetails{}, fmt.Errorf(
			"fetch session %s: unexpected status %d", sessionId, res.StatusCode(),
		)
	}

	body := bytes.TrimSpace(res.Body())
	if len(body) == 0 {
		return SessionDetails{}, fmt.Errorf("fetch session %s: empty response", sessionId)
	}

	if body[0] == '{' {
		var details SessionDetails
		err = json.Unmarshal(body, &details)
		if err != nil {
			return SessionDetails{}, fmt.Errorf("fetch session %s: %w", sessionId, err)
		}
		return details, nil
	}

	return ParseResultsTable(ctx, bytes.NewReader(body))
}
