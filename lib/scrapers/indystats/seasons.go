package indystats

import (
	"context"
	"encoding/json"
	"fmt"
)

// Season mirrors one entry of the SeasonDropDown payload: a year and
// the events run that year, each with its timed sessions.
type Season struct {
	Year   string  `json:"Year"`
	Events []Event `json:"Events"`
}

type Event struct {
	EventID   string         `json:"EventID"`
	EventName string         `json:"EventName"`
	Sessions  []EventSession `json:"Sessions"`
}

type EventSession struct {
	EventsSessionID string `json:"EventsSessionID"`
	SessionName     string `json:"SessionName"`
}

// FetchSeasons retrieves the full season/event/session index the
// results site builds its dropdowns from.
func (c *Client) FetchSeasons(ctx context.Context) ([]Season, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParam("id", seasonDropdownId).
		Get("/Services/IndyStats.svc/SeasonDropDown")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch seasons: unexpected status %d", res.StatusCode())
	}

	var seasons []Season
	err = json.Unmarshal(res.Body(), &seasons)
	if err != nil {
		return nil, fmt.Errorf("fetch seasons: %w", err)
	}
	return seasons, nil
}
