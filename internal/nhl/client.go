// Package nhl provides a minimal client for the NHL api-web and stats
// REST endpoints.
package nhl

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Default endpoint roots. Both APIs are public and unauthenticated.
const (
	DefaultBaseURL      = "https://api-web.nhle.com/v1"
	DefaultStatsBaseURL = "https://api.nhle.com/stats/rest/en"
)

// Client is a minimal NHL API client.
type Client struct {
	baseURL      string
	statsBaseURL string
	http         *http.Client
}

// NewClient returns an NHL API client against the public endpoints.
func NewClient() *Client {
	return NewClientWithBase(DefaultBaseURL, DefaultStatsBaseURL, 30*time.Second)
}

// NewClientWithBase returns a client against custom endpoint roots,
// mainly for configuration overrides and tests.
func NewClientWithBase(baseURL, statsBaseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      baseURL,
		statsBaseURL: statsBaseURL,
		http:         &http.Client{Timeout: timeout},
	}
}

// PlayDetails holds the per-event detail fields we use. The feed only
// populates the subset relevant to each event type. Coordinates are
// pointers because many event types legitimately carry no location.
type PlayDetails struct {
	XCoord            *float64 `json:"xCoord"`
	YCoord            *float64 `json:"yCoord"`
	ShotType          string   `json:"shotType"`
	ShootingPlayerID  int      `json:"shootingPlayerId"`
	ScoringPlayerID   int      `json:"scoringPlayerId"`
	PlayerID          int      `json:"playerId"`
	EventOwnerTeamID  int      `json:"eventOwnerTeamId"`
	WinningPlayerID   int      `json:"winningPlayerId"`
	HittingPlayerID   int      `json:"hittingPlayerId"`
	BlockingPlayerID  int      `json:"blockingPlayerId"`
	GoalieInNetID     int      `json:"goalieInNetId"`
	HomeScore         int      `json:"homeScore"`
	AwayScore         int      `json:"awayScore"`
}

// Play is one entry in the gamecenter play-by-play feed.
type Play struct {
	EventID        int         `json:"eventId"`
	TypeDescKey    string      `json:"typeDescKey"`
	TimeInPeriod   string      `json:"timeInPeriod"`
	TimeRemaining  string      `json:"timeRemaining"`
	SituationCode  string      `json:"situationCode"`
	Details        PlayDetails `json:"details"`
	PeriodDescr    struct {
		Number     int    `json:"number"`
		PeriodType string `json:"periodType"`
	} `json:"periodDescriptor"`
}

// PlayByPlay holds the fields we need from /gamecenter/{id}/play-by-play.
type PlayByPlay struct {
	ID       int    `json:"id"`
	GameDate string `json:"gameDate"`
	HomeTeam struct {
		ID     int    `json:"id"`
		Abbrev string `json:"abbrev"`
	} `json:"homeTeam"`
	AwayTeam struct {
		ID     int    `json:"id"`
		Abbrev string `json:"abbrev"`
	} `json:"awayTeam"`
	Plays []Play `json:"plays"`
}

// ScheduleGame is one entry from /club-schedule-season.
type ScheduleGame struct {
	ID       int    `json:"id"`
	GameDate string `json:"gameDate"`
	GameType int    `json:"gameType"`
	HomeTeam struct {
		ID int `json:"id"`
	} `json:"homeTeam"`
	AwayTeam struct {
		ID int `json:"id"`
	} `json:"awayTeam"`
	GameState string `json:"gameState"`
}

// RosterPlayer is one entry from the club roster endpoint.
type RosterPlayer struct {
	ID        int `json:"id"`
	FirstName struct {
		Default string `json:"default"`
	} `json:"firstName"`
	LastName struct {
		Default string `json:"default"`
	} `json:"lastName"`
	SweaterNumber int    `json:"sweaterNumber"`
	Position      string `json:"positionCode"`
}

// ShiftEntry is one row from the shiftcharts stats endpoint.
type ShiftEntry struct {
	PlayerID  int    `json:"playerId"`
	TeamID    int    `json:"teamId"`
	Period    int    `json:"period"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
}

// get performs a GET request and JSON-decodes the response body into out.
func (c *Client) get(url string, out interface{}) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetPlayByPlay fetches the full play-by-play feed for one game.
func (c *Client) GetPlayByPlay(gameID int) (*PlayByPlay, error) {
	var pbp PlayByPlay
	url := fmt.Sprintf("%s/gamecenter/%d/play-by-play", c.baseURL, gameID)
	if err := c.get(url, &pbp); err != nil {
		return nil, err
	}
	return &pbp, nil
}

// GetSchedule returns a team's schedule for a season, e.g. ("TOR", "20242025").
func (c *Client) GetSchedule(teamAbbrev, season string) ([]ScheduleGame, error) {
	var resp struct {
		Games []ScheduleGame `json:"games"`
	}
	url := fmt.Sprintf("%s/club-schedule-season/%s/%s", c.baseURL, teamAbbrev, season)
	if err := c.get(url, &resp); err != nil {
		return nil, err
	}
	return resp.Games, nil
}

// GetRoster returns a team's current roster across all position groups.
func (c *Client) GetRoster(teamAbbrev, season string) ([]RosterPlayer, error) {
	var resp struct {
		Forwards   []RosterPlayer `json:"forwards"`
		Defensemen []RosterPlayer `json:"defensemen"`
		Goalies    []RosterPlayer `json:"goalies"`
	}
	url := fmt.Sprintf("%s/roster/%s/%s", c.baseURL, teamAbbrev, season)
	if err := c.get(url, &resp); err != nil {
		return nil, err
	}
	roster := make([]RosterPlayer, 0, len(resp.Forwards)+len(resp.Defensemen)+len(resp.Goalies))
	roster = append(roster, resp.Forwards...)
	roster = append(roster, resp.Defensemen...)
	roster = append(roster, resp.Goalies...)
	return roster, nil
}

// GetShifts returns the shift chart rows for one game.
func (c *Client) GetShifts(gameID int) ([]ShiftEntry, error) {
	var resp struct {
		Data []ShiftEntry `json:"data"`
	}
	url := fmt.Sprintf("%s/shiftcharts?cayenneExp=gameId=%d", c.statsBaseURL, gameID)
	if err := c.get(url, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
