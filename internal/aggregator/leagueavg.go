package aggregator

// LeagueAverages carries the baseline rates used when a report wants to
// show a player or team relative to the league. Values are treated as
// immutable; callers receive a pointer to the shared default and must
// not mutate it.
type LeagueAverages struct {
	HighDangerPct   float64 // share of shots from the high-danger area
	ShootingPct     float64 // goals per shot on goal
	RushSharePct    float64 // share of shots generated off the rush
	CycleSharePct   float64 // share of shots generated off the cycle
	ControlledEntry float64 // controlled share of zone entries
	AvgShotDistance float64 // feet
}

var defaultLeagueAverages = LeagueAverages{
	HighDangerPct:   28,
	ShootingPct:     9.5,
	RushSharePct:    22,
	CycleSharePct:   31,
	ControlledEntry: 55,
	AvgShotDistance: 34,
}

// DefaultLeagueAverages returns the shared league baseline.
func DefaultLeagueAverages() *LeagueAverages {
	return &defaultLeagueAverages
}
