package timeline

import (
	"sort"

	"github.com/pable/go-nhl-metrics/internal/model"
)

// scoreMoment is the cumulative score as of and including a goal scored
// at exactly this (period, elapsed) moment.
type scoreMoment struct {
	period  int
	elapsed int
	home    int
	away    int
}

// ScoreTimeline answers "what was the score at (period, clock)" for one
// game. Build it once per game and query it per shot.
type ScoreTimeline struct {
	homeTeamID int
	moments    []scoreMoment
}

// BuildScoreTimeline replays the event list and records one moment per
// goal. Goals are sorted by (period, elapsed) before the cumulative
// score is accumulated, so a non-monotonic event list still yields
// correct moments.
func BuildScoreTimeline(events []model.Event, homeTeamID int) *ScoreTimeline {
	tl := &ScoreTimeline{homeTeamID: homeTeamID}

	type goal struct {
		period  int
		elapsed int
		teamID  int
	}
	var goals []goal
	for _, ev := range events {
		if ev.TypeKey != model.TypeGoal {
			continue
		}
		goals = append(goals, goal{
			period:  ev.Period,
			elapsed: ParseClock(ev.TimeInPeriod),
			teamID:  ev.TeamID,
		})
	}
	sort.SliceStable(goals, func(i, j int) bool {
		if goals[i].period != goals[j].period {
			return goals[i].period < goals[j].period
		}
		return goals[i].elapsed < goals[j].elapsed
	})

	home, away := 0, 0
	for _, g := range goals {
		if g.teamID == homeTeamID {
			home++
		} else {
			away++
		}
		tl.moments = append(tl.moments, scoreMoment{
			period:  g.period,
			elapsed: g.elapsed,
			home:    home,
			away:    away,
		})
	}
	return tl
}

// StateAt returns the game state at (period, clock) from teamID's
// perspective. A goal scored at exactly the queried moment is included.
// With no goals at or before the moment the state is tied/0.
func (tl *ScoreTimeline) StateAt(teamID, period int, clock string) model.GameState {
	elapsed := ParseClock(clock)

	// Linear rescan keeping the latest moment ≤ the query. Moment lists
	// are one entry per goal, so no index is kept.
	home, away := 0, 0
	bestPeriod, bestElapsed := -1, -1
	for _, m := range tl.moments {
		if !MomentLE(m.period, m.elapsed, period, elapsed) {
			continue
		}
		if bestPeriod >= 0 && !MomentLE(bestPeriod, bestElapsed, m.period, m.elapsed) {
			continue
		}
		home, away = m.home, m.away
		bestPeriod, bestElapsed = m.period, m.elapsed
	}

	diff := home - away
	if teamID != tl.homeTeamID {
		diff = -diff
	}

	state := model.GameState{Diff: diff}
	switch {
	case diff > 0:
		state.Situation = model.StateLeading
	case diff < 0:
		state.Situation = model.StateTrailing
	default:
		state.Situation = model.StateTied
	}
	return state
}
