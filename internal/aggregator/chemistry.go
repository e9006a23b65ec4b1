package aggregator

import (
	"sort"

	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/timeline"
)

// Chemistry index component weights and volume scaling.
const (
	chemShotVolumeWeight  = 0.4
	chemSupportRateWeight = 0.4
	chemShiftWeight       = 0.2

	chemShotsPerPoint  = 4.0 // 25 shots together saturates the volume term
	chemShiftsPerPoint = 2.0 // 50 overlapping shifts saturates the shift term
)

// PairChemistry computes shared on-ice evidence and a 0-100 chemistry
// index for one unordered player pair. Pair ordering is canonicalized by
// ascending id, so swapping the arguments yields identical output. With
// no shared data of any kind the index is 0.
func PairChemistry(games []model.GameRecord, player1ID, player2ID int) model.ChemistryPair {
	if player2ID < player1ID {
		player1ID, player2ID = player2ID, player1ID
	}

	pair := model.ChemistryPair{Player1ID: player1ID, Player2ID: player2ID}
	for gi := range games {
		game := &games[gi]
		accumulateSharedShots(game, player1ID, player2ID, &pair.Together)
		pair.Together.ShiftOverlaps += countShiftOverlaps(game.Shifts, player1ID, player2ID)
	}

	pair.ChemistryIndex = chemistryIndex(pair.Together)
	return pair
}

// ChemistryMatrix computes PairChemistry for every unordered pair of
// players seen on the ice for teamID, ordered by index descending.
func ChemistryMatrix(games []model.GameRecord, teamID int) []model.ChemistryPair {
	roster := map[int]struct{}{}
	for gi := range games {
		game := &games[gi]
		for _, shot := range game.Shots {
			if shot.TeamID != teamID {
				continue
			}
			onIce := shot.AwayOnIce
			if shot.TeamID == game.HomeTeamID {
				onIce = shot.HomeOnIce
			}
			for _, id := range onIce {
				roster[id] = struct{}{}
			}
		}
		for _, shift := range game.Shifts {
			if shift.TeamID == teamID {
				roster[shift.PlayerID] = struct{}{}
			}
		}
	}

	ids := make([]int, 0, len(roster))
	for id := range roster {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var pairs []model.ChemistryPair
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			pairs = append(pairs, PairChemistry(games, ids[i], ids[j]))
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].ChemistryIndex > pairs[j].ChemistryIndex
	})
	return pairs
}

// accumulateSharedShots counts shots taken while both players were on
// the ice for the shooting side, and how many of those either pair
// member took themselves.
func accumulateSharedShots(game *model.GameRecord, p1, p2 int, out *model.PairSharedStats) {
	for _, shot := range game.Shots {
		onIce := shot.AwayOnIce
		if shot.TeamID == game.HomeTeamID {
			onIce = shot.HomeOnIce
		}
		if !containsPlayer(onIce, p1) || !containsPlayer(onIce, p2) {
			continue
		}
		out.Shots++
		if shot.ShooterID == p1 || shot.ShooterID == p2 {
			out.ShotsByPair++
		}
		if shot.Result == model.TypeGoal {
			out.Goals++
		}
	}
}

// countShiftOverlaps counts shift-interval pairs in the same period with
// positive temporal overlap. Used when on-ice arrays are sparse; an
// empty shift list simply contributes 0.
func countShiftOverlaps(shifts []model.Shift, p1, p2 int) int {
	var a, b []model.Shift
	for _, s := range shifts {
		switch s.PlayerID {
		case p1:
			a = append(a, s)
		case p2:
			b = append(b, s)
		}
	}

	overlaps := 0
	for _, sa := range a {
		aStart := timeline.ParseClock(sa.StartTime)
		aEnd := timeline.ParseClock(sa.EndTime)
		for _, sb := range b {
			if sa.Period != sb.Period {
				continue
			}
			bStart := timeline.ParseClock(sb.StartTime)
			bEnd := timeline.ParseClock(sb.EndTime)
			if min(aEnd, bEnd) > max(aStart, bStart) {
				overlaps++
			}
		}
	}
	return overlaps
}

// chemistryIndex blends shot volume, shared shot-support rate, and shift
// overlap count into a 0-100 score.
func chemistryIndex(t model.PairSharedStats) float64 {
	volume := float64(t.Shots) * chemShotsPerPoint
	if volume > 100 {
		volume = 100
	}
	supportRate := 0.0
	if t.Shots > 0 {
		supportRate = float64(t.ShotsByPair) / float64(t.Shots) * 100
	}
	shiftScore := float64(t.ShiftOverlaps) * chemShiftsPerPoint
	if shiftScore > 100 {
		shiftScore = 100
	}
	return clamp01to100(chemShotVolumeWeight*volume +
		chemSupportRateWeight*supportRate +
		chemShiftWeight*shiftScore)
}

func containsPlayer(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
