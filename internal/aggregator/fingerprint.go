package aggregator

import (
	"sort"

	"github.com/pable/go-nhl-metrics/internal/model"
)

// Style axis names.
const (
	StyleRushAttack  = "Rush Attack"
	StyleCycleGame   = "Cycle Game"
	StylePointVolume = "Point Volume"
	StyleNetFront    = "Net-Front Presence"
	StyleTransition  = "Transition Pressure"
	StyleBalanced    = "Balanced"
)

// balancedMarginRatio: the top style axis must beat the runner-up by a
// 30% relative margin to be called the primary style.
const balancedMarginRatio = 1.3

// defaultEntryAggression is reported when no zone entries exist at all.
const defaultEntryAggression = 50.0

// archetypeGroup maps each of the eleven archetypes to its fingerprint
// group.
var archetypeGroup = map[string]string{
	model.ArchetypeBreakaway:      "rush",
	model.ArchetypeOddmanRush:     "rush",
	model.ArchetypeRushStandard:   "rush",
	model.ArchetypeCycleLow:       "cycle",
	model.ArchetypeCycleHigh:      "cycle",
	model.ArchetypePointShot:      "point",
	model.ArchetypeFaceoffPlay:    "point",
	model.ArchetypeNetScramble:    "net-front",
	model.ArchetypeRebound:        "net-front",
	model.ArchetypeTransQuick:     "transition",
	model.ArchetypeTransSustained: "transition",
}

// ComputeFingerprint distills a sequence set and the team's zone entries
// into the multi-axis play-style signature. An empty sequence set yields
// an all-zero fingerprint classified Balanced.
func ComputeFingerprint(seqs []model.AttackSequence, entries []model.ZoneEntry) model.StyleFingerprint {
	fp := model.StyleFingerprint{
		Sequences:       len(seqs),
		EntryAggression: defaultEntryAggression,
		PrimaryStyle:    StyleBalanced,
	}

	groups := map[string]int{}
	durationSum := 0
	for _, s := range seqs {
		groups[archetypeGroup[s.Archetype]]++
		durationSum += s.DurationSeconds
	}

	if len(seqs) > 0 {
		total := float64(len(seqs))
		fp.RushPct = float64(groups["rush"]) / total * 100
		fp.CyclePct = float64(groups["cycle"]) / total * 100
		fp.PointPct = float64(groups["point"]) / total * 100
		fp.NetFrontPct = float64(groups["net-front"]) / total * 100
		fp.TransitionPct = float64(groups["transition"]) / total * 100
		fp.TransitionSpeed = clamp01to100(100 - 5*(float64(durationSum)/total))
	}

	if len(entries) > 0 {
		controlled := 0
		for _, e := range entries {
			if e.EntryType == model.EntryControlled {
				controlled++
			}
		}
		fp.EntryAggression = float64(controlled) / float64(len(entries)) * 100
	}

	if len(seqs) > 0 {
		fp.PrimaryStyle = primaryStyle(fp)
	}
	return fp
}

// primaryStyle scores the five style axes and picks a primary only when
// the winner clears the Balanced margin over the runner-up.
func primaryStyle(fp model.StyleFingerprint) string {
	type axis struct {
		name  string
		score float64
	}
	axes := []axis{
		{StyleRushAttack, fp.RushPct*0.7 + fp.TransitionSpeed*0.3},
		{StyleCycleGame, fp.CyclePct*0.7 + (100-fp.TransitionSpeed)*0.3},
		{StylePointVolume, fp.PointPct},
		{StyleNetFront, fp.NetFrontPct},
		{StyleTransition, fp.TransitionPct*0.6 + fp.EntryAggression*0.4},
	}
	sort.SliceStable(axes, func(i, j int) bool { return axes[i].score > axes[j].score })

	top, second := axes[0], axes[1]
	if second.score <= 0 {
		return top.name
	}
	if top.score >= second.score*balancedMarginRatio {
		return top.name
	}
	return StyleBalanced
}
