package aggregator

import (
	"sort"

	"github.com/pable/go-nhl-metrics/internal/model"
)

// DefaultRibbonCount is used when the caller does not cap top-N.
const DefaultRibbonCount = 5

// GenerateAttackRibbons groups sequences by archetype and produces one
// averaged path per group, ordered by frequency. The path is literal
// coordinate averaging of the group's origins and outcomes with the
// segment midpoint as the control point: a visual approximation of the
// group's shape, not a real shot path.
func GenerateAttackRibbons(seqs []model.AttackSequence, topN int) []model.AttackRibbon {
	if topN <= 0 {
		topN = DefaultRibbonCount
	}

	type group struct {
		count      int
		goals      int
		originXSum float64
		originYSum float64
		outXSum    float64
		outYSum    float64
	}
	groups := map[string]*group{}
	for _, seq := range seqs {
		g := groups[seq.Archetype]
		if g == nil {
			g = &group{}
			groups[seq.Archetype] = g
		}
		g.count++
		if seq.Outcome.Result == model.TypeGoal {
			g.goals++
		}
		g.originXSum += seq.Origin.X
		g.originYSum += seq.Origin.Y
		g.outXSum += seq.Outcome.X
		g.outYSum += seq.Outcome.Y
	}

	total := len(seqs)
	var ribbons []model.AttackRibbon
	for archetype, g := range groups {
		n := float64(g.count)
		origin := model.RibbonPoint{X: g.originXSum / n, Y: g.originYSum / n}
		outcome := model.RibbonPoint{X: g.outXSum / n, Y: g.outYSum / n}
		control := model.RibbonPoint{X: (origin.X + outcome.X) / 2, Y: (origin.Y + outcome.Y) / 2}
		ribbons = append(ribbons, model.AttackRibbon{
			Archetype:     archetype,
			Frequency:     g.count,
			Percentage:    n / float64(total) * 100,
			ConversionPct: float64(g.goals) / n * 100,
			Path:          [3]model.RibbonPoint{origin, control, outcome},
		})
	}

	// Frequency descending; archetype name breaks ties so the output is
	// stable across calls.
	sort.Slice(ribbons, func(i, j int) bool {
		if ribbons[i].Frequency != ribbons[j].Frequency {
			return ribbons[i].Frequency > ribbons[j].Frequency
		}
		return ribbons[i].Archetype < ribbons[j].Archetype
	})

	if len(ribbons) > topN {
		ribbons = ribbons[:topN]
	}
	return ribbons
}
