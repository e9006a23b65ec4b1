package aggregator

import (
	"testing"

	"github.com/pable/go-nhl-metrics/internal/model"
)

func ribbonSeq(archetype, result string, originX, originY, outX, outY float64) model.AttackSequence {
	return model.AttackSequence{
		Archetype: archetype,
		Origin:    model.SequenceOrigin{X: originX, Y: originY},
		Outcome:   model.SequenceOutcome{Result: result, X: outX, Y: outY},
	}
}

func TestGenerateAttackRibbonsEmpty(t *testing.T) {
	if ribbons := GenerateAttackRibbons(nil, 0); len(ribbons) != 0 {
		t.Errorf("expected no ribbons for empty input, got %d", len(ribbons))
	}
}

func TestGenerateAttackRibbonsGrouping(t *testing.T) {
	seqs := []model.AttackSequence{
		ribbonSeq(model.ArchetypeRushStandard, model.TypeGoal, 0, 10, 80, 10),
		ribbonSeq(model.ArchetypeRushStandard, model.TypeShotOnGoal, 0, -10, 80, -10),
		ribbonSeq(model.ArchetypeRushStandard, model.TypeMissedShot, 0, 0, 80, 0),
		ribbonSeq(model.ArchetypeCycleHigh, model.TypeShotOnGoal, 70, 20, 70, 0),
	}

	ribbons := GenerateAttackRibbons(seqs, 0)
	if len(ribbons) != 2 {
		t.Fatalf("expected 2 ribbons, got %d", len(ribbons))
	}

	rush := ribbons[0]
	if rush.Archetype != model.ArchetypeRushStandard {
		t.Fatalf("most frequent ribbon = %s, want rush-standard", rush.Archetype)
	}
	if rush.Frequency != 3 || !approxEq(rush.Percentage, 75) {
		t.Errorf("rush frequency/pct = %d/%f, want 3/75", rush.Frequency, rush.Percentage)
	}
	if !approxEq(rush.ConversionPct, 100.0/3.0) {
		t.Errorf("rush ConversionPct = %f, want 33.3", rush.ConversionPct)
	}

	origin, control, outcome := rush.Path[0], rush.Path[1], rush.Path[2]
	if !approxEq(origin.X, 0) || !approxEq(origin.Y, 0) {
		t.Errorf("averaged origin = (%f, %f), want (0, 0)", origin.X, origin.Y)
	}
	if !approxEq(outcome.X, 80) || !approxEq(outcome.Y, 0) {
		t.Errorf("averaged outcome = (%f, %f), want (80, 0)", outcome.X, outcome.Y)
	}
	if !approxEq(control.X, 40) || !approxEq(control.Y, 0) {
		t.Errorf("control point = (%f, %f), want segment midpoint (40, 0)", control.X, control.Y)
	}

	cycle := ribbons[1]
	if cycle.Frequency != 1 || !approxEq(cycle.Percentage, 25) {
		t.Errorf("cycle frequency/pct = %d/%f, want 1/25", cycle.Frequency, cycle.Percentage)
	}
	if !approxEq(cycle.ConversionPct, 0) {
		t.Errorf("cycle ConversionPct = %f, want 0", cycle.ConversionPct)
	}
}

func TestGenerateAttackRibbonsTopN(t *testing.T) {
	var seqs []model.AttackSequence
	for _, arch := range model.Archetypes {
		seqs = append(seqs, ribbonSeq(arch, model.TypeShotOnGoal, 0, 0, 80, 0))
	}

	if ribbons := GenerateAttackRibbons(seqs, 3); len(ribbons) != 3 {
		t.Errorf("topN=3 returned %d ribbons", len(ribbons))
	}
	if ribbons := GenerateAttackRibbons(seqs, 0); len(ribbons) != DefaultRibbonCount {
		t.Errorf("default cap returned %d ribbons, want %d", len(ribbons), DefaultRibbonCount)
	}
}

func TestGenerateAttackRibbonsStableTieBreak(t *testing.T) {
	seqs := []model.AttackSequence{
		ribbonSeq(model.ArchetypeCycleHigh, model.TypeShotOnGoal, 70, 0, 70, 0),
		ribbonSeq(model.ArchetypeBreakaway, model.TypeShotOnGoal, 0, 0, 85, 0),
	}

	ribbons := GenerateAttackRibbons(seqs, 0)
	if len(ribbons) != 2 {
		t.Fatalf("expected 2 ribbons, got %d", len(ribbons))
	}
	if ribbons[0].Archetype != model.ArchetypeBreakaway {
		t.Errorf("equal frequencies should order by archetype name, got %s first",
			ribbons[0].Archetype)
	}
}
